// Package ala implements a lossless codec for 16-bit PCM audio: mid/side
// decorrelation, first-order pre-emphasis, PARCOR linear prediction via a
// fixed-point lattice, and adaptive recursive-Rice residual coding.
//
// Encode and Decode operate on raw sample blocks through the SampleSource
// and SampleSink interfaces; cmd/ala provides a WAV-backed command-line
// front end.
package ala

package main

import (
	"os"

	"github.com/ala-codec/ala"
	"github.com/go-audio/wav"
	"github.com/mewkiz/pkg/osutil"
	"github.com/mewkiz/pkg/pathutil"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [wav-file]...",
	Short: "Encode one or more WAV files to ALA",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, wavPath := range args {
			if err := encodeFile(wavPath); err != nil {
				return errors.Wrapf(err, "encode %q", wavPath)
			}
		}
		return nil
	},
}

func encodeFile(wavPath string) error {
	r, err := os.Open(wavPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer r.Close()

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return errors.Errorf("invalid WAV file %q", wavPath)
	}
	if err := dec.FwdToPCM(); err != nil {
		return errors.WithStack(err)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return errors.WithStack(err)
	}

	alaPath := pathutil.TrimExt(wavPath) + ".ala"
	if !force && osutil.Exists(alaPath) {
		return errors.Errorf("ALA file %q already present; use -f to force overwrite", alaPath)
	}
	w, err := os.Create(alaPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer w.Close()

	src := newWAVSource(buf)
	cfg := ala.Config{
		Channels:      buf.Format.NumChannels,
		SampleRate:    uint32(buf.Format.SampleRate),
		BitsPerSample: buf.SourceBitDepth,
	}
	return ala.Encode(w, cfg, src.totalSamples(), src)
}

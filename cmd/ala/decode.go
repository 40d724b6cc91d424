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

const wavFormatPCM = 1

var decodeCmd = &cobra.Command{
	Use:   "decode [ala-file]...",
	Short: "Decode one or more ALA files to WAV",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, alaPath := range args {
			if err := decodeFile(alaPath); err != nil {
				return errors.Wrapf(err, "decode %q", alaPath)
			}
		}
		return nil
	},
}

func decodeFile(alaPath string) error {
	r, err := os.Open(alaPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer r.Close()

	wavPath := pathutil.TrimExt(alaPath) + ".wav"
	if !force && osutil.Exists(wavPath) {
		return errors.Errorf("WAV file %q already present; use -f to force overwrite", wavPath)
	}
	w, err := os.Create(wavPath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer w.Close()

	dec, err := ala.NewDecoder(r)
	if err != nil {
		return err
	}
	cfg := dec.Config()

	enc := wav.NewEncoder(w, int(cfg.SampleRate), cfg.BitsPerSample, cfg.Channels, wavFormatPCM)
	defer enc.Close()

	sink := newWAVSink(enc, cfg.Channels, int(cfg.SampleRate), cfg.BitsPerSample)
	for !dec.Done() {
		block, err := dec.DecodeBlock()
		if err != nil {
			return err
		}
		if err := sink.WriteBlock(block); err != nil {
			return err
		}
	}
	return nil
}

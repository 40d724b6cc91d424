// Command ala encodes and decodes lossless audio streams to and from the
// ALA file format, using WAV as its only supported container.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%+v\n", err)
		os.Exit(1)
	}
}

var force bool

var rootCmd = &cobra.Command{
	Use:   "ala",
	Short: "Lossless audio encoder and decoder",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&force, "force", "f", false, "force overwrite of existing output files")
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
}

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"chainsel/internal/dataset"
)

var packOutput string

func init() {
	packCmd.Flags().StringVarP(&packOutput, "output", "o", "", "output file (default: input with .msgpack extension)")
}

var packCmd = &cobra.Command{
	Use:   "pack <data-file>",
	Short: "Convert a data file to msgpack",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := dataset.Load(args[0])
		if err != nil {
			return err
		}
		out := packOutput
		if out == "" {
			out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".msgpack"
		}
		if err := dataset.WritePacked(out, data); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "packed %d items into %s\n", data.Count(), out)
		return nil
	},
}

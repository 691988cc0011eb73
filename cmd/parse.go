package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/diarview/rttm"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		strict bool
		format string
	)
	cmd := &cobra.Command{
		Use:   "parse <file.rttm|->",
		Short: "Parse RTTM records into JSON segments or normalised RTTM",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "json" && format != "rttm" {
				return fmt.Errorf("unknown format %q (json|rttm)", format)
			}
			in, err := readInput(args[0])
			if err != nil {
				return err
			}
			defer in.Close()

			var segs []rttm.Segment
			if strict {
				if segs, err = rttm.Read(in); err != nil {
					return err
				}
			} else {
				lines, err := rttm.Lines(in)
				if err != nil {
					return err
				}
				var bad []*rttm.LineError
				segs, bad = rttm.ParseLenient(lines)
				for _, e := range bad {
					a.log.WithField("line", e.Line).Warnf("skipping rttm record: %v", e.Err)
				}
				if len(bad) > 0 {
					a.log.Warnf("%d of %d records rejected", len(bad), len(bad)+len(segs))
				}
			}

			if format == "rttm" {
				return rttm.Write(cmd.OutOrStdout(), segs)
			}
			return writeJSON(cmd.OutOrStdout(), segs)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on the first malformed record")
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or rttm")
	return cmd
}

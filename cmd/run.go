package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/diarview/orchestrator"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		kind   string
		audio  string
		output string
		format string
	)
	cmd := &cobra.Command{
		Use:   "run <input>",
		Short: "Build a session timeline and write it to the outputs directory",
		Long: `Build a session timeline from an RTTM file, a segments JSON file or an
audio file (sent to the configured transcription and diarization services),
then write the bundle to <outputs>/<session>/timeline.json.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != "" {
				a.conf.Paths.Outputs = output
			}
			if format != "" {
				a.conf.Paths.Format = format
			}
			p := orchestrator.NewPipeline(a.conf, a.log)
			_, path, err := p.Run(cmd.Context(), orchestrator.Input{
				Path:  args[0],
				Kind:  orchestrator.Kind(kind),
				Audio: audio,
			})
			if err != nil {
				return err
			}
			if !a.quiet {
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "input kind: rttm, segments or audio (default: from extension)")
	cmd.Flags().StringVar(&audio, "audio", "", "WAV file to draw the waveform from")
	cmd.Flags().StringVarP(&output, "output", "o", "", "outputs directory (default: paths.outputs)")
	cmd.Flags().StringVar(&format, "format", "", "bundle format: json or yaml (default: paths.format)")
	return cmd
}

package cmd

import (
	"github.com/spf13/cobra"

	"github.com/maastricht-university/diarview/orchestrator"
)

func newLayoutCmd(a *app) *cobra.Command {
	var (
		kind  string
		audio string
	)
	cmd := &cobra.Command{
		Use:   "layout <segments.json|file.rttm>",
		Short: "Print the timeline layout for a session without saving it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := orchestrator.NewPipeline(a.conf, a.log)
			b, err := p.Load(cmd.Context(), orchestrator.Input{
				Path:  args[0],
				Kind:  orchestrator.Kind(kind),
				Audio: audio,
			})
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), b)
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "", "input kind: rttm, segments or audio (default: from extension)")
	cmd.Flags().StringVar(&audio, "audio", "", "WAV file to draw the waveform from")
	return cmd
}

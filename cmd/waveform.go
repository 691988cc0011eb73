package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/maastricht-university/diarview/waveform"
)

type waveformOut struct {
	Duration   float64           `json:"duration"`
	SampleRate int               `json:"sample_rate"`
	Channels   int               `json:"channels"`
	Viewport   waveform.Viewport `json:"viewport"`
	Peaks      []waveform.Peak   `json:"peaks"`
	// Times holds the start time of each peak column.
	Times  []float64 `json:"times"`
	Cursor *float64  `json:"cursor,omitempty"`
}

func newWaveformCmd(a *app) *cobra.Command {
	var (
		peaks  int
		zoom   float64
		anchor float64
		start  float64
		at     float64
	)
	cmd := &cobra.Command{
		Use:   "waveform <file.wav>",
		Short: "Downsample a WAV file to chart peaks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			audio, err := waveform.Decode(f)
			if err != nil {
				return err
			}
			if peaks <= 0 {
				peaks = a.conf.Waveform.Peaks
			}
			vp := waveform.NewViewport(audio.Seconds())
			if zoom > 0 && zoom != 1 {
				vp = vp.Zoom(zoom, anchor)
			}
			if cmd.Flags().Changed("start") {
				vp = vp.Pan(start - vp.Start)
			}
			a.log.WithField("viewport", vp).Debug("waveform window")

			out := waveformOut{
				Duration:   audio.Seconds(),
				SampleRate: audio.SampleRate,
				Channels:   audio.Channels,
				Viewport:   vp,
				Peaks:      vp.Peaks(audio, peaks),
			}
			out.Times = make([]float64, len(out.Peaks))
			for i := range out.Peaks {
				out.Times[i] = vp.PixelToTime(float64(i), len(out.Peaks))
			}
			if cmd.Flags().Changed("at") {
				x := vp.TimeToPixel(at, len(out.Peaks))
				out.Cursor = &x
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}
	cmd.Flags().IntVar(&peaks, "peaks", 0, "number of peaks (default: waveform.peaks from config)")
	cmd.Flags().Float64Var(&zoom, "zoom", 1, "zoom factor; 2 shows half the track")
	cmd.Flags().Float64Var(&anchor, "anchor", 0, "time in seconds to zoom around")
	cmd.Flags().Float64Var(&start, "start", 0, "move the window to start at this time in seconds")
	cmd.Flags().Float64Var(&at, "at", 0, "report the peak column of this time as cursor")
	return cmd
}

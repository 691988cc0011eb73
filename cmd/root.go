package cmd

import (
	"encoding/json"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/maastricht-university/diarview/config"
)

// app carries what every subcommand needs once the root has run.
type app struct {
	configPath string
	verbose    bool
	quiet      bool

	conf *cfg.Root
	log  *logrus.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{log: logrus.New()}

	root := &cobra.Command{
		Use:   "diarview",
		Short: "Lay out speaker-diarization timelines",
		Long: `diarview turns RTTM annotations, transcript segments or audio into a
render-ready speaker timeline: minimum-width segment positions, a piecewise
time-to-pixel scale, gridline markers, speaker colors and a waveform overview.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (default: config/$CONFIG_ENV/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "verbose logging")
	root.PersistentFlags().BoolVarP(&a.quiet, "quiet", "q", false, "suppress non-error output")

	root.AddCommand(
		newParseCmd(a),
		newLayoutCmd(a),
		newWaveformCmd(a),
		newRunCmd(a),
		newServeCmd(a),
		newConfigCmd(a),
	)
	return root
}

func Execute() error {
	return NewRootCmd().Execute()
}

func (a *app) setup(stderr io.Writer) error {
	conf, err := cfg.Load(a.configPath)
	if err != nil {
		return err
	}
	a.conf = conf

	a.log.SetOutput(stderr)
	if conf.Pipeline.LogFormat == "json" {
		a.log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		a.log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	level, err := logrus.ParseLevel(conf.Pipeline.LogLvl)
	if err != nil {
		level = logrus.InfoLevel
	}
	if a.verbose {
		level = logrus.DebugLevel
	}
	if a.quiet {
		level = logrus.ErrorLevel
	}
	a.log.SetLevel(level)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func readInput(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/maastricht-university/diarview/timeline"
)

type Service struct {
	URL string `yaml:"url" mapstructure:"url"`
}
type Services struct {
	Transcription Service `yaml:"transcription" mapstructure:"transcription"`
	Diarization   Service `yaml:"diarization" mapstructure:"diarization"`
	TimeoutSec    int     `yaml:"timeout_sec" mapstructure:"timeout_sec"`
}
type Pipeline struct {
	Name      string `yaml:"name" mapstructure:"name"`
	Version   string `yaml:"version" mapstructure:"version"`
	LogLvl    string `yaml:"log_level" mapstructure:"log_level"`
	LogFormat string `yaml:"log_format" mapstructure:"log_format"`
}

// Layout mirrors timeline.Options. Zero PixelsPerSecond or MinWidth fall back to
// the engine defaults; padding 0 is kept and a negative padding uses the default.
type Layout struct {
	PixelsPerSecond float64 `yaml:"pixels_per_second" mapstructure:"pixels_per_second"`
	MinWidth        float64 `yaml:"min_width" mapstructure:"min_width"`
	Padding         float64 `yaml:"padding" mapstructure:"padding"`
	MarkerInterval  int     `yaml:"marker_interval" mapstructure:"marker_interval"`
}

func (l Layout) TimelineOptions() timeline.Options {
	pad := l.Padding
	return timeline.Options{
		PixelsPerSecond: l.PixelsPerSecond,
		MinWidth:        l.MinWidth,
		Padding:         &pad,
	}
}

type Waveform struct {
	Peaks int `yaml:"peaks" mapstructure:"peaks"`
}
type Server struct {
	Addr string `yaml:"addr" mapstructure:"addr"`
}
type Paths struct {
	Data    string `yaml:"data" mapstructure:"data"`
	Outputs string `yaml:"outputs" mapstructure:"outputs"`
	Format  string `yaml:"format" mapstructure:"format"`
}
type Root struct {
	Pipeline Pipeline `yaml:"pipeline" mapstructure:"pipeline"`
	Services Services `yaml:"services" mapstructure:"services"`
	Layout   Layout   `yaml:"layout" mapstructure:"layout"`
	Waveform Waveform `yaml:"waveform" mapstructure:"waveform"`
	Server   Server   `yaml:"server" mapstructure:"server"`
	Paths    Paths    `yaml:"paths" mapstructure:"paths"`
}

// Default returns the configuration used when no file is found.
func Default() *Root {
	return &Root{
		Pipeline: Pipeline{Name: "diarview", Version: "0.1.0", LogLvl: "info", LogFormat: "text"},
		Services: Services{TimeoutSec: 60},
		Layout:   Layout{PixelsPerSecond: 10, MinWidth: 300, Padding: 10, MarkerInterval: 60},
		Waveform: Waveform{Peaks: 1000},
		Server:   Server{Addr: ":8080"},
		Paths:    Paths{Data: "data", Outputs: "outputs", Format: "json"},
	}
}

func setDefaults(v *viper.Viper, d *Root) {
	v.SetDefault("pipeline.name", d.Pipeline.Name)
	v.SetDefault("pipeline.version", d.Pipeline.Version)
	v.SetDefault("pipeline.log_level", d.Pipeline.LogLvl)
	v.SetDefault("pipeline.log_format", d.Pipeline.LogFormat)
	v.SetDefault("services.transcription.url", d.Services.Transcription.URL)
	v.SetDefault("services.diarization.url", d.Services.Diarization.URL)
	v.SetDefault("services.timeout_sec", d.Services.TimeoutSec)
	v.SetDefault("layout.pixels_per_second", d.Layout.PixelsPerSecond)
	v.SetDefault("layout.min_width", d.Layout.MinWidth)
	v.SetDefault("layout.padding", d.Layout.Padding)
	v.SetDefault("layout.marker_interval", d.Layout.MarkerInterval)
	v.SetDefault("waveform.peaks", d.Waveform.Peaks)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("paths.data", d.Paths.Data)
	v.SetDefault("paths.outputs", d.Paths.Outputs)
	v.SetDefault("paths.format", d.Paths.Format)
}

// Load reads the config file at path, or the first of the CONFIG_ENV guess
// paths when path is empty. DIARVIEW_* environment variables override file
// values, e.g. DIARVIEW_SERVICES_TRANSCRIPTION_URL.
func Load(path string) (*Root, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	setDefaults(v, Default())
	v.SetEnvPrefix("DIARVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = guess()
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Root
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

func guess() string {
	env := os.Getenv("CONFIG_ENV")
	if env == "" {
		env = "dev"
	}
	var paths []string = []string{
		filepath.Join("config", env, "config.yaml"),
		filepath.Join("src", "shared", "config.yaml"),
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Dump writes the effective configuration as YAML.
func (r *Root) Dump(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func DurSeconds(n int) time.Duration { return time.Duration(n) * time.Second }

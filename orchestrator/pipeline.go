package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/maastricht-university/diarview/clients"
	cfg "github.com/maastricht-university/diarview/config"
	"github.com/maastricht-university/diarview/palette"
	"github.com/maastricht-university/diarview/rttm"
	"github.com/maastricht-university/diarview/stats"
	"github.com/maastricht-university/diarview/timeline"
	"github.com/maastricht-university/diarview/waveform"
)

var ErrNoTranscriptionService = errors.New("no transcription service configured")

type Pipeline struct {
	cfg  *cfg.Root
	http *clients.HTTP
	log  logrus.FieldLogger
	now  func() time.Time
}

func NewPipeline(c *cfg.Root, log logrus.FieldLogger) *Pipeline {
	return &Pipeline{
		cfg:  c,
		http: clients.NewHTTP(cfg.DurSeconds(c.Services.TimeoutSec)),
		log:  log,
		now:  time.Now,
	}
}

// Run loads one session, lays it out and writes the bundle under the
// configured outputs directory. It returns the bundle and where it was written.
func (p *Pipeline) Run(ctx context.Context, in Input) (*Bundle, string, error) {
	b, err := p.Load(ctx, in)
	if err != nil {
		return nil, "", err
	}

	path, err := persist(p.cfg.Paths.Outputs, p.cfg.Paths.Format, b)
	if err != nil {
		return nil, "", fmt.Errorf("persist: %w", err)
	}
	p.log.WithFields(logrus.Fields{
		"session":  b.SessionID,
		"segments": len(b.Segments),
		"speakers": len(b.Stats.Speakers),
		"width":    b.Layout.TotalWidth,
	}).Infof("timeline written to %s", path)
	return b, path, nil
}

// Load builds the bundle for in without writing it.
func (p *Pipeline) Load(ctx context.Context, in Input) (*Bundle, error) {
	kind := in.Kind
	if kind == "" {
		kind = detectKind(in.Path)
	}
	log := p.log.WithFields(logrus.Fields{"input": in.Path, "kind": kind})

	b := &Bundle{Input: in.Path, Kind: kind, GeneratedAt: p.now()}
	var err error
	switch kind {
	case KindRTTM:
		b.Segments, b.Rejected, err = p.loadRTTM(in.Path)
		for _, r := range b.Rejected {
			log.WithField("line", r.Line).Warnf("skipping rttm record: %v", r.Err)
		}
	case KindSegments:
		b.Segments, err = loadSegments(in.Path)
	case KindAudio:
		err = p.loadAudio(ctx, in.Path, b, log)
	default:
		err = fmt.Errorf("unknown input kind %q", kind)
	}
	if err != nil {
		return nil, err
	}

	audioPath := in.Audio
	if audioPath == "" && kind == KindAudio && isWAV(in.Path) {
		audioPath = in.Path
	}
	if audioPath != "" {
		peaks, err := p.peaks(audioPath)
		if err != nil {
			return nil, err
		}
		b.Peaks = peaks
	}

	if timeline.SortByStart(b.Segments) {
		log.Warn("segments were not in chronological order; sorted by start")
	}
	if err := p.build(b); err != nil {
		return nil, err
	}
	return b, nil
}

// build fills in every derived field of b from b.Segments.
func (p *Pipeline) build(b *Bundle) error {
	layout, err := timeline.Compute(b.Segments, p.cfg.Layout.TimelineOptions())
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	b.Layout = layout
	b.Markers, err = layout.Markers(timeline.Duration(b.Segments), float64(p.cfg.Layout.MarkerInterval))
	if err != nil {
		return fmt.Errorf("markers: %w", err)
	}
	b.Heights, b.MaxHeight = timeline.Heights(b.Segments)
	b.Colors = palette.Assign(timeline.Speakers(b.Segments))
	b.Stats = stats.Compute(b.Segments)
	return nil
}

func (p *Pipeline) loadRTTM(path string) ([]timeline.Segment, []*rttm.LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	lines, err := rttm.Lines(f)
	if err != nil {
		return nil, nil, err
	}
	segs, rejected := rttm.ParseLenient(lines)
	return rttm.ToTimeline(segs), rejected, nil
}

func loadSegments(path string) ([]timeline.Segment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var segs []timeline.Segment
	if err := json.NewDecoder(f).Decode(&segs); err != nil {
		return nil, fmt.Errorf("segments decode: %w", err)
	}
	return segs, nil
}

func (p *Pipeline) loadAudio(ctx context.Context, path string, b *Bundle, log logrus.FieldLogger) error {
	svc := p.cfg.Services
	if svc.Transcription.URL == "" {
		return ErrNoTranscriptionService
	}
	asr, err := p.http.Transcribe(ctx, svc.Transcription.URL, path)
	if err != nil {
		return err
	}
	b.Segments, b.Language = asr.Segments, asr.Language

	if svc.Diarization.URL == "" {
		return nil
	}
	diar, err := p.http.Diarize(ctx, svc.Diarization.URL, path)
	if err != nil {
		// transcript without speakers is still worth laying out
		log.WithError(err).Warn("diarization failed; keeping transcript speakers")
		return nil
	}
	b.Rejected = diar.Rejected
	n := assignSpeakers(b.Segments, diar.Segments)
	log.WithFields(logrus.Fields{"turns": len(diar.Segments), "assigned": n}).Debug("speakers assigned")
	return nil
}

func (p *Pipeline) peaks(path string) ([]waveform.Peak, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := waveform.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("waveform %s: %w", path, err)
	}
	return waveform.Downsample(a.Samples, p.cfg.Waveform.Peaks), nil
}

// Package rttm reads and writes Rich Transcription Time-Marked annotations.
//
// A record is one whitespace-delimited line:
//
//	SPEAKER <file> <chan> <start> <dur> <NA> <NA> <speaker> <NA> <NA>
//
// Only the file, channel, start, duration and speaker fields are kept.
package rttm

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/maastricht-university/diarview/timeline"
)

const (
	fieldFile     = 1
	fieldChannel  = 2
	fieldStart    = 3
	fieldDuration = 4
	fieldSpeaker  = 7
	minFields     = 8
)

var (
	ErrTooFewFields        = errors.New("too few fields")
	ErrBadNumber           = errors.New("invalid number")
	ErrNegativeStart       = errors.New("negative start")
	ErrNonPositiveDuration = errors.New("non-positive duration")
)

type Segment struct {
	File     string  `json:"file,omitempty" yaml:"file,omitempty"`
	Channel  string  `json:"channel,omitempty" yaml:"channel,omitempty"`
	Start    float64 `json:"start" yaml:"start"`
	Duration float64 `json:"duration" yaml:"duration"`
	Speaker  string  `json:"speaker" yaml:"speaker"`
}

func (s Segment) End() float64 { return s.Start + s.Duration }

// LineError reports a record that could not be parsed. Line is 1-based.
type LineError struct {
	Line   int    `json:"line" yaml:"line"`
	Text   string `json:"text" yaml:"text"`
	Reason string `json:"reason" yaml:"reason"`
	Err    error  `json:"-" yaml:"-"`
}

func newLineError(i int, line string, err error) *LineError {
	return &LineError{Line: i + 1, Text: line, Reason: err.Error(), Err: err}
}

func (e *LineError) Error() string {
	return fmt.Sprintf("rttm line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// skip reports lines that carry no record.
func skip(line string) bool {
	l := strings.TrimSpace(line)
	return l == "" || strings.HasPrefix(l, ";;")
}

// ParseLine parses a single record.
func ParseLine(line string) (Segment, error) {
	f := strings.Fields(line)
	if len(f) < minFields {
		return Segment{}, fmt.Errorf("%w: got %d, want %d", ErrTooFewFields, len(f), minFields)
	}
	start, err := parseNum(f[fieldStart])
	if err != nil {
		return Segment{}, fmt.Errorf("start %q: %w", f[fieldStart], err)
	}
	dur, err := parseNum(f[fieldDuration])
	if err != nil {
		return Segment{}, fmt.Errorf("duration %q: %w", f[fieldDuration], err)
	}
	if start < 0 {
		return Segment{}, fmt.Errorf("%w: %v", ErrNegativeStart, start)
	}
	if dur <= 0 {
		return Segment{}, fmt.Errorf("%w: %v", ErrNonPositiveDuration, dur)
	}
	return Segment{
		File:     f[fieldFile],
		Channel:  f[fieldChannel],
		Start:    start,
		Duration: dur,
		Speaker:  f[fieldSpeaker],
	}, nil
}

func parseNum(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrBadNumber
	}
	return v, nil
}

// Parse returns one segment per record in input order. It stops at the
// first malformed record.
func Parse(lines []string) ([]Segment, error) {
	out := make([]Segment, 0, len(lines))
	for i, line := range lines {
		if skip(line) {
			continue
		}
		s, err := ParseLine(line)
		if err != nil {
			return nil, newLineError(i, line, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// ParseLenient keeps every valid record and reports the rest.
func ParseLenient(lines []string) ([]Segment, []*LineError) {
	out := make([]Segment, 0, len(lines))
	var errs []*LineError
	for i, line := range lines {
		if skip(line) {
			continue
		}
		s, err := ParseLine(line)
		if err != nil {
			errs = append(errs, newLineError(i, line, err))
			continue
		}
		out = append(out, s)
	}
	return out, errs
}

// Lines splits r into lines.
func Lines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read rttm: %w", err)
	}
	return lines, nil
}

// Read parses every record from r with the rules of Parse.
func Read(r io.Reader) ([]Segment, error) {
	lines, err := Lines(r)
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}

// Format renders s as a canonical SPEAKER record.
func Format(s Segment) string {
	file, ch, spk := or(s.File, "file"), or(s.Channel, "1"), or(s.Speaker, "<NA>")
	return fmt.Sprintf("SPEAKER %s %s %s %s <NA> <NA> %s <NA> <NA>",
		file, ch,
		strconv.FormatFloat(s.Start, 'f', -1, 64),
		strconv.FormatFloat(s.Duration, 'f', -1, 64),
		spk)
}

func or(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func Write(w io.Writer, segs []Segment) error {
	bw := bufio.NewWriter(w)
	for _, s := range segs {
		if _, err := bw.WriteString(Format(s) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ToTimeline converts records to layout input without text.
func ToTimeline(segs []Segment) []timeline.Segment {
	out := make([]timeline.Segment, len(segs))
	for i, s := range segs {
		out[i] = timeline.Segment{Speaker: s.Speaker, Start: s.Start, End: s.End()}
	}
	return out
}

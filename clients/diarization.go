package clients

import (
	"context"
	"fmt"

	"github.com/maastricht-university/diarview/rttm"
)

type DiarResp struct {
	Segments []rttm.Segment
	Rejected []*rttm.LineError
}

// Diarize uploads audio to the diarization service's /diarize route, which
// answers with RTTM text. Malformed records are returned in Rejected.
func (h *HTTP) Diarize(ctx context.Context, url, audioPath string) (*DiarResp, error) {
	resp, err := h.upload(ctx, "diarize", url+"/diarize", audioPath)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	lines, err := rttm.Lines(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("diarize decode: %w", err)
	}
	segs, rejected := rttm.ParseLenient(lines)
	return &DiarResp{Segments: segs, Rejected: rejected}, nil
}

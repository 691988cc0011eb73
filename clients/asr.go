package clients

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/maastricht-university/diarview/timeline"
)

type ASRResp struct {
	Segments []timeline.Segment `json:"segments"`
	Language string             `json:"language"`
}

// Transcribe uploads audio to the transcription service's /transcribe route.
func (h *HTTP) Transcribe(ctx context.Context, url, audioPath string) (*ASRResp, error) {
	resp, err := h.upload(ctx, "asr", url+"/transcribe", audioPath)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out ASRResp
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("asr decode: %w", err)
	}
	return &out, nil
}

package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/maastricht-university/diarview/palette"
	"github.com/maastricht-university/diarview/rttm"
	"github.com/maastricht-university/diarview/stats"
	"github.com/maastricht-university/diarview/timeline"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type RTTMResponse struct {
	Segments []rttm.Segment    `json:"segments"`
	Errors   []*rttm.LineError `json:"errors"`
}

type SegmentsRequest struct {
	Segments []timeline.Segment `json:"segments"`
	// At places the playhead, in seconds.
	At *float64 `json:"at,omitempty"`
}

type LayoutResponse struct {
	*timeline.Layout
	Segments  []timeline.Segment `json:"segments"`
	Markers   []timeline.Marker  `json:"markers"`
	Heights   []int              `json:"heights"`
	MaxHeight int                `json:"maxHeight"`
	Colors    map[string]string  `json:"colors"`
	Playhead  *float64           `json:"playhead,omitempty"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "version": s.cfg.Pipeline.Version})
}

// handleRTTM parses a text/plain RTTM body, reporting bad records instead
// of failing the request.
func (s *Server) handleRTTM(c *gin.Context) {
	lines, err := rttm.Lines(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	segs, bad := rttm.ParseLenient(lines)
	if bad == nil {
		bad = []*rttm.LineError{}
	}
	c.JSON(http.StatusOK, RTTMResponse{Segments: segs, Errors: bad})
}

func (s *Server) bindSegments(c *gin.Context) (*SegmentsRequest, bool) {
	var req SegmentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return nil, false
	}
	if req.Segments == nil {
		req.Segments = []timeline.Segment{}
	}
	if timeline.SortByStart(req.Segments) {
		s.log.WithField("segments", len(req.Segments)).Debug("sorted out-of-order segments")
	}
	return &req, true
}

func (s *Server) handleLayout(c *gin.Context) {
	req, ok := s.bindSegments(c)
	if !ok {
		return
	}
	s.metrics.Segments.Observe(float64(len(req.Segments)))

	layout, err := timeline.Compute(req.Segments, s.cfg.Layout.TimelineOptions())
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	markers, err := layout.Markers(timeline.Duration(req.Segments), float64(s.cfg.Layout.MarkerInterval))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	heights, tallest := timeline.Heights(req.Segments)
	resp := LayoutResponse{
		Layout:    layout,
		Segments:  req.Segments,
		Markers:   markers,
		Heights:   heights,
		MaxHeight: tallest,
		Colors:    palette.Assign(timeline.Speakers(req.Segments)),
	}
	if req.At != nil {
		p := layout.Playhead(*req.At)
		resp.Playhead = &p
	}
	c.JSON(http.StatusOK, resp)
}

func (s *Server) handleStats(c *gin.Context) {
	req, ok := s.bindSegments(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, stats.Compute(req.Segments))
}

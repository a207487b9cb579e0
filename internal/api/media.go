package api

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	cbstc "github.com/cbsinteractive/pkg/timecode"
	"github.com/cbsinteractive/pkg/video"

	apperrors "github.com/zsiec/timecode/internal/errors"
	"github.com/zsiec/timecode/internal/metrics"
	"github.com/zsiec/timecode/pkg/rtpclock"
	"github.com/zsiec/timecode/pkg/splice"
	"github.com/zsiec/timecode/pkg/timecode"
)

const (
	maxSpliceRanges = 4096
	maxRTPPackets   = 10000
)

// SpliceRequest carries ranges in seconds, as found in transcode job
// descriptions, and the framerate of the source.
type SpliceRequest struct {
	Ranges    [][2]float64    `json:"ranges"`
	Framerate video.Framerate `json:"framerate"`
	Drop      bool            `json:"drop"`
}

type SpanDTO struct {
	Start    string      `json:"start"`
	End      string      `json:"end"`
	Duration string      `json:"duration"`
	Frames   int64       `json:"frames"`
	Seconds  [2]float64  `json:"seconds"`
	Span     splice.Span `json:"span"`
}

type SpliceResponse struct {
	Rate   string    `json:"rate"`
	Spans  []SpanDTO `json:"spans"`
	Bounds SpanDTO   `json:"bounds"`
}

func (h *Handlers) HandleSplice(w http.ResponseWriter, r *http.Request) {
	const op = "splice"
	start := time.Now()

	var req SpliceRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	if len(req.Ranges) == 0 || len(req.Ranges) > maxSpliceRanges {
		h.fail(w, r, op, apperrors.NewValidationError(fmt.Sprintf("between 1 and %d ranges are required", maxSpliceRanges)).
			WithCode(apperrors.CodeInvalidRequest).
			WithDetails(map[string]interface{}{"field": "ranges"}))
		return
	}
	rate, err := splice.RateFromFramerate(req.Framerate, req.Drop)
	if err != nil {
		h.fail(w, r, op, apperrors.FromParseError(err, "framerate"))
		return
	}

	s := make(cbstc.Splice, len(req.Ranges))
	for i, rg := range req.Ranges {
		s[i] = cbstc.Range(rg)
	}

	resp := SpliceResponse{
		Rate:   rate.String(),
		Bounds: spanDTO(splice.Bounds(s, rate), rate),
	}
	for _, sp := range splice.FromSplice(s, rate) {
		resp.Spans = append(resp.Spans, spanDTO(sp, rate))
	}
	h.respond(w, r, op, start, resp)
}

func spanDTO(sp splice.Span, r timecode.Rate) SpanDTO {
	return SpanDTO{
		Start:    label(sp.Start, r),
		End:      label(sp.End, r),
		Duration: label(splice.Duration(sp, r), r),
		Frames:   splice.Frames(sp, r),
		Seconds:  [2]float64(splice.ToRange(sp, r)),
		Span:     sp,
	}
}

// RTPRequest times a batch of packets from one RTP stream. RTCP packets
// are applied first so that a sender report anchors every packet.
type RTPRequest struct {
	ClockRate uint32   `json:"clock_rate"`
	Rate      string   `json:"rate"`
	RTCP      []string `json:"rtcp"`
	Packets   []string `json:"packets"`
}

type PacketTimecode struct {
	SequenceNumber uint16            `json:"sequence_number"`
	SSRC           uint32            `json:"ssrc"`
	Timestamp      uint32            `json:"timestamp"`
	Extended       int64             `json:"extended"`
	Timecode       string            `json:"timecode"`
	Value          timecode.Timecode `json:"value"`
}

type RTPResponse struct {
	Anchored      bool             `json:"anchored"`
	SenderReports int              `json:"sender_reports"`
	Wraps         int64            `json:"wraps"`
	Packets       []PacketTimecode `json:"packets"`
}

func (h *Handlers) HandleRTP(w http.ResponseWriter, r *http.Request) {
	const op = "rtp"
	start := time.Now()

	var req RTPRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	if req.ClockRate == 0 {
		req.ClockRate = 90000
	}
	if len(req.Packets)+len(req.RTCP) > maxRTPPackets {
		h.fail(w, r, op, apperrors.NewValidationError(fmt.Sprintf("at most %d packets per request", maxRTPPackets)).
			WithCode(apperrors.CodeInvalidRequest))
		return
	}
	rate, err := h.parseRate("rate", req.Rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	clock := rtpclock.New(req.ClockRate, rate, rtpclock.WithWrapHook(metrics.IncrementRTPWraps))
	resp := RTPResponse{Packets: make([]PacketTimecode, 0, len(req.Packets))}

	for i, enc := range req.RTCP {
		field := fmt.Sprintf("rtcp[%d]", i)
		buf, err := decodePacket(enc)
		if err != nil {
			h.fail(w, r, op, apperrors.FromParseError(err, field))
			return
		}
		n, err := clock.HandleRTCP(buf)
		if err != nil {
			h.fail(w, r, op, apperrors.FromParseError(err, field))
			return
		}
		resp.SenderReports += n
		metrics.RecordSenderReport(n > 0)
	}

	for i, enc := range req.Packets {
		field := fmt.Sprintf("packets[%d]", i)
		buf, err := decodePacket(enc)
		if err != nil {
			h.fail(w, r, op, apperrors.FromParseError(err, field))
			return
		}
		pkt, err := rtpclock.ParsePacket(buf)
		if err != nil {
			h.fail(w, r, op, apperrors.FromParseError(err, field))
			return
		}

		tc := clock.TimeOf(pkt)
		resp.Packets = append(resp.Packets, PacketTimecode{
			SequenceNumber: pkt.SequenceNumber,
			SSRC:           pkt.SSRC,
			Timestamp:      pkt.Timestamp,
			Extended:       clock.Extend(pkt.Timestamp),
			Timecode:       tc.String(),
			Value:          tc,
		})
	}

	metrics.AddRTPPackets(len(resp.Packets))
	resp.Anchored = clock.Anchored()
	resp.Wraps = clock.Wraps()
	h.respond(w, r, op, start, resp)
}

func decodePacket(s string) ([]byte, error) {
	buf, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", rtpclock.ErrInvalidPacket, err)
	}
	return buf, nil
}

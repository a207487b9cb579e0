package api

import (
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/zsiec/timecode/internal/errors"
	"github.com/zsiec/timecode/internal/metrics"
	"github.com/zsiec/timecode/pkg/timecode"
)

// ArithRequest is the body of /add and /subtract.
type ArithRequest struct {
	A    string `json:"a"`
	B    string `json:"b"`
	Rate string `json:"rate"`
}

func (h *Handlers) HandleAdd(w http.ResponseWriter, r *http.Request) {
	h.arith(w, r, "add", timecode.Add)
}

func (h *Handlers) HandleSubtract(w http.ResponseWriter, r *http.Request) {
	h.arith(w, r, "subtract", timecode.Subtract)
}

func (h *Handlers) arith(w http.ResponseWriter, r *http.Request, op string, fn func(a, b timecode.Time, r timecode.Rate) timecode.Time) {
	start := time.Now()

	var req ArithRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	rate, err := h.parseRate("rate", req.Rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	a, _, err := parseTime("a", req.A, rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	b, _, err := parseTime("b", req.B, rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	h.respond(w, r, op, start, newTimeResponse(fn(a, b, rate), rate, 0))
}

// CompareRequest compares two times, or two date-times when both dates
// are given.
type CompareRequest struct {
	A         string `json:"a"`
	B         string `json:"b"`
	Rate      string `json:"rate"`
	DateA     string `json:"date_a"`
	DateB     string `json:"date_b"`
	TimezoneA string `json:"timezone_a"`
	TimezoneB string `json:"timezone_b"`
}

type CompareResponse struct {
	Result   int    `json:"result"`
	Relation string `json:"relation"`
}

func (h *Handlers) HandleCompare(w http.ResponseWriter, r *http.Request) {
	const op = "compare"
	start := time.Now()

	var req CompareRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	rate, err := h.parseRate("rate", req.Rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	a, carryA, err := parseTime("a", req.A, rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	b, carryB, err := parseTime("b", req.B, rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	dateA, hasA, err := parseDate("date_a", req.DateA, req.TimezoneA)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	dateB, hasB, err := parseDate("date_b", req.DateB, req.TimezoneB)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	if hasA != hasB {
		h.fail(w, r, op, apperrors.NewValidationError("date_a and date_b must be given together").
			WithCode(apperrors.CodeInvalidDate))
		return
	}

	var result int
	if hasA {
		dateA.AddDays(int64(carryA))
		dateB.AddDays(int64(carryB))
		result = timecode.CompareDateTime(rate,
			timecode.Timecode{Time: a, Date: dateA, Rate: rate},
			timecode.Timecode{Time: b, Date: dateB, Rate: rate})
	} else {
		result = timecode.CompareTime(rate, a, b)
	}

	relation := "equal"
	switch {
	case result < 0:
		relation = "before"
	case result > 0:
		relation = "after"
	}
	h.respond(w, r, op, start, CompareResponse{Result: result, Relation: relation})
}

// StepRequest moves a timecode by a number of frames. Without a date the
// stepping starts on 1970-01-01 and only the day count is reported.
type StepRequest struct {
	Timecode string `json:"timecode"`
	Rate     string `json:"rate"`
	Frames   int64  `json:"frames"`
	Date     string `json:"date"`
	Timezone string `json:"timezone"`
}

type StepResponse struct {
	TimeResponse
	Date      *timecode.Date `json:"date,omitempty"`
	Formatted string         `json:"formatted,omitempty"`
	DaysMoved int64          `json:"days_moved"`
}

func (h *Handlers) HandleStep(w http.ResponseWriter, r *http.Request) {
	const op = "step"
	start := time.Now()

	var req StepRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	if h.maxStep > 0 && (req.Frames > h.maxStep || req.Frames < -h.maxStep) {
		h.fail(w, r, op, apperrors.NewValidationError(fmt.Sprintf("frames must be within ±%d", h.maxStep)).
			WithCode(apperrors.CodeInvalidRequest).
			WithDetails(map[string]interface{}{"field": "frames", "max": h.maxStep}))
		return
	}
	rate, err := h.parseRate("rate", req.Rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	t, carried, err := parseTime("timecode", req.Timecode, rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	date, hasDate, err := parseDate("date", req.Date, req.Timezone)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	tc := timecode.Timecode{Rate: rate}
	tc.Reset()
	if hasDate {
		tc.Date = date
	}
	tc.Time = t
	tc.Date.AddDays(int64(carried))

	days := tc.Step(req.Frames)
	metrics.AddDayOverflows(op, int32(days))

	resp := StepResponse{
		TimeResponse: newTimeResponse(tc.Time, rate, 0),
		DaysMoved:    days,
	}
	if hasDate {
		resp.Date = &tc.Date
		resp.Formatted = tc.String()
	}
	h.respond(w, r, op, start, resp)
}

type FormatRequest struct {
	Timecode string `json:"timecode"`
	Rate     string `json:"rate"`
	Date     string `json:"date"`
	Timezone string `json:"timezone"`
	Layout   string `json:"layout"`
}

type FormatResponse struct {
	Text string `json:"text"`
}

// HandleFormat renders a timecode with a strftime-like layout. The layout
// defaults to %Z with a date and %T without.
func (h *Handlers) HandleFormat(w http.ResponseWriter, r *http.Request) {
	const op = "format"
	start := time.Now()

	var req FormatRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	rate, err := h.parseRate("rate", req.Rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	t, carried, err := parseTime("timecode", req.Timecode, rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	date, hasDate, err := parseDate("date", req.Date, req.Timezone)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	if hasDate {
		date.AddDays(int64(carried))
	}

	layout := req.Layout
	if layout == "" {
		layout = "%T"
		if hasDate {
			layout = "%Z"
		}
	}
	tc := timecode.Timecode{Time: t, Date: date, Rate: rate}
	h.respond(w, r, op, start, FormatResponse{Text: timecode.Format(layout, tc)})
}

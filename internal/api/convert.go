package api

import (
	"net/http"
	"time"

	"github.com/zsiec/timecode/internal/cache"
	"github.com/zsiec/timecode/internal/metrics"
	"github.com/zsiec/timecode/pkg/timecode"
)

// RateDTO describes one named rate.
type RateDTO struct {
	Name      string  `json:"name"`
	Num       int32   `json:"num"`
	Den       int32   `json:"den"`
	Drop      bool    `json:"drop"`
	Subframes int32   `json:"subframes"`
	FPS       float64 `json:"fps"`
}

type RatesResponse struct {
	Rates   []RateDTO `json:"rates"`
	Default string    `json:"default"`
}

// HandleRates lists the named rates accepted wherever a rate is expected.
func (h *Handlers) HandleRates(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	names := timecode.RateNames()
	resp := RatesResponse{Rates: make([]RateDTO, 0, len(names)), Default: h.defaultRate.String()}
	for _, name := range names {
		rate, _ := timecode.LookupRate(name)
		resp.Rates = append(resp.Rates, RateDTO{
			Name:      name,
			Num:       rate.Num,
			Den:       rate.Den,
			Drop:      rate.Drop,
			Subframes: rate.Subframes,
			FPS:       rate.Float64(),
		})
	}
	h.respond(w, r, "rates", start, resp)
}

type ToSampleRequest struct {
	Timecode   string  `json:"timecode"`
	Rate       string  `json:"rate"`
	SampleRate float64 `json:"sample_rate"`
}

type ToSampleResponse struct {
	Sample  int64   `json:"sample"`
	Seconds float64 `json:"seconds"`
}

func (h *Handlers) HandleToSample(w http.ResponseWriter, r *http.Request) {
	const op = "to_sample"
	start := time.Now()

	var req ToSampleRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	rate, err := h.parseRate("rate", req.Rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	sr, err := h.sampleRateOr(req.SampleRate, rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	t, _, err := parseTime("timecode", req.Timecode, rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	sample := timecode.ToSample(t, rate, sr)
	h.respond(w, r, op, start, ToSampleResponse{
		Sample:  sample,
		Seconds: timecode.SampleToSeconds(sample, sr),
	})
}

type FromSampleRequest struct {
	Sample     int64   `json:"sample"`
	Rate       string  `json:"rate"`
	SampleRate float64 `json:"sample_rate"`
}

func (h *Handlers) HandleFromSample(w http.ResponseWriter, r *http.Request) {
	const op = "from_sample"
	start := time.Now()

	var req FromSampleRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	rate, err := h.parseRate("rate", req.Rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	sr, err := h.sampleRateOr(req.SampleRate, rate)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	t := timecode.SampleToTime(req.Sample, rate, sr)
	days := t.Normalize(rate)
	metrics.AddDayOverflows(op, days)
	h.respond(w, r, op, start, newTimeResponse(t, rate, days))
}

type ConvertRequest struct {
	Timecode string `json:"timecode"`
	From     string `json:"from"`
	To       string `json:"to"`
}

type ConvertResponse struct {
	TimeResponse
	Cached bool `json:"cached"`
}

// HandleConvert re-expresses a timecode at another rate, going through
// the conversion cache.
func (h *Handlers) HandleConvert(w http.ResponseWriter, r *http.Request) {
	const op = "convert"
	start := time.Now()

	var req ConvertRequest
	if err := decode(w, r, &req); err != nil {
		h.fail(w, r, op, err)
		return
	}
	from, err := h.parseRate("from", req.From)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	to, err := h.parseRate("to", req.To)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}
	t, _, err := parseTime("timecode", req.Timecode, from)
	if err != nil {
		h.fail(w, r, op, err)
		return
	}

	converted, cached := h.convert(r, from, to, t)
	days := converted.Normalize(to)
	metrics.AddDayOverflows(op, days)
	h.respond(w, r, op, start, ConvertResponse{
		TimeResponse: newTimeResponse(converted, to, days),
		Cached:       cached,
	})
}

// convert looks t up in the cache and computes it on a miss. Cache
// failures are logged and otherwise ignored.
func (h *Handlers) convert(r *http.Request, from, to timecode.Rate, t timecode.Time) (timecode.Time, bool) {
	ctx := r.Context()
	key := cache.ConvertKey(from, to, t)

	got, ok, err := h.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.RecordCacheError()
		h.logger.WithError(err).Warn("Conversion cache lookup failed")
	case ok:
		metrics.RecordCacheHit()
		return got, true
	default:
		metrics.RecordCacheMiss()
	}

	converted := timecode.ConvertRate(t, from, to)
	if err := h.cache.Set(ctx, key, converted); err != nil {
		h.logger.WithError(err).Warn("Conversion cache store failed")
	}
	return converted, false
}

// Package api serves the timecode engine over JSON.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/zsiec/timecode/internal/cache"
	"github.com/zsiec/timecode/internal/config"
	apperrors "github.com/zsiec/timecode/internal/errors"
	"github.com/zsiec/timecode/internal/logger"
	"github.com/zsiec/timecode/internal/metrics"
	"github.com/zsiec/timecode/pkg/timecode"
)

const maxBodyBytes = 1 << 20

// Handlers implements the /api/v1 endpoints.
type Handlers struct {
	defaultRate timecode.Rate
	sampleRate  float64
	maxStep     int64
	cache       cache.Cache
	errors      *apperrors.ErrorHandler
	logger      logger.Logger
}

// NewHandlers builds the API from the timecode section of the config. A
// nil cache disables caching.
func NewHandlers(cfg config.TimecodeConfig, c cache.Cache, errHandler *apperrors.ErrorHandler, log logger.Logger) (*Handlers, error) {
	rate, err := timecode.ParseRate(cfg.DefaultRate)
	if err != nil {
		return nil, fmt.Errorf("default rate: %w", err)
	}
	if c == nil {
		c = cache.Noop{}
	}
	return &Handlers{
		defaultRate: rate,
		sampleRate:  cfg.DefaultSampleRate,
		maxStep:     cfg.MaxStepFrames,
		cache:       c,
		errors:      errHandler,
		logger:      log.WithField("component", "api"),
	}, nil
}

// RegisterRoutes mounts the endpoints under /api/v1.
func (h *Handlers) RegisterRoutes(router *mux.Router) {
	api := router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/rates", h.HandleRates).Methods("GET")

	api.HandleFunc("/to-sample", h.HandleToSample).Methods("POST")
	api.HandleFunc("/from-sample", h.HandleFromSample).Methods("POST")
	api.HandleFunc("/convert", h.HandleConvert).Methods("POST")

	api.HandleFunc("/add", h.HandleAdd).Methods("POST")
	api.HandleFunc("/subtract", h.HandleSubtract).Methods("POST")
	api.HandleFunc("/compare", h.HandleCompare).Methods("POST")
	api.HandleFunc("/step", h.HandleStep).Methods("POST")
	api.HandleFunc("/format", h.HandleFormat).Methods("POST")

	api.HandleFunc("/splice", h.HandleSplice).Methods("POST")
	api.HandleFunc("/rtp", h.HandleRTP).Methods("POST")

	h.logger.Info("Timecode routes registered")
}

// TimeResponse is a time-of-day result. Days is the number of midnights
// the result carried past, when the operation tracks it.
type TimeResponse struct {
	Timecode string        `json:"timecode"`
	Time     timecode.Time `json:"time"`
	Days     int32         `json:"days,omitempty"`
}

func newTimeResponse(t timecode.Time, r timecode.Rate, days int32) TimeResponse {
	return TimeResponse{Timecode: label(t, r), Time: t, Days: days}
}

// label writes t as "HH:MM:SS:FF.ss", with ';' before the frame for
// drop-frame rates.
func label(t timecode.Time, r timecode.Rate) string {
	layout := "%T.%s"
	if r.Subframes <= 0 {
		layout = "%T"
	}
	return timecode.Format(layout, timecode.Timecode{Time: t, Rate: r})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return apperrors.NewInvalidRequestError("Invalid request body", err)
	}
	return nil
}

func (h *Handlers) parseRate(field, s string) (timecode.Rate, error) {
	if s == "" {
		return h.defaultRate, nil
	}
	rate, err := timecode.ParseRate(s)
	if err != nil {
		return rate, apperrors.FromParseError(err, field)
	}
	return rate, nil
}

func parseTime(field, s string, r timecode.Rate) (timecode.Time, int32, error) {
	t, days, err := timecode.ParseTime(s, r)
	if err != nil {
		return t, 0, apperrors.FromParseError(err, field)
	}
	return t, days, nil
}

// parseDate reads an optional date and timezone. ok is false when date is
// empty, in which case timezone must be empty too.
func parseDate(field, date, tz string) (d timecode.Date, ok bool, err error) {
	if date == "" {
		if tz != "" {
			return d, false, apperrors.NewValidationError("timezone given without a date").
				WithCode(apperrors.CodeInvalidDate).
				WithDetails(map[string]interface{}{"field": field})
		}
		return d, false, nil
	}
	if d, err = timecode.ParseDate(date); err != nil {
		return d, false, apperrors.FromParseError(err, field)
	}
	if d.Timezone, err = timecode.ParseTimezone(tz); err != nil {
		return d, false, apperrors.FromParseError(err, field+"_timezone")
	}
	return d, true, nil
}

// sampleRateOr returns v, or the configured sample rate when v is zero.
// Rates below the frame rate of r are rejected.
func (h *Handlers) sampleRateOr(v float64, r timecode.Rate) (float64, error) {
	if v == 0 {
		v = h.sampleRate
	}
	if v < 0 {
		return 0, apperrors.NewValidationError("sample_rate must be positive").
			WithCode(apperrors.CodeInvalidRequest).
			WithDetails(map[string]interface{}{"field": "sample_rate"})
	}
	if v < r.Float64() {
		return 0, apperrors.NewValidationError(fmt.Sprintf("sample_rate must be at least the frame rate (%s fps)", r)).
			WithCode(apperrors.CodeInvalidRequest).
			WithDetails(map[string]interface{}{"field": "sample_rate", "min": r.Float64()})
	}
	return v, nil
}

// fail records the failure of op and answers with err.
func (h *Handlers) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	appErr, ok := apperrors.GetAppError(err)
	if !ok {
		appErr = apperrors.FromParseError(err, "")
	}
	metrics.IncrementOperationError(op, string(appErr.Type))
	h.errors.HandleError(w, r, appErr)
}

func (h *Handlers) respond(w http.ResponseWriter, r *http.Request, op string, start time.Time, v interface{}) {
	metrics.RecordOperation(op, time.Since(start).Seconds())
	writeJSON(r.Context(), w, http.StatusOK, v)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.FromContext(ctx).WithError(err).Error("Failed to encode JSON response")
	}
}

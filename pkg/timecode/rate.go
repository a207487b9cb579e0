package timecode

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidRate is returned when a frame rate cannot be used for conversion.
var ErrInvalidRate = errors.New("invalid frame rate")

// Rate is a frame rate expressed as an exact rational (Num/Den) together
// with the drop-frame switch and the number of subframes per frame.
type Rate struct {
	Num       int32 `json:"num"`
	Den       int32 `json:"den"`
	Drop      bool  `json:"drop"`
	Subframes int32 `json:"subframes"` // 0 disables subframe tracking
}

// Float64 returns the frame rate as a float (Num/Den).
func (r Rate) Float64() float64 {
	return float64(r.Num) / float64(r.Den)
}

// CeilFPS returns the frame rate rounded up to the next integer. This is
// the radix of the frame field: 30 for 29.97, 24 for 23.976.
func (r Rate) CeilFPS() int32 {
	return int32(math.Ceil(r.Float64()))
}

// FramesPerTimecodeFrame returns how many samples at sampleRate are
// spanned by one timecode frame.
func (r Rate) FramesPerTimecodeFrame(sampleRate float64) float64 {
	return sampleRate / r.Float64()
}

// Validate reports whether the rate can be handed to the conversion engine.
func (r Rate) Validate() error {
	if r.Num <= 0 {
		return fmt.Errorf("%w: numerator must be positive, got %d", ErrInvalidRate, r.Num)
	}
	if r.Den <= 0 {
		return fmt.Errorf("%w: denominator must be positive, got %d", ErrInvalidRate, r.Den)
	}
	if r.Subframes < 0 {
		return fmt.Errorf("%w: subframes cannot be negative, got %d", ErrInvalidRate, r.Subframes)
	}
	return nil
}

// String formats the rate the way it is written on a timecode display,
// e.g. "25", "23.976" or "29.97df".
func (r Rate) String() string {
	var s string
	switch {
	case r.Den == 0:
		s = "0"
	case r.Num%r.Den == 0:
		s = strconv.Itoa(int(r.Num / r.Den))
	default:
		s = strconv.FormatFloat(r.Float64(), 'f', 3, 64)
		s = strings.TrimRight(s, "0")
	}
	if r.Drop {
		s += "df"
	}
	return s
}

// Standard frame rates. All film and video rates carry 80 subframes per
// frame; FPSMS counts milliseconds. Treat these as constants: assign them
// to a local Rate before changing a field. LookupRate and ParseRate hand
// out copies, so the name table is unaffected by edits to their results.
var (
	FPS23976  = Rate{Num: 24000, Den: 1001, Drop: false, Subframes: 80}
	FPS24     = Rate{Num: 24, Den: 1, Drop: false, Subframes: 80}
	FPS24976  = Rate{Num: 25000, Den: 1001, Drop: false, Subframes: 80}
	FPS25     = Rate{Num: 25, Den: 1, Drop: false, Subframes: 80}
	FPS2997DF = Rate{Num: 30000, Den: 1001, Drop: true, Subframes: 80}
	FPS30     = Rate{Num: 30, Den: 1, Drop: false, Subframes: 80}
	FPSMS     = Rate{Num: 1000, Den: 1, Drop: false, Subframes: 1000}
)

// namedRates is built once at init and only ever read afterwards.
var namedRates = map[string]Rate{
	"23.976":  FPS23976,
	"24":      FPS24,
	"24.975":  FPS24976,
	"24.976":  FPS24976,
	"25":      FPS25,
	"29.97df": FPS2997DF,
	"30":      FPS30,
	"ms":      FPSMS,
}

// LookupRate returns the standard rate registered under name.
func LookupRate(name string) (Rate, bool) {
	r, ok := namedRates[strings.ToLower(strings.TrimSpace(name))]
	return r, ok
}

// RateNames returns the names accepted by LookupRate in sorted order.
func RateNames() []string {
	names := make([]string, 0, len(namedRates))
	for name := range namedRates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RateFromFloat approximates fps with a rational. NTSC-style rates
// (N*1000/1001) are recognised first so that 29.97 becomes 30000/1001
// rather than 2997/100; anything else gets the smallest denominator up to
// 1001 that represents it best.
func RateFromFloat(fps float64, drop bool, subframes int32) Rate {
	r := Rate{Drop: drop, Subframes: subframes}
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return r
	}

	if n := math.Round(fps); math.Abs(fps-n) < 1e-9 {
		r.Num, r.Den = int32(n), 1
		return r
	}

	if ntsc := fps * 1.001; math.Abs(ntsc-math.Round(ntsc)) < 0.0025 {
		r.Num, r.Den = int32(math.Round(ntsc))*1000, 1001
		return r
	}

	bestErr := math.Inf(1)
	for den := int32(1); den <= 1001; den++ {
		num := math.Round(fps * float64(den))
		if num < 1 {
			continue
		}
		err := math.Abs(num/float64(den) - fps)
		if err < bestErr {
			bestErr = err
			r.Num, r.Den = int32(num), den
		}
		if err < 1e-9 {
			break
		}
	}
	return r
}

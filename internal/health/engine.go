package health

import (
	"context"
	"fmt"

	"github.com/zsiec/timecode/pkg/timecode"
)

// EngineChecker runs a handful of conversions with known answers. A
// failure means the binary was built with broken arithmetic, which no
// restart will fix, so it reports the service down.
type EngineChecker struct{}

func NewEngineChecker() *EngineChecker {
	return &EngineChecker{}
}

func (e *EngineChecker) Name() string {
	return "engine"
}

type engineCheck struct {
	name  string
	check func() error
}

var engineChecks = []engineCheck{
	{"drop-frame ten minutes", func() error {
		ten := timecode.Time{Minute: 10}
		if n := timecode.ToFrameNumber(ten, timecode.FPS2997DF); n != 17982 {
			return fmt.Errorf("00:10:00;00 is frame %d, want 17982", n)
		}
		if got := timecode.FrameNumberToTime(17982, timecode.FPS2997DF); got != ten {
			return fmt.Errorf("frame 17982 is %s, want %s", got, ten)
		}
		return nil
	}},
	{"25 fps at 48 kHz", func() error {
		hour := timecode.Time{Hour: 1}
		if s := timecode.ToSample(hour, timecode.FPS25, 48000); s != 172800000 {
			return fmt.Errorf("01:00:00:00 is sample %d, want 172800000", s)
		}
		if got := timecode.SampleToTime(172800000, timecode.FPS25, 48000); got != hour {
			return fmt.Errorf("sample 172800000 is %s, want %s", got, hour)
		}
		return nil
	}},
	{"drop-frame step", func() error {
		t := timecode.Time{Second: 59, Frame: 29}
		t.Increment(timecode.FPS2997DF)
		if want := (timecode.Time{Minute: 1, Frame: 2}); t != want {
			return fmt.Errorf("00:00:59;29 + 1 is %s, want %s", t, want)
		}
		return nil
	}},
}

func (e *EngineChecker) Check(ctx context.Context) error {
	for _, p := range engineChecks {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := p.check(); err != nil {
			return fmt.Errorf("%s: %w", p.name, err)
		}
	}
	return nil
}

// Package rtpclock maps RTP media timestamps onto timecode.
//
// A Clock follows one RTP stream. Without a sender report it counts
// timecode from the first packet seen, starting at the unix epoch. Once an
// RTCP sender report arrives the NTP wallclock it carries anchors the
// stream, and packet timecodes become time-of-day in UTC.
package rtpclock

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pion/rtcp"
	"github.com/pion/rtp"

	"github.com/zsiec/timecode/pkg/timecode"
)

// ntpEpochOffset is the number of seconds between 1900-01-01 and
// 1970-01-01.
const ntpEpochOffset = 2208988800

// ErrInvalidPacket is returned for RTP or RTCP data that does not parse.
var ErrInvalidPacket = errors.New("invalid packet")

// Option configures a Clock.
type Option func(*Clock)

// WithWrapHook registers fn to be called every time the 32-bit RTP
// timestamp wraps.
func WithWrapHook(fn func()) Option {
	return func(c *Clock) {
		c.onWrap = fn
	}
}

// anchor ties an extended RTP timestamp to a wallclock instant.
type anchor struct {
	wall time.Time
	rtp  int64
}

// Clock converts the timestamps of a single RTP stream into timecode.
type Clock struct {
	mu sync.Mutex

	clockRate uint32
	rate      timecode.Rate

	unwrap  unwrapper
	first   int64
	ssrc    uint32
	hasSSRC bool
	wraps   int64
	anchor  *anchor

	onWrap func()
}

// New creates a Clock for a stream sampled at clockRate (90000 for video,
// the audio sample rate for audio) that produces timecode at rate.
func New(clockRate uint32, rate timecode.Rate, opts ...Option) *Clock {
	c := &Clock{
		clockRate: clockRate,
		rate:      rate,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extend unwraps ts into the stream's 64-bit timeline.
func (c *Clock) Extend(ts uint32) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.extendLocked(ts)
}

func (c *Clock) extendLocked(ts uint32) int64 {
	first := !c.unwrap.started
	ext, wrapped := c.unwrap.extend(ts)
	if first {
		c.first = ext
	}
	if wrapped {
		c.wraps++
		if c.onWrap != nil {
			c.onWrap()
		}
	}
	return ext
}

// TimeOf returns the timecode of pkt.
func (c *Clock) TimeOf(pkt *rtp.Packet) timecode.Timecode {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hasSSRC {
		c.ssrc = pkt.SSRC
		c.hasSSRC = true
	}
	ext := c.extendLocked(pkt.Timestamp)

	if c.anchor != nil {
		return timecode.FromTime(c.anchor.wall.Add(c.since(ext-c.anchor.rtp)), c.rate)
	}

	// whole days are split off first so that packets reordered before
	// the first one land on the previous day
	elapsed := ext - c.first
	dayLen := timecode.ToSample(timecode.Time{Hour: 24}, c.rate, float64(c.clockRate))
	days := elapsed / dayLen
	if elapsed%dayLen < 0 {
		days--
	}

	tc := timecode.Timecode{Rate: c.rate}
	tc.Reset()
	tc.Time = timecode.SampleToTime(elapsed-days*dayLen, c.rate, float64(c.clockRate))
	tc.Date.AddDays(days + int64(tc.Time.Normalize(c.rate)))
	return tc
}

// since converts a span of RTP ticks into a duration. Whole seconds are
// scaled separately so that long spans do not overflow.
func (c *Clock) since(ticks int64) time.Duration {
	rate := int64(c.clockRate)
	secs, rem := ticks/rate, ticks%rate
	return time.Duration(secs)*time.Second + time.Duration(rem*int64(time.Second)/rate)
}

// HandleSenderReport anchors the clock to the wallclock carried by sr. It
// reports whether the report was used; reports for a different SSRC than
// the one seen in packets are ignored.
func (c *Clock) HandleSenderReport(sr *rtcp.SenderReport) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hasSSRC && sr.SSRC != c.ssrc {
		return false
	}
	if !c.hasSSRC {
		c.ssrc = sr.SSRC
		c.hasSSRC = true
	}

	c.anchor = &anchor{
		wall: NTPToTime(sr.NTPTime),
		rtp:  c.extendLocked(sr.RTPTime),
	}
	return true
}

// HandleRTCP parses a compound RTCP packet and applies any sender report
// in it. It returns the number of reports applied.
func (c *Clock) HandleRTCP(buf []byte) (int, error) {
	pkts, err := rtcp.Unmarshal(buf)
	if err != nil {
		return 0, fmt.Errorf("%w: rtcp: %v", ErrInvalidPacket, err)
	}

	applied := 0
	for _, p := range pkts {
		if sr, ok := p.(*rtcp.SenderReport); ok && c.HandleSenderReport(sr) {
			applied++
		}
	}
	return applied, nil
}

// ParsePacket unmarshals a single RTP packet.
func ParsePacket(buf []byte) (*rtp.Packet, error) {
	pkt := &rtp.Packet{}
	if err := pkt.Unmarshal(buf); err != nil {
		return nil, fmt.Errorf("%w: rtp: %v", ErrInvalidPacket, err)
	}
	return pkt, nil
}

// Anchored reports whether a sender report has been applied.
func (c *Clock) Anchored() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.anchor != nil
}

// Wraps returns how many times the RTP timestamp has wrapped.
func (c *Clock) Wraps() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wraps
}

// NTPToTime converts a 64-bit NTP timestamp (seconds since 1900 in the
// upper half, binary fraction in the lower half) to a UTC time.
func NTPToTime(ntp uint64) time.Time {
	secs := int64(ntp>>32) - ntpEpochOffset
	nsec := int64((ntp & 0xffffffff) * uint64(time.Second) >> 32)
	return time.Unix(secs, nsec).UTC()
}

// TimeToNTP converts t to a 64-bit NTP timestamp.
func TimeToNTP(t time.Time) uint64 {
	secs := uint64(t.Unix() + ntpEpochOffset)
	frac := (uint64(t.Nanosecond()) << 32) / uint64(time.Second)
	return secs<<32 | frac
}

// Package timecode converts between sample counts, SMPTE timecode and
// calendar date/time pairs.
//
// A Time is a mixed-radix counter (hours, minutes, seconds, frames and
// subframes) whose frame radix depends on the Rate it is paired with.
// Rates are exact rationals, so 29.97 fps is carried as 30000/1001 and
// never as a rounded float. Drop-frame timecode (Rate.Drop) skips frame
// numbers 0 and 1 at the start of every minute that is not a multiple of
// ten.
//
// All operations are pure functions over value types. Nothing in this
// package holds global mutable state, so values may be shared freely
// between goroutines as long as each goroutine works on its own copy.
//
// Out-of-range field values are a normal input: Normalize folds them back
// into range, carrying into the next field and reporting whole days of
// overflow. Division by zero (Rate.Den == 0 or a zero sample rate) is the
// caller's responsibility; use Rate.Validate before handing untrusted rates
// to the engine.
package timecode

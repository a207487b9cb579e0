package main

import (
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zsiec/timecode/pkg/timecode"
)

func newRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "List the standard frame rates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tRATE\tFPS\tSUBFRAMES")
			for _, name := range timecode.RateNames() {
				r, _ := timecode.LookupRate(name)
				fmt.Fprintf(w, "%s\t%d/%d\t%.3f\t%d\n", name, r.Num, r.Den, r.Float64(), r.Subframes)
			}
			return w.Flush()
		},
	}
}

func newToSampleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "to-sample TIMECODE",
		Short: "Convert a timecode to an audio sample position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := opts.parseRate()
			if err != nil {
				return err
			}
			t, _, err := timecode.ParseTime(args[0], rate)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), timecode.ToSample(t, rate, opts.sampleRate))
			return err
		},
	}
}

func newFromSampleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "from-sample SAMPLE",
		Short: "Convert an audio sample position to a timecode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := opts.parseRate()
			if err != nil {
				return err
			}
			sample, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid sample %q: %w", args[0], err)
			}
			t := timecode.SampleToTime(sample, rate, opts.sampleRate)
			t.Normalize(rate)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), label(t, rate))
			return err
		},
	}
}

func newConvertCmd() *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "convert TIMECODE",
		Short: "Convert a timecode between frame rates",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := timecode.ParseRate(from)
			if err != nil {
				return err
			}
			dst, err := timecode.ParseRate(to)
			if err != nil {
				return err
			}
			t, _, err := timecode.ParseTime(args[0], src)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), label(timecode.ConvertRate(t, src, dst), dst))
			return err
		},
	}

	cmd.Flags().StringVar(&from, "from", "25", "Source frame rate")
	cmd.Flags().StringVar(&to, "to", "30", "Target frame rate")
	return cmd
}

func newArithCmd(use, short string, fn func(a, b timecode.Time, r timecode.Rate) timecode.Time, opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   use + " A B",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := opts.parseRate()
			if err != nil {
				return err
			}
			a, _, err := timecode.ParseTime(args[0], rate)
			if err != nil {
				return err
			}
			b, _, err := timecode.ParseTime(args[1], rate)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), label(fn(a, b, rate), rate))
			return err
		},
	}
}

func newCompareCmd(opts *rootOptions) *cobra.Command {
	var dateA, dateB string

	cmd := &cobra.Command{
		Use:   "compare A B",
		Short: "Print -1, 0 or 1 as A is before, equal to or after B",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if (dateA == "") != (dateB == "") {
				return errors.New("--date-a and --date-b must be given together")
			}
			rate, err := opts.parseRate()
			if err != nil {
				return err
			}
			a, _, err := timecode.ParseTime(args[0], rate)
			if err != nil {
				return err
			}
			b, _, err := timecode.ParseTime(args[1], rate)
			if err != nil {
				return err
			}

			result := timecode.CompareTime(rate, a, b)
			if dateA != "" {
				da, err := timecode.ParseDate(dateA)
				if err != nil {
					return err
				}
				db, err := timecode.ParseDate(dateB)
				if err != nil {
					return err
				}
				result = timecode.CompareDateTime(rate,
					timecode.Timecode{Time: a, Date: da, Rate: rate},
					timecode.Timecode{Time: b, Date: db, Rate: rate})
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), result)
			return err
		},
	}

	cmd.Flags().StringVar(&dateA, "date-a", "", "Date of A (YYYY-MM-DD)")
	cmd.Flags().StringVar(&dateB, "date-b", "", "Date of B (YYYY-MM-DD)")
	return cmd
}

type dateFlags struct {
	date     string
	timezone string
}

func (f *dateFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.date, "date", "d", "", "Date (YYYY-MM-DD), defaults to 1970-01-01")
	cmd.Flags().StringVar(&f.timezone, "timezone", "", "UTC offset such as +0100")
}

// parse reads s at rate r onto the flagged date.
func (f *dateFlags) parse(s string, r timecode.Rate) (timecode.Timecode, error) {
	tc := timecode.Timecode{Rate: r}
	tc.Reset()

	if f.date != "" {
		d, err := timecode.ParseDate(f.date)
		if err != nil {
			return tc, err
		}
		tc.Date = d
	}
	tz, err := timecode.ParseTimezone(f.timezone)
	if err != nil {
		return tc, err
	}
	tc.Date.Timezone = tz

	t, days, err := timecode.ParseTime(s, r)
	if err != nil {
		return tc, err
	}
	tc.Time = t
	tc.Date.AddDays(int64(days))
	return tc, nil
}

func newStepCmd(opts *rootOptions) *cobra.Command {
	var (
		frames int64
		dates  dateFlags
		layout string
	)

	cmd := &cobra.Command{
		Use:   "step TIMECODE",
		Short: "Move a timecode by a number of frames",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := opts.parseRate()
			if err != nil {
				return err
			}
			tc, err := dates.parse(args[0], rate)
			if err != nil {
				return err
			}
			tc.Step(frames)
			_, err = fmt.Fprintln(cmd.OutOrStdout(), timecode.Format(layout, tc))
			return err
		},
	}

	cmd.Flags().Int64VarP(&frames, "frames", "n", 1, "Frames to move, negative to go back")
	cmd.Flags().StringVar(&layout, "layout", "%Z", "Output layout")
	dates.register(cmd)
	return cmd
}

func newFormatCmd(opts *rootOptions) *cobra.Command {
	var (
		dates  dateFlags
		layout string
	)

	cmd := &cobra.Command{
		Use:   "format TIMECODE",
		Short: "Render a timecode with a layout",
		Long: `Render a timecode with a layout.

Directives: %H %M %S %F %s %Y %y %m %d %z %f %: %; %t %% and the presets
%T (HH:MM:SS:FF) and %Z (date, time, zone and rate).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rate, err := opts.parseRate()
			if err != nil {
				return err
			}
			tc, err := dates.parse(args[0], rate)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), timecode.Format(layout, tc))
			return err
		},
	}

	cmd.Flags().StringVarP(&layout, "layout", "l", "%Z", "Output layout")
	dates.register(cmd)
	return cmd
}

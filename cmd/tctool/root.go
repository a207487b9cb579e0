package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zsiec/timecode/pkg/timecode"
	"github.com/zsiec/timecode/pkg/version"
)

type rootOptions struct {
	rate       string
	sampleRate float64
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "tctool",
		Short: "Work with SMPTE timecodes",
		Long: `tctool converts timecodes to and from audio sample positions, between
frame rates, and does timecode arithmetic.

Timecodes are written HH:MM:SS:FF with an optional .subframe suffix;
';' may separate fields for drop-frame rates. Rates are standard names
(23.976, 24, 24.976, 25, 29.97df, 30, ms), rationals such as 30000/1001,
or decimal fps, optionally followed by "df" and "@subframes".

Examples:
  tctool to-sample 01:00:00:00 --rate 25
  tctool from-sample 964965602 --rate 29.97df --sample-rate 48000
  tctool convert 00:00:01:15 --from 30 --to 25
  tctool step 23:59:59:24 --frames 1 --date 2008-12-31`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&opts.rate, "rate", "r", "25", "Frame rate")
	root.PersistentFlags().Float64Var(&opts.sampleRate, "sample-rate", 48000, "Audio sample rate in Hz")

	root.AddCommand(
		newRatesCmd(),
		newToSampleCmd(opts),
		newFromSampleCmd(opts),
		newConvertCmd(),
		newArithCmd("add", "Add two timecodes", timecode.Add, opts),
		newArithCmd("sub", "Subtract the second timecode from the first", timecode.Subtract, opts),
		newCompareCmd(opts),
		newStepCmd(opts),
		newFormatCmd(opts),
		newWatchCmd(opts),
		newPingCmd(),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.GetInfo().String())
			return err
		},
	}
}

func (o *rootOptions) parseRate() (timecode.Rate, error) {
	return timecode.ParseRate(o.rate)
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

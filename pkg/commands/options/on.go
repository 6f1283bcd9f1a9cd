package options

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const (
	layoutISO = "2006-1-2"
	// layoutYearShort parses "6/7" once the current year is put in front.
	layoutYearShort = "2006/1/2"
)

// OnOptions picks the day a command is anchored on.
type OnOptions struct {
	OnString string
	Offset   int
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		`Specify a date, example: --on="2024-6-7" or --on="6/7".`)
}

func AddOffsetArgs(cmd *cobra.Command, o *OnOptions, unit string) {
	cmd.Flags().IntVar(&o.Offset, "offset", 0,
		"Move forward (or back, if negative) this many "+unit+".")
}

// GetOn returns the parsed --on date, or nil when the flag is unset.
func (o *OnOptions) GetOn() (*time.Time, error) {
	return parseOn(o.OnString, time.Now())
}

func parseOn(s string, now time.Time) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(layoutISO, s, time.Local)
	if err != nil {
		// Month and day only: parse within the current year, so a day that
		// does not exist this year (2/29) is an error instead of rolling over.
		t, err = time.ParseInLocation(layoutYearShort, fmt.Sprintf("%d/%s", now.Year(), s), time.Local)
		if err != nil {
			return nil, fmt.Errorf("can not parse --on %q: %w", s, err)
		}
	}
	return &t, nil
}

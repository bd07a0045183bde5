package config

import (
	"errors"
	"io"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/cogbench/cogbench/internal/timeutil"
	"github.com/cogbench/cogbench/trial"
)

var (
	errInvalidDateRange = errors.New(
		"the end date must not be earlier than the start date",
	)

	errInvalidPeriod = errors.New(
		"please provide a valid time period",
	)

	errInvalidStartDate = errors.New(
		"please provide a valid start date",
	)
)

// FilterConfig represents a configuration to filter results in the
// database by their start time, end time, and game.
type FilterConfig struct {
	Stdout    io.Writer
	Stdin     io.Reader
	StartTime time.Time
	EndTime   time.Time
	PathToDB  string
	Games     []trial.GameID
}

// getTimeRange returns the start and end time according to the
// specified time period.
func getTimeRange(period timeutil.Period) (start, end time.Time) {
	now := time.Now()

	start = timeutil.RoundToStart(now)

	end = timeutil.RoundToEnd(now)

	//nolint:exhaustive // other cases covered by default
	switch period {
	case timeutil.PeriodToday:
		return
	case timeutil.PeriodYesterday:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
		end = timeutil.RoundToEnd(start)

		return
	case timeutil.PeriodAllTime:
		start = time.Time{}
		return
	default:
		start = now.AddDate(0, 0, timeutil.Range[period])
		start = timeutil.RoundToStart(start)
	}

	return
}

// setFilterConfig updates the filter configuration from command-line
// arguments.
func setFilterConfig(ctx *cli.Context) (*FilterConfig, error) {
	filterCfg := &FilterConfig{
		Stdout:   os.Stdout,
		Stdin:    os.Stdin,
		PathToDB: dbFilePath,
	}

	if ctx.String("game") != "" {
		for _, g := range strings.Split(ctx.String("game"), ",") {
			g = strings.TrimSpace(g)
			if g == "" {
				continue
			}

			filterCfg.Games = append(filterCfg.Games, trial.GameID(g))
		}
	}

	period := timeutil.Period(strings.TrimSpace(ctx.String("period")))

	if period != "" && !slices.Contains(timeutil.PeriodCollection, period) {
		return nil, errInvalidPeriod
	}

	if period != "" {
		filterCfg.StartTime, filterCfg.EndTime = getTimeRange(period)

		return filterCfg, nil
	}

	start := ctx.String("start")
	if start != "" {
		dateTime, err := timeutil.FromStr(start)
		if err != nil {
			return nil, errInvalidStartDate
		}

		filterCfg.StartTime = dateTime
	}

	filterCfg.EndTime = time.Now()

	end := ctx.String("end")
	if end != "" {
		dateTime, err := timeutil.FromStr(end)
		if err != nil {
			return nil, err
		}

		filterCfg.EndTime = dateTime
	}

	// no period or start date defaults to all time
	if filterCfg.StartTime.IsZero() && start != "" {
		return nil, errInvalidStartDate
	}

	if int(filterCfg.EndTime.Sub(filterCfg.StartTime).Seconds()) < 0 {
		return nil, errInvalidDateRange
	}

	return filterCfg, nil
}

// Filter initializes and returns a configuration to filter results from
// command-line arguments.
func Filter(ctx *cli.Context) *FilterConfig {
	cfg, err := setFilterConfig(ctx)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	return cfg
}

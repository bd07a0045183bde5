// Package stats reports performance statistics over saved game results
package stats

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/cogbench/cogbench/config"
	"github.com/cogbench/cogbench/internal/timeutil"
	"github.com/cogbench/cogbench/internal/ui"
	"github.com/cogbench/cogbench/store"
	"github.com/cogbench/cogbench/trial"
)

var (
	opts *config.FilterConfig
	db   store.DB
)

const (
	barChartChar = "▇"
	noResultsMsg = "No results found for the specified time range"
)

type aggregatePeriod string

const (
	daily  aggregatePeriod = "Daily"
	weekly aggregatePeriod = "Weekly"
	hourly aggregatePeriod = "Hourly"
)

// gameTotals accumulates per-game aggregates over the reporting period.
type gameTotals struct {
	metrics   map[string][]float64
	game      trial.GameID
	sessions  int
	trials    int
	accSum    float64
	rtSum     time.Duration
	rtCount   int
	completed int
}

func (g *gameTotals) meanAccuracy() float64 {
	if g.sessions == 0 {
		return 0
	}

	return g.accSum / float64(g.sessions)
}

func (g *gameTotals) meanRT() time.Duration {
	if g.rtCount == 0 {
		return 0
	}

	return g.rtSum / time.Duration(g.rtCount)
}

// meanMetrics averages each recorded summary metric across sessions.
func (g *gameTotals) meanMetrics() map[string]float64 {
	m := make(map[string]float64, len(g.metrics))

	for k, vals := range g.metrics {
		var sum float64
		for _, v := range vals {
			sum += v
		}

		m[k] = sum / float64(len(vals))
	}

	return m
}

type aggregates struct {
	daily  map[int]int
	weekly map[int]int
	hourly map[int]int
}

func populateMap(max int) map[int]int {
	m := make(map[int]int)

	if max == -1 {
		start := timeutil.RoundToStart(opts.StartTime)

		for date := start; date.Before(opts.EndTime); date = date.AddDate(0, 0, 1) {
			m[timeutil.DayFormat(date)] = 0
		}

		return m
	}

	for i := 0; i <= max; i++ {
		m[i] = 0
	}

	return m
}

// computeAggregates counts completed sessions per day, weekday, and hour.
func computeAggregates(results []store.Result) aggregates {
	var totals aggregates

	totals.daily = populateMap(-1)
	//nolint:gomnd // 0-6 days
	totals.weekly = populateMap(6)
	//nolint:gomnd // 0-23 hours
	totals.hourly = populateMap(23)

	for i := range results {
		start := results[i].Session.StartTime

		totals.daily[timeutil.DayFormat(start)]++
		totals.weekly[int(start.Weekday())]++
		totals.hourly[start.Hour()]++
	}

	return totals
}

// computeTotals folds the results into per-game aggregates.
func computeTotals(results []store.Result) map[trial.GameID]*gameTotals {
	totals := make(map[trial.GameID]*gameTotals)

	for i := range results {
		res := results[i]

		g, ok := totals[res.Session.GameID]
		if !ok {
			g = &gameTotals{
				game:    res.Session.GameID,
				metrics: make(map[string][]float64),
			}
			totals[res.Session.GameID] = g
		}

		g.sessions++
		g.trials += res.Summary.TotalTrials
		g.accSum += res.Summary.Accuracy

		if res.Summary.MeanRT > 0 {
			g.rtSum += res.Summary.MeanRT
			g.rtCount++
		}

		if res.Session.Completed {
			g.completed++
		}

		for k, v := range res.Summary.Metrics {
			g.metrics[k] = append(g.metrics[k], v)
		}
	}

	return totals
}

func sortedTotals(totals map[trial.GameID]*gameTotals) []*gameTotals {
	sl := make([]*gameTotals, 0, len(totals))

	for _, g := range totals {
		sl = append(sl, g)
	}

	sort.SliceStable(sl, func(i, j int) bool {
		return sl[i].game < sl[j].game
	})

	return sl
}

func getBarChart(data map[int]int, period aggregatePeriod) string {
	if len(data) == 0 {
		return ""
	}

	header := ui.Blue(fmt.Sprintf("\n%s breakdown (sessions)", period))

	type keyValue struct {
		key   int
		value int
	}

	sl := make([]keyValue, 0, len(data))
	for k, v := range data {
		sl = append(sl, keyValue{k, v})
	}

	sort.SliceStable(sl, func(i, j int) bool {
		return sl[i].key < sl[j].key
	})

	var bars pterm.Bars

	for _, v := range sl {
		var label string

		switch period {
		case daily:
			//nolint:gomnd // yyyymmdd decomposition
			date := time.Date(
				v.key/10000,
				time.Month(v.key%10000/100),
				v.key%100,
				0, 0, 0, 0,
				time.Local,
			)
			label = fmt.Sprintf(
				"%s %02d, %d",
				date.Month().String(),
				date.Day(),
				date.Year(),
			)
		case weekly:
			label = time.Weekday(v.key).String()
		case hourly:
			label = fmt.Sprintf("%02d:00", v.key)
		}

		bars = append(bars, pterm.Bar{
			Value: v.value,
			Label: label,
		})
	}

	chart, err := pterm.DefaultBarChart.WithHorizontalBarCharacter(barChartChar).
		WithHorizontal().
		WithShowValue().
		WithBars(bars).
		Srender()
	if err != nil {
		pterm.Error.Println(err)
		return ""
	}

	return header + chart
}

// getGamesTable renders the per-game summary table.
func getGamesTable(totals []*gameTotals) string {
	var builder strings.Builder

	header := []string{
		"GAME", "SESSIONS", "COMPLETED", "TRIALS", "ACCURACY", "MEAN RT",
	}

	var rows [][]string

	for _, g := range totals {
		meanRT := ""
		if g.meanRT() > 0 {
			meanRT = fmt.Sprintf("%d ms", g.meanRT().Milliseconds())
		}

		rows = append(rows, []string{
			string(g.game),
			fmt.Sprintf("%d", g.sessions),
			fmt.Sprintf("%d", g.completed),
			fmt.Sprintf("%d", g.trials),
			fmt.Sprintf("%.1f%%", g.meanAccuracy()),
			meanRT,
		})
	}

	ui.PrintTable(&builder, header, rows)

	return builder.String()
}

// getMetrics renders the mean of each per-game summary metric.
func getMetrics(totals []*gameTotals) string {
	var builder strings.Builder

	for _, g := range totals {
		means := g.meanMetrics()
		if len(means) == 0 {
			continue
		}

		builder.WriteString(
			fmt.Sprintf("\n%s\n", ui.Blue(string(g.game))),
		)

		keys := make([]string, 0, len(means))
		for k := range means {
			keys = append(keys, k)
		}

		sort.Strings(keys)

		for _, k := range keys {
			builder.WriteString(fmt.Sprintf(
				"%s: %s\n",
				strings.ReplaceAll(k, "_", " "),
				ui.Green(fmt.Sprintf("%.1f", means[k])),
			))
		}
	}

	return builder.String()
}

// getSummary renders the overall totals for the reporting period.
func getSummary(totals []*gameTotals) string {
	header := fmt.Sprintf("%s\n", ui.Blue("Summary"))

	var sessions, completed, trials int

	for _, g := range totals {
		sessions += g.sessions
		completed += g.completed
		trials += g.trials
	}

	return header + fmt.Sprintln("Sessions:", ui.Green(sessions)) +
		fmt.Sprintln("Completed:", ui.Green(completed)) +
		fmt.Sprintln("Trials recorded:", ui.Green(trials)) +
		fmt.Sprintln("Games played:", ui.Green(len(totals)))
}

// Show displays the relevant statistics for the
// set time period after making the necessary calculations.
func Show() error {
	defer db.Close()

	results, err := db.GetResults(opts.StartTime, opts.EndTime, opts.Games)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		pterm.Info.Println(noResultsMsg)
		return nil
	}

	// For all-time, set start time to the date of the first result
	if opts.StartTime.IsZero() {
		opts.StartTime = timeutil.RoundToStart(results[0].Session.StartTime)
	}

	totals := sortedTotals(computeTotals(results))
	aggr := computeAggregates(results)

	reportingStart := opts.StartTime.Format("January 02, 2006")
	reportingEnd := opts.EndTime.Format("January 02, 2006")
	timePeriod := "Reporting period: " + reportingStart + " - " + reportingEnd

	header := pterm.DefaultHeader.WithBackgroundStyle(pterm.NewStyle(pterm.BgYellow)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprintfln("%s", timePeriod)

	hoursDiff := timeutil.Round(opts.EndTime.Sub(opts.StartTime).Hours())

	var history string
	if hoursDiff > timeutil.HoursInADay &&
		hoursDiff <= timeutil.MaxHoursInAMonth {
		history = getBarChart(aggr.daily, daily)
	}

	output := fmt.Sprint(
		header,
		getSummary(totals),
		getGamesTable(totals),
		getMetrics(totals),
		history,
		getBarChart(aggr.weekly, weekly),
		getBarChart(aggr.hourly, hourly),
	)

	fmt.Fprintln(
		opts.Stdout,
		strings.TrimSpace(output),
	)

	return nil
}

func Init(dbClient store.DB, cfg *config.FilterConfig) {
	db = dbClient
	opts = cfg
}

package stats

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pterm/pterm"

	"github.com/cogbench/cogbench/internal/ui"
	"github.com/cogbench/cogbench/store"
)

func resultLabel(res *store.Result) string {
	return fmt.Sprintf(
		"%s  %s (%.1f%%)",
		res.Session.StartTime.Format("Jan 02, 2006 03:04 PM"),
		res.Session.Profile,
		res.Summary.Accuracy,
	)
}

func printResultsTable(w io.Writer, results []store.Result) {
	header := []string{
		"#", "DATE", "GAME", "PROFILE", "TRIALS", "ACCURACY", "MEAN RT", "STATUS",
	}

	var rows [][]string

	for i := range results {
		res := results[i]

		statusText := ui.Green("completed")
		if !res.Session.Completed {
			statusText = ui.Red("abandoned")
		}

		meanRT := ""
		if res.Summary.MeanRT > 0 {
			meanRT = fmt.Sprintf("%d ms", res.Summary.MeanRT.Milliseconds())
		}

		row := []string{
			fmt.Sprintf("%d", i+1),
			res.Session.StartTime.Format("January 02, 2006 03:04 PM"),
			string(res.Session.GameID),
			res.Session.Profile,
			fmt.Sprintf("%d", res.Summary.TotalTrials),
			fmt.Sprintf("%.1f%%", res.Summary.Accuracy),
			meanRT,
			statusText,
		}

		rows = append(rows, row)
	}

	ui.PrintTable(w, header, rows)
}

// List prints out a table of all the results that
// were recorded within the specified time range.
func List() error {
	defer db.Close()

	results, err := db.GetResults(opts.StartTime, opts.EndTime, opts.Games)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		pterm.Info.Println(noResultsMsg)
		return nil
	}

	printResultsTable(opts.Stdout, results)

	return nil
}

// Export writes the filtered results to the output as a JSON array,
// including the full per-trial records.
func Export() error {
	defer db.Close()

	results, err := db.GetResults(opts.StartTime, opts.EndTime, opts.Games)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(opts.Stdout)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

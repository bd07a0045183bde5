package stats

import (
	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"

	"github.com/cogbench/cogbench/store"
)

// Delete prompts for a selection of the results in the specified time
// range, then removes the chosen ones permanently from the database.
func Delete() error {
	defer db.Close()

	results, err := db.GetResults(opts.StartTime, opts.EndTime, opts.Games)
	if err != nil {
		return err
	}

	if len(results) == 0 {
		pterm.Info.Println(noResultsMsg)
		return nil
	}

	options := make([]huh.Option[int], len(results))

	for i := range results {
		options[i] = huh.NewOption(resultLabel(&results[i]), i)
	}

	var selected []int

	var confirmed bool

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewMultiSelect[int]().
				Title("Select results to delete").
				Options(options...).
				Value(&selected),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("The selected results will be deleted permanently. Proceed?").
				Value(&confirmed),
		),
	)

	err = form.Run()
	if err != nil {
		return err
	}

	if !confirmed || len(selected) == 0 {
		pterm.Info.Println("Nothing was deleted")
		return nil
	}

	toDelete := make([]store.Result, 0, len(selected))

	for _, i := range selected {
		toDelete = append(toDelete, results[i])
	}

	err = db.DeleteResults(toDelete)
	if err != nil {
		return err
	}

	pterm.Success.Printfln("Deleted %d result(s)", len(toDelete))

	return nil
}

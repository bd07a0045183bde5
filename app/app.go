// Package app defines the command-line interface of the program
package app

import (
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"
)

// disableStyling disables all styling provided by pterm.
func disableStyling() {
	pterm.DisableColor()
	pterm.DisableStyling()
	pterm.Debug.Prefix.Text = ""
	pterm.Info.Prefix.Text = ""
	pterm.Success.Prefix.Text = ""
	pterm.Warning.Prefix.Text = ""
	pterm.Error.Prefix.Text = ""
	pterm.Fatal.Prefix.Text = ""
}

// Get retrieves the cogbench app instance.
func Get() *cli.App {
	benchApp := &cli.App{
		Name: "cogbench",
		Usage: `
		Cogbench is a battery of cognitive tasks for the terminal. It measures
		attention, processing speed, working memory, and executive function
		through short game sessions, and tracks your scores over time.`,
		UsageText:            "[COMMAND] [OPTIONS]",
		Version:              "v1.0.0",
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			{
				Name:      "play",
				Usage:     "Run a game session and record the result",
				UsageText: "cogbench play [OPTIONS] [GAME]",
				Action:    playAction,
				Flags: []cli.Flag{
					trialsFlag,
					practiceFlag,
					skipPracticeFlag,
					seedFlag,
					disableNotificationFlag,
					noSoundFlag,
					sessionCmdFlag,
				},
			},
			{
				Name:   "games",
				Usage:  "List the available games and their settings",
				Action: gamesAction,
			},
			{
				Name:   "list",
				Usage:  "List recorded results within a time period",
				Action: listAction,
				Flags:  filterFlags,
			},
			{
				Name: "stats",
				Usage: `
				Track your progress with detailed statistics reporting. Defaults to a
				reporting period of all time`,
				Action: statsAction,
				Flags: append(
					[]cli.Flag{serveFlag, statsPortFlag},
					filterFlags...,
				),
			},
			{
				Name:   "export",
				Usage:  "Write recorded results to stdout as JSON, including per-trial records",
				Action: exportAction,
				Flags:  filterFlags,
			},
			{
				Name:   "delete",
				Usage:  "Delete one or more recorded results",
				Action: deleteAction,
				Flags:  filterFlags,
			},
			{
				Name:   "edit-config",
				Usage:  "Edit the configuration file",
				Action: editConfigAction,
			},
		},
		Flags: []cli.Flag{
			noColorFlag,
			debugFlag,
		},
		Action: defaultAction,
		Before: beforeAction,
	}

	return benchApp
}

package app

import "github.com/urfave/cli/v2"

var (
	noColorFlag = &cli.BoolFlag{
		Name:  "no-color",
		Usage: "Disable coloured output",
	}

	debugFlag = &cli.BoolFlag{
		Name:  "debug",
		Usage: "Enable debug logging",
	}

	disableNotificationFlag = &cli.BoolFlag{
		Name:    "disable-notification",
		Aliases: []string{"d"},
		Usage:   "Disable the system notification that appears after a session is completed",
	}

	noSoundFlag = &cli.BoolFlag{
		Name:  "no-sound",
		Usage: "Disable audio presentation (dichotic listening falls back to silence)",
	}

	sessionCmdFlag = &cli.StringFlag{
		Name:    "session-cmd",
		Aliases: []string{"cmd"},
		Usage:   "Execute an arbitrary command after each completed session",
	}

	trialsFlag = &cli.UintFlag{
		Name:    "trials",
		Aliases: []string{"n"},
		Usage:   "Override the number of scored trials",
	}

	practiceFlag = &cli.UintFlag{
		Name:  "practice",
		Usage: "Override the number of practice trials",
	}

	skipPracticeFlag = &cli.BoolFlag{
		Name:  "skip-practice",
		Usage: "Skip the practice block entirely",
	}

	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Seed the stimulus generator for a reproducible sequence",
	}

	periodFlag = &cli.StringFlag{
		Name:    "period",
		Aliases: []string{"p"},
		Usage:   "Filter results by a named time period. Accepts: today, yesterday, 7days, 14days, 30days, 90days, 180days, 365days, all-time",
	}

	startFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "Filter results from the specified start date (natural language is accepted, e.g. '3 days ago')",
	}

	endFlag = &cli.StringFlag{
		Name:  "end",
		Usage: "Filter results up to the specified end date",
	}

	gameFlag = &cli.StringFlag{
		Name:    "game",
		Aliases: []string{"g"},
		Usage:   "Filter results by comma-delimited game identifiers",
	}

	serveFlag = &cli.BoolFlag{
		Name:  "serve",
		Usage: "Serve the statistics dashboard in a web browser",
	}

	statsPortFlag = &cli.UintFlag{
		Name:  "port",
		Usage: "Specify the port for the statistics server",
		Value: 1111,
	}
)

// filterFlags are shared by all commands that read saved results.
var filterFlags = []cli.Flag{
	periodFlag,
	startFlag,
	endFlag,
	gameFlag,
}

package app

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/cogbench/cogbench/config"
	"github.com/cogbench/cogbench/games"
	"github.com/cogbench/cogbench/internal/logutil"
	"github.com/cogbench/cogbench/internal/ui"
	"github.com/cogbench/cogbench/player"
	"github.com/cogbench/cogbench/stats"
	"github.com/cogbench/cogbench/store"
)

const (
	envNoColor      = "NO_COLOR"
	envBenchNoColor = "COGBENCH_NO_COLOR"
)

var errUnknownGame = errors.New("unknown game")

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// runSessionCmd executes the specified command.
func runSessionCmd(sessionCmd string) error {
	if sessionCmd == "" {
		return nil
	}

	cmdSlice, err := shellquote.Split(sessionCmd)
	if err != nil {
		return fmt.Errorf("unable to parse session_cmd option: %w", err)
	}

	if len(cmdSlice) == 0 {
		return nil
	}

	name := cmdSlice[0]
	args := cmdSlice[1:]

	//nolint:gosec // the command is user-configured
	cmd := exec.Command(name, args...)

	return cmd.Run()
}

// notify sends a desktop notification after a completed session.
func notify(title, msg string) {
	err := beeep.Notify(title, msg, "")
	if err != nil {
		slog.Error("unable to display notification", slog.Any("error", err))
	}
}

// playAction handles the play command which runs a single game session and
// records its result.
func playAction(ctx *cli.Context) error {
	cfg := config.GetPlay(ctx)

	ui.DarkTheme = cfg.DarkTheme

	id := ctx.Args().First()
	if id == "" {
		return fmt.Errorf(
			"specify a game to play. Available games: %s",
			strings.Join(games.IDs(), ", "),
		)
	}

	prof, ok := games.Default(id)
	if !ok {
		return fmt.Errorf(
			"%w: %s. Available games: %s",
			errUnknownGame,
			id,
			strings.Join(games.IDs(), ", "),
		)
	}

	prof = config.Profile(ctx, prof)

	game, err := games.New(prof)
	if err != nil {
		return err
	}

	p := player.New(game, cfg)

	slog.Info("starting session",
		slog.String("game", string(prof.Game)),
		slog.String("profile", prof.ID),
	)

	err = p.Run()
	if err != nil {
		return err
	}

	r := p.Runner()

	sum, done := r.Summary()
	if !done {
		pterm.Info.Println("Session abandoned, nothing was saved")
		return nil
	}

	db, err := store.NewClient(cfg.PathToDB)
	if err != nil {
		return fmt.Errorf("unable to save the result: %w", err)
	}

	defer db.Close()

	err = db.SaveResult(&store.Result{
		Session: *r.Session(),
		Summary: sum,
	})
	if err != nil {
		if cfg.Notify {
			notify("cogbench", "Your result could not be saved")
		}

		return fmt.Errorf("unable to save the result: %w", err)
	}

	slog.Info("session saved",
		slog.String("game", string(prof.Game)),
		slog.Float64("accuracy", sum.Accuracy),
	)

	pterm.Success.Printfln(
		"%s complete: %.1f%% accuracy over %d trials",
		prof.Name,
		sum.Accuracy,
		sum.TotalTrials,
	)

	if cfg.Notify {
		notify(
			"cogbench",
			fmt.Sprintf("%s complete. Result saved.", prof.Name),
		)
	}

	return runSessionCmd(cfg.SessionCmd)
}

// gamesAction prints a table of the available game profiles.
func gamesAction(_ *cli.Context) error {
	header := []string{"ID", "NAME", "PRACTICE", "TRIALS", "RESPONSE WINDOW"}

	var rows [][]string

	for _, id := range games.IDs() {
		prof, _ := games.Default(id)

		window := "untimed"
		if prof.ResponseTimeout > 0 {
			window = fmt.Sprintf(
				"%d ms",
				prof.ResponseTimeout.Milliseconds(),
			)
		}

		rows = append(rows, []string{
			prof.ID,
			prof.Name,
			fmt.Sprintf("%d", prof.PracticeTrials),
			fmt.Sprintf("%d", prof.TestTrials),
			window,
		})
	}

	ui.PrintTable(os.Stdout, header, rows)

	return nil
}

// initStats connects the stats package to the database for the filtered
// time range.
func initStats(ctx *cli.Context) (store.DB, error) {
	conf := config.Filter(ctx)

	db, err := store.NewClient(conf.PathToDB)
	if err != nil {
		return nil, err
	}

	stats.Init(db, conf)

	return db, nil
}

// listAction handles the list command and prints a table of all the
// results recorded within a time period.
func listAction(ctx *cli.Context) error {
	_, err := initStats(ctx)
	if err != nil {
		return err
	}

	return stats.List()
}

// statsAction computes the stats for the specified time period.
func statsAction(ctx *cli.Context) error {
	db, err := initStats(ctx)
	if err != nil {
		return err
	}

	if ctx.Bool("serve") {
		return stats.Server(db, ctx.Uint("port"))
	}

	return stats.Show()
}

// exportAction writes the filtered results to stdout as JSON.
func exportAction(ctx *cli.Context) error {
	_, err := initStats(ctx)
	if err != nil {
		return err
	}

	return stats.Export()
}

// deleteAction handles the delete command which deletes one or more
// recorded results.
func deleteAction(ctx *cli.Context) error {
	_, err := initStats(ctx)
	if err != nil {
		return err
	}

	return stats.Delete()
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(ctx *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cfg := config.GetPlay(ctx)

	cmd := exec.Command(editor, cfg.PathToConfig)

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// defaultAction prints the command overview.
func defaultAction(ctx *cli.Context) error {
	return cli.ShowAppHelp(ctx)
}

func beforeAction(ctx *cli.Context) error {
	config.InitializePaths()

	err := logutil.Init(config.GetLogDirPath(), ctx.Bool("debug"))
	if err != nil {
		return err
	}

	slog.Info("cogbench started",
		slog.String("args", strings.Join(os.Args[1:], " ")),
		slog.Time("at", time.Now()),
	)

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if COGBENCH_NO_COLOR is set
	if _, exists := os.LookupEnv(envBenchNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	return nil
}

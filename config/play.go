package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"

	"github.com/cogbench/cogbench/trial"
)

var playCfg = &PlayConfig{}

var once sync.Once

var errInitFailed = errors.New(
	"Unable to initialise cogbench settings from the configuration file",
)

const (
	configNotify     = "notify"
	configDarkTheme  = "dark_theme"
	configSound      = "sound"
	configTTSCmd     = "tts_cmd"
	configSessionCmd = "session_cmd"
	configProfiles   = "profiles"
)

// PlayConfig represents the program configuration derived from the config
// file and command-line arguments.
type PlayConfig struct {
	Stderr       io.Writer `json:"-"`
	Stdout       io.Writer `json:"-"`
	Stdin        io.Reader `json:"-"`
	PathToConfig string    `json:"path_to_config"`
	PathToDB     string    `json:"path_to_db"`
	SessionCmd   string    `json:"session_cmd"`
	TTSCmd       string    `json:"tts_cmd"`
	Seed         int64     `json:"seed"`
	Notify       bool      `json:"notify"`
	DarkTheme    bool      `json:"dark_theme"`
	Sound        bool      `json:"sound"`
}

// initPlayConfig loads the configuration file, creating it with defaults
// on first run.
func initPlayConfig() error {
	viper.SetConfigName(configFileName)
	viper.SetConfigType("yaml")

	relPath := filepath.Join(configDir, configFileName)

	pathToConfigFile, err := xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	playCfg.PathToConfig = pathToConfigFile

	viper.AddConfigPath(filepath.Dir(playCfg.PathToConfig))

	if err := viper.ReadInConfig(); err != nil {
		if errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return createPlayConfig()
		}

		return err
	}

	return nil
}

func setPlayConfig(ctx *cli.Context) {
	playCfg.Stderr = os.Stderr
	playCfg.Stdout = os.Stdout
	playCfg.Stdin = os.Stdin

	pathToDB, err := xdg.DataFile(filepath.Join(configDir, dbFileName))
	if err != nil {
		pterm.Error.Printfln("%s: %s", errInitFailed.Error(), err.Error())
		os.Exit(1)
	}

	playCfg.PathToDB = pathToDB

	// set from config file
	playCfg.Notify = viper.GetBool(configNotify)
	playCfg.Sound = viper.GetBool(configSound)
	playCfg.TTSCmd = viper.GetString(configTTSCmd)
	playCfg.SessionCmd = viper.GetString(configSessionCmd)

	if viper.IsSet(configDarkTheme) {
		playCfg.DarkTheme = viper.GetBool(configDarkTheme)
	} else {
		playCfg.DarkTheme = true
	}

	// set from command-line arguments
	if ctx.Bool("disable-notification") {
		playCfg.Notify = false
	}

	if ctx.Bool("no-sound") {
		playCfg.Sound = false
	}

	if ctx.String("session-cmd") != "" {
		playCfg.SessionCmd = ctx.String("session-cmd")
	}

	playCfg.Seed = ctx.Int64("seed")
}

// createPlayConfig writes the default settings to the user's config
// directory.
func createPlayConfig() error {
	playDefaults()

	err := viper.WriteConfigAs(playCfg.PathToConfig)
	if err != nil {
		fmt.Println(err)
		return err
	}

	pterm.Info.Printfln(
		"Default settings have been saved to: %s",
		playCfg.PathToConfig,
	)

	return nil
}

// playDefaults sets the program's default configuration values.
func playDefaults() {
	viper.SetDefault(configNotify, true)
	viper.SetDefault(configDarkTheme, true)
	viper.SetDefault(configSound, true)
	viper.SetDefault(configTTSCmd, "")
	viper.SetDefault(configSessionCmd, "")
}

// Profile applies file and command-line overrides to a built-in game
// profile. Per-profile settings live under the "profiles" key, e.g.
//
//	profiles:
//	  stroop:
//	    test_trials: 48
//	    response_timeout_ms: 2000
func Profile(ctx *cli.Context, p trial.Profile) trial.Profile {
	sub := viper.Sub(configProfiles + "." + p.ID)
	if sub != nil {
		if sub.IsSet("test_trials") {
			p.TestTrials = sub.GetInt("test_trials")
		}

		if sub.IsSet("practice_trials") {
			p.PracticeTrials = sub.GetInt("practice_trials")
		}

		if sub.IsSet("response_timeout_ms") {
			p.ResponseTimeout = time.Duration(
				sub.GetInt("response_timeout_ms"),
			) * time.Millisecond
		}

		if sub.IsSet("feedback_delay_ms") {
			p.FeedbackDelay = time.Duration(
				sub.GetInt("feedback_delay_ms"),
			) * time.Millisecond
		}

		if sub.IsSet("show_feedback") {
			p.ShowFeedback = sub.GetBool("show_feedback")
		}
	}

	if ctx.Uint("trials") > 0 {
		p.TestTrials = int(ctx.Uint("trials"))
	}

	if ctx.Uint("practice") > 0 {
		p.PracticeTrials = int(ctx.Uint("practice"))
	}

	if ctx.Bool("skip-practice") {
		p.PracticeTrials = 0
	}

	return p
}

// GetPlay initializes and returns the play configuration.
// This initialization is done just once no matter how many times
// it is called.
func GetPlay(ctx *cli.Context) *PlayConfig {
	once.Do(func() {
		err := initPlayConfig()
		if err != nil {
			pterm.Error.Printfln("%s: %s", errInitFailed.Error(), err.Error())
			os.Exit(1)
		}

		setPlayConfig(ctx)
	})

	return playCfg
}

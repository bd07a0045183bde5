// Package config is responsible for setting the program config from
// the config file and command-line arguments
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pterm/pterm"
)

var (
	configDir      = "cogbench"
	configFileName = "config.yml"
	dbFileName     = "cogbench.db"
	dbFilePath     string
	configFilePath string
	logDirPath     string
)

func GetDir() string {
	return configDir
}

func GetDBFilePath() string {
	return dbFilePath
}

func GetConfigFilePath() string {
	return configFilePath
}

func GetLogDirPath() string {
	return logDirPath
}

func InitializePaths() {
	benchEnv := strings.TrimSpace(os.Getenv("COGBENCH_ENV"))
	if benchEnv != "" {
		configFileName = fmt.Sprintf("config_%s.yml", benchEnv)
		dbFileName = fmt.Sprintf("cogbench_%s.db", benchEnv)
	}

	var err error

	relPath := filepath.Join(configDir, configFileName)

	configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dataDir, err := xdg.DataFile(configDir)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	dbFilePath = filepath.Join(dataDir, dbFileName)

	logDirPath = filepath.Join(dataDir, "logs")
}

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// settings layers flags over T2048_* environment variables over
// ~/.t2048/settings.yaml over the flag defaults. Keys are the flag names.
var settings *viper.Viper

func initSettings(cmd *cobra.Command) error {
	v := viper.New()

	v.SetConfigName("settings")
	v.SetConfigType("yaml")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".t2048"))
	}

	v.SetEnvPrefix("T2048")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading settings file: %w", err)
		}
	}

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("cannot bind flags: %w", err)
	}

	settings = v
	flagFPS = v.GetInt("fps")
	flagSeed = v.GetInt64("seed")
	flagDBPath = v.GetString("db")
	flagLogLevel = v.GetString("log-level")
	flagDebug = v.GetBool("debug")

	if path := v.ConfigFileUsed(); path != "" {
		logger.Debug("settings loaded", "file", path)
	}
	return nil
}

// watchSettings reloads the settings file on change and calls onChange from
// the watcher goroutine. It does nothing when no settings file was found.
func watchSettings(onChange func(v *viper.Viper)) {
	if settings == nil || settings.ConfigFileUsed() == "" {
		return
	}

	settings.OnConfigChange(func(e fsnotify.Event) {
		logger.Info("settings changed", "file", e.Name, "op", e.Op.String())
		if onChange != nil {
			onChange(settings)
		}
	})
	settings.WatchConfig()
}

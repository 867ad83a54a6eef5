// Package config owns the command line surface and resolved settings.
// Flags, environment variables (TUBEDL_ prefix) and defaults are merged
// through viper; the rest of the program only ever sees Settings.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/maneth909/tubedl/internal/history"
	"github.com/maneth909/tubedl/internal/platform"
)

// Settings keys
const (
	KeyListenAddr  = "listen_addr"
	KeyDownloadDir = "download_dir"
	KeyHistoryFile = "history_file"
	KeyLogLevel    = "log_level"
	KeyFFmpegPath  = "ffmpeg_path"
	KeyHTTPTimeout = "http_timeout"
)

// Default values
const (
	DefaultListenAddr  = ":8080"
	DefaultLogLevel    = "info"
	DefaultFFmpegPath  = "ffmpeg"
	DefaultHTTPTimeout = 2 * time.Minute

	envPrefix = "TUBEDL"
)

// Settings is the resolved application configuration.
type Settings struct {
	ListenAddr  string
	DownloadDir string
	HistoryFile string
	LogLevel    string
	FFmpegPath  string
	HTTPTimeout time.Duration
}

var rootCmd = &cobra.Command{
	Use:   "tubedl",
	Short: "tubedl downloads YouTube videos, audio and playlists over a local HTTP API",
}

func init() {
	flags := rootCmd.PersistentFlags()

	flags.StringP(KeyListenAddr, "l", DefaultListenAddr, "HTTP listen address")
	flags.StringP(KeyDownloadDir, "d", "", "Directory downloads are written to (default: the user Downloads folder)")
	flags.String(KeyHistoryFile, "", "Path of the download history file (default: <download-dir>/"+history.DefaultFileName+")")
	flags.String(KeyLogLevel, DefaultLogLevel, "Log level (trace, debug, info, warn, error)")
	flags.String(KeyFFmpegPath, DefaultFFmpegPath, "Path to the ffmpeg binary")
	flags.Duration(KeyHTTPTimeout, DefaultHTTPTimeout, "HTTP client timeout for media requests")

	for _, key := range []string{KeyListenAddr, KeyDownloadDir, KeyHistoryFile, KeyLogLevel, KeyFFmpegPath, KeyHTTPTimeout} {
		if err := viper.BindPFlag(key, flags.Lookup(key)); err != nil {
			panic(err)
		}
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// Execute parses flags and environment, resolves Settings and hands them to
// run. It is the program entry point after main.
func Execute(run func(Settings) error) error {
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		settings, err := Resolve()
		if err != nil {
			return err
		}
		return run(settings)
	}
	return rootCmd.Execute()
}

// Resolve materializes Settings from the current viper state, filling in
// the platform defaults for paths left empty.
func Resolve() (Settings, error) {
	settings := Settings{
		ListenAddr:  viper.GetString(KeyListenAddr),
		DownloadDir: viper.GetString(KeyDownloadDir),
		HistoryFile: viper.GetString(KeyHistoryFile),
		LogLevel:    viper.GetString(KeyLogLevel),
		FFmpegPath:  viper.GetString(KeyFFmpegPath),
		HTTPTimeout: viper.GetDuration(KeyHTTPTimeout),
	}

	if settings.DownloadDir == "" {
		dir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			return Settings{}, fmt.Errorf("no download dir configured and no home Downloads folder: %w", err)
		}
		settings.DownloadDir = dir
	}
	if settings.HistoryFile == "" {
		settings.HistoryFile = filepath.Join(settings.DownloadDir, history.DefaultFileName)
	}
	if settings.HTTPTimeout <= 0 {
		settings.HTTPTimeout = DefaultHTTPTimeout
	}
	return settings, nil
}

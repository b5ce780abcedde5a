package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/five82/popcorn/internal/app"
)

const version = "0.1.0"

func main() {
	os.Exit(run())
}

func run() int {
	// Optional .env next to the binary's working directory.
	_ = godotenv.Load()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newCommand(app.Run).Run(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "popcorn: %v\n", err)
		return 1
	}
	return 0
}

// newCommand builds the command line, handing the parsed options to runApp.
func newCommand(runApp func(context.Context, app.Options) error) *cli.Command {
	return &cli.Command{
		Name:    "popcorn",
		Usage:   "search movies, rate them, and keep a watch-list in your terminal",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "config",
				Usage:     "config file (default ~/.config/popcorn/config.toml)",
				TakesFile: true,
				Sources:   cli.EnvVars("POPCORN_CONFIG"),
			},
			&cli.StringFlag{
				Name:      "prefs",
				Usage:     "UI preferences file (default ~/.config/popcorn/prefs.toml)",
				TakesFile: true,
				Sources:   cli.EnvVars("POPCORN_PREFS"),
			},
			&cli.StringFlag{
				Name:    "api-key",
				Usage:   "OMDb API key",
				Sources: cli.EnvVars("OMDB_API_KEY"),
			},
			&cli.StringFlag{
				Name:      "watchlist",
				Usage:     "watch-list file (default ~/.local/share/popcorn/watched.json)",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:      "log-file",
				Usage:     "write logs to this file instead of discarding them",
				TakesFile: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return runApp(ctx, app.Options{
				ConfigPath:    cmd.String("config"),
				PrefsPath:     cmd.String("prefs"),
				APIKey:        cmd.String("api-key"),
				WatchlistPath: cmd.String("watchlist"),
				LogFile:       cmd.String("log-file"),
			})
		},
	}
}

// submodule cmd contains command definitions
package main

import (
	"strings"

	"github.com/desertthunder/toptracks/internal/formatter"
	"github.com/urfave/cli/v3"
)

// serveCommand runs the browser viewer on the loopback redirect address
func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Serve the top tracks page on the configured host and port",
		Action: r.Serve,
	}
}

// tuiCommand returns the top-level TUI command for browsing top tracks.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal viewer",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Usage: "Redirect URL (with #access_token=...) to read the session token from on start",
			},
		},
		Action: r.TUI,
	}
}

// tracksCommand fetches and prints top tracks for a token
func tracksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tracks",
		Usage: "Fetch and print your top tracks",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "url",
				Usage: "Redirect URL carrying the token in its fragment",
			},
			&cli.StringFlag{
				Name:  "token",
				Usage: "Access token",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format (" + strings.Join(formatter.Formats, ", ") + ")",
				Value:   formatter.FormatText,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the rendered cards as JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print JSON output",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write output to a file instead of stdout",
			},
		},
		Action: r.Tracks,
	}
}

// authCommand handles the implicit-grant authorization URL
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Spotify authorization helpers",
		Commands: []*cli.Command{
			{
				Name:  "url",
				Usage: "Print the Spotify authorization URL",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the URL in the system browser",
					},
				},
				Action: r.AuthURL,
			},
		},
	}
}

// configCommand handles configuration files
func configCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "init",
				Usage:  "Write the example config to --config or the XDG config path",
				Action: r.ConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the resolved configuration as TOML",
				Action: r.ConfigShow,
			},
		},
	}
}

package main

import (
	"database/sql"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/brooksai/slashhub/internal/config"
	"github.com/brooksai/slashhub/internal/errors"
	"github.com/brooksai/slashhub/internal/ops"
	"github.com/brooksai/slashhub/internal/route"
	"github.com/brooksai/slashhub/internal/web"
)

// maxStdinBytes caps piped chat text.
const maxStdinBytes = 64 << 10

// ownerFlag is shared by every command that scopes to an owner.
func ownerFlag(required bool) *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "owner",
		Aliases:  []string{"o"},
		EnvVars:  []string{"SLASHHUB_OWNER"},
		Required: required,
		Usage:    "Owner ID for custom routes and usage",
	}
}

// newCLIApp creates the CLI application with all commands.
func newCLIApp(db *sql.DB, cfg *config.Config) *cli.App {
	app := &cli.App{
		Name:    "slashhub",
		Usage:   "Slash-route resolver for chat hubs",
		Version: Version,
		Commands: []*cli.Command{
			parseCmd(),
			resolveCmd(db, cfg),
			suggestCmd(db, cfg),
			sendCmd(db, cfg),
			routeCmd(db, cfg),
			atoCmd(db, cfg),
			activeCmd(db, cfg),
			topCmd(db, cfg),
			serveCmd(db, cfg),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// parseCmd creates the parse command.
func parseCmd() *cli.Command {
	return &cli.Command{
		Name:      "parse",
		Usage:     "Parse a line of chat input into a slash command",
		ArgsUsage: "<text>",
		Action: func(c *cli.Context) error {
			text, err := textArg(c)
			if err != nil {
				return outputError(err)
			}
			return outputJSON(route.ParseSlashCommand(text))
		},
	}
}

// resolveCmd creates the resolve command.
func resolveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "Resolve a route, with suggestions when it is unknown",
		ArgsUsage: "<route>",
		Flags: []cli.Flag{
			ownerFlag(false),
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum suggestions on a miss"},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() < 1 {
				return outputError(errors.NewInvalidRequest("route argument is required"))
			}
			output, err := ops.Lookup(c.Context, db, cfg, ops.LookupInput{
				Route:   c.Args().First(),
				OwnerID: c.String("owner"),
				Limit:   c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// suggestCmd creates the suggest command.
func suggestCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "suggest",
		Usage:     "List routes matching a prefix",
		ArgsUsage: "[prefix]",
		Flags: []cli.Flag{
			ownerFlag(false),
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum results (default 20, max 100)"},
			&cli.BoolFlag{Name: "by-usage", Usage: "Order by the owner's most used routes"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.Suggest(c.Context, db, cfg, ops.SuggestInput{
				Prefix:  c.Args().First(),
				OwnerID: c.String("owner"),
				Limit:   c.Int("limit"),
				ByUsage: c.Bool("by-usage"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// sendCmd creates the send command.
func sendCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "Send one chat turn (text from arguments or stdin)",
		ArgsUsage: "[text]",
		Flags: []cli.Flag{
			ownerFlag(false),
			&cli.StringFlag{Name: "chat", Aliases: []string{"c"}, Usage: "Chat ID to continue (default: new chat)"},
		},
		Action: func(c *cli.Context) error {
			text, err := textArg(c)
			if err != nil {
				return outputError(err)
			}
			output, err := ops.Send(c.Context, db, cfg, ops.SendInput{
				ChatID:  c.String("chat"),
				OwnerID: c.String("owner"),
				Text:    text,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// routeCmd creates the route command group for the official registry.
func routeCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "route",
		Usage: "Manage official routes",
		Subcommands: []*cli.Command{
			{
				Name:      "add",
				Usage:     "Add or update an official route",
				ArgsUsage: "<slash>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "label", Aliases: []string{"n"}, Usage: "Display name (default: the slash)"},
				},
				Action: func(c *cli.Context) error {
					if c.NArg() < 1 {
						return outputError(errors.NewInvalidRequest("slash argument is required"))
					}
					output, err := ops.RegisterRoute(c.Context, db, cfg, ops.RegisterRouteInput{
						Slash: c.Args().First(),
						Label: c.String("label"),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "list",
				Usage: "List official routes",
				Action: func(c *cli.Context) error {
					output, err := ops.ListRegistry(c.Context, db, cfg)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "remove",
				Usage:     "Remove an official route",
				ArgsUsage: "<slash>",
				Action: func(c *cli.Context) error {
					output, err := ops.RemoveRoute(c.Context, db, ops.RemoveRouteInput{Slash: c.Args().First()})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "seed",
				Usage: "Upsert official routes from a YAML file (or stdin)",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "path", Aliases: []string{"p"}, Usage: "Seed file path (default: stdin)"},
				},
				Action: func(c *cli.Context) error {
					input := ops.SeedRegistryInput{Path: c.String("path")}
					if input.Path == "" {
						if !stdinHasData() {
							return outputError(errors.NewInvalidRequest("--path or piped YAML is required"))
						}
						input.Reader = os.Stdin
					}
					output, err := ops.SeedRegistry(c.Context, db, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// atoCmd creates the ato command group for custom routes.
func atoCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "ato",
		Usage: "Manage an owner's custom ATO routes",
		Subcommands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a custom route",
				ArgsUsage: "<name>",
				Flags: []cli.Flag{
					ownerFlag(true),
					&cli.StringFlag{Name: "route", Aliases: []string{"r"}, Usage: "Route (default: the name) or an http(s) URL"},
				},
				Action: func(c *cli.Context) error {
					input := ops.CreateCustomRouteInput{
						OwnerID: c.String("owner"),
						Name:    strings.Join(c.Args().Slice(), " "),
					}
					if c.IsSet("route") {
						r := c.String("route")
						input.Route = &r
					}
					output, err := ops.CreateCustomRoute(c.Context, db, cfg, input)
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:  "list",
				Usage: "List custom routes",
				Flags: []cli.Flag{ownerFlag(true)},
				Action: func(c *cli.Context) error {
					output, err := ops.ListCustomRoutes(c.Context, db, ops.ListCustomRoutesInput{OwnerID: c.String("owner")})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
			{
				Name:      "delete",
				Usage:     "Delete a custom route by ID",
				ArgsUsage: "<id>",
				Flags:     []cli.Flag{ownerFlag(true)},
				Action: func(c *cli.Context) error {
					output, err := ops.DeleteCustomRoute(c.Context, db, ops.DeleteCustomRouteInput{
						OwnerID: c.String("owner"),
						ID:      c.Args().First(),
					})
					if err != nil {
						return outputError(err)
					}
					return outputJSON(output)
				},
			},
		},
	}
}

// activeCmd creates the active command.
func activeCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "active",
		Usage:     "Show a chat's active route, or restore it with --set",
		ArgsUsage: "<chat-id>",
		Flags: []cli.Flag{
			ownerFlag(false),
			&cli.StringFlag{Name: "set", Usage: "Route to restore (empty resets to the default)"},
		},
		Action: func(c *cli.Context) error {
			chatID := c.Args().First()

			var (
				output *ops.ActiveRouteOutput
				err    error
			)
			if c.IsSet("set") {
				output, err = ops.SetActiveRoute(c.Context, db, cfg, ops.SetActiveRouteInput{
					ChatID:  chatID,
					OwnerID: c.String("owner"),
					Route:   c.String("set"),
				})
			} else {
				output, err = ops.GetActiveRoute(c.Context, db, ops.ActiveRouteInput{
					ChatID:  chatID,
					OwnerID: c.String("owner"),
				})
			}
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// topCmd creates the top command.
func topCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "top",
		Usage: "Show an owner's most used routes",
		Flags: []cli.Flag{
			ownerFlag(true),
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum results (default 10, max 100)"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.TopRoutes(c.Context, db, cfg, ops.TopRoutesInput{
				OwnerID: c.String("owner"),
				Limit:   c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(db *sql.DB, cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Value: "127.0.0.1", Usage: "Address to bind"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 8787, Usage: "Port to listen on"},
		},
		Action: func(c *cli.Context) error {
			srv := web.NewServer(db, cfg, Version, c.String("bind"), c.Int("port"))
			if err := web.Run(srv); err != nil {
				return outputError(errors.NewInternal(err))
			}
			return nil
		},
	}
}

// textArg joins the positional arguments, falling back to piped stdin.
func textArg(c *cli.Context) (string, error) {
	if c.NArg() > 0 {
		return strings.Join(c.Args().Slice(), " "), nil
	}
	if !stdinHasData() {
		return "", errors.NewInvalidRequest("text must be given as arguments or piped via stdin")
	}
	text, err := readStdin(maxStdinBytes)
	if err != nil {
		return "", errors.NewInvalidRequest(err.Error())
	}
	return text, nil
}

// outputJSON writes v as indented JSON to stdout.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	var hErr *errors.HubError
	if stderrors.As(err, &hErr) {
		return cli.Exit(fmt.Sprintf("[%s] %s", hErr.Code, hErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads at most maxBytes from stdin.
func readStdin(maxBytes int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(os.Stdin, maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > maxBytes {
		return "", fmt.Errorf("stdin exceeds %d bytes", maxBytes)
	}
	return strings.TrimSpace(string(data)), nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/amaumene/gotmdb/internal/constants"
	"github.com/amaumene/gotmdb/pkg/tmdb"
)

func main() {
	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:    constants.AppName,
		Usage:   constants.AppDescription,
		Version: constants.AppVersion,
		Commands: []*cli.Command{
			serveCommand(),
			personCommand(),
			movieCommand(),
			changesCommand(),
			imageURLCommand(),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the caching TMDB proxy",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port, overrides PORT"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			if port := c.String("port"); port != "" {
				app.config.Port = port
				if err := app.config.Validate(); err != nil {
					return err
				}
			}
			return app.serve(ctx)
		},
	}
}

func personCommand() *cli.Command {
	return &cli.Command{
		Name:      "person",
		Usage:     "Fetch a person with optional extras",
		ArgsUsage: "<id>",
		Flags:     entityFlags("credits,tv_credits,images,changes,external_ids,translations"),
		Action: func(ctx context.Context, c *cli.Command) error {
			id, opts, err := entityArgs(c)
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			person, err := app.client.GetPerson(ctx, id, opts...)
			if err != nil {
				return err
			}
			return printJSON(person)
		},
	}
}

func movieCommand() *cli.Command {
	return &cli.Command{
		Name:      "movie",
		Usage:     "Fetch a movie with optional extras",
		ArgsUsage: "<id>",
		Flags:     entityFlags("credits,images,changes,external_ids,translations,alternative_titles,keywords"),
		Action: func(ctx context.Context, c *cli.Command) error {
			id, opts, err := entityArgs(c)
			if err != nil {
				return err
			}
			app, err := newApp()
			if err != nil {
				return err
			}
			movie, err := app.client.GetMovie(ctx, id, opts...)
			if err != nil {
				return err
			}
			return printJSON(movie)
		},
	}
}

func changesCommand() *cli.Command {
	return &cli.Command{
		Name:      "changes",
		Usage:     "List the change history of a person or movie",
		ArgsUsage: "person|movie <id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "start", Usage: "start date, YYYY-MM-DD"},
			&cli.StringFlag{Name: "end", Usage: "end date, YYYY-MM-DD"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 2 {
				return fmt.Errorf("usage: changes person|movie <id>")
			}
			kind := c.Args().Get(0)
			id, err := parseID(c.Args().Get(1))
			if err != nil {
				return err
			}
			start, err := parseDate(c.String("start"))
			if err != nil {
				return err
			}
			end, err := parseDate(c.String("end"))
			if err != nil {
				return err
			}

			app, err := newApp()
			if err != nil {
				return err
			}

			var changes []tmdb.Change
			switch kind {
			case "person":
				changes, err = app.client.GetPersonChanges(ctx, id, tmdb.WithDateRange(start, end))
			case "movie":
				changes, err = app.client.GetMovieChanges(ctx, id, tmdb.WithDateRange(start, end))
			default:
				return fmt.Errorf("unknown entity %q, expected person or movie", kind)
			}
			if err != nil {
				return err
			}
			return printJSON(changes)
		},
	}
}

func imageURLCommand() *cli.Command {
	return &cli.Command{
		Name:  "image-url",
		Usage: "Compose the URL of an image file at a configured size",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "size", Required: true, Usage: "size token, e.g. w185 or original"},
			&cli.StringFlag{Name: "path", Required: true, Usage: "image file path, e.g. /abc.jpg"},
			&cli.BoolFlag{Name: "insecure", Usage: "use the http base URL"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			app, err := newApp()
			if err != nil {
				return err
			}
			u, err := app.services.Images.URL(ctx, c.String("size"), c.String("path"), !c.Bool("insecure"))
			if err != nil {
				return err
			}
			fmt.Println(u.String())
			return nil
		},
	}
}

func entityFlags(extras string) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "language", Aliases: []string{"l"}, Usage: "response language, e.g. it or pt-BR"},
		&cli.StringFlag{Name: "append", Aliases: []string{"a"}, Usage: "comma separated extras: " + extras},
	}
}

func entityArgs(c *cli.Command) (int, []tmdb.Option, error) {
	if c.Args().Len() != 1 {
		return 0, nil, fmt.Errorf("expected exactly one id argument")
	}
	id, err := parseID(c.Args().First())
	if err != nil {
		return 0, nil, err
	}

	var opts []tmdb.Option
	if lang := c.String("language"); lang != "" {
		opts = append(opts, tmdb.WithLanguage(lang))
	}
	extras, err := tmdb.ParseExtras(c.String("append"))
	if err != nil {
		return 0, nil, err
	}
	opts = append(opts, tmdb.WithExtraSet(extras))
	return id, opts, nil
}

func parseID(raw string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return id, nil
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", raw)
	}
	return t, nil
}

func printJSON(v interface{}) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

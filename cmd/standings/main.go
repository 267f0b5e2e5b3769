// Command standings computes, seeds and inspects NBA season standings.
//
// Usage:
//
//	scoracle-standings compute --season 2023
//	scoracle-standings compute --season 2019 --format modern --json
//	scoracle-standings fetch --season 2023 --output season.json
//	scoracle-standings file --input season.json
//	scoracle-standings seed --season 2024
//	scoracle-standings backfill --from 1979 --to 2024 --workers 2
//	scoracle-standings snapshots
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-standings/internal/cache"
	"github.com/albapepper/scoracle-standings/internal/config"
	"github.com/albapepper/scoracle-standings/internal/db"
	"github.com/albapepper/scoracle-standings/internal/provider"
	"github.com/albapepper/scoracle-standings/internal/provider/bdl"
	"github.com/albapepper/scoracle-standings/internal/season"
	"github.com/albapepper/scoracle-standings/internal/seed"
	"github.com/albapepper/scoracle-standings/internal/standings"
)

// Logs go to stderr so --json output on stdout stays parseable.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:          "scoracle-standings",
		Short:        "NBA day-by-day standings with official tie-breaks",
		SilenceUsage: true,
	}

	root.AddCommand(computeCmd())
	root.AddCommand(fileCmd())
	root.AddCommand(fetchCmd())
	root.AddCommand(seedCmd())
	root.AddCommand(backfillCmd())
	root.AddCommand(snapshotsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// compute / file: print standings without touching the store
// --------------------------------------------------------------------------

func computeCmd() *cobra.Command {
	var (
		year    int
		format  string
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "compute",
		Short: "Compute a season's standings from BallDontLie and print them",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithConfig(func(ctx context.Context, cfg *config.Config) error {
				f, err := resolveFormat(cfg, format, year)
				if err != nil {
					return err
				}
				src, err := newSource(cfg)
				if err != nil {
					return err
				}
				res, err := seed.NewRunner(src, nil, nil, cfg, logger).Compute(ctx, year, f)
				if err != nil {
					return err
				}
				return printResult(cmd.OutOrStdout(), res, jsonOut)
			})
		},
	}
	cmd.Flags().IntVar(&year, "season", config.Seasons.CurrentSeason, "Season start year")
	cmd.Flags().StringVar(&format, "format", "", "Playoff format (modern, legacy); default follows the season")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the full season result as JSON")
	return cmd
}

func fileCmd() *cobra.Command {
	var (
		input   string
		format  string
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "file",
		Short: "Rank a local canonical season file (no network)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if input == "" {
				return fmt.Errorf("--input is required")
			}
			var r io.Reader = cmd.InOrStdin()
			if input != "-" {
				fh, err := os.Open(input)
				if err != nil {
					return fmt.Errorf("open input: %w", err)
				}
				defer fh.Close()
				r = fh
			}

			raw, err := provider.DecodeSeason(r)
			if err != nil {
				return err
			}
			f := standings.FormatForSeason(raw.Season)
			if format != "" {
				if f, err = standings.ParsePlayoffFormat(format); err != nil {
					return err
				}
			}

			ds, err := season.Build(raw)
			if err != nil {
				return fmt.Errorf("build season %d: %w", raw.Season, err)
			}
			res, err := season.Compute(ds, f)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), res, jsonOut)
		},
	}
	cmd.Flags().StringVar(&input, "input", "", "Canonical season JSON file, - for stdin")
	cmd.Flags().StringVar(&format, "format", "", "Playoff format (modern, legacy); default follows the season")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the full season result as JSON")
	return cmd
}

func fetchCmd() *cobra.Command {
	var (
		year   int
		output string
	)
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download a season from BallDontLie into a canonical season file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithConfig(func(ctx context.Context, cfg *config.Config) error {
				src, err := newSource(cfg)
				if err != nil {
					return err
				}
				raw, err := season.Fetch(ctx, src, year)
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if output != "" && output != "-" {
					fh, err := os.Create(output)
					if err != nil {
						return fmt.Errorf("create output: %w", err)
					}
					defer fh.Close()
					w = fh
				}
				if err := provider.EncodeSeason(w, raw); err != nil {
					return fmt.Errorf("write season file: %w", err)
				}
				logger.Info("Season fetched", "season", year, "teams", len(raw.Teams), "games", len(raw.Games))
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&year, "season", config.Seasons.CurrentSeason, "Season start year")
	cmd.Flags().StringVar(&output, "output", "", "Output file (default: stdout)")
	return cmd
}

// --------------------------------------------------------------------------
// seed / backfill: compute and persist
// --------------------------------------------------------------------------

func seedCmd() *cobra.Command {
	var (
		year   int
		format string
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Compute one season and store the snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, cfg *config.Config, runner *seed.Runner) error {
				f, err := resolveFormat(cfg, format, year)
				if err != nil {
					return err
				}
				start := time.Now()
				result := runner.SeedSeason(ctx, year, f)
				logger.Info("Seed finished",
					"season", year, "format", f,
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				return reportErrors(result)
			})
		},
	}
	cmd.Flags().IntVar(&year, "season", config.Seasons.CurrentSeason, "Season start year")
	cmd.Flags().StringVar(&format, "format", "", "Playoff format (modern, legacy); default follows the season")
	return cmd
}

func backfillCmd() *cobra.Command {
	var from, to, workers int
	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Seed a range of seasons, each under the format it was played with",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(func(ctx context.Context, cfg *config.Config, runner *seed.Runner) error {
				if to == 0 {
					to = cfg.CurrentSeason
				}
				if !cfg.ValidSeason(from) || !cfg.ValidSeason(to) {
					return fmt.Errorf("seasons must lie in %d-%d", config.Seasons.FirstSeason, cfg.CurrentSeason)
				}
				result, err := runner.Backfill(ctx, from, to, workers)
				if err != nil {
					return err
				}
				return reportErrors(result)
			})
		},
	}
	cmd.Flags().IntVar(&from, "from", config.Seasons.FirstSeason, "First season")
	cmd.Flags().IntVar(&to, "to", 0, "Last season (default: current season)")
	cmd.Flags().IntVar(&workers, "workers", 2, "Concurrent seasons")
	return cmd
}

func snapshotsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshots",
		Short: "List stored standings snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithConfig(func(ctx context.Context, cfg *config.Config) error {
				pool, err := openPool(ctx, cfg)
				if err != nil {
					return err
				}
				defer pool.Close()

				snaps, err := pool.ListStandings(ctx)
				if err != nil {
					return err
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(tw, "SEASON\tFORMAT\tFINAL\tCOMPUTED\tRUN")
				for _, s := range snaps {
					fmt.Fprintf(tw, "%d\t%s\t%t\t%s\t%s\n",
						s.Season, s.Format, s.Final, s.ComputedAt.UTC().Format(time.RFC3339), s.RunID)
				}
				return tw.Flush()
			})
		},
	}
}

// --------------------------------------------------------------------------
// Output
// --------------------------------------------------------------------------

// printResult writes the final table, or the whole result as JSON.
func printResult(w io.Writer, res *season.Result, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%d-%02d (%s)\n", res.Season, (res.Season+1)%100, res.Format)
	fmt.Fprintln(tw, "RK\tTEAM\tW\tL\tCONF\tSEED\tSTATUS\tL10\tSTRK")
	for _, t := range res.Teams {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\t%d\t%s\t%s\t%s\n",
			t.LeagueRank, t.Name, t.Wins, t.Losses,
			t.Conference, t.ConferenceSeed, t.PlayoffStatus,
			t.Last10, formatStreak(t.CurrentStreak))
	}
	return tw.Flush()
}

func formatStreak(n int) string {
	switch {
	case n > 0:
		return fmt.Sprintf("W%d", n)
	case n < 0:
		return fmt.Sprintf("L%d", -n)
	}
	return "-"
}

func reportErrors(result seed.SeedResult) error {
	for _, e := range result.Errors {
		logger.Error("seed error", "error", e)
	}
	if !result.OK() {
		return fmt.Errorf("%d error(s)", len(result.Errors))
	}
	return nil
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

func resolveFormat(cfg *config.Config, flag string, year int) (standings.PlayoffFormat, error) {
	if flag == "" {
		return cfg.FormatFor(year), nil
	}
	return standings.ParsePlayoffFormat(flag)
}

func newSource(cfg *config.Config) (*bdl.NBAHandler, error) {
	if cfg.BDLAPIKey == "" {
		return nil, fmt.Errorf("BALLDONTLIE_API_KEY is required")
	}
	client := bdl.NewClient(cfg.BDLBaseURL, cfg.BDLAPIKey, cfg.BDLRequestsPerMinute, logger)
	return bdl.NewNBAHandler(client, logger), nil
}

func openPool(ctx context.Context, cfg *config.Config) (*db.Pool, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	pool, err := db.New(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return pool, nil
}

// runWithConfig handles config loading and context cancellation.
func runWithConfig(fn func(ctx context.Context, cfg *config.Config) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	return fn(ctx, cfg)
}

// runSeed additionally connects to the database and, when REDIS_URL is set,
// the shared cache so running API instances pick up fresh results.
func runSeed(fn func(ctx context.Context, cfg *config.Config, runner *seed.Runner) error) error {
	return runWithConfig(func(ctx context.Context, cfg *config.Config) error {
		src, err := newSource(cfg)
		if err != nil {
			return err
		}
		pool, err := openPool(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		var c cache.Cache
		if cfg.RedisURL != "" {
			rc, err := cache.NewRedis(ctx, cfg.RedisURL, logger)
			if err != nil {
				logger.Warn("Redis unavailable, skipping cache writes", "error", err)
			} else {
				defer rc.Close()
				c = rc
			}
		}

		return fn(ctx, cfg, seed.NewRunner(src, pool, c, cfg, logger))
	})
}

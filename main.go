// main.go
//
// Command beat-wordle plays word-guessing games with an entropy-driven solver.
//
// Usage:
//
//	beat-wordle [simulate] [-n=GAMES] [-m=SOLUTION] [-s=STARTER|None] [-quiet|-verbose] [-save]
//	beat-wordle daily [-date=YYYY-MM-DD] [-save]
//	beat-wordle score GUESS SOLUTION
//	beat-wordle serve
//
// Configuration comes from .env, an optional YAML file (SOLVER_CONFIG) and
// environment variables; see internal/config. LOG_LEVEL sets the log level.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/evanmacbride/beat-wordle/internal/config"
	"github.com/evanmacbride/beat-wordle/internal/daily"
	"github.com/evanmacbride/beat-wordle/internal/game"
	"github.com/evanmacbride/beat-wordle/internal/httpserver"
	"github.com/evanmacbride/beat-wordle/internal/render"
	"github.com/evanmacbride/beat-wordle/internal/sim"
	"github.com/evanmacbride/beat-wordle/internal/solver"
	"github.com/evanmacbride/beat-wordle/internal/store"
	"github.com/evanmacbride/beat-wordle/internal/words"
)

func main() {
	_ = godotenv.Load()
	if lvl, err := zerolog.ParseLevel(getEnv("LOG_LEVEL", "info")); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	cmd, args := "simulate", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	switch cmd {
	case "simulate":
		err = runSimulate(ctx, cfg, args, os.Stdout)
	case "daily":
		err = runDaily(cfg, args, os.Stdout)
	case "score":
		err = runScore(cfg, args, os.Stdout)
	case "serve":
		err = runServe(cfg)
	default:
		err = fmt.Errorf("unknown command %q (want simulate, daily, score or serve)", cmd)
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("failed")
	}
}

func loadCorpus(cfg config.Config) (*words.Corpus, error) {
	c, err := words.Load(cfg.Words())
	if err != nil {
		return nil, err
	}
	a, g := c.Stats()
	log.Debug().Int("answers", a).Int("allowed", g).Msg("loaded word lists")
	return c, nil
}

// starterUsage lists the known good openers in the -s help.
func starterUsage() string {
	names := make([]string, len(solver.Starters))
	for i, w := range solver.Starters {
		names[i] = string(w)
	}
	return fmt.Sprintf(`opening word, e.g. %s; "None" disables`, strings.Join(names, ", "))
}

func runSimulate(ctx context.Context, cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("simulate", flag.ContinueOnError)
	n := fs.Int("n", 1, "number of games")
	manual := fs.String("m", "", "fixed solution for every game")
	starter := fs.String("s", cfg.Starter, starterUsage())
	quiet := fs.Bool("quiet", false, "one line per guess, no banners or candidates")
	verbose := fs.Bool("verbose", true, "show mode banners and candidate previews")
	save := fs.Bool("save", false, "store the run in the results database")
	workers := fs.Int("workers", cfg.Workers, "games played concurrently")
	plain := fs.Bool("plain", false, "no colours")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sc := cfg.Solver()
	st, err := config.ParseStarter(*starter, sc.Length)
	if err != nil {
		return fmt.Errorf("starter: %w", err)
	}
	sc.Starter = st

	var solution game.Word
	if *manual != "" {
		if solution, err = game.ParseWord(*manual, sc.Length); err != nil {
			return fmt.Errorf("solution: %w", err)
		}
	}

	corpus, err := loadCorpus(cfg)
	if err != nil {
		return err
	}

	simCfg := sim.Config{Games: *n, Workers: *workers, Solution: solution, Solver: sc}
	if *n > 1 {
		simCfg.Progress = os.Stderr
	}
	sum, err := sim.Simulate(ctx, corpus, simCfg)
	if err != nil {
		return err
	}

	p := render.New(out, *verbose && !*quiet, *plain)
	if *quiet {
		p.Header()
	}
	for _, r := range sum.Results {
		p.Game(r)
	}
	p.Summary(sum)

	if *save {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := store.NewRuns(db).Insert(ctx, store.NewRun(sum, sc.Starter, sc.Hard)); err != nil {
			return err
		}
		log.Info().Str("run", sum.RunID).Str("db", cfg.DBPath).Msg("run saved")
	}
	return nil
}

func runDaily(cfg config.Config, args []string, out io.Writer) error {
	fs := flag.NewFlagSet("daily", flag.ContinueOnError)
	date := fs.String("date", "", "day to solve, YYYY-MM-DD (default today, UTC)")
	save := fs.Bool("save", false, "store the result in the results database")
	plain := fs.Bool("plain", false, "no colours")
	if err := fs.Parse(args); err != nil {
		return err
	}

	day := time.Now().UTC()
	if *date != "" {
		t, err := time.Parse("2006-01-02", *date)
		if err != nil {
			return fmt.Errorf("date: %w", err)
		}
		day = t
	}

	corpus, err := loadCorpus(cfg)
	if err != nil {
		return err
	}
	res, err := daily.Solve(corpus, cfg.DailySalt, day, cfg.Solver())
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "DAILY %s (#%d)\n", res.Date, res.WordIndex)
	render.New(out, true, *plain).Game(*res.Game)

	if *save {
		db, err := store.Open(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()
		ok, err := daily.NewStore(db).Insert(context.Background(), res)
		if err != nil {
			return err
		}
		if !ok {
			log.Info().Str("date", res.Date).Msg("daily result already stored")
		}
	}
	return nil
}

func runScore(cfg config.Config, args []string, out io.Writer) error {
	if len(args) != 2 {
		return errors.New("usage: score GUESS SOLUTION")
	}
	guess, err := game.ParseWord(args[0], cfg.WordLength)
	if err != nil {
		return err
	}
	solution, err := game.ParseWord(args[1], cfg.WordLength)
	if err != nil {
		return err
	}
	fb, err := game.Score(guess, solution)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, render.Tiles(guess, fb, false), fb)
	return nil
}

func runServe(cfg config.Config) error {
	corpus, err := loadCorpus(cfg)
	if err != nil {
		return err
	}
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		return err
	}
	defer db.Close()

	srv := httpserver.New(cfg, corpus, store.NewMemoryStore(), db)
	log.Info().Str("port", cfg.Port).Msg("starting beat-wordle server")
	return srv.Start(":" + cfg.Port)
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

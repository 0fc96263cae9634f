package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/wildfunctions/evolve/pkg/benchmark"
	"github.com/wildfunctions/evolve/pkg/engine"
	"github.com/wildfunctions/evolve/pkg/metrics"
	"github.com/wildfunctions/evolve/pkg/population"
)

func main() {
	cfg := engine.DefaultConfig()
	var (
		configPath    string
		envPath       string
		metricsAddr   string
		metricsLinger time.Duration
	)

	flag.StringVar(&configPath, "config", "", "TOML config file")
	flag.StringVar(&envPath, "env", "", "dotenv file with EVOLVE_* settings (default .env if present)")
	flag.StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address, e.g. :9090")
	flag.DurationVar(&metricsLinger, "metrics-linger", 0, "keep serving metrics this long after the run")

	flag.StringVar(&cfg.Function, "function", cfg.Function, "objective function ("+strings.Join(benchmark.Names(), ", ")+")")
	flag.StringVar(&cfg.Orientation, "orientation", cfg.Orientation, "minimize or maximize (default: the function's)")
	flag.StringVar(&cfg.Representation, "representation", cfg.Representation, "chromosome representation ("+strings.Join(engine.Representations(), ", ")+")")
	flag.IntVar(&cfg.Genes, "genes", cfg.Genes, "genes per chromosome")
	flag.Float64Var(&cfg.Lower, "lower", cfg.Lower, "lower gene bound (lower = upper = 0 uses the function's range)")
	flag.Float64Var(&cfg.Upper, "upper", cfg.Upper, "upper gene bound")
	flag.Func("digits", "decimal digits resolved by binary genes (default 3)", digitsFlag(&cfg.Digits))
	flag.StringVar(&cfg.Initializer, "init", cfg.Initializer,
		"population initializer (real: "+strings.Join(population.RealNames(), ", ")+"; bits: "+strings.Join(population.BitNames(), ", ")+")")
	flag.StringVar(&cfg.Algorithm, "algorithm", cfg.Algorithm, "evolutionary loop ("+strings.Join(engine.Algorithms(), ", ")+")")
	flag.IntVar(&cfg.Population, "population", cfg.Population, "population size")
	flag.IntVar(&cfg.Generations, "generations", cfg.Generations, "maximum number of generations")
	flag.BoolVar(&cfg.Elitism, "elitism", cfg.Elitism, "keep the best individual (generational)")
	flag.Float64Var(&cfg.MortalityRate, "mortality", cfg.MortalityRate, "share replaced per generation (steady_state)")
	flag.Func("desired", "desired fitness (default: the function's optimum)", desiredFlag(&cfg.DesiredFitness))
	flag.Float64Var(&cfg.Precision, "precision", cfg.Precision, "tolerance around the desired fitness")
	flag.StringVar(&cfg.Selection, "selection", cfg.Selection, "selection (tournament, roulette)")
	flag.IntVar(&cfg.TournamentSize, "tournament", cfg.TournamentSize, "tournament size")
	flag.StringVar(&cfg.Crossover, "crossover", cfg.Crossover, "crossover, or a comma-separated list to mix")
	flag.Float64Var(&cfg.Lambda, "lambda", cfg.Lambda, "arithmetical crossover weight")
	flag.Float64Var(&cfg.Alpha, "alpha", cfg.Alpha, "BLX-α exploration")
	flag.StringVar(&cfg.Mutation, "mutation", cfg.Mutation, "mutation (gaussian, bit_flip)")
	flag.Float64Var(&cfg.MutationRate, "mutation-rate", cfg.MutationRate, "per-gene (or per-bit) mutation probability")
	flag.Float64Var(&cfg.Sigma, "sigma", cfg.Sigma, "Gaussian mutation standard deviation")
	flag.StringVar(&cfg.GaussianMode, "gaussian-mode", cfg.GaussianMode, "Gaussian mutation mode (add, set)")
	flag.BoolVar(&cfg.Force, "force", cfg.Force, "always mutate at least one gene")
	flag.IntVar(&cfg.Attempts, "attempts", cfg.Attempts, "independent attempts")
	flag.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = random)")
	flag.IntVar(&cfg.LogFrequency, "log-frequency", cfg.LogFrequency, "log the best individual every N generations (0 = off)")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flag.StringVar(&cfg.Format, "format", cfg.Format, "output format (text, json)")
	flag.BoolVar(&cfg.Verbose, "verbose", cfg.Verbose, "report every generation")
	flag.Parse()

	// Flags win over the environment, which wins over the file: load both
	// onto fresh defaults, then apply the command line again.
	cfg = engine.DefaultConfig()
	if configPath != "" {
		if err := engine.LoadFile(configPath, &cfg); err != nil {
			fatal(err)
		}
	}
	var envFiles []string
	if envPath != "" {
		envFiles = append(envFiles, envPath)
	}
	if err := engine.LoadEnv(&cfg, envFiles...); err != nil {
		fatal(err)
	}
	if err := flag.CommandLine.Parse(os.Args[1:]); err != nil {
		fatal(err)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		fatal(err)
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: metricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("metrics server", "err", err)
			}
		}()
		log.Info("serving metrics", "addr", metricsAddr)
	}

	e, err := engine.New(cfg, log)
	if err != nil {
		fatal(err)
	}
	e.SetProgress(os.Stderr)

	report, err := e.Run()
	if err != nil {
		fatal(err)
	}

	switch cfg.Format {
	case "json":
		if err := engine.WriteJSONFinal(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "error writing JSON: %v\n", err)
			os.Exit(1)
		}
	default:
		engine.WriteTextFinal(os.Stdout, report)
	}

	if metricsAddr != "" && metricsLinger > 0 {
		log.Info("lingering for metrics scrape", "for", metricsLinger)
		time.Sleep(metricsLinger)
	}
}

// digitsFlag parses a uint8 into dst. dst is left alone on error.
func digitsFlag(dst *uint8) func(string) error {
	return func(s string) error {
		d, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return err
		}
		*dst = uint8(d)
		return nil
	}
}

func desiredFlag(dst **float64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*dst = &v
		return nil
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

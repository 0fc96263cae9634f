package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/wildfunctions/evolve/pkg/benchmark"
	"github.com/wildfunctions/evolve/pkg/mutation"
	"github.com/wildfunctions/evolve/pkg/population"
	"github.com/wildfunctions/evolve/pkg/problem"
)

// EnvPrefix prefixes every environment override, e.g. EVOLVE_POPULATION.
const EnvPrefix = "EVOLVE_"

// ErrInvalidConfig is returned by Validate and the loaders.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds all parameters for an evolutionary run.
type Config struct {
	Function string `toml:"function" json:"function"`
	// Orientation is "minimize" or "maximize"; empty follows the function.
	Orientation string `toml:"orientation" json:"orientation,omitempty"`

	Representation string `toml:"representation" json:"representation"` // bounded, vector, binary, bits
	Genes          int    `toml:"genes" json:"genes"`
	// Lower and Upper bound the genes. Both zero selects the function's
	// customary range.
	Lower  float64 `toml:"lower" json:"lower"`
	Upper  float64 `toml:"upper" json:"upper"`
	Digits uint8   `toml:"digits" json:"digits"` // decimal precision of binary genes
	// Initializer names a population initializer; empty picks uniform for
	// real genes and coin for bits.
	Initializer string `toml:"initializer" json:"initializer,omitempty"`

	Algorithm     string  `toml:"algorithm" json:"algorithm"` // generational, steady_state
	Population    int     `toml:"population" json:"population"`
	Generations   int     `toml:"generations" json:"generations"`
	Elitism       bool    `toml:"elitism" json:"elitism"`
	MortalityRate float64 `toml:"mortality_rate" json:"mortality_rate"`
	// DesiredFitness defaults to the function's known optimum.
	DesiredFitness *float64 `toml:"desired_fitness" json:"desired_fitness,omitempty"`
	Precision      float64  `toml:"precision" json:"precision"`

	Selection      string `toml:"selection" json:"selection"` // tournament, roulette
	TournamentSize int    `toml:"tournament_size" json:"tournament_size"`
	// Crossover is one operator name or a comma-separated list that is
	// composed with equal weights.
	Crossover    string  `toml:"crossover" json:"crossover"`
	Lambda       float64 `toml:"lambda" json:"lambda"`
	Alpha        float64 `toml:"alpha" json:"alpha"`
	Mutation     string  `toml:"mutation" json:"mutation"` // gaussian, bit_flip
	MutationRate float64 `toml:"mutation_rate" json:"mutation_rate"`
	Sigma        float64 `toml:"sigma" json:"sigma"`
	GaussianMode string  `toml:"gaussian_mode" json:"gaussian_mode"`
	Force        bool    `toml:"force" json:"force"`

	Attempts     int    `toml:"attempts" json:"attempts"`
	Seed         uint64 `toml:"seed" json:"seed"` // 0 = random
	LogFrequency int    `toml:"log_frequency" json:"log_frequency"`
	LogLevel     string `toml:"log_level" json:"-"`
	Format       string `toml:"format" json:"-"` // text, json
	Verbose      bool   `toml:"verbose" json:"-"`
}

// DefaultConfig returns the sphere setup: two bounded genes, generational
// replacement with elitism, tournament selection, arithmetical crossover
// and forced Gaussian mutation.
func DefaultConfig() Config {
	return Config{
		Function:       "sphere",
		Representation: "bounded",
		Genes:          2,
		Digits:         3,
		Algorithm:      "generational",
		Population:     50,
		Generations:    5000,
		Elitism:        true,
		MortalityRate:  0.2,
		Precision:      1e-3,
		Selection:      "tournament",
		TournamentSize: 3,
		Crossover:      "arithmetical",
		Lambda:         0.5,
		Alpha:          0.5,
		Mutation:       "gaussian",
		MutationRate:   0.05,
		Sigma:          0.1,
		GaussianMode:   "add",
		Force:          true,
		Attempts:       1,
		LogLevel:       "info",
		Format:         "text",
	}
}

var (
	representations = []string{"bounded", "vector", "binary", "bits"}
	algorithms      = []string{"generational", "steady_state"}
	selections      = []string{"tournament", "roulette"}
	realCrossovers  = []string{"arithmetical", "blx_alpha", "flat", "single_point", "uniform"}
	bitCrossovers   = []string{"single_point", "uniform"}
	formats         = []string{"text", "json"}
)

// Representations lists the supported chromosome representations.
func Representations() []string { return representations }

// Algorithms lists the supported evolutionary loops.
func Algorithms() []string { return algorithms }

func (c Config) realGenes() bool {
	return c.Representation == "bounded" || c.Representation == "vector"
}

// CrossoverNames splits the crossover setting into operator names.
func (c Config) CrossoverNames() []string {
	var names []string
	for _, n := range strings.Split(c.Crossover, ",") {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func oneOf(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%w: unknown %s %q (available: %s)", ErrInvalidConfig, field, value, strings.Join(allowed, ", "))
}

// Validate checks names and numeric ranges so a bad setting surfaces before
// any generation runs. Operator constructors repeat their own checks.
func (c Config) Validate() error {
	if _, err := benchmark.Get(c.Function); err != nil {
		return fmt.Errorf("%w: %w (available: %s)", ErrInvalidConfig, err, strings.Join(benchmark.Names(), ", "))
	}
	if c.Orientation != "" {
		if _, err := problem.ParseOrientation(c.Orientation); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	for _, check := range []error{
		oneOf("representation", c.Representation, representations),
		oneOf("algorithm", c.Algorithm, algorithms),
		oneOf("selection", c.Selection, selections),
		oneOf("format", c.Format, formats),
	} {
		if check != nil {
			return check
		}
	}

	crossovers := bitCrossovers
	mutations := []string{"bit_flip"}
	if c.realGenes() {
		crossovers = realCrossovers
		mutations = []string{"gaussian"}
	}
	names := c.CrossoverNames()
	if len(names) == 0 {
		return fmt.Errorf("%w: no crossover", ErrInvalidConfig)
	}
	for _, n := range names {
		if err := oneOf(c.Representation+" crossover", n, crossovers); err != nil {
			return err
		}
	}
	if err := oneOf(c.Representation+" mutation", c.Mutation, mutations); err != nil {
		return err
	}
	if c.Mutation == "gaussian" {
		if _, err := mutation.ParseMode(c.GaussianMode); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	if c.Initializer != "" {
		var err error
		if c.realGenes() {
			_, err = population.GetReal(c.Initializer)
		} else {
			_, err = population.GetBits(c.Initializer)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("%w: log level: %w", ErrInvalidConfig, err)
	}

	switch {
	case c.Genes < 1:
		return fmt.Errorf("%w: genes %d < 1", ErrInvalidConfig, c.Genes)
	case c.Population < 1:
		return fmt.Errorf("%w: population %d < 1", ErrInvalidConfig, c.Population)
	case c.Generations < 0:
		return fmt.Errorf("%w: generations %d < 0", ErrInvalidConfig, c.Generations)
	case c.Attempts < 1:
		return fmt.Errorf("%w: attempts %d < 1", ErrInvalidConfig, c.Attempts)
	case c.Selection == "tournament" && (c.TournamentSize < 1 || c.TournamentSize > c.Population):
		return fmt.Errorf("%w: tournament size %d not in [1, %d]", ErrInvalidConfig, c.TournamentSize, c.Population)
	case !(c.Lower <= c.Upper):
		return fmt.Errorf("%w: lower %v > upper %v", ErrInvalidConfig, c.Lower, c.Upper)
	case !(c.Precision >= 0):
		return fmt.Errorf("%w: precision %v < 0", ErrInvalidConfig, c.Precision)
	case c.LogFrequency < 0:
		return fmt.Errorf("%w: log frequency %d < 0", ErrInvalidConfig, c.LogFrequency)
	}
	return nil
}

// LoadFile decodes a TOML file over cfg. Keys that match no setting are
// an error.
func LoadFile(path string, cfg *Config) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: %s: unknown keys %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return nil
}

// LoadEnv loads the given dotenv files (".env" when none are named, and it
// may be missing) into the process environment, then applies every
// EVOLVE_<KEY> variable to cfg, where KEY is the upper-cased TOML key.
// Variables already set in the environment win over dotenv files.
func LoadEnv(cfg *Config, files ...string) error {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: .env: %w", ErrInvalidConfig, err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	v := reflect.ValueOf(cfg).Elem()
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := t.Field(i).Tag.Get("toml")
		if key == "" {
			continue
		}
		name := EnvPrefix + strings.ToUpper(key)
		raw, ok := os.LookupEnv(name)
		if !ok {
			continue
		}
		if err := setField(v.Field(i), strings.TrimSpace(raw)); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, name, err)
		}
	}
	return nil
}

func setField(f reflect.Value, raw string) error {
	if f.Kind() == reflect.Pointer {
		p := reflect.New(f.Type().Elem())
		if err := setField(p.Elem(), raw); err != nil {
			return err
		}
		f.Set(p)
		return nil
	}
	switch f.Kind() {
	case reflect.String:
		f.SetString(raw)
	case reflect.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return err
		}
		f.SetBool(b)
	case reflect.Int, reflect.Int64:
		n, err := strconv.ParseInt(raw, 10, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetInt(n)
	case reflect.Uint8, reflect.Uint64:
		n, err := strconv.ParseUint(raw, 10, f.Type().Bits())
		if err != nil {
			return err
		}
		f.SetUint(n)
	case reflect.Float64:
		x, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return err
		}
		f.SetFloat(x)
	default:
		return fmt.Errorf("unsupported setting type %s", f.Type())
	}
	return nil
}

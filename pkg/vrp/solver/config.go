package solver

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/burikinc/vrp/pkg/vrp/builder"
	"github.com/burikinc/vrp/pkg/vrp/core"
	"github.com/burikinc/vrp/pkg/vrp/mutation"
	"github.com/burikinc/vrp/pkg/vrp/population"
	"github.com/burikinc/vrp/pkg/vrp/termination"
)

// FileConfig is the on-disk shape of the engine's tunables, loadable
// from YAML/TOML/JSON (or VRP_-prefixed environment variables) through
// viper. It covers the engine knobs that make
// sense outside Go code; builders, telemetry sinks and pre-seeded
// individuals stay programmatic.
type FileConfig struct {
	Population struct {
		MaxSize int `mapstructure:"max_size"`
		Initial struct {
			Size int `mapstructure:"size"`
		} `mapstructure:"initial"`
	} `mapstructure:"population"`

	Termination struct {
		MaxGenerations int           `mapstructure:"max_generations"`
		MaxTime        time.Duration `mapstructure:"max_time"`
		TargetCost     float64       `mapstructure:"target_cost"`
		Stagnation     int           `mapstructure:"stagnation"`
	} `mapstructure:"termination"`

	Mutation struct {
		Name string `mapstructure:"name"`
		// RuinRate applies to ruin_recreate (and decompose's inner).
		RuinRate float64 `mapstructure:"ruin_rate"`
		// Repeat is decompose's per-partition generation count.
		Repeat int `mapstructure:"repeat"`
	} `mapstructure:"mutation"`

	Seed int64 `mapstructure:"seed"`
}

// LoadFileConfig reads path into a FileConfig, applying defaults for
// every omitted knob. An empty path yields pure defaults.
func LoadFileConfig(path string) (*FileConfig, error) {
	v := viper.New()
	v.SetDefault("population.max_size", 4)
	v.SetDefault("population.initial.size", 1)
	v.SetDefault("termination.max_generations", 200)
	v.SetDefault("mutation.name", "ruin_recreate")
	v.SetDefault("mutation.ruin_rate", 0.1)
	v.SetDefault("mutation.repeat", 4)
	// Zero defaults make these keys known to Unmarshal, so their
	// environment variables are read as well.
	v.SetDefault("termination.max_time", 0)
	v.SetDefault("termination.target_cost", 0)
	v.SetDefault("termination.stagnation", 0)
	v.SetDefault("seed", 0)
	v.SetEnvPrefix("VRP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "solver: reading config %q", path)
		}
	}

	var cfg FileConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "solver: unmarshaling config")
	}
	return &cfg, nil
}

// BuildTermination assembles the configured stopping predicate as a
// union of every knob that was set: any member firing stops the run.
func (c *FileConfig) BuildTermination() termination.Termination {
	var terms []termination.Termination
	if c.Termination.MaxGenerations > 0 {
		terms = append(terms, termination.MaxGenerations{Limit: c.Termination.MaxGenerations})
	}
	if c.Termination.MaxTime > 0 {
		terms = append(terms, termination.MaxTime{Limit: c.Termination.MaxTime})
	}
	if c.Termination.TargetCost > 0 {
		terms = append(terms, termination.TargetCost{Target: c.Termination.TargetCost})
	}
	if c.Termination.Stagnation > 0 {
		terms = append(terms, &termination.Stagnation{MaxGenerationsWithoutImprovement: c.Termination.Stagnation})
	}
	if len(terms) == 0 {
		return termination.MaxGenerations{Limit: 200}
	}
	return termination.NewUnion(terms...)
}

// BuildMutation resolves the configured mutation operator by name.
func (c *FileConfig) BuildMutation() (mutation.Mutation, error) {
	switch c.Mutation.Name {
	case "", "ruin_recreate":
		return mutation.NewRuinAndRecreate(c.Mutation.RuinRate), nil
	case "swap":
		return mutation.NewSwapExchange(), nil
	case "cross":
		return mutation.NewCrossExchange(1), nil
	case "decompose":
		inner := mutation.NewRuinAndRecreate(c.Mutation.RuinRate)
		return mutation.NewDecomposeSearch(inner, c.Mutation.Repeat), nil
	default:
		return nil, errors.Errorf("solver: unknown mutation %q", c.Mutation.Name)
	}
}

// BuildVariation returns the population factory implied by the
// configured max size.
func (c *FileConfig) BuildVariation() func() population.Population {
	maxSize := c.Population.MaxSize
	return func() population.Population {
		return population.NewRankedPopulation(maxSize)
	}
}

// ApplyTo projects the file-level knobs onto an in-memory Config,
// leaving programmatic-only fields (builders, telemetry, quota, …) for
// the caller to fill.
func (c *FileConfig) ApplyTo(cfg *Config) error {
	mut, err := c.BuildMutation()
	if err != nil {
		return err
	}
	cfg.Variation = c.BuildVariation()
	cfg.InitialSize = c.Population.Initial.Size
	cfg.Mutation = mut
	cfg.Termination = c.BuildTermination()
	if c.Seed != 0 {
		cfg.Random = core.NewRandom(c.Seed)
	}
	if len(cfg.InitialMethods) == 0 {
		cfg.InitialMethods = []builder.WeightedMethod{
			{Builder: builder.NewNaiveInsertionBuilder(), Weight: 1},
		}
	}
	return nil
}

// Package rconfig loads the engine's tunables through viper. It carries
// no CLI flags (CLI packaging is an explicit non-goal) — callers either
// load a config file/environment into a viper instance themselves, or
// use Default for the zero-config case.
package rconfig

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the engine's ambient tunables: reasoning budgets, tableau
// search limits, and orchestrator worker-pool sizing.
type Config struct {
	// ReasoningTimeout bounds a single reason() call; reasoners check it
	// at seminaive-round / tableau-branch boundaries.
	ReasoningTimeout time.Duration `mapstructure:"reasoning_timeout"`
	// MaxTableauDepth bounds tableau branching depth before the
	// reasoner gives up expanding a branch (guards pathological OWL DL
	// inputs, since full OWL 2 DL completeness is a non-goal).
	MaxTableauDepth int `mapstructure:"max_tableau_depth"`
	// WorkerPoolSize sizes the pool the orchestrator dispatches its
	// synchronous reasoning phases onto.
	WorkerPoolSize int `mapstructure:"worker_pool_size"`
	// DefaultSeverity is the SHACL severity assumed when a shape omits
	// sh:severity. shacl.LoadShapes does not read this field; it falls
	// back to sh:Violation on its own.
	DefaultSeverity string `mapstructure:"default_severity"`
}

// Default returns the engine's built-in tunables, used when no
// configuration source is supplied.
func Default() Config {
	return Config{
		ReasoningTimeout: 30 * time.Second,
		MaxTableauDepth:  64,
		WorkerPoolSize:   4,
		DefaultSeverity:  "http://www.w3.org/ns/shacl#Violation",
	}
}

// Load reads configuration from v, falling back to Default for any key
// v does not define.
func Load(v *viper.Viper) (Config, error) {
	cfg := Default()
	if v == nil {
		return cfg, nil
	}
	v.SetDefault("reasoning_timeout", cfg.ReasoningTimeout)
	v.SetDefault("max_tableau_depth", cfg.MaxTableauDepth)
	v.SetDefault("worker_pool_size", cfg.WorkerPoolSize)
	v.SetDefault("default_severity", cfg.DefaultSeverity)
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

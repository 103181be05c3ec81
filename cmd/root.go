// Package cmd implements the crease CLI commands.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/theirongolddev/crease/internal/config"
	"github.com/theirongolddev/crease/internal/simapi"
	"github.com/theirongolddev/crease/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagServer  string
	flagModel   string
	flagDelayMs int
	flagNoCache bool
	flagQuiet   bool
)

// lookupTTL is how long cached player and model lookups stay fresh.
const lookupTTL = 15 * time.Minute

var rootCmd = &cobra.Command{
	Use:   "crease",
	Short: "Live cricket match viewer",
	Long:  "Watch simulated cricket series stream ball by ball in your terminal.",
	RunE:  runTUI,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// A .env in the working directory is optional; flags and the config
	// file still apply without one.
	_ = godotenv.Load()

	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "Simulation service base URL (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&flagModel, "model", "m", "", "Prediction model (overrides config)")
	rootCmd.PersistentFlags().IntVar(&flagDelayMs, "delay", -1, "Per-ball delay in milliseconds (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "Skip the local lookup cache")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// Flags override environment, environment overrides the config file.

func serverURL(cfg config.Config) string {
	if flagServer != "" {
		return flagServer
	}
	return config.ServerURL(cfg)
}

func modelName(cfg config.Config) string {
	if flagModel != "" {
		return flagModel
	}
	return config.Model(cfg)
}

func ballDelay(cfg config.Config) time.Duration {
	if flagDelayMs >= 0 {
		return time.Duration(flagDelayMs) * time.Millisecond
	}
	return cfg.Delay()
}

func newClient(cfg config.Config) (*simapi.Client, error) {
	client := simapi.NewClient(serverURL(cfg))
	if client == nil {
		return nil, fmt.Errorf("no server URL configured; set --server, CREASE_SERVER_URL, or [server] base_url in %s",
			config.ConfigPath())
	}
	return client, nil
}

func lookupCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}

// cachedJSON round-trips a lookup through the local SQLite cache: a fresh
// hit is decoded directly, a miss calls fetch and stores the encoded
// result. When the service is down, a stale entry still serves.
func cachedJSON[T any](endpoint, key string, fetch func() (T, error), out *T) error {
	if flagNoCache {
		v, err := fetch()
		if err != nil {
			return err
		}
		*out = v
		return nil
	}

	cache, err := store.Open(config.CachePath())
	if err != nil {
		if !flagQuiet {
			fmt.Fprintln(os.Stderr, "  Cache unavailable, querying service directly")
		}
		v, err := fetch()
		if err != nil {
			return err
		}
		*out = v
		return nil
	}
	defer func() { _ = cache.Close() }()

	if body, ok := cache.Get(endpoint, key, lookupTTL); ok {
		if json.Unmarshal(body, out) == nil {
			return nil
		}
	}

	v, err := fetch()
	if err != nil {
		// Stale data beats no data while the service is down
		if body, ok := cache.Get(endpoint, key, 0); ok && json.Unmarshal(body, out) == nil {
			if !flagQuiet {
				fmt.Fprintln(os.Stderr, "  Service unreachable, showing cached data")
			}
			return nil
		}
		return err
	}
	*out = v

	if body, err := json.Marshal(v); err == nil {
		_ = cache.Put(endpoint, key, body)
	}
	return nil
}

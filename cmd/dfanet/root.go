package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "dfanet",
	Short: "dfanet drives and persists deterministic finite automata",
	Long: `dfanet is a small front end to the DFAnet automaton engine.

It runs a built-in parity classifier automaton, snapshots it into a
configurable store (memory, file, SQLite or Redis), and resumes saved
runs. Defaults come from DFANET_* environment variables; flags override
them per invocation.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands); empty defaults mean
	// "use the environment configuration".
	rootCmd.PersistentFlags().String("store", "", "snapshot store: memory, file, sqlite or redis")
	rootCmd.PersistentFlags().String("dir", "", "directory for the file store")
	rootCmd.PersistentFlags().String("db", "", "path of the SQLite database")
	rootCmd.PersistentFlags().String("redis-addr", "", "address of the Redis server")
	rootCmd.PersistentFlags().String("format", "", "snapshot encoding: json or yaml")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error")
}

// resolveConfig loads the environment configuration and overlays any flags
// the user set on this invocation.
func resolveConfig(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return Config{}, err
	}

	overlay := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	overlay("store", &cfg.Store)
	overlay("dir", &cfg.Dir)
	overlay("db", &cfg.DB)
	overlay("redis-addr", &cfg.RedisAddr)
	overlay("format", &cfg.Format)
	overlay("log-level", &cfg.LogLevel)

	return cfg, nil
}

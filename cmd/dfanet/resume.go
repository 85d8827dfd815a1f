package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tempestive/DFAnet"
	"github.com/tempestive/DFAnet/internal/logging"
)

// resumeCmd loads a saved parity run and continues stepping it to DONE.
var resumeCmd = &cobra.Command{
	Use:   "resume <key>",
	Short: "Resume a saved parity run",
	Long: `Loads the snapshot stored under the given key, rebinds the parity
definition's behaviors and guards onto it, restores the classified value
from the document, and drives the automaton on to DONE.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		logger := logging.New(cfg.logLevel())

		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		classifier := &parityClassifier{}
		a, err := dfanet.Load(context.Background(), store, args[0], classifier.definition(),
			dfanet.WithObserver(dfanet.NewLoggingObserver(logger)))
		if err != nil {
			return err
		}
		if err := classifier.adoptValue(a); err != nil {
			return err
		}

		if current, ok := a.Current(); ok {
			fmt.Printf("resumed %q at state %d\n", args[0], current)
		} else {
			fmt.Printf("resumed %q before its first start\n", args[0])
			if err := a.StartFrom(parityStart); err != nil {
				return err
			}
		}

		return drive(a)
	},
}

func init() {
	rootCmd.AddCommand(resumeCmd)
}

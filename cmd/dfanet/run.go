package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tempestive/DFAnet"
	"github.com/tempestive/DFAnet/internal/logging"
)

// runCmd runs the parity classifier over a number and optionally saves the
// finished (or interrupted) automaton under a key.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Classify a number with the parity automaton",
	Long: `Runs the built-in parity classifier: the value moves through
START -> CHECK -> EVEN|ODD -> DONE and the verdict is printed on stdout.

The value comes from --value, or is read from stdin when the flag is
absent. With --save the automaton is snapshotted under the given key
after --steps steps (default: after reaching DONE).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		logger := logging.New(cfg.logLevel())

		value, err := readValue(cmd)
		if err != nil {
			return err
		}

		classifier := &parityClassifier{value: value}
		a, err := dfanet.New(classifier.definition(),
			dfanet.WithObserver(dfanet.NewLoggingObserver(logger)))
		if err != nil {
			return err
		}
		if err := a.StartFrom(parityStart); err != nil {
			return err
		}

		maxSteps, _ := cmd.Flags().GetInt("steps")
		if maxSteps > 0 {
			for i := 0; i < maxSteps; i++ {
				if _, err := a.Step(); err != nil {
					return err
				}
			}
		} else if err := drive(a); err != nil {
			return err
		}

		saveKey, _ := cmd.Flags().GetString("save")
		if saveKey == "" {
			return nil
		}

		store, closeStore, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = closeStore() }()

		if err := dfanet.Save(context.Background(), a, store, saveKey, dfanet.Format(cfg.Format)); err != nil {
			return err
		}
		fmt.Printf("saved snapshot %q (%s store, %s)\n", saveKey, cfg.Store, cfg.Format)
		return nil
	},
}

func readValue(cmd *cobra.Command) (int, error) {
	if cmd.Flags().Changed("value") {
		return cmd.Flags().GetInt("value")
	}
	fmt.Fprint(os.Stderr, "enter a number: ")
	var value int
	if _, err := fmt.Fscan(os.Stdin, &value); err != nil {
		return 0, fmt.Errorf("reading number: %w", err)
	}
	return value, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Int("value", 0, "number to classify (read from stdin when absent)")
	runCmd.Flags().Int("steps", 0, "stop after this many steps instead of running to DONE")
	runCmd.Flags().String("save", "", "snapshot key to save the automaton under")
}

package main

import (
	"errors"
	"fmt"

	"github.com/tempestive/DFAnet"
)

// The built-in parity classifier: START feeds into CHECK, CHECK branches on
// the parity of the value, and both branches converge on DONE.
const (
	parityStart dfanet.StateID = iota
	parityCheck
	parityEven
	parityOdd
	parityDone
)

// parityClassifier is a concrete automaton type. The guards read the
// mutable value field through their closures; the value itself travels in
// the START state's payload so a saved run can be resumed with the same
// input.
type parityClassifier struct {
	value int
}

func (p *parityClassifier) definition() dfanet.Definition {
	return dfanet.Definition{
		Name: "parity",
		States: func(g dfanet.Graph) error {
			g.Register(dfanet.State{ID: parityStart, Name: "start", Data: map[string]any{"value": p.value}})
			g.Register(dfanet.State{ID: parityCheck, Name: "check"})
			g.Register(dfanet.State{ID: parityEven, Name: "even", Behavior: func() error {
				fmt.Printf("%d is even\n", p.value)
				return nil
			}})
			g.Register(dfanet.State{ID: parityOdd, Name: "odd", Behavior: func() error {
				fmt.Printf("%d is odd\n", p.value)
				return nil
			}})
			g.Register(dfanet.State{ID: parityDone, Name: "done"})
			return nil
		},
		Transitions: func(g dfanet.Graph) error {
			if err := g.Link(parityStart, parityCheck, nil); err != nil {
				return err
			}
			if err := g.Link(parityCheck, parityEven, func() (bool, error) {
				return p.value%2 == 0, nil
			}); err != nil {
				return err
			}
			if err := g.Link(parityCheck, parityOdd, func() (bool, error) {
				return p.value%2 != 0, nil
			}); err != nil {
				return err
			}
			if err := g.Link(parityEven, parityDone, nil); err != nil {
				return err
			}
			return g.Link(parityOdd, parityDone, nil)
		},
	}
}

// adoptValue reads the classified value back out of a loaded automaton's
// START payload, so the rebound guards see the saved input.
func (p *parityClassifier) adoptValue(a dfanet.Automaton) error {
	start, err := a.GetState(parityStart)
	if err != nil {
		return err
	}
	switch v := start.Data["value"].(type) {
	case int:
		p.value = v
	case float64: // JSON numbers decode as float64
		p.value = int(v)
	default:
		return fmt.Errorf("snapshot carries no usable value (got %T)", start.Data["value"])
	}
	return nil
}

// drive steps the automaton until it reaches DONE, a step blocks, or the
// graph runs out of edges.
func drive(a dfanet.Automaton) error {
	for {
		if current, ok := a.Current(); ok && current == parityDone {
			return nil
		}
		res, err := a.Step()
		if err != nil {
			if errors.Is(err, dfanet.ErrNoOutgoingTransition) {
				return nil
			}
			return err
		}
		if !res.Moved {
			return fmt.Errorf("automaton blocked in state %d", res.From)
		}
	}
}

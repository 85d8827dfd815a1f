package dfanet

// Guard combinators. A nil Guard is always open; every combinator treats a
// nil member the same way.

// GuardIf wraps a plain predicate into a Guard that never fails.
func GuardIf(pred func() bool) Guard {
	return func() (bool, error) {
		return pred(), nil
	}
}

// Not inverts a guard. Evaluation errors pass through.
func Not(g Guard) Guard {
	return func() (bool, error) {
		if g == nil {
			return false, nil
		}
		open, err := g()
		if err != nil {
			return false, err
		}
		return !open, nil
	}
}

// AllOf is open when every guard is open. Evaluation stops at the first
// closed guard or error.
func AllOf(guards ...Guard) Guard {
	return func() (bool, error) {
		for _, g := range guards {
			if g == nil {
				continue
			}
			open, err := g()
			if err != nil {
				return false, err
			}
			if !open {
				return false, nil
			}
		}
		return true, nil
	}
}

// AnyOf is open when at least one guard is open. Evaluation stops at the
// first open guard or error; with no guards it is closed.
func AnyOf(guards ...Guard) Guard {
	return func() (bool, error) {
		for _, g := range guards {
			if g == nil {
				return true, nil
			}
			open, err := g()
			if err != nil {
				return false, err
			}
			if open {
				return true, nil
			}
		}
		return false, nil
	}
}

package domain

// Chain is an ordered list of value documents making up one overlay
// chain, lowest precedence first and the most specific layer last.
type Chain []Value

// Resolve folds the chain left-to-right with DeepMerge and returns the
// single merged document. The fold is associative under fixed order, so
// intermediate results may themselves be resolved again without
// changing the outcome.
func Resolve(chain Chain) (Value, error) {
	if len(chain) == 0 {
		return Value{}, ErrEmptyChain
	}
	resolved := chain[0]
	for _, layer := range chain[1:] {
		resolved = DeepMerge(resolved, layer)
	}
	return resolved, nil
}

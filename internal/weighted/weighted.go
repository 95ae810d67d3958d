// Package weighted implements weighted random selection over a fixed,
// ordered list of categories.
package weighted

// Source is the randomness needed by Select. *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Entry pairs a category with its relative weight.
// Negative weights are treated as zero.
type Entry[C any] struct {
	Value  C
	Weight int
}

// Total returns the sum of all non-negative weights.
func Total[C any](entries []Entry[C]) int {
	total := 0
	for _, e := range entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return total
}

// Select draws one category with probability weight/total.
// When the total weight is not positive it returns fallback without
// consuming a draw from src.
func Select[C any](src Source, entries []Entry[C], fallback C) C {
	total := Total(entries)
	if total <= 0 {
		return fallback
	}
	return Pick(src.Intn(total), entries, fallback)
}

// Pick maps a draw in [0, Total(entries)) to a category by walking entries
// in slice order and accumulating weights. Zero-weight entries are never
// chosen. Out-of-range draws return fallback.
func Pick[C any](draw int, entries []Entry[C], fallback C) C {
	if draw < 0 {
		return fallback
	}
	acc := 0
	for _, e := range entries {
		if e.Weight <= 0 {
			continue
		}
		acc += e.Weight
		if draw < acc {
			return e.Value
		}
	}
	return fallback
}

package rewrite

// QueryRule is a partial read-only fold function: q : Node ⇀ T.
type QueryRule[T any] func(n Node) (T, bool)

// Accumulate folds a non-empty list of per-node query results into one
// value: accumulate : list<T> → T.
type Accumulate[T any] func(results []T) T

// Query is a read-only fold: identical traversal to a Strategy, but
// instead of rebuilding the tree, per-node matches are gathered into a
// list and folded with Accumulate. A subtree with no matches contributes
// nothing; Execute returns the neutral element when the whole traversal
// finds no match.
type Query[T any] struct {
	rule       QueryRule[T]
	neutral    T
	accumulate Accumulate[T]
	filter     RecurseFilter
}

// NewQuery builds a Query from a partial rule, its neutral element, and
// its aggregator.
func NewQuery[T any](rule QueryRule[T], neutral T, accumulate Accumulate[T]) *Query[T] {
	return &Query[T]{rule: rule, neutral: neutral, accumulate: accumulate}
}

// WithRecurseFilter sets the per-node child-selection filter.
func (q *Query[T]) WithRecurseFilter(f RecurseFilter) *Query[T] {
	q.filter = f
	return q
}

// Execute folds q over n and returns the aggregated result.
func (q *Query[T]) Execute(n Node) T {
	results := q.collect(n)
	if len(results) == 0 {
		return q.neutral
	}
	return q.accumulate(results)
}

func (q *Query[T]) collect(n Node) []T {
	var results []T
	if q.rule != nil {
		if v, ok := q.rule(n); ok {
			results = append(results, v)
		}
	}
	children := n.Children()
	if len(children) == 0 {
		return results
	}
	sel := q.filter.selection(n, len(children))
	for i, c := range children {
		if i < len(sel) && sel[i] {
			sub := q.collect(c)
			if len(sub) == 0 {
				continue
			}
			if len(sub) == 1 {
				results = append(results, sub[0])
				continue
			}
			results = append(results, q.accumulate(sub))
		}
	}
	return results
}

// CountQuery builds a Query that counts nodes matching match, folding
// with integer addition and a neutral element of 0.
func CountQuery(match func(Node) bool) *Query[int] {
	return NewQuery(func(n Node) (int, bool) {
		if match(n) {
			return 1, true
		}
		return 0, false
	}, 0, func(results []int) int {
		sum := 0
		for _, r := range results {
			sum += r
		}
		return sum
	})
}

// CollectQuery builds a Query that gathers extract(n) for every node
// where match(n) is true, preserving traversal order, into a single
// slice. Go does not allow a type-parameterized method on an exported
// constructor family the way Strategy/StrategyC/StrategyA are
// constructed, so this is a standalone function rather than a method.
func CollectQuery[T any](match func(Node) bool, extract func(Node) T) *Query[[]T] {
	return NewQuery(func(n Node) ([]T, bool) {
		if match(n) {
			return []T{extract(n)}, true
		}
		return nil, false
	}, nil, func(results [][]T) []T {
		var all []T
		for _, r := range results {
			all = append(all, r...)
		}
		return all
	})
}

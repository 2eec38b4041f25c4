package seed

// Step is one rung of a cumulative-probability ladder.
type Step[T any] struct {
	Value      T
	Cumulative float64
}

// Ladder maps a single uniform draw in [0, 1) onto weighted outcomes.
// Steps must be ordered by ascending Cumulative.
type Ladder[T any] []Step[T]

// Pick returns the first value whose cumulative threshold exceeds draw.
// A draw past every threshold falls through to the last step.
func (l Ladder[T]) Pick(draw float64) T {
	for _, s := range l {
		if draw < s.Cumulative {
			return s.Value
		}
	}
	return l[len(l)-1].Value
}

// PickFrom draws once from src.
func (l Ladder[T]) PickFrom(src Source) T {
	return l.Pick(src.Float64())
}

package model

import "golang.org/x/exp/constraints"

// Number is any counter or measurement a Stat can hold.
type Number interface {
	constraints.Integer | constraints.Float
}

// Stat holds one counter split by side. Total always equals Marines + Aliens
// because the only way to change a Stat is Add or Plus.
type Stat[T Number] struct {
	Total   T `json:"total"`
	Marines T `json:"marines"`
	Aliens  T `json:"aliens"`
}

// Add credits v to the given side and to the total. TeamNone is ignored.
func (s *Stat[T]) Add(team Team, v T) {
	switch team {
	case TeamMarines:
		s.Marines += v
	case TeamAliens:
		s.Aliens += v
	default:
		return
	}
	s.Total += v
}

// Get returns the value for a side; TeamNone returns the total.
func (s Stat[T]) Get(team Team) T {
	switch team {
	case TeamMarines:
		return s.Marines
	case TeamAliens:
		return s.Aliens
	default:
		return s.Total
	}
}

// Plus returns the field-wise sum of two stats.
func (s Stat[T]) Plus(o Stat[T]) Stat[T] {
	return Stat[T]{
		Total:   s.Total + o.Total,
		Marines: s.Marines + o.Marines,
		Aliens:  s.Aliens + o.Aliens,
	}
}

// Ratio divides num by den side by side. A zero denominator gives NaN or ±Inf;
// callers decide how to display or skip those.
func Ratio[T Number](num, den Stat[T]) Stat[float64] {
	return Stat[float64]{
		Total:   float64(num.Total) / float64(den.Total),
		Marines: float64(num.Marines) / float64(den.Marines),
		Aliens:  float64(num.Aliens) / float64(den.Aliens),
	}
}

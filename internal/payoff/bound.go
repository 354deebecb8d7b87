package payoff

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// BoundKind tags whether an extremum is a finite value or grows without limit.
type BoundKind int

const (
	Bounded BoundKind = iota
	UnboundedAbove
	UnboundedBelow
)

// Bound is a maximum gain or maximum loss figure. Unbounded values are kept as
// tags so infinity never leaks into arithmetic; use Float64 only for display.
type Bound struct {
	Kind  BoundKind
	Value float64
}

// Finite returns a bounded figure.
func Finite(v float64) Bound {
	return Bound{Kind: Bounded, Value: v}
}

// UnlimitedGain returns the tag for gain that grows without limit.
func UnlimitedGain() Bound {
	return Bound{Kind: UnboundedAbove}
}

// UnlimitedLoss returns the tag for loss that grows without limit.
func UnlimitedLoss() Bound {
	return Bound{Kind: UnboundedBelow}
}

// IsBounded reports whether the figure is finite.
func (b Bound) IsBounded() bool {
	return b.Kind == Bounded
}

// Float64 converts the figure to a float, mapping the unbounded tags to ±Inf.
func (b Bound) Float64() float64 {
	switch b.Kind {
	case UnboundedAbove:
		return math.Inf(1)
	case UnboundedBelow:
		return math.Inf(-1)
	}
	return b.Value
}

func (b Bound) String() string {
	switch b.Kind {
	case UnboundedAbove:
		return "unlimited"
	case UnboundedBelow:
		return "-unlimited"
	}
	return strconv.FormatFloat(b.Value, 'f', 2, 64)
}

// MarshalJSON encodes finite figures as numbers and unbounded ones as "+inf"/"-inf".
func (b Bound) MarshalJSON() ([]byte, error) {
	switch b.Kind {
	case UnboundedAbove:
		return []byte(`"+inf"`), nil
	case UnboundedBelow:
		return []byte(`"-inf"`), nil
	}
	return json.Marshal(b.Value)
}

// UnmarshalJSON accepts the encoding produced by MarshalJSON.
func (b *Bound) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch s {
		case "+inf":
			*b = UnlimitedGain()
		case "-inf":
			*b = UnlimitedLoss()
		default:
			return fmt.Errorf("invalid bound %q", s)
		}
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("invalid bound: %w", err)
	}
	*b = Finite(v)
	return nil
}

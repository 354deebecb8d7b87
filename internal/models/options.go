// Package models provides domain models for the payoff analyzer.
package models

import (
	"fmt"
	"math"
	"strings"

	apperrors "options-payoff/internal/errors"
)

// OptionKind represents the contract type of an option.
type OptionKind string

const (
	Call OptionKind = "CALL"
	Put  OptionKind = "PUT"
)

// Direction represents whether a leg is bought or written.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// Position represents one leg of an option strategy.
//
// ID, Label, Color and Hidden belong to the presentation layer; the payoff
// engine reads only Kind, Direction, Strike, Premium and Quantity.
type Position struct {
	ID        string     `json:"id,omitempty" mapstructure:"id" toml:"id,omitempty"`
	Label     string     `json:"label,omitempty" mapstructure:"label" toml:"label,omitempty"`
	Kind      OptionKind `json:"kind" mapstructure:"kind" toml:"kind"`
	Direction Direction  `json:"direction" mapstructure:"direction" toml:"direction"`
	Strike    float64    `json:"strike" mapstructure:"strike" toml:"strike"`
	Premium   float64    `json:"premium" mapstructure:"premium" toml:"premium"`
	Quantity  int        `json:"quantity" mapstructure:"quantity" toml:"quantity"`
	Color     string     `json:"color,omitempty" mapstructure:"color" toml:"color,omitempty"`
	Hidden    bool       `json:"hidden,omitempty" mapstructure:"hidden" toml:"hidden,omitempty"`
}

// NewPosition creates a leg with the given terms.
func NewPosition(kind OptionKind, dir Direction, strike, premium float64, qty int) Position {
	return Position{
		Kind:      kind,
		Direction: dir,
		Strike:    strike,
		Premium:   premium,
		Quantity:  qty,
	}
}

// Valid reports whether the leg can take part in payoff calculations.
// Legs are routinely half-edited, so invalid ones are skipped rather than rejected.
func (p Position) Valid() bool {
	if math.IsNaN(p.Strike) || math.IsInf(p.Strike, 0) {
		return false
	}
	if math.IsNaN(p.Premium) || math.IsInf(p.Premium, 0) {
		return false
	}
	if p.Kind != Call && p.Kind != Put {
		return false
	}
	if p.Direction != Long && p.Direction != Short {
		return false
	}
	return p.Strike > 0 && p.Premium >= 0 && p.Quantity > 0
}

// IsCall reports whether the leg is a call.
func (p Position) IsCall() bool { return p.Kind == Call }

// IsLong reports whether the leg is bought.
func (p Position) IsLong() bool { return p.Direction == Long }

// WithKind returns a copy of the leg with a different contract type.
func (p Position) WithKind(kind OptionKind) Position {
	p.Kind = kind
	return p
}

// WithDirection returns a copy of the leg with a different direction.
func (p Position) WithDirection(dir Direction) Position {
	p.Direction = dir
	return p
}

// WithStrike returns a copy of the leg with a different strike.
func (p Position) WithStrike(strike float64) Position {
	p.Strike = strike
	return p
}

// WithPremium returns a copy of the leg with a different premium.
func (p Position) WithPremium(premium float64) Position {
	p.Premium = premium
	return p
}

// WithQuantity returns a copy of the leg with a different quantity.
func (p Position) WithQuantity(qty int) Position {
	p.Quantity = qty
	return p
}

// Mirror returns the opposite side of the same contract.
func (p Position) Mirror() Position {
	if p.Direction == Long {
		return p.WithDirection(Short)
	}
	return p.WithDirection(Long)
}

// String renders the leg in the compact leg syntax, e.g. "LONG CALL 100@5x2".
func (p Position) String() string {
	return fmt.Sprintf("%s %s %s@%sx%d", p.Direction, p.Kind,
		trimFloat(p.Strike), trimFloat(p.Premium), p.Quantity)
}

// ParseKind parses a contract type.
func ParseKind(s string) (OptionKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "call", "c", "ce":
		return Call, nil
	case "put", "p", "pe":
		return Put, nil
	}
	return "", apperrors.NewValidationError("kind", s, "must be call or put")
}

// ParseDirection parses a leg direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "buy", "b":
		return Long, nil
	case "short", "sell", "s":
		return Short, nil
	}
	return "", apperrors.NewValidationError("direction", s, "must be long or short")
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.4f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

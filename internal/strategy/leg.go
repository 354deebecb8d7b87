package strategy

import (
	"strconv"
	"strings"

	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/models"
)

// ParseLeg parses the compact leg syntax used on the command line:
//
//	<direction> <kind> <strike>@<premium>[x<quantity>]
//
// for example "long call 100@5", "sell pe 95@2.5x3".
func ParseLeg(s string) (models.Position, error) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return models.Position{}, apperrors.NewLegError(s, "expected '<direction> <kind> <strike>@<premium>[x<qty>]'", nil)
	}

	dir, err := models.ParseDirection(fields[0])
	if err != nil {
		return models.Position{}, apperrors.NewLegError(s, "bad direction", err)
	}
	kind, err := models.ParseKind(fields[1])
	if err != nil {
		return models.Position{}, apperrors.NewLegError(s, "bad kind", err)
	}

	terms := strings.ToLower(fields[2])
	qty := 1
	if i := strings.LastIndex(terms, "x"); i >= 0 {
		qty, err = strconv.Atoi(terms[i+1:])
		if err != nil || qty <= 0 {
			return models.Position{}, apperrors.NewLegError(s, "quantity must be a positive integer", err)
		}
		terms = terms[:i]
	}

	strikeStr, premiumStr, ok := strings.Cut(terms, "@")
	if !ok {
		return models.Position{}, apperrors.NewLegError(s, "missing '@' between strike and premium", nil)
	}
	strike, err := strconv.ParseFloat(strikeStr, 64)
	if err != nil {
		return models.Position{}, apperrors.NewLegError(s, "bad strike", err)
	}
	premium, err := strconv.ParseFloat(premiumStr, 64)
	if err != nil {
		return models.Position{}, apperrors.NewLegError(s, "bad premium", err)
	}

	return models.NewPosition(kind, dir, strike, premium, qty), nil
}

// ParseLegs parses several legs, stopping at the first error.
func ParseLegs(specs []string) ([]models.Position, error) {
	legs := make([]models.Position, 0, len(specs))
	for _, s := range specs {
		p, err := ParseLeg(s)
		if err != nil {
			return nil, err
		}
		legs = append(legs, p)
	}
	return legs, nil
}

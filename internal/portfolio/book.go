// Package portfolio holds the editable set of legs behind the CLI views.
package portfolio

import (
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/models"
	"options-payoff/internal/palette"
)

// Book is an in-memory, ordered collection of legs. Analytics never see the
// Book itself, only copies returned by Snapshot or Visible.
type Book struct {
	mu     sync.RWMutex
	legs   []models.Position
	colors *palette.Allocator
	logger zerolog.Logger
}

// NewBook creates an empty book that colours new legs with the allocator.
func NewBook(colors *palette.Allocator, logger zerolog.Logger) *Book {
	if colors == nil {
		colors = palette.NewAllocator(palette.DefaultConfig())
	}
	return &Book{
		colors: colors,
		logger: logger,
	}
}

// Add appends a leg, assigning an ID and a colour when it has none.
func (b *Book) Add(p models.Position) models.Position {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Color == "" {
		p.Color = b.colors.Next().Hex()
	}

	b.mu.Lock()
	b.legs = append(b.legs, p)
	b.mu.Unlock()

	b.logger.Debug().
		Str("leg_id", p.ID).
		Str("leg", p.String()).
		Bool("valid", p.Valid()).
		Msg("Leg added")
	return p
}

// AddAll adds several legs in order.
func (b *Book) AddAll(legs []models.Position) []models.Position {
	added := make([]models.Position, 0, len(legs))
	for _, p := range legs {
		added = append(added, b.Add(p))
	}
	return added
}

// Update replaces the leg with the result of fn. fn receives a copy, so typical
// callers chain the With* setters: book.Update(id, func(p) { return p.WithStrike(105) }).
func (b *Book) Update(id string, fn func(models.Position) models.Position) (models.Position, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return models.Position{}, apperrors.Wrapf(apperrors.ErrPositionNotFound, "update %s", id)
	}
	updated := fn(b.legs[i])
	updated.ID = id
	b.legs[i] = updated

	b.logger.Debug().Str("leg_id", id).Str("leg", updated.String()).Msg("Leg updated")
	return updated, nil
}

// Remove deletes the leg.
func (b *Book) Remove(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return apperrors.Wrapf(apperrors.ErrPositionNotFound, "remove %s", id)
	}
	b.legs = append(b.legs[:i], b.legs[i+1:]...)
	b.logger.Debug().Str("leg_id", id).Msg("Leg removed")
	return nil
}

// Toggle flips the visibility of the leg on the chart and returns the new state.
func (b *Book) Toggle(id string) (visible bool, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(id)
	if i < 0 {
		return false, apperrors.Wrapf(apperrors.ErrPositionNotFound, "toggle %s", id)
	}
	b.legs[i].Hidden = !b.legs[i].Hidden
	return !b.legs[i].Hidden, nil
}

// SetAllVisible shows or hides every leg.
func (b *Book) SetAllVisible(visible bool) {
	b.mu.Lock()
	for i := range b.legs {
		b.legs[i].Hidden = !visible
	}
	b.mu.Unlock()
}

// Get returns the leg with the given ID.
func (b *Book) Get(id string) (models.Position, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	i := b.indexOf(id)
	if i < 0 {
		return models.Position{}, apperrors.Wrapf(apperrors.ErrPositionNotFound, "get %s", id)
	}
	return b.legs[i], nil
}

// Snapshot returns a copy of every leg, including hidden ones.
func (b *Book) Snapshot() []models.Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Position, len(b.legs))
	copy(out, b.legs)
	return out
}

// Visible returns a copy of the legs shown on the chart.
func (b *Book) Visible() []models.Position {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Position, 0, len(b.legs))
	for _, p := range b.legs {
		if !p.Hidden {
			out = append(out, p)
		}
	}
	return out
}

// Len returns the number of legs.
func (b *Book) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.legs)
}

func (b *Book) indexOf(id string) int {
	for i, p := range b.legs {
		if p.ID == id {
			return i
		}
	}
	return -1
}

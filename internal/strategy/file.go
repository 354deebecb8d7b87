package strategy

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"

	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/models"
)

// File is a user-authored strategy description.
type File struct {
	Name       string            `mapstructure:"name" toml:"name"`
	Underlying string            `mapstructure:"underlying" toml:"underlying,omitempty"`
	Notes      string            `mapstructure:"notes" toml:"notes,omitempty"`
	Legs       []models.Position `mapstructure:"legs" toml:"legs"`
}

var fileTypes = map[string]string{
	".toml": "toml",
	".yaml": "yaml",
	".yml":  "yaml",
	".json": "json",
}

// Load reads a strategy file. The format follows the file extension.
func Load(path string) (*File, error) {
	ext := strings.ToLower(filepath.Ext(path))
	typ, ok := fileTypes[ext]
	if !ok {
		return nil, apperrors.NewStrategyError(path, "load", apperrors.ErrFileFormat)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(typ)
	if err := v.ReadInConfig(); err != nil {
		return nil, apperrors.NewStrategyError(path, "load", err)
	}

	f := &File{}
	if err := v.Unmarshal(f); err != nil {
		return nil, apperrors.NewStrategyError(path, "decode", err)
	}
	if err := f.normalize(quantitySet(v.Get("legs"))); err != nil {
		return nil, apperrors.NewStrategyError(path, "decode", err)
	}
	if f.Name == "" {
		f.Name = strings.TrimSuffix(filepath.Base(path), ext)
	}
	return f, nil
}

// quantitySet reports, per leg, whether the file gave a quantity key.
func quantitySet(raw interface{}) []bool {
	items, _ := raw.([]interface{})
	set := make([]bool, len(items))
	for i, item := range items {
		leg, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		for k := range leg {
			if strings.EqualFold(k, "quantity") {
				set[i] = true
			}
		}
	}
	return set
}

// normalize canonicalises enum spellings and defaults omitted quantities to 1.
// An explicit quantity of 0 is kept so the leg stays invalid.
func (f *File) normalize(hasQty []bool) error {
	for i := range f.Legs {
		p := &f.Legs[i]
		kind, err := models.ParseKind(string(p.Kind))
		if err != nil {
			return apperrors.Wrapf(err, "leg %d", i+1)
		}
		dir, err := models.ParseDirection(string(p.Direction))
		if err != nil {
			return apperrors.Wrapf(err, "leg %d", i+1)
		}
		p.Kind, p.Direction = kind, dir
		if p.Quantity == 0 && (i >= len(hasQty) || !hasQty[i]) {
			p.Quantity = 1
		}
	}
	return nil
}

// Encode writes the strategy as TOML.
func Encode(w io.Writer, f *File) error {
	if err := toml.NewEncoder(w).Encode(f); err != nil {
		return apperrors.NewStrategyError(f.Name, "encode", err)
	}
	return nil
}

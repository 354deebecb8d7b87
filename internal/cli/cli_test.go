package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"options-payoff/internal/chart"
	"options-payoff/internal/config"
	apperrors "options-payoff/internal/errors"
	"options-payoff/internal/models"
	"options-payoff/internal/payoff"
)

var bullCallLegs = []string{"--leg", "long call 100@8", "--leg", "short call 110@3"}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(config.Defaults(), zerolog.Nop())
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

type riskJSON struct {
	Name       string       `json:"name"`
	MaxGain    payoff.Bound `json:"max_gain"`
	MaxLoss    payoff.Bound `json:"max_loss"`
	BreakEvens []float64    `json:"break_evens"`
	NetPremium float64      `json:"net_premium"`
	Ignored    int          `json:"ignored_legs"`
}

func TestAnalyze_JSON(t *testing.T) {
	out, err := run(t, append([]string{"analyze", "--json"}, bullCallLegs...)...)
	require.NoError(t, err)

	var got riskJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "custom", got.Name)
	assert.Equal(t, payoff.Finite(5), got.MaxGain)
	assert.Equal(t, payoff.Finite(-5), got.MaxLoss)
	assert.Equal(t, []float64{105}, got.BreakEvens)
	assert.Equal(t, -5.0, got.NetPremium)
}

func TestAnalyze_TemplateUnlimitedLoss(t *testing.T) {
	out, err := run(t, "analyze", "--json", "--strategy", "straddle", "--strike", "100", "--premium", "4", "--short")
	require.NoError(t, err)

	var got riskJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, payoff.Finite(8), got.MaxGain)
	assert.Equal(t, payoff.UnlimitedLoss(), got.MaxLoss)
	assert.Equal(t, []float64{92, 108}, got.BreakEvens)
	assert.Contains(t, out, `"max_loss": "-inf"`)
}

func TestAnalyze_Text(t *testing.T) {
	out, err := run(t, append([]string{"analyze", "--leg", "long put 0@1"}, bullCallLegs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Max Gain:     5.00")
	assert.Contains(t, out, "Net Premium:  -5.00 (debit)")
	assert.Contains(t, out, "Break-evens:  105.00")
	assert.Contains(t, out, "Ignored legs: 1")
	assert.Contains(t, out, "[ignored]")
	assert.Contains(t, out, "Unlimited")
}

func TestAnalyze_NoLegs(t *testing.T) {
	_, err := run(t, "analyze")
	assert.True(t, apperrors.Is(err, apperrors.ErrEmptyPortfolio))
}

func TestAnalyze_BadLeg(t *testing.T) {
	_, err := run(t, "analyze", "--leg", "long call 100")
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidLeg))
}

func TestAt(t *testing.T) {
	out, err := run(t, append([]string{"at", "120", "--json"}, bullCallLegs...)...)
	require.NoError(t, err)

	var got priceReport
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 120.0, got.Price)
	assert.Equal(t, 5.0, got.Total)
	require.Len(t, got.Legs, 2)
	assert.Equal(t, 12.0, got.Legs[0].Value)
	assert.Equal(t, -7.0, got.Legs[1].Value)

	_, err = run(t, append([]string{"at", "abc"}, bullCallLegs...)...)
	assert.True(t, apperrors.Is(err, apperrors.ErrInputValidation))
}

func TestCurve_CSV(t *testing.T) {
	out, err := run(t, append([]string{"curve", "--csv", "--from", "90", "--to", "120", "--points", "4", "--strikes=false"}, bullCallLegs...)...)
	require.NoError(t, err)

	var rows []chart.Row
	require.NoError(t, gocsv.UnmarshalString(out, &rows))
	assert.Equal(t, []chart.Row{{Price: 90, Total: -5}, {Price: 100, Total: -5}, {Price: 110, Total: 5}, {Price: 120, Total: 5}}, rows)
}

func TestCurve_BadRange(t *testing.T) {
	_, err := run(t, append([]string{"curve", "--from", "120", "--to", "90"}, bullCallLegs...)...)
	assert.True(t, apperrors.Is(err, apperrors.ErrInputValidation))
}

func TestChart_Text(t *testing.T) {
	out, err := run(t, append([]string{"chart", "--from", "90", "--to", "120", "--width", "31", "--height", "11", "--legs"}, bullCallLegs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Break-evens 105.00")
	assert.Contains(t, out, string(chart.GlyphBreakEven))
	assert.Contains(t, out, string(chart.GlyphStrike))
}

func TestStrategyList(t *testing.T) {
	out, err := run(t, "strategy", "list", "--json")
	require.NoError(t, err)

	var list []struct {
		Name string `json:"name"`
		Legs int    `json:"legs"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &list))
	assert.Len(t, list, 11)
	assert.Equal(t, "bear-put-spread", list[0].Name)
}

func TestStrategyBuild_WritesFileForAnalyze(t *testing.T) {
	path := filepath.Join(t.TempDir(), "condor.toml")
	_, err := run(t, "strategy", "build", "iron-condor", "--strike", "100", "--spacing", "5",
		"--premium", "1,3,3,1", "--out", path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `name = "iron-condor"`)

	out, err := run(t, "analyze", "--json", "--file", path)
	require.NoError(t, err)
	var got riskJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, payoff.Finite(4), got.MaxGain)
	assert.Equal(t, payoff.Finite(-1), got.MaxLoss)
	assert.Equal(t, []float64{91, 109}, got.BreakEvens)
}

func TestStrategyBuild_Errors(t *testing.T) {
	_, err := run(t, "strategy", "build", "jade-lizard", "--strike", "100")
	assert.True(t, apperrors.Is(err, apperrors.ErrUnknownStrategy))

	_, err = run(t, "strategy", "build", "straddle")
	assert.True(t, apperrors.Is(err, apperrors.ErrInputValidation))
}

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "spread.toml")
	require.NoError(t, os.WriteFile(good, []byte(`
[[legs]]
kind = "call"
direction = "long"
strike = 100
premium = 8

[[legs]]
kind = "call"
direction = "short"
strike = 110
premium = 3
`), 0644))
	bad := filepath.Join(dir, "notes.txt")

	out, err := run(t, "batch", "--json", "--parallel", "2", good, bad, good)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 files failed")

	var results []batchResult
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.Equal(t, good, results[0].Path)
	assert.Equal(t, "spread", results[0].Name)
	assert.Equal(t, []float64{105}, results[0].Risk.BreakEvens)
	assert.NotEmpty(t, results[1].Error)
	assert.Nil(t, results[1].Risk)
	assert.Equal(t, results[0].Risk, results[2].Risk)
}

func TestPalette(t *testing.T) {
	out, err := run(t, "palette", "4", "--seed", "7", "--json")
	require.NoError(t, err)

	var colors []struct {
		Hex string `json:"hex"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &colors))
	assert.Len(t, colors, 4)
	for _, c := range colors {
		assert.Regexp(t, `^#[0-9a-f]{6}$`, c.Hex)
	}

	_, err = run(t, "palette", "0")
	assert.Error(t, err)
}

func TestVersionAndConfig(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, Version)

	out, err = run(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	out, err = run(t, "config", "show", "--json")
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, `"breakeven_tolerance": 0.01`), out)
}

func TestRootCmd_FlagsDoNotCollide(t *testing.T) {
	require.NotPanics(t, func() { NewRootCmd(config.Defaults(), zerolog.Nop()) })

	out, err := run(t, "chart", "--strategy", "iron-condor", "--strike", "100", "--spacing", "5",
		"--premium", "1,3,3,1", "--width", "40", "--height", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "Break-evens 91.00, 109.00")

	out, err = run(t, append([]string{"chart", "--width", "40"}, bullCallLegs...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "Break-evens 105.00")
}

func TestAnalyze_EditedLegs(t *testing.T) {
	out, err := run(t, append([]string{"analyze", "--json", "--set", "2:strike=120"}, bullCallLegs...)...)
	require.NoError(t, err)
	var got riskJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, payoff.Finite(15), got.MaxGain)
	assert.Equal(t, payoff.Finite(-5), got.MaxLoss)
	assert.Equal(t, []float64{105}, got.BreakEvens)

	out, err = run(t, append([]string{"analyze", "--json", "--drop", "2"}, bullCallLegs...)...)
	require.NoError(t, err)
	got = riskJSON{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, payoff.UnlimitedGain(), got.MaxGain)
	assert.Equal(t, []float64{108}, got.BreakEvens)

	out, err = run(t, append([]string{"analyze", "--json", "--set", "2:qty=0"}, bullCallLegs...)...)
	require.NoError(t, err)
	got = riskJSON{}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 1, got.Ignored)
	assert.Equal(t, payoff.UnlimitedGain(), got.MaxGain)
}

func TestLoadBook_AppliesEditsInOrder(t *testing.T) {
	app := NewApp(config.Defaults(), zerolog.Nop())
	cmd := newChartCmd(app)
	for _, leg := range []string{"long call 100@8", "short call 110@3", "long put 90@2"} {
		require.NoError(t, cmd.Flags().Set("leg", leg))
	}
	require.NoError(t, cmd.Flags().Set("set", "1:premium=6"))
	require.NoError(t, cmd.Flags().Set("set", "2:kind=put"))
	require.NoError(t, cmd.Flags().Set("set", "2:direction=long"))
	require.NoError(t, cmd.Flags().Set("hide", "2"))
	require.NoError(t, cmd.Flags().Set("drop", "3"))

	book, name, err := app.loadBook(cmd)
	require.NoError(t, err)
	assert.Equal(t, "custom", name)

	legs := book.Snapshot()
	require.Len(t, legs, 2)
	assert.Equal(t, 6.0, legs[0].Premium)
	assert.Equal(t, models.Put, legs[1].Kind)
	assert.Equal(t, models.Long, legs[1].Direction)
	assert.Equal(t, 110.0, legs[1].Strike)

	visible := book.Visible()
	require.Len(t, visible, 1)
	assert.Equal(t, legs[0].ID, visible[0].ID)
}

func TestLoadBook_HideAllAndNone(t *testing.T) {
	app := NewApp(config.Defaults(), zerolog.Nop())

	cmd := newChartCmd(app)
	require.NoError(t, cmd.Flags().Set("leg", "long call 100@8"))
	require.NoError(t, cmd.Flags().Set("hide", "all"))
	book, _, err := app.loadBook(cmd)
	require.NoError(t, err)
	assert.Empty(t, book.Visible())

	cmd = newChartCmd(app)
	require.NoError(t, cmd.Flags().Set("leg", "long call 100@8"))
	require.NoError(t, cmd.Flags().Set("hide", "all"))
	require.NoError(t, cmd.Flags().Set("hide", "none"))
	book, _, err = app.loadBook(cmd)
	require.NoError(t, err)
	assert.Len(t, book.Visible(), 1)
}

func TestLoadBook_EditErrors(t *testing.T) {
	for _, args := range [][]string{
		{"--set", "3:strike=100"},
		{"--set", "1:colour=red"},
		{"--set", "1:strike=abc"},
		{"--set", "strike=100"},
		{"--hide", "first"},
		{"--drop", "0"},
	} {
		_, err := run(t, append(append([]string{"analyze"}, args...), bullCallLegs...)...)
		assert.True(t, apperrors.Is(err, apperrors.ErrInputValidation), "%v gave %v", args, err)
	}

	_, err := run(t, append([]string{"analyze", "--drop", "1", "--drop", "2"}, bullCallLegs...)...)
	assert.True(t, apperrors.Is(err, apperrors.ErrEmptyPortfolio))
}

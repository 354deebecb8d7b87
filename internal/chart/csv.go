package chart

import (
	"io"

	"github.com/gocarina/gocsv"

	"options-payoff/internal/models"
	"options-payoff/internal/payoff"
)

// Row is one line of the P&L table.
type Row struct {
	Price float64 `csv:"price" json:"price"`
	Total float64 `csv:"total" json:"total"`
}

// Rows evaluates the portfolio at each price.
func Rows(prices []float64, portfolio []models.Position) []Row {
	rows := make([]Row, len(prices))
	for i, x := range prices {
		rows[i] = Row{Price: x, Total: payoff.PortfolioPayoffAt(x, portfolio)}
	}
	return rows
}

// WriteCSV writes the rows with a header line.
func WriteCSV(w io.Writer, rows []Row) error {
	return gocsv.Marshal(&rows, w)
}

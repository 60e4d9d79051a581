package score

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/katalvlaran/railnet/network"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Column indices of the score matrix.
const (
	ColRidership = iota
	ColRevenue
	ColLength
	numCols
)

// Table is an ordered comparison of scored networks.
type Table struct {
	rows []Row
}

// NewTable returns a table over a copy of rows.
func NewTable(rows ...Row) *Table {
	return &Table{rows: slices.Clone(rows)}
}

// FromNetworks scores every network and keeps their order.
func FromNetworks(nets []network.Network, m Metrics) (*Table, error) {
	rows := make([]Row, len(nets))
	for i, nw := range nets {
		r, err := ScoreNetwork(nw, m)
		if err != nil {
			return nil, err
		}
		rows[i] = r
	}

	return &Table{rows: rows}, nil
}

// Rows returns a copy of the rows in insertion order.
func (t *Table) Rows() []Row { return slices.Clone(t.rows) }

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Matrix returns the rows as a len×3 matrix (ridership, revenue, length).
// It returns nil for an empty table.
func (t *Table) Matrix() *mat.Dense {
	if len(t.rows) == 0 {
		return nil
	}
	data := make([]float64, 0, len(t.rows)*numCols)
	for _, r := range t.rows {
		data = append(data, r.Ridership, r.Revenue, r.Length)
	}

	return mat.NewDense(len(t.rows), numCols, data)
}

// Means returns the column means (ridership, revenue, length).
func (t *Table) Means() [numCols]float64 {
	var means [numCols]float64
	m := t.Matrix()
	if m == nil {
		return means
	}
	for j := 0; j < numCols; j++ {
		means[j] = stat.Mean(mat.Col(nil, j, m), nil)
	}

	return means
}

// Normalized returns a new table in which every column is divided by its
// mean across rows. A column whose mean is zero stays zero.
func (t *Table) Normalized() *Table {
	m := t.Matrix()
	if m == nil {
		return &Table{}
	}
	means := t.Means()

	var norm mat.Dense
	norm.Apply(func(_, j int, v float64) float64 {
		if means[j] == 0 {
			return 0
		}
		return v / means[j]
	}, m)

	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		out[i] = Row{
			Name:      r.Name,
			Objective: r.Objective,
			Ridership: norm.At(i, ColRidership),
			Revenue:   norm.At(i, ColRevenue),
			Length:    norm.At(i, ColLength),
		}
	}

	return &Table{rows: out}
}

// displayRank orders rows as the comparison chart does: the two track-length
// networks first, then ridership and revenue.
var displayRank = map[network.Objective]int{
	network.MinTrackLength:     0,
	network.MinTrackLengthLoop: 1,
	network.MaxRidership:       2,
	network.MaxRevenue:         3,
}

// Display returns the rows in chart order. Rows of unknown objectives keep
// their relative order after the known ones.
func (t *Table) Display() []Row {
	rows := t.Rows()
	slices.SortStableFunc(rows, func(a, b Row) int {
		return rank(a) - rank(b)
	})

	return rows
}

func rank(r Row) int {
	if k, ok := displayRank[r.Objective]; ok {
		return k
	}

	return len(displayRank)
}

// Format writes the table in report units as aligned text columns.
func (t *Table) Format(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, "network\tridership (1e10)\trevenue (1e12)\tlength (km)\t"); err != nil {
		return err
	}
	for _, r := range t.rows {
		rep := r.Report()
		if _, err := fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.0f\t\n", rep.Name, rep.Ridership, rep.Revenue, rep.Length); err != nil {
			return err
		}
	}

	return tw.Flush()
}

// FormatNormalized writes the normalized table as aligned text columns.
func (t *Table) FormatNormalized(w io.Writer) error {
	n := t.Normalized()
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	if _, err := fmt.Fprintln(tw, "network\tridership\trevenue\tlength\t"); err != nil {
		return err
	}
	for _, r := range n.rows {
		if _, err := fmt.Fprintf(tw, "%s\t%.3f\t%.3f\t%.3f\t\n", r.Name, r.Ridership, r.Revenue, r.Length); err != nil {
			return err
		}
	}

	return tw.Flush()
}

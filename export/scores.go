package export

import (
	"io"

	"github.com/gocarina/gocsv"
	"github.com/katalvlaran/railnet/score"
)

// ScoreRecord is one CSV row of a score table.
type ScoreRecord struct {
	Network   string  `csv:"network"`
	Objective string  `csv:"objective"`
	Ridership float64 `csv:"ridership"`
	Revenue   float64 `csv:"revenue"`
	Length    float64 `csv:"length_km"`
}

// WriteScoresCSV writes the rows of t in display order. With normalized set
// each column is divided by its mean first.
func WriteScoresCSV(w io.Writer, t *score.Table, normalized bool) error {
	if normalized {
		t = t.Normalized()
	}
	rows := t.Display()
	out := make([]ScoreRecord, len(rows))
	for i, r := range rows {
		out[i] = ScoreRecord{
			Network:   r.Name,
			Objective: r.Objective.Slug(),
			Ridership: r.Ridership,
			Revenue:   r.Revenue,
			Length:    r.Length,
		}
	}

	return gocsv.Marshal(&out, w)
}

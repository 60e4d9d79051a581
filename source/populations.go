package source

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gocarina/gocsv"
)

// ErrNegativePopulation indicates a population below zero.
var ErrNegativePopulation = errors.New("source: negative population")

// PopulationRecord is one row of the population table.
type PopulationRecord struct {
	Code       string `csv:"code"`
	Population int64  `csv:"population"`
}

// ReadPopulations decodes a CSV table with the columns code and population.
// Codes are trimmed of surrounding spaces.
//
// Errors: ErrDuplicateCode, ErrNegativePopulation, or a decode error.
func ReadPopulations(r io.Reader) (map[string]int64, error) {
	var rows []PopulationRecord
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("source: decode populations: %w", err)
	}

	out := make(map[string]int64, len(rows))
	for i, row := range rows {
		code := strings.TrimSpace(row.Code)
		if code == "" {
			return nil, fmt.Errorf("population row %d: %w", i+1, ErrMissingCode)
		}
		if row.Population < 0 {
			return nil, fmt.Errorf("population %s=%d: %w", code, row.Population, ErrNegativePopulation)
		}
		if _, dup := out[code]; dup {
			return nil, fmt.Errorf("population %s: %w", code, ErrDuplicateCode)
		}
		out[code] = row.Population
	}

	return out, nil
}

// WritePopulations encodes populations as a code,population CSV table in
// the order of codes.
func WritePopulations(w io.Writer, codes []string, pop map[string]int64) error {
	rows := make([]PopulationRecord, 0, len(codes))
	for _, c := range codes {
		rows = append(rows, PopulationRecord{Code: c, Population: pop[c]})
	}

	return gocsv.Marshal(&rows, w)
}

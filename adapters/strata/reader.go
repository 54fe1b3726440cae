package strata

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"

	"genodiff/domain/core"
	"genodiff/domain/genetic"
	"genodiff/internal/errors"
	"genodiff/ports"
)

// Reader loads a comma-delimited strata file: the header row names the
// sample-ID column and the stratification levels (outermost first, e.g.
// sample,Country,Breed); each data row assigns one sample a label per level.
type Reader struct {
	filePath string
}

// NewReader creates a strata reader.
func NewReader(filePath string) *Reader {
	return &Reader{filePath: filePath}
}

var _ ports.StrataReader = (*Reader)(nil)

// ReadScheme reads the file into a stratification scheme.
func (r *Reader) ReadScheme() (*genetic.Scheme, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	if len(rows) < 2 {
		return nil, errors.ParseError(r.filePath, fmt.Errorf(
			"strata file needs a header row and at least one sample row"))
	}

	header := lo.Map(rows[0], func(h string, _ int) string { return strings.TrimSpace(h) })
	if len(header) < 2 {
		return nil, errors.ParseError(r.filePath, fmt.Errorf(
			"header needs a sample column and at least one stratification level"))
	}
	levels := header[1:]
	if len(lo.Uniq(levels)) != len(levels) {
		return nil, errors.ParseError(r.filePath, fmt.Errorf("duplicate level names in header"))
	}

	assignments := make(map[core.SampleID][]core.StratumLabel, len(rows)-1)
	for rowNum, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, errors.ParseError(r.filePath, fmt.Errorf(
				"row %d has %d cells, header has %d", rowNum+2, len(row), len(header)))
		}

		id, err := core.ParseSampleID(row[0])
		if err != nil {
			return nil, errors.ParseError(r.filePath, fmt.Errorf("row %d: %w", rowNum+2, err))
		}
		if _, dup := assignments[id]; dup {
			return nil, errors.ParseError(r.filePath, fmt.Errorf(
				"row %d: sample %q assigned twice", rowNum+2, id))
		}

		labels := make([]core.StratumLabel, len(levels))
		for i, cell := range row[1:] {
			label, err := core.ParseStratumLabel(cell)
			if err != nil {
				return nil, errors.ParseError(r.filePath, fmt.Errorf(
					"row %d, level %q: %w", rowNum+2, levels[i], err))
			}
			labels[i] = label
		}
		assignments[id] = labels
	}

	scheme, err := genetic.NewScheme(levels, assignments)
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	return scheme, nil
}

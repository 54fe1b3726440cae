package genotype

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"genodiff/domain/core"
	"genodiff/domain/genetic"
	"genodiff/internal/errors"
	"genodiff/ports"
)

// Reader handles reading tabular genotype files in Excel or CSV form. Layout:
// header row is the sample-ID column followed by one column per locus; each
// data row is a sample with "a/b" allele-pair cells (one code for haploid
// calls). Empty cells, "NA", and "-" are missing.
type Reader struct {
	filePath string
	fileType string // "xlsx" or "csv"
}

// NewReader creates a genotype reader; the format is picked by extension.
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

var _ ports.DatasetReader = (*Reader)(nil)

// ReadDataset reads the genotype table into a genetic.Dataset.
func (r *Reader) ReadDataset() (*genetic.Dataset, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.ParseError(r.filePath, fmt.Errorf("file not found"))
	}

	var rows [][]string
	var err error
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, errors.ParseError(r.filePath, fmt.Errorf("unsupported file type %q", r.fileType))
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, errors.ParseError(r.filePath, fmt.Errorf(
			"genotype table needs a header row and at least one sample row"))
	}
	return r.processRows(rows)
}

func (r *Reader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.ParseError(r.filePath, fmt.Errorf("workbook has no sheets"))
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	return rows, nil
}

func (r *Reader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // ragged rows get caught by locus-count checks
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	return rows, nil
}

// processRows converts raw string rows into a dataset.
func (r *Reader) processRows(rows [][]string) (*genetic.Dataset, error) {
	header := rows[0]
	if len(header) < 2 {
		return nil, errors.ParseError(r.filePath, fmt.Errorf("header needs a sample column and at least one locus"))
	}

	loci := make([]core.LocusName, 0, len(header)-1)
	for _, h := range header[1:] {
		name, err := core.ParseLocusName(h)
		if err != nil {
			return nil, errors.ParseError(r.filePath, err)
		}
		loci = append(loci, name)
	}

	samples := make([]genetic.Sample, 0, len(rows)-1)
	for rowNum, row := range rows[1:] {
		if len(row) == 0 || (len(row) == 1 && strings.TrimSpace(row[0]) == "") {
			continue // trailing blank rows are common in spreadsheets
		}
		if len(row) != len(header) {
			return nil, errors.ParseError(r.filePath, fmt.Errorf(
				"row %d has %d cells, header has %d", rowNum+2, len(row), len(header)))
		}

		id, err := core.ParseSampleID(row[0])
		if err != nil {
			return nil, errors.ParseError(r.filePath, fmt.Errorf("row %d: %w", rowNum+2, err))
		}

		gts := make([]genetic.Genotype, len(loci))
		for j, cell := range row[1:] {
			gts[j] = parseGenotype(cell)
		}
		samples = append(samples, genetic.Sample{ID: id, Genotypes: gts})
	}

	ds, err := genetic.NewDataset(loci, samples)
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	return ds, nil
}

// parseGenotype splits an "a/b" cell into allele codes.
func parseGenotype(cell string) genetic.Genotype {
	cell = strings.TrimSpace(cell)
	if isMissingCell(cell) {
		return nil
	}
	parts := strings.Split(cell, "/")
	gt := make(genetic.Genotype, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if isMissingCell(p) {
			// A partially missing call ("101/NA") is treated as fully missing:
			// allele frequencies from half a genotype would be biased.
			return nil
		}
		gt = append(gt, genetic.Allele(p))
	}
	if len(gt) == 0 {
		return nil
	}
	return gt
}

func isMissingCell(s string) bool {
	switch strings.ToUpper(s) {
	case "", "NA", "N/A", "-":
		return true
	}
	return false
}

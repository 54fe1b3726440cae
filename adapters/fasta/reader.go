package fasta

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"genodiff/domain/core"
	"genodiff/domain/genetic"
	"genodiff/internal/errors"
	"genodiff/ports"
)

// Reader loads an aligned multi-FASTA file as a haploid dataset: every
// polymorphic alignment column becomes a locus, every sequence a sample.
// Gaps ('-') and ambiguous 'N' calls count as missing.
type Reader struct {
	filePath string
	// AllSites keeps monomorphic columns too. Off by default: invariant sites
	// carry no differentiation signal and bloat the locus set.
	AllSites bool
}

// NewReader creates a FASTA reader for one alignment file.
func NewReader(filePath string) *Reader {
	return &Reader{filePath: filePath}
}

var _ ports.DatasetReader = (*Reader)(nil)

type record struct {
	id  string
	seq string
}

// ReadDataset parses the alignment into a genetic.Dataset.
func (r *Reader) ReadDataset() (*genetic.Dataset, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	defer file.Close()

	records, err := parseRecords(file)
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	if len(records) == 0 {
		return nil, errors.ParseError(r.filePath, fmt.Errorf("no sequences found"))
	}

	length := len(records[0].seq)
	for _, rec := range records[1:] {
		if len(rec.seq) != length {
			return nil, errors.ParseError(r.filePath, fmt.Errorf(
				"sequence %q has length %d, alignment has %d", rec.id, len(rec.seq), length))
		}
	}

	sites := r.selectSites(records, length)
	if len(sites) == 0 {
		return nil, errors.ParseError(r.filePath, fmt.Errorf("alignment has no polymorphic sites"))
	}

	loci := make([]core.LocusName, len(sites))
	for j, pos := range sites {
		loci[j] = core.LocusName(fmt.Sprintf("pos_%d", pos+1))
	}

	samples := make([]genetic.Sample, len(records))
	for i, rec := range records {
		gts := make([]genetic.Genotype, len(sites))
		for j, pos := range sites {
			base := rec.seq[pos]
			if isMissingBase(base) {
				gts[j] = nil
				continue
			}
			gts[j] = genetic.Genotype{genetic.Allele(string(base))}
		}
		samples[i] = genetic.Sample{ID: core.SampleID(rec.id), Genotypes: gts}
	}

	ds, err := genetic.NewDataset(loci, samples)
	if err != nil {
		return nil, errors.ParseError(r.filePath, err)
	}
	return ds, nil
}

func parseRecords(file *os.File) ([]record, error) {
	var records []record
	var current *record

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			// Header: ID is the first whitespace-delimited token.
			id := strings.Fields(line[1:])
			if len(id) == 0 {
				return nil, fmt.Errorf("line %d: header without identifier", lineNum)
			}
			records = append(records, record{id: id[0]})
			current = &records[len(records)-1]
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("line %d: sequence data before first header", lineNum)
		}
		current.seq += strings.ToUpper(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

// selectSites picks the alignment columns that become loci.
func (r *Reader) selectSites(records []record, length int) []int {
	var sites []int
	for pos := 0; pos < length; pos++ {
		if r.AllSites {
			sites = append(sites, pos)
			continue
		}
		var first byte
		polymorphic := false
		for _, rec := range records {
			base := rec.seq[pos]
			if isMissingBase(base) {
				continue
			}
			if first == 0 {
				first = base
			} else if base != first {
				polymorphic = true
				break
			}
		}
		if polymorphic {
			sites = append(sites, pos)
		}
	}
	return sites
}

func isMissingBase(b byte) bool {
	return b == '-' || b == 'N' || b == '?'
}

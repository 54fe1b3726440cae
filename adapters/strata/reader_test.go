package strata

import (
	"os"
	"path/filepath"
	"testing"

	"genodiff/domain/core"
	"genodiff/domain/genetic"
	apperrors "genodiff/internal/errors"
)

func writeStrata(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "strata.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestReadScheme(t *testing.T) {
	path := writeStrata(t, `sample,Country,Breed
s1, Norway ,Fjord
s2,Norway,Dole
s3,Iceland,Icelandic
s4,Iceland,Icelandic
`)

	scheme, err := NewReader(path).ReadScheme()
	if err != nil {
		t.Fatalf("reading scheme: %v", err)
	}

	levels := scheme.Levels()
	if len(levels) != 2 || levels[0] != "Country" || levels[1] != "Breed" {
		t.Fatalf("unexpected levels: %v", levels)
	}
	if scheme.NumSamples() != 4 {
		t.Fatalf("expected 4 samples, got %d", scheme.NumSamples())
	}

	ds, err := genetic.NewDataset(
		[]core.LocusName{"loc_01"},
		[]genetic.Sample{
			{ID: "s1", Genotypes: []genetic.Genotype{{"100", "100"}}},
			{ID: "s2", Genotypes: []genetic.Genotype{{"100", "102"}}},
			{ID: "s3", Genotypes: []genetic.Genotype{{"104", "104"}}},
			{ID: "s4", Genotypes: []genetic.Genotype{{"104", "106"}}},
		},
	)
	if err != nil {
		t.Fatalf("building dataset: %v", err)
	}

	grouping, err := scheme.Grouping("Country", ds)
	if err != nil {
		t.Fatalf("projecting country grouping: %v", err)
	}
	// Cell whitespace is trimmed during parsing.
	if label, _ := grouping.Label("s1"); label != "Norway" {
		t.Fatalf("s1 country: expected Norway, got %q", label)
	}
	strata := grouping.Strata()
	if len(strata) != 2 || strata[0] != "Iceland" || strata[1] != "Norway" {
		t.Fatalf("unexpected strata: %v", strata)
	}

	breeds, err := scheme.Grouping("Breed", ds)
	if err != nil {
		t.Fatalf("projecting breed grouping: %v", err)
	}
	if len(breeds.Strata()) != 3 {
		t.Fatalf("expected 3 breeds, got %v", breeds.Strata())
	}
}

func TestReadSchemeErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "header only", content: "sample,Country\n"},
		{name: "no levels", content: "sample\ns1\n"},
		{name: "duplicate level names", content: "sample,Pop,Pop\ns1,A,B\n"},
		{name: "sample assigned twice", content: "sample,Pop\ns1,A\ns1,B\n"},
		{name: "blank label", content: "sample,Pop\ns1,  \n"},
		{name: "blank sample id", content: "sample,Pop\n ,A\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewReader(writeStrata(t, tt.content)).ReadScheme()
			if err == nil {
				t.Fatal("expected an error")
			}
			if code := apperrors.GetCode(err); code != apperrors.CodeParseError {
				t.Fatalf("expected %s, got %s", apperrors.CodeParseError, code)
			}
		})
	}
}

func TestReadSchemeFileNotFound(t *testing.T) {
	_, err := NewReader(filepath.Join(t.TempDir(), "missing.csv")).ReadScheme()
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if code := apperrors.GetCode(err); code != apperrors.CodeParseError {
		t.Fatalf("expected %s, got %s", apperrors.CodeParseError, code)
	}
}

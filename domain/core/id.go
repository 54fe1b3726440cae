package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// SampleID identifies one individual in a dataset.
	SampleID ID
	// LocusName identifies one locus shared by every sample.
	LocusName ID
	// StratumLabel names the subpopulation a sample belongs to under a grouping.
	StratumLabel ID
	// RunID identifies one resampling run.
	RunID ID
)

// String conversions for domain IDs
func (id SampleID) String() string     { return ID(id).String() }
func (id LocusName) String() string    { return ID(id).String() }
func (id StratumLabel) String() string { return ID(id).String() }
func (id RunID) String() string        { return ID(id).String() }

// NewRunID creates a fresh run identifier.
func NewRunID() RunID {
	return RunID(NewID())
}

// ParseSampleID parses a string into SampleID
func ParseSampleID(s string) (SampleID, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("sample ID cannot be empty")
	}
	return SampleID(strings.TrimSpace(s)), nil
}

// ParseLocusName parses a string into LocusName
func ParseLocusName(s string) (LocusName, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("locus name cannot be empty")
	}
	return LocusName(strings.TrimSpace(s)), nil
}

// ParseStratumLabel parses a string into StratumLabel
func ParseStratumLabel(s string) (StratumLabel, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("stratum label cannot be empty")
	}
	return StratumLabel(strings.TrimSpace(s)), nil
}

package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Input validation errors
	ErrInvalidInput   = errors.New("invalid input")
	ErrEmptyDataset   = fmt.Errorf("%w: dataset has no samples", ErrInvalidInput)
	ErrTooFewSamples  = fmt.Errorf("%w: dataset needs at least 2 samples", ErrInvalidInput)
	ErrLocusMismatch  = fmt.Errorf("%w: samples disagree on locus set", ErrInvalidInput)
	ErrSampleNotFound = errors.New("sample not found in stratification scheme")
	ErrLevelNotFound  = errors.New("stratification level not found")

	// Resampling errors
	ErrDegenerateResample = errors.New("resample emptied a stratum")
	ErrBadTrialCount      = fmt.Errorf("%w: trial count must be >= 1", ErrInvalidInput)

	// Summarizer errors
	ErrEmptyDistribution = errors.New("distribution has no trials")
	ErrMixedDistribution = errors.New("distribution mixes statistics or locus orders")
)

// Error constructors with context
func NewSampleNotFoundError(id SampleID) error {
	return fmt.Errorf("%w: %s", ErrSampleNotFound, id)
}

func NewLevelNotFoundError(level string) error {
	return fmt.Errorf("%w: %s", ErrLevelNotFound, level)
}

func NewDegenerateResampleError(trial int, stratum StratumLabel) error {
	return fmt.Errorf("%w: trial %d left stratum %q empty", ErrDegenerateResample, trial, stratum)
}

// Error checking helpers
func IsInvalidInput(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

func IsDegenerateResample(err error) bool {
	return errors.Is(err, ErrDegenerateResample)
}

package tables

import (
	"errors"
	"fmt"
)

// Config holds detector configuration
type Config struct {
	// Pixels with an intensity below this value are dark
	DarkThreshold uint8

	// Runs on one scan line closer than this are merged into one segment
	MergeGap int

	// Minimum segment length as a fraction of the image height (vertical
	// borders) and of the image width (horizontal borders). Column borders
	// may cover only part of the table; row borders run nearly full width.
	VerticalMinFraction   float64
	HorizontalMinFraction float64

	// Candidates whose start and end both differ by less than this are
	// treated as the same physical border
	PositionTolerance int

	// Minimum index distance between the two lines of an emitted pair
	MinSeparation int

	// Handling of candidates that do not match the tracked line
	Dedup DedupMode

	// Pixels removed from each side of a cell so borders are not recognized
	CellInset int
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		DarkThreshold:         200,
		MergeGap:              5,
		VerticalMinFraction:   0.10,
		HorizontalMinFraction: 0.75,
		PositionTolerance:     10,
		MinSeparation:         10,
		Dedup:                 DedupReference,
		CellInset:             4,
	}
}

// ErrInvalidConfig is wrapped by every error returned from Config.Validate.
var ErrInvalidConfig = errors.New("invalid detector config")

// Validate checks that every field is in range.
func (c Config) Validate() error {
	switch {
	case c.MergeGap < 0:
		return fmt.Errorf("%w: MergeGap %d is negative", ErrInvalidConfig, c.MergeGap)
	case c.VerticalMinFraction < 0 || c.VerticalMinFraction > 1:
		return fmt.Errorf("%w: VerticalMinFraction %v outside [0, 1]", ErrInvalidConfig, c.VerticalMinFraction)
	case c.HorizontalMinFraction < 0 || c.HorizontalMinFraction > 1:
		return fmt.Errorf("%w: HorizontalMinFraction %v outside [0, 1]", ErrInvalidConfig, c.HorizontalMinFraction)
	case c.PositionTolerance < 0:
		return fmt.Errorf("%w: PositionTolerance %d is negative", ErrInvalidConfig, c.PositionTolerance)
	case c.MinSeparation < 1:
		// zero would pair every line with itself
		return fmt.Errorf("%w: MinSeparation %d must be at least 1", ErrInvalidConfig, c.MinSeparation)
	case c.CellInset < 0:
		return fmt.Errorf("%w: CellInset %d is negative", ErrInvalidConfig, c.CellInset)
	case c.Dedup != DedupReference && c.Dedup != DedupTrackNew:
		return fmt.Errorf("%w: unknown dedup mode %d", ErrInvalidConfig, c.Dedup)
	}
	return nil
}

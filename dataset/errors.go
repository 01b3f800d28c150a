package dataset

import "errors"

var (
	// ErrShapeMismatch is returned when a row or column does not fit the
	// table shape, or when a chroma vector does not have 12 bins
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrMissingColumn is returned when a required column is absent
	ErrMissingColumn = errors.New("missing column")

	// ErrDuplicateKey is returned when a (piece, time) pair appears twice
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrDuplicateColumn is returned when a column name appears twice
	ErrDuplicateColumn = errors.New("duplicate column")

	// ErrColumnMismatch is returned when tables with different columns are
	// concatenated
	ErrColumnMismatch = errors.New("column mismatch")

	// ErrInvalidValue is returned when a chroma cell is NaN or infinite
	ErrInvalidValue = errors.New("invalid value")
)

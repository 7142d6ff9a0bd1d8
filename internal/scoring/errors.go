package scoring

import "errors"

var (
	// ErrInvalidReference is returned when a field reference does not follow
	// the Container.Attribute["key"] grammar.
	ErrInvalidReference = errors.New("invalid field reference")

	// ErrAttributeNotNumeric is returned by multi-field scoring when a required
	// attribute cannot be parsed as a finite number.
	ErrAttributeNotNumeric = errors.New("attribute not numeric")

	// ErrInsufficientData is returned when a min/max is required over an empty set.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrScoreOverflow is returned when weighting normalized values produces a
	// score outside the finite float64 range.
	ErrScoreOverflow = errors.New("score overflow")
)

package document

import "errors"

var (
	// ErrInvalidDocument reports a document that is structurally broken:
	// wrong namespace marker, missing plotElements, or a panel entry
	// that is not an object.
	ErrInvalidDocument = errors.New("invalid layout document")

	// ErrMissingField reports a required field absent from a panel or
	// constraint entry. The wrapping error names the entity and field.
	ErrMissingField = errors.New("missing required field")

	// ErrUnknownConstraint reports a constraint tag outside the known
	// rule vocabulary.
	ErrUnknownConstraint = errors.New("unknown constraint kind")
)

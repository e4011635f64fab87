package extractor

import "errors"

var (
	// ErrInvalidSpaceBoundary means a space has no closed boundary loop.
	// It is fatal for the whole export.
	ErrInvalidSpaceBoundary = errors.New("space has no closed boundary")

	// ErrMalformedFixture means a placed fixture cannot be exported; the
	// fixture is skipped.
	ErrMalformedFixture = errors.New("malformed fixture")

	// ErrMalformedFurnishing means a door or window cannot be exported; it is
	// skipped.
	ErrMalformedFurnishing = errors.New("malformed furnishing")

	// ErrCatalogKeyCollision means two fixture types reduce to the same
	// catalog key.
	ErrCatalogKeyCollision = errors.New("luminaire catalog key collision")
)

package extractor

import (
	"fmt"

	"github.com/hellenic-development/stf-exporter/pkg/model"
	"github.com/hellenic-development/stf-exporter/pkg/units"
)

// LoopSource resolves the boundary loops of a space.
type LoopSource interface {
	BoundaryLoops(spaceID string) ([]model.Loop, error)
}

// ExtractAttributes reads the scalar properties of a space. Lengths are
// converted to meters; reflectances are unitless and copied as is.
func ExtractAttributes(s model.Space) Attributes {
	return Attributes{
		Name:               s.Name,
		Height:             units.ToMeters(s.UnboundedHeight),
		WorkPlane:          units.ToMeters(s.WorkPlane),
		CeilingReflectance: s.CeilingReflectance,
		FloorReflectance:   s.FloorReflectance,
		WallReflectance:    s.WallReflectance,
	}
}

// ExtractBoundary returns the outline of a space from its first boundary loop:
// the start point of every segment, in meters. A space without loops, or whose
// first loop has no segments, is not enclosed and yields ErrInvalidSpaceBoundary.
// A failing provider query is returned wrapped as is.
func ExtractBoundary(src LoopSource, s model.Space) (Boundary, error) {
	loops, err := src.BoundaryLoops(s.ID)
	if err != nil {
		return Boundary{}, fmt.Errorf("boundary loops of room %q: %w", s.Name, err)
	}
	if len(loops) == 0 {
		return Boundary{}, fmt.Errorf("%w: room %q has no boundary loops", ErrInvalidSpaceBoundary, s.Name)
	}

	segments := loops[0].Segments
	if len(segments) == 0 {
		return Boundary{}, fmt.Errorf("%w: room %q has an empty boundary loop", ErrInvalidSpaceBoundary, s.Name)
	}

	return Boundary{
		Count: len(segments),
		Points: func(yield func(Point2) bool) {
			for _, seg := range segments {
				p := Point2{X: units.ToMeters(seg.Start.X), Y: units.ToMeters(seg.Start.Y)}
				if !yield(p) {
					return
				}
			}
		},
	}, nil
}

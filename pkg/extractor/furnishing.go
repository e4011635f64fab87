package extractor

import (
	"fmt"

	"github.com/hellenic-development/stf-exporter/pkg/model"
	"github.com/hellenic-development/stf-exporter/pkg/units"
)

// WindowPosition selects how a window's position is derived.
type WindowPosition string

const (
	// WindowPositionBasis approximates the position from the X basis vector of
	// the window's placement transform plus the location's height. This does
	// not compute the true window footprint and is kept as the default until
	// the location mode is confirmed against the consuming application.
	WindowPositionBasis WindowPosition = "basis"

	// WindowPositionLocation uses the window's location point, like doors.
	WindowPositionLocation WindowPosition = "location"
)

// ParseWindowPosition validates a window position mode name. An empty name
// selects WindowPositionBasis.
func ParseWindowPosition(s string) (WindowPosition, error) {
	switch WindowPosition(s) {
	case "", WindowPositionBasis:
		return WindowPositionBasis, nil
	case WindowPositionLocation:
		return WindowPositionLocation, nil
	default:
		return "", fmt.Errorf("invalid window position mode %q (must be basis or location)", s)
	}
}

// ExtractFurnishings returns the doors and then the windows of a space,
// numbered from 1 across both lists. Openings without a location point are
// skipped and reported with ErrMalformedFurnishing.
func ExtractFurnishings(doors, windows []model.Opening, spaceID string, mode WindowPosition) ([]Furnishing, []error) {
	var furns []Furnishing
	var skipped []error

	for _, d := range doors {
		if d.SpaceID == "" || d.SpaceID != spaceID {
			continue
		}
		if d.Location == nil {
			skipped = append(skipped, fmt.Errorf("%w: door %s has no location point", ErrMalformedFurnishing, d.ID))
			continue
		}
		furns = append(furns, Furnishing{
			ID:   len(furns) + 1,
			Kind: KindDoor,
			Position: Point3{
				X: units.ToMeters(d.Location.X),
				Y: units.ToMeters(d.Location.Y),
			},
			Width:  units.ToMeters(d.Width),
			Height: units.ToMeters(d.Height),
		})
	}

	for _, w := range windows {
		if w.SpaceID == "" || w.SpaceID != spaceID {
			continue
		}
		if w.Location == nil {
			skipped = append(skipped, fmt.Errorf("%w: window %s has no location point", ErrMalformedFurnishing, w.ID))
			continue
		}
		furns = append(furns, Furnishing{
			ID:       len(furns) + 1,
			Kind:     KindWindow,
			Position: windowPosition(w, mode),
			Width:    units.ToMeters(w.Width),
			Height:   units.ToMeters(w.Height),
		})
	}

	return furns, skipped
}

func windowPosition(w model.Opening, mode WindowPosition) Point3 {
	if mode == WindowPositionLocation {
		return Point3{
			X: units.ToMeters(w.Location.X),
			Y: units.ToMeters(w.Location.Y),
			Z: units.ToMeters(w.Location.Z),
		}
	}
	return Point3{
		X: units.ToMeters(w.Transform.BasisX.X),
		Y: units.ToMeters(w.Transform.BasisX.Y),
		Z: units.ToMeters(w.Location.Z),
	}
}

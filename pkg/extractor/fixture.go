package extractor

import (
	"fmt"

	"github.com/hellenic-development/stf-exporter/pkg/model"
	"github.com/hellenic-development/stf-exporter/pkg/units"
)

// PlaceFixtures returns the fixtures placed in the given space, in model order,
// numbered from 1. Instances without a location point or with an unknown type
// are skipped; each skip is reported in the returned error slice wrapping
// ErrMalformedFixture and does not consume a number.
func PlaceFixtures(instances []model.FixtureInstance, types TypeIndex, spaceID string) ([]Fixture, []error) {
	var fixtures []Fixture
	var skipped []error

	for _, fi := range instances {
		if fi.SpaceID == "" || fi.SpaceID != spaceID {
			continue
		}

		if fi.Location == nil {
			skipped = append(skipped, fmt.Errorf("%w: fixture %s has no location point", ErrMalformedFixture, fi.ID))
			continue
		}

		key, ok := types[fi.TypeID]
		if !ok {
			skipped = append(skipped, fmt.Errorf("%w: fixture %s references unknown type %q", ErrMalformedFixture, fi.ID, fi.TypeID))
			continue
		}

		fixtures = append(fixtures, Fixture{
			ID:  len(fixtures) + 1,
			Key: key,
			Position: Point3{
				X: units.ToMeters(fi.Location.X),
				Y: units.ToMeters(fi.Location.Y),
				Z: units.ToMeters(fi.Location.Z),
			},
		})
	}

	return fixtures, skipped
}

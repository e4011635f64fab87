package extractor

import (
	"errors"
	"testing"

	"github.com/hellenic-development/stf-exporter/pkg/model"
)

func TestPlaceFixtures(t *testing.T) {
	types := TypeIndex{"ft1": "LEDPanel", "ft2": "DownLight"}
	instances := []model.FixtureInstance{
		{ID: "f1", TypeID: "ft1", SpaceID: "s1", Location: &model.XYZ{X: 5, Y: 5, Z: 8}},
		{ID: "f2", TypeID: "ft2", SpaceID: "s2", Location: &model.XYZ{X: 1, Y: 1, Z: 1}},
		{ID: "f3", TypeID: "ft2", SpaceID: "s1"},
		{ID: "f4", TypeID: "ft9", SpaceID: "s1", Location: &model.XYZ{X: 1, Y: 1, Z: 1}},
		{ID: "f5", TypeID: "ft2", SpaceID: "s1", Location: &model.XYZ{X: 15, Y: 5, Z: 8}},
		{ID: "f6", TypeID: "ft1", Location: &model.XYZ{X: 1, Y: 1, Z: 1}},
	}

	got, skipped := PlaceFixtures(instances, types, "s1")

	want := []Fixture{
		{ID: 1, Key: "LEDPanel", Position: Point3{X: 5 * 0.3048, Y: 5 * 0.3048, Z: 8 * 0.3048}},
		{ID: 2, Key: "DownLight", Position: Point3{X: 15 * 0.3048, Y: 5 * 0.3048, Z: 8 * 0.3048}},
	}
	if len(got) != len(want) {
		t.Fatalf("PlaceFixtures() returned %d fixtures, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fixture[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}

	if len(skipped) != 2 {
		t.Fatalf("skipped = %v, want 2 entries", skipped)
	}
	for _, err := range skipped {
		if !errors.Is(err, ErrMalformedFixture) {
			t.Errorf("skip error %v does not wrap ErrMalformedFixture", err)
		}
	}
}

func TestPlaceFixturesEmptySpace(t *testing.T) {
	got, skipped := PlaceFixtures([]model.FixtureInstance{
		{ID: "f1", TypeID: "ft1", Location: &model.XYZ{}},
	}, TypeIndex{"ft1": "A"}, "")
	if len(got) != 0 || len(skipped) != 0 {
		t.Errorf("PlaceFixtures() with empty space id = %v, %v; want nothing", got, skipped)
	}
}

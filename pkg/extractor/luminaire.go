package extractor

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/hellenic-development/stf-exporter/pkg/model"
	"github.com/hellenic-development/stf-exporter/pkg/units"
)

// DefaultLampCount is used when a fixture type has no explicit lamp count.
// Photometric files are never parsed, so they also fall back to it.
const DefaultLampCount = 1

// errNoFlux marks a type left out of the catalog because it has no luminous
// flux parameter. Those omissions are silent.
var errNoFlux = errors.New("no luminous flux parameter")

// CatalogKey reduces a fixture type name to its STF section key by removing
// all whitespace.
func CatalogKey(typeName string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, typeName)
}

// TypeIndex maps fixture type IDs to catalog keys.
type TypeIndex map[string]string

// IndexTypes builds the type ID to catalog key map for every fixture type in the
// model. Types whose name reduces to an empty key are left out. Two distinct
// types sharing a key are rejected with ErrCatalogKeyCollision.
func IndexTypes(types []model.FixtureType) (TypeIndex, error) {
	index := make(TypeIndex, len(types))
	owners := make(map[string]model.FixtureType, len(types))

	for _, ft := range types {
		key := CatalogKey(ft.Name)
		if key == "" {
			continue
		}
		if prev, ok := owners[key]; ok && prev.ID != ft.ID {
			return nil, fmt.Errorf("%w: %q and %q both map to [%s]", ErrCatalogKeyCollision, prev.Name, ft.Name, key)
		}
		owners[key] = ft
		index[ft.ID] = key
	}

	return index, nil
}

// Omission records a fixture type left out of the catalog.
type Omission struct {
	TypeName string
	Reason   error
}

// Silent reports whether the omission is expected and should not be surfaced.
func (o Omission) Silent() bool {
	return errors.Is(o.Reason, errNoFlux)
}

// Catalog is the result of BuildCatalog.
type Catalog struct {
	Types    []LuminaireType
	Omitted  []Omission
	Warnings []string
}

// BuildCatalog produces one catalog entry per fixture type definition, in model
// order, whether or not the type is placed. Types without flux are omitted
// silently; types whose load or flux cannot be parsed are omitted with a
// reason. Key collisions fail the whole catalog.
func BuildCatalog(types []model.FixtureType) (*Catalog, error) {
	if _, err := IndexTypes(types); err != nil {
		return nil, err
	}

	cat := &Catalog{}
	seen := make(map[string]bool, len(types))
	for _, ft := range types {
		if seen[ft.ID] {
			continue
		}
		seen[ft.ID] = true

		entry, warn, err := catalogEntry(ft)
		if err != nil {
			cat.Omitted = append(cat.Omitted, Omission{TypeName: ft.Name, Reason: err})
			continue
		}
		if warn != "" {
			cat.Warnings = append(cat.Warnings, warn)
		}
		cat.Types = append(cat.Types, entry)
	}

	return cat, nil
}

func catalogEntry(ft model.FixtureType) (LuminaireType, string, error) {
	if ft.LuminousFlux == nil {
		return LuminaireType{}, "", errNoFlux
	}

	key := CatalogKey(ft.Name)
	if key == "" {
		return LuminaireType{}, "", errors.New("type name is empty")
	}

	flux, err := units.ParseQuantity(*ft.LuminousFlux)
	if err != nil {
		return LuminaireType{}, "", fmt.Errorf("luminous flux: %w", err)
	}

	var warn string
	var load units.Quantity
	if ft.ApparentLoad == nil {
		warn = fmt.Sprintf("fixture type %q has no apparent load, exporting Load=0", ft.Name)
	} else {
		load, err = units.ParseQuantity(*ft.ApparentLoad)
		if err != nil {
			return LuminaireType{}, "", fmt.Errorf("apparent load: %w", err)
		}
	}

	return LuminaireType{
		Key:       key,
		TypeName:  ft.Name,
		Load:      load.Value,
		Flux:      flux.Value,
		LampCount: lampCount(ft),
	}, warn, nil
}

func lampCount(ft model.FixtureType) int {
	if ft.LampCount != nil && *ft.LampCount > 0 {
		return *ft.LampCount
	}
	return DefaultLampCount
}

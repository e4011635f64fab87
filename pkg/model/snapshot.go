package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Snapshot formats understood by ParseSnapshot.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Snapshot is a host model serialized to disk. It implements Provider so an
// export can run outside the host application.
type Snapshot struct {
	Project     ProjectInfo           `json:"project" yaml:"project" toml:"project"`
	ActiveView  ActiveView            `json:"active_view" yaml:"active_view" toml:"active_view"`
	Units       UnitSettings          `json:"units" yaml:"units" toml:"units"`
	Spaces      []Space               `json:"spaces" yaml:"spaces" toml:"spaces"`
	FixtureDefs []SnapshotFixtureType `json:"fixture_types" yaml:"fixture_types" toml:"fixture_types"`
	Fixtures    []SnapshotFixture     `json:"fixtures" yaml:"fixtures" toml:"fixtures"`
	DoorList    []SnapshotOpening     `json:"doors" yaml:"doors" toml:"doors"`
	WindowList  []SnapshotOpening     `json:"windows" yaml:"windows" toml:"windows"`
}

// ActiveView identifies which spaces count as visible.
type ActiveView struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Level string `json:"level" yaml:"level" toml:"level"` // empty = every level
}

// ParamValue is a numeric parameter with its display unit.
type ParamValue struct {
	Value float64 `json:"value" yaml:"value" toml:"value"`
	Unit  string  `json:"unit" yaml:"unit" toml:"unit"`
}

// SnapshotFixtureType is the on-disk form of a FixtureType.
type SnapshotFixtureType struct {
	ID              string      `json:"id" yaml:"id" toml:"id"`
	Name            string      `json:"name" yaml:"name" toml:"name"`
	ApparentLoad    *ParamValue `json:"apparent_load,omitempty" yaml:"apparent_load,omitempty" toml:"apparent_load,omitempty"`
	LuminousFlux    *ParamValue `json:"luminous_flux,omitempty" yaml:"luminous_flux,omitempty" toml:"luminous_flux,omitempty"`
	LampCount       *int        `json:"lamp_count,omitempty" yaml:"lamp_count,omitempty" toml:"lamp_count,omitempty"`
	PhotometricFile string      `json:"photometric_file,omitempty" yaml:"photometric_file,omitempty" toml:"photometric_file,omitempty"`
}

// SnapshotFixture is the on-disk form of a FixtureInstance.
type SnapshotFixture struct {
	ID       string `json:"id" yaml:"id" toml:"id"`
	TypeID   string `json:"type_id" yaml:"type_id" toml:"type_id"`
	SpaceID  string `json:"space_id,omitempty" yaml:"space_id,omitempty" toml:"space_id,omitempty"`
	Location *XYZ   `json:"location,omitempty" yaml:"location,omitempty" toml:"location,omitempty"`
}

// SnapshotOpening is the on-disk form of a door or window.
type SnapshotOpening struct {
	ID        string    `json:"id" yaml:"id" toml:"id"`
	SpaceID   string    `json:"space_id,omitempty" yaml:"space_id,omitempty" toml:"space_id,omitempty"`
	Location  *XYZ      `json:"location,omitempty" yaml:"location,omitempty" toml:"location,omitempty"`
	Transform Transform `json:"transform" yaml:"transform" toml:"transform"`
	Width     float64   `json:"width" yaml:"width" toml:"width"`
	Height    float64   `json:"height" yaml:"height" toml:"height"`
}

// FormatFromPath derives the snapshot format from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported model snapshot extension %q (must be .json, .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// LoadSnapshot reads a model snapshot file, choosing the decoder by extension.
func LoadSnapshot(path string) (*Snapshot, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading model snapshot: %w", err)
	}

	return ParseSnapshot(data, format)
}

// ParseSnapshot decodes a model snapshot in the given format.
func ParseSnapshot(data []byte, format string) (*Snapshot, error) {
	var snap Snapshot

	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parsing JSON snapshot: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parsing YAML snapshot: %w", err)
		}
	case FormatTOML:
		if err := toml.Unmarshal(data, &snap); err != nil {
			return nil, fmt.Errorf("parsing TOML snapshot: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown snapshot format %q", format)
	}

	snap.applyDefaults()
	return &snap, nil
}

func (s *Snapshot) applyDefaults() {
	if s.Units.LengthUnit == "" {
		s.Units.LengthUnit = "ft"
	}
	if s.Units.DecimalSymbol == "" {
		s.Units.DecimalSymbol = DecimalDot
	}
	if s.Units.Accuracy <= 0 {
		s.Units.Accuracy = 0.01
	}
	if s.Project.ProgramName == "" {
		s.Project.ProgramName = "Revit"
	}
}

// ProjectInfo implements Provider.
func (s *Snapshot) ProjectInfo() ProjectInfo {
	return s.Project
}

// SpacesInActiveView returns the spaces on the active view's level that are not hidden.
func (s *Snapshot) SpacesInActiveView() ([]Space, error) {
	var visible []Space
	for _, sp := range s.Spaces {
		if sp.Hidden {
			continue
		}
		if s.ActiveView.Level != "" && sp.Level != s.ActiveView.Level {
			continue
		}
		visible = append(visible, sp)
	}
	return visible, nil
}

// BoundaryLoops implements Provider.
func (s *Snapshot) BoundaryLoops(spaceID string) ([]Loop, error) {
	for _, sp := range s.Spaces {
		if sp.ID == spaceID {
			return sp.Loops, nil
		}
	}
	return nil, fmt.Errorf("space %q not found", spaceID)
}

// FixtureInstances implements Provider.
func (s *Snapshot) FixtureInstances() ([]FixtureInstance, error) {
	out := make([]FixtureInstance, 0, len(s.Fixtures))
	for _, f := range s.Fixtures {
		out = append(out, FixtureInstance{
			ID:       f.ID,
			TypeID:   f.TypeID,
			SpaceID:  f.SpaceID,
			Location: f.Location,
		})
	}
	return out, nil
}

// FixtureTypes renders load and flux with the current unit settings, the way
// the host formats parameter values for display.
func (s *Snapshot) FixtureTypes() ([]FixtureType, error) {
	out := make([]FixtureType, 0, len(s.FixtureDefs))
	for _, d := range s.FixtureDefs {
		ft := FixtureType{
			ID:              d.ID,
			Name:            d.Name,
			LampCount:       d.LampCount,
			PhotometricFile: d.PhotometricFile,
		}
		if d.ApparentLoad != nil {
			v := FormatParameter(*d.ApparentLoad, s.Units)
			ft.ApparentLoad = &v
		}
		if d.LuminousFlux != nil {
			v := FormatParameter(*d.LuminousFlux, s.Units)
			ft.LuminousFlux = &v
		}
		out = append(out, ft)
	}
	return out, nil
}

// Doors implements Provider.
func (s *Snapshot) Doors() ([]Opening, error) {
	return openings(s.DoorList), nil
}

// Windows implements Provider.
func (s *Snapshot) Windows() ([]Opening, error) {
	return openings(s.WindowList), nil
}

func openings(list []SnapshotOpening) []Opening {
	out := make([]Opening, 0, len(list))
	for _, o := range list {
		out = append(out, Opening{
			ID:        o.ID,
			SpaceID:   o.SpaceID,
			Location:  o.Location,
			Transform: o.Transform,
			Width:     o.Width,
			Height:    o.Height,
		})
	}
	return out
}

// UnitSettings implements Provider.
func (s *Snapshot) UnitSettings() UnitSettings {
	return s.Units
}

// SetUnitSettings implements Provider.
func (s *Snapshot) SetUnitSettings(u UnitSettings) error {
	if u.DecimalSymbol != DecimalDot && u.DecimalSymbol != DecimalComma {
		return fmt.Errorf("invalid decimal symbol %q", u.DecimalSymbol)
	}
	if u.Accuracy <= 0 {
		return fmt.Errorf("accuracy must be positive, got %g", u.Accuracy)
	}
	s.Units = u
	return nil
}

// FormatParameter renders a parameter value as the host displays it: rounded to
// the configured accuracy, with the configured decimal symbol and optional digit
// grouping, followed by a space and the unit.
func FormatParameter(p ParamValue, u UnitSettings) string {
	digits := 2
	if u.Accuracy > 0 {
		digits = int(math.Round(-math.Log10(u.Accuracy)))
		digits = max(0, min(digits, 12))
	}

	num := strconv.FormatFloat(p.Value, 'f', digits, 64)
	intPart, frac, hasFrac := strings.Cut(num, ".")

	if u.DigitGrouping {
		sep := ","
		if u.DecimalSymbol == DecimalComma {
			sep = "."
		}
		intPart = groupThousands(intPart, sep)
	}

	decimal := u.DecimalSymbol
	if decimal == "" {
		decimal = DecimalDot
	}

	out := intPart
	if hasFrac {
		out += decimal + frac
	}
	if p.Unit != "" {
		out += " " + p.Unit
	}
	return out
}

func groupThousands(digits, sep string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var sb strings.Builder
	head := len(digits) % 3
	if head > 0 {
		sb.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if sb.Len() > 0 {
			sb.WriteString(sep)
		}
		sb.WriteString(digits[i : i+3])
	}
	return sign + sb.String()
}

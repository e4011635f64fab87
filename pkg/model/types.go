package model

// XYZ is a point or vector in host units (decimal feet).
type XYZ struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
	Z float64 `json:"z" yaml:"z" toml:"z"`
}

// Transform is an element's placement: origin plus the three local basis vectors.
type Transform struct {
	Origin XYZ `json:"origin" yaml:"origin" toml:"origin"`
	BasisX XYZ `json:"basis_x" yaml:"basis_x" toml:"basis_x"`
	BasisY XYZ `json:"basis_y" yaml:"basis_y" toml:"basis_y"`
	BasisZ XYZ `json:"basis_z" yaml:"basis_z" toml:"basis_z"`
}

// ProjectInfo describes the host document and the application that owns it.
type ProjectInfo struct {
	Name           string `json:"name" yaml:"name" toml:"name"`
	Operator       string `json:"operator" yaml:"operator" toml:"operator"`
	ProgramName    string `json:"program_name" yaml:"program_name" toml:"program_name"`
	ProgramVersion string `json:"program_version" yaml:"program_version" toml:"program_version"`
}

// Space is an MEP space (room) as the host reports it. Lengths are in host units.
type Space struct {
	ID                 string  `json:"id" yaml:"id" toml:"id"`
	Name               string  `json:"name" yaml:"name" toml:"name"`
	Level              string  `json:"level" yaml:"level" toml:"level"`
	Hidden             bool    `json:"hidden,omitempty" yaml:"hidden,omitempty" toml:"hidden,omitempty"`
	UnboundedHeight    float64 `json:"unbounded_height" yaml:"unbounded_height" toml:"unbounded_height"`
	WorkPlane          float64 `json:"work_plane" yaml:"work_plane" toml:"work_plane"`
	CeilingReflectance float64 `json:"ceiling_reflectance" yaml:"ceiling_reflectance" toml:"ceiling_reflectance"`
	FloorReflectance   float64 `json:"floor_reflectance" yaml:"floor_reflectance" toml:"floor_reflectance"`
	WallReflectance    float64 `json:"wall_reflectance" yaml:"wall_reflectance" toml:"wall_reflectance"`

	// Loops are the space's boundary loops; the first one is the outer boundary.
	Loops []Loop `json:"loops,omitempty" yaml:"loops,omitempty" toml:"loops,omitempty"`
}

// Loop is one closed boundary of a space, as a list of curve segments.
type Loop struct {
	Segments []Segment `json:"segments" yaml:"segments" toml:"segments"`
}

// Segment is one boundary curve. Only its end points matter to the exporter.
type Segment struct {
	Start XYZ `json:"start" yaml:"start" toml:"start"`
	End   XYZ `json:"end" yaml:"end" toml:"end"`
}

// FixtureType is a lighting fixture type definition (family symbol).
//
// ApparentLoad and LuminousFlux hold the host-formatted parameter strings
// ("100.00 VA", "3000.00 lm") and are nil when the parameter does not exist.
// Their decimal convention follows the document's current UnitSettings.
type FixtureType struct {
	ID              string
	Name            string
	ApparentLoad    *string
	LuminousFlux    *string
	LampCount       *int
	PhotometricFile string
}

// FixtureInstance is a placed lighting fixture.
type FixtureInstance struct {
	ID      string
	TypeID  string
	SpaceID string // empty when the fixture is outside every space
	// Location is nil for fixtures not placed by a single point.
	Location *XYZ
}

// Opening is a placed door or window. Width and Height come from the type-level
// parameters, in host units.
type Opening struct {
	ID        string
	SpaceID   string
	Location  *XYZ
	Transform Transform
	Width     float64
	Height    float64
}

// Decimal symbols the host can be configured with.
const (
	DecimalDot   = "."
	DecimalComma = ","
)

// UnitSettings is the document-level length display configuration.
type UnitSettings struct {
	LengthUnit    string  `json:"length_unit" yaml:"length_unit" toml:"length_unit"`
	DecimalSymbol string  `json:"decimal_symbol" yaml:"decimal_symbol" toml:"decimal_symbol"`
	DigitGrouping bool    `json:"digit_grouping" yaml:"digit_grouping" toml:"digit_grouping"`
	Accuracy      float64 `json:"accuracy" yaml:"accuracy" toml:"accuracy"`
}

// Provider is the host model seen by the exporter. Implementations expose
// typed queries only; the exporter never touches host-specific objects.
type Provider interface {
	ProjectInfo() ProjectInfo
	SpacesInActiveView() ([]Space, error)
	BoundaryLoops(spaceID string) ([]Loop, error)
	FixtureInstances() ([]FixtureInstance, error)
	FixtureTypes() ([]FixtureType, error)
	Doors() ([]Opening, error)
	Windows() ([]Opening, error)
	UnitSettings() UnitSettings
	SetUnitSettings(UnitSettings) error
}

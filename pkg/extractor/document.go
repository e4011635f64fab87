package extractor

import (
	"iter"
	"time"
)

// ExportDocument is everything that goes into one STF file. It is built fresh
// for each export run and discarded once written.
type ExportDocument struct {
	FormatVersion  string
	ProgramName    string
	ProgramVersion string
	ProjectName    string
	Date           time.Time
	Operator       string
	Rooms          []Room
	Luminaires     []LuminaireType
}

// Room is one exported space. Number is its 1-based position in the export.
type Room struct {
	Number int
	Attributes
	Boundary    Boundary
	Luminaires  []Fixture
	Furnishings []Furnishing
}

// Attributes are the scalar properties of a space, converted to meters.
type Attributes struct {
	Name               string
	Height             float64
	WorkPlane          float64
	CeilingReflectance float64
	FloorReflectance   float64
	WallReflectance    float64
}

// Point2 is a plan position in meters.
type Point2 struct {
	X, Y float64
}

// Point3 is a model position in meters.
type Point3 struct {
	X, Y, Z float64
}

// Boundary is a room outline. Points yields Count vertices in loop order.
type Boundary struct {
	Count  int
	Points iter.Seq[Point2]
}

// Fixture is a luminaire placed in a room. ID is 1-based within the room.
type Fixture struct {
	ID       int
	Key      string // catalog key of the fixture's type
	Position Point3
	Rotation Point3 // not resolvable from the host; always zero
}

// FurnishingKind is the STF keyword for a furnishing.
type FurnishingKind string

const (
	KindDoor   FurnishingKind = "door"
	KindWindow FurnishingKind = "win"
)

// Furnishing is a door or window of a room. ID is 1-based within the room,
// counting doors first and windows after.
type Furnishing struct {
	ID       int
	Kind     FurnishingKind
	Position Point3
	Width    float64
	Height   float64
}

// LuminaireType is one catalog entry.
type LuminaireType struct {
	Key       string
	TypeName  string
	Load      float64
	Flux      float64
	LampCount int
}

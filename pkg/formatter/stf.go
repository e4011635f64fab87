package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/hellenic-development/stf-exporter/pkg/extractor"
	"github.com/hellenic-development/stf-exporter/pkg/units"
)

// STFVersion is the STF format version written in the [VERSION] section.
const STFVersion = "1.0.5"

// RoomRef is the STF reference of the n-th exported room (1-based).
func RoomRef(n int) string {
	return fmt.Sprintf("ROOM.R%d", n)
}

// FurnishingRef is the STF reference of the n-th furnishing of a room.
func FurnishingRef(room, n int) string {
	return fmt.Sprintf("%s.F%d", RoomRef(room), n)
}

// ToSTF renders an export document in STF. Every line ends with LF. Sections
// appear as [VERSION], [Project], one [ROOM.Rn] per room, then one section per
// luminaire type.
func ToSTF(doc *extractor.ExportDocument) string {
	var sb strings.Builder

	version := doc.FormatVersion
	if version == "" {
		version = STFVersion
	}

	sb.WriteString("[VERSION]\n")
	sb.WriteString(fmt.Sprintf("STFF=%s\n", version))
	sb.WriteString(fmt.Sprintf("Progname=%s\n", value(doc.ProgramName)))
	sb.WriteString(fmt.Sprintf("Progvers=%s\n", value(doc.ProgramVersion)))

	sb.WriteString("[Project]\n")
	sb.WriteString(fmt.Sprintf("Name=%s\n", value(doc.ProjectName)))
	sb.WriteString(fmt.Sprintf("Date=%d-%d-%d\n", doc.Date.Year(), int(doc.Date.Month()), doc.Date.Day()))
	sb.WriteString(fmt.Sprintf("Operator=%s\n", value(doc.Operator)))
	sb.WriteString(fmt.Sprintf("NrRooms=%d\n", len(doc.Rooms)))
	for _, room := range doc.Rooms {
		sb.WriteString(fmt.Sprintf("Room%d=%s\n", room.Number, RoomRef(room.Number)))
	}

	for i := range doc.Rooms {
		writeRoom(&sb, &doc.Rooms[i])
	}

	for _, lum := range doc.Luminaires {
		writeLuminaire(&sb, lum)
	}

	return sb.String()
}

// Write renders doc and writes it to w.
func Write(w io.Writer, doc *extractor.ExportDocument) error {
	_, err := io.WriteString(w, ToSTF(doc))
	return err
}

func writeRoom(sb *strings.Builder, room *extractor.Room) {
	sb.WriteString(fmt.Sprintf("[%s]\n", RoomRef(room.Number)))
	sb.WriteString(fmt.Sprintf("Name=%s\n", value(room.Name)))
	sb.WriteString(fmt.Sprintf("Height=%s\n", units.Format(room.Height)))
	sb.WriteString(fmt.Sprintf("WorkingPlane=%s\n", units.Format(room.WorkPlane)))
	sb.WriteString(fmt.Sprintf("NrPoints=%d\n", room.Boundary.Count))

	n := 0
	if room.Boundary.Points != nil {
		for p := range room.Boundary.Points {
			n++
			sb.WriteString(fmt.Sprintf("Point%d=%s\n", n, units.FormatAll(p.X, p.Y)))
		}
	}

	sb.WriteString(fmt.Sprintf("R_Ceiling=%s\n", units.Format(room.CeilingReflectance)))

	for _, lum := range room.Luminaires {
		name := fmt.Sprintf("Lum%d", lum.ID)
		sb.WriteString(fmt.Sprintf("%s=%s\n", name, lum.Key))
		sb.WriteString(fmt.Sprintf("%s.Pos=%s\n", name, units.FormatAll(lum.Position.X, lum.Position.Y, lum.Position.Z)))
		sb.WriteString(fmt.Sprintf("%s.Rot=%s\n", name, units.FormatAll(lum.Rotation.X, lum.Rotation.Y, lum.Rotation.Z)))
	}

	sb.WriteString(fmt.Sprintf("NrLums=%d\n", len(room.Luminaires)))
	sb.WriteString("NrStruct=0\n")
	sb.WriteString(fmt.Sprintf("NrFurns=%d\n", len(room.Furnishings)))

	for _, f := range room.Furnishings {
		name := fmt.Sprintf("Furn%d", f.ID)
		sb.WriteString(fmt.Sprintf("%s=%s\n", name, f.Kind))
		sb.WriteString(fmt.Sprintf("%s.Ref=%s\n", name, FurnishingRef(room.Number, f.ID)))
		// Rotation cannot be resolved from the host; the placeholder is fixed.
		sb.WriteString(fmt.Sprintf("%s.Rot=90.00 0.00 0.00\n", name))
		sb.WriteString(fmt.Sprintf("%s.Pos=%s\n", name, units.FormatAll(f.Position.X, f.Position.Y)))
		sb.WriteString(fmt.Sprintf("%s.Size=%s 0.00\n", name, units.FormatAll(f.Width, f.Height)))
	}
}

func writeLuminaire(sb *strings.Builder, lum extractor.LuminaireType) {
	sb.WriteString(fmt.Sprintf("[%s]\n", lum.Key))
	sb.WriteString("Manufacturer=\n")
	sb.WriteString("Name=\n")
	sb.WriteString("OrderNr=\n")
	sb.WriteString("Box=1 1 0\n")
	sb.WriteString("Shape=0\n")
	sb.WriteString(fmt.Sprintf("Load=%s\n", units.Format(lum.Load)))
	sb.WriteString(fmt.Sprintf("Flux=%s\n", units.Format(lum.Flux)))
	sb.WriteString(fmt.Sprintf("NrLamps=%d\n", lum.LampCount))
	sb.WriteString("MountingType=1\n")
}

// value keeps free text on a single line so it cannot break the key=value
// structure.
func value(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}

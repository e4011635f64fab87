package stfexporter

import (
	"errors"
	"fmt"

	"github.com/hellenic-development/stf-exporter/pkg/extractor"
)

// Error kinds reported in ExportError.Kind. Use errors.Is to match them.
var (
	// ErrNoSpacesFound means the active view shows no spaces. Nothing is written.
	ErrNoSpacesFound = errors.New("no spaces found in the active view")

	// ErrWrite means the destination file could not be written.
	ErrWrite = errors.New("cannot write STF file")

	// ErrModel means the model provider failed to answer a query.
	ErrModel = errors.New("model query failed")

	// ErrInvalidOptions means Run was called without a provider or with an
	// unknown window position mode.
	ErrInvalidOptions = errors.New("invalid export options")

	// ErrUnitSettings means the document unit settings could not be switched
	// for the export or put back afterwards.
	ErrUnitSettings = errors.New("unit settings")

	ErrInvalidSpaceBoundary = extractor.ErrInvalidSpaceBoundary
	ErrMalformedFixture     = extractor.ErrMalformedFixture
	ErrMalformedFurnishing  = extractor.ErrMalformedFurnishing
	ErrCatalogKeyCollision  = extractor.ErrCatalogKeyCollision
)

// Stage is a step of the export state machine.
type Stage int

const (
	StageIdle Stage = iota
	StageScanning
	StagePerRoomExtraction
	StageCatalogBuild
	StageAssembling
	StageWriting
	StageDone
	StageFailed
)

var stageNames = [...]string{
	StageIdle:              "idle",
	StageScanning:          "scanning",
	StagePerRoomExtraction: "per-room extraction",
	StageCatalogBuild:      "catalog build",
	StageAssembling:        "assembling",
	StageWriting:           "writing",
	StageDone:              "done",
	StageFailed:            "failed",
}

func (s Stage) String() string {
	if s >= 0 && int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// ExportError is returned by Run when an export fails. Stage is the step that
// was running, Kind one of the Err* kinds, and Room the space being processed
// (empty when the failure is not tied to a room).
type ExportError struct {
	Stage Stage
	Kind  error
	Room  string
	Err   error
}

func (e *ExportError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("export failed during %s: %v", e.Stage, e.Kind)
	}
	if errors.Is(e.Err, e.Kind) {
		return fmt.Sprintf("export failed during %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("export failed during %s: %v: %v", e.Stage, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause to errors.Is and errors.As.
func (e *ExportError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

package stfexporter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hellenic-development/stf-exporter/pkg/extractor"
	"github.com/hellenic-development/stf-exporter/pkg/formatter"
	"github.com/hellenic-development/stf-exporter/pkg/model"
	"github.com/hellenic-development/stf-exporter/pkg/units"
)

// Version is the exporter version.
const Version = "1.0.0"

// FormatVersion is the STF format version the exporter writes.
const FormatVersion = formatter.STFVersion

// Options configures one export run.
type Options struct {
	Provider       model.Provider // required
	OutputPath     string         // empty = render only, nothing is written
	Operator       string         // empty = host user name
	ProgramName    string         // empty = host application name
	ProgramVersion string         // empty = host application version
	WindowPosition string         // "basis" (default) or "location"
	Now            func() time.Time
	Logger         Logger // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result contains the export output.
type Result struct {
	RunID      string
	Stage      Stage
	Document   *extractor.ExportDocument
	STF        string // rendered file contents
	OutputPath string // empty when nothing was written
	Skipped    []error
	Omitted    []extractor.Omission
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

func (o *Options) logError(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Errorf(f, a...)
	}
}

// Run exports the spaces visible in the provider's active view to STF.
//
// The provider's unit settings are switched to meters with dot decimals for the
// duration of the extraction and restored on every return path. On failure
// nothing is written and the returned error is an *ExportError. Fatal errors are
// returned, not logged.
func Run(opts Options) (res *Result, err error) {
	if opts.Provider == nil {
		return nil, &ExportError{Stage: StageIdle, Kind: ErrInvalidOptions, Err: errors.New("no model provider")}
	}
	mode, err := extractor.ParseWindowPosition(opts.WindowPosition)
	if err != nil {
		return nil, &ExportError{Stage: StageIdle, Kind: ErrInvalidOptions, Err: err}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	r := &run{
		opts:   &opts,
		mode:   mode,
		result: &Result{RunID: uuid.NewString(), Stage: StageIdle},
	}
	opts.logInfo("Export %s started", r.result.RunID)

	restore, err := units.Override(opts.Provider, units.ExportSettings)
	if err != nil {
		return nil, r.fail(ErrUnitSettings, "", err)
	}
	r.restore = restore
	defer func() {
		// No-op when the settings were already restored after assembling.
		if rerr := restore(); rerr != nil {
			if err != nil {
				// The export error is what the caller sees.
				opts.logError("%v", rerr)
				return
			}
			res, err = nil, r.fail(ErrUnitSettings, "", rerr)
		}
	}()

	if err := r.scan(); err != nil {
		return nil, err
	}
	if err := r.extractRooms(); err != nil {
		return nil, err
	}
	if err := r.buildCatalog(); err != nil {
		return nil, err
	}
	if err := r.assemble(); err != nil {
		return nil, err
	}
	if err := r.write(); err != nil {
		return nil, err
	}

	r.enter(StageDone)
	opts.logInfo("Exported %d room(s) and %d luminaire type(s)", len(r.doc.Rooms), len(r.doc.Luminaires))
	return r.result, nil
}

// run holds the state of a single export; it is discarded when Run returns.
type run struct {
	opts    *Options
	mode    extractor.WindowPosition
	restore func() error
	result  *Result
	stage   Stage

	spaces    []model.Space
	instances []model.FixtureInstance
	types     []model.FixtureType
	typeIndex extractor.TypeIndex
	doors     []model.Opening
	windows   []model.Opening

	doc *extractor.ExportDocument
}

func (r *run) enter(s Stage) {
	r.stage = s
	r.result.Stage = s
}

func (r *run) fail(kind error, room string, cause error) *ExportError {
	e := &ExportError{Stage: r.stage, Kind: kind, Room: room, Err: cause}
	r.enter(StageFailed)
	return e
}

func (r *run) scan() error {
	r.enter(StageScanning)
	p := r.opts.Provider

	r.opts.logInfo("Scanning active view for spaces...")
	spaces, err := p.SpacesInActiveView()
	if err != nil {
		return r.fail(ErrModel, "", fmt.Errorf("list spaces: %w", err))
	}
	if len(spaces) == 0 {
		return r.fail(ErrNoSpacesFound, "", errors.New("make sure the active view is a floor or ceiling plan with spaces visible"))
	}
	r.spaces = spaces
	r.opts.logInfo("Found %d space(s)", len(spaces))

	if r.instances, err = p.FixtureInstances(); err != nil {
		return r.fail(ErrModel, "", fmt.Errorf("list fixtures: %w", err))
	}
	if r.types, err = p.FixtureTypes(); err != nil {
		return r.fail(ErrModel, "", fmt.Errorf("list fixture types: %w", err))
	}
	if r.doors, err = p.Doors(); err != nil {
		return r.fail(ErrModel, "", fmt.Errorf("list doors: %w", err))
	}
	if r.windows, err = p.Windows(); err != nil {
		return r.fail(ErrModel, "", fmt.Errorf("list windows: %w", err))
	}

	if r.typeIndex, err = extractor.IndexTypes(r.types); err != nil {
		return r.fail(extractor.ErrCatalogKeyCollision, "", err)
	}
	return nil
}

func (r *run) extractRooms() error {
	r.enter(StagePerRoomExtraction)
	p := r.opts.Provider
	info := p.ProjectInfo()

	r.doc = &extractor.ExportDocument{
		FormatVersion:  formatter.STFVersion,
		ProgramName:    firstNonEmpty(r.opts.ProgramName, info.ProgramName),
		ProgramVersion: firstNonEmpty(r.opts.ProgramVersion, info.ProgramVersion),
		ProjectName:    info.Name,
		Date:           r.opts.Now(),
		Operator:       firstNonEmpty(r.opts.Operator, info.Operator),
	}

	for i, sp := range r.spaces {
		number := i + 1
		r.opts.logInfo("Extracting %s (%s)...", formatter.RoomRef(number), sp.Name)

		boundary, err := extractor.ExtractBoundary(p, sp)
		if err != nil {
			kind := ErrModel
			if errors.Is(err, extractor.ErrInvalidSpaceBoundary) {
				kind = extractor.ErrInvalidSpaceBoundary
			}
			return r.fail(kind, sp.Name, err)
		}

		fixtures, skipped := extractor.PlaceFixtures(r.instances, r.typeIndex, sp.ID)
		r.skip(sp.Name, skipped)

		furns, skipped := extractor.ExtractFurnishings(r.doors, r.windows, sp.ID, r.mode)
		r.skip(sp.Name, skipped)

		r.doc.Rooms = append(r.doc.Rooms, extractor.Room{
			Number:      number,
			Attributes:  extractor.ExtractAttributes(sp),
			Boundary:    boundary,
			Luminaires:  fixtures,
			Furnishings: furns,
		})
	}
	return nil
}

func (r *run) skip(room string, errs []error) {
	for _, e := range errs {
		r.opts.logWarn("Room %q: skipped %v", room, e)
		r.result.Skipped = append(r.result.Skipped, e)
	}
}

func (r *run) buildCatalog() error {
	r.enter(StageCatalogBuild)
	r.opts.logInfo("Building luminaire catalog from %d fixture type(s)...", len(r.types))

	cat, err := extractor.BuildCatalog(r.types)
	if err != nil {
		return r.fail(extractor.ErrCatalogKeyCollision, "", err)
	}
	for _, w := range cat.Warnings {
		r.opts.logWarn("%s", w)
	}
	for _, o := range cat.Omitted {
		if o.Silent() {
			r.opts.logInfo("Fixture type %q not exported: %v", o.TypeName, o.Reason)
			continue
		}
		r.opts.logWarn("Fixture type %q omitted: %v", o.TypeName, o.Reason)
	}
	r.result.Omitted = cat.Omitted
	r.doc.Luminaires = cat.Types
	return nil
}

func (r *run) assemble() error {
	r.enter(StageAssembling)
	r.result.Document = r.doc
	r.result.STF = formatter.ToSTF(r.doc)

	// Extraction is over; give the document its settings back before touching
	// the destination.
	if err := r.restore(); err != nil {
		return r.fail(ErrUnitSettings, "", err)
	}
	return nil
}

func (r *run) write() error {
	r.enter(StageWriting)
	if r.opts.OutputPath == "" {
		return nil
	}

	r.opts.logInfo("Writing %s...", r.opts.OutputPath)
	if err := writeFileAtomic(r.opts.OutputPath, []byte(r.result.STF)); err != nil {
		return r.fail(ErrWrite, "", err)
	}
	r.result.OutputPath = r.opts.OutputPath
	return nil
}

// writeFileAtomic writes data next to path and renames it into place so a
// failed write never leaves a partial file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".stf-export-*")
	if err != nil {
		return fmt.Errorf("create temp file in %q: %w", dir, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %q: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %q: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename to %q: %w", path, err)
	}
	return nil
}

// SuggestedFileName returns the default STF file name for a project: the project
// name with path separators replaced, plus the .stf extension.
func SuggestedFileName(projectName string) string {
	name := strings.TrimSpace(projectName)
	name = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, name)
	if name == "" {
		name = "export"
	}
	return name + ".stf"
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// Package stfexporter exports the spaces, luminaires, doors and windows of a
// building model to STF, the plain-text room description format read by
// lighting design tools.
//
// The CLI lives in cmd/stf-exporter; this root package exposes the same
// pipeline as a Go API so that host integrations can run an export without
// shelling out. The host model is reached only through [model.Provider];
// [model.Snapshot] implements it over JSON, YAML or TOML files.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named stfexporter:
//
//	import "github.com/hellenic-development/stf-exporter" // package stfexporter
//
// # Quick start
//
//	snap, err := model.LoadSnapshot("office.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := stfexporter.Run(stfexporter.Options{
//	    Provider:   snap,
//	    OutputPath: "office.stf",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stage) // done
//
// # Pipeline
//
// A run moves through the stages idle, scanning, per-room extraction, catalog
// build, assembling, writing and done. Any stage can end in failed, in which
// case Run returns an [*ExportError] and writes nothing:
//
//   - no provider or an unknown window position mode: [ErrInvalidOptions]
//   - the model provider fails a query: [ErrModel]
//   - no visible spaces: [ErrNoSpacesFound]
//   - a space without a closed boundary: [ErrInvalidSpaceBoundary], naming the room
//   - two fixture types with the same catalog key: [ErrCatalogKeyCollision]
//   - the destination cannot be written: [ErrWrite]
//
// Fixtures and openings without a location point are skipped and listed in
// [Result.Skipped]. Fixture types without luminous flux are left out of the
// catalog without a warning.
//
// # Units
//
// Host lengths are decimal feet and are converted with a factor of 0.3048.
// While extracting, the provider's unit settings are switched to meters with a
// dot decimal symbol and no digit grouping; the previous settings are restored
// on every return path. Numbers are always written with a dot and without
// grouping, whatever the host or process locale.
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
package stfexporter

package units

import (
	"fmt"

	"github.com/hellenic-development/stf-exporter/pkg/model"
)

// ExportSettings is the configuration the exporter needs while it reads
// formatted parameter values: meters, dot decimals, no grouping, full precision.
var ExportSettings = model.UnitSettings{
	LengthUnit:    "m",
	DecimalSymbol: model.DecimalDot,
	DigitGrouping: false,
	Accuracy:      0.0000000001,
}

// Configurable is the part of a host document whose unit configuration can be
// read and replaced.
type Configurable interface {
	UnitSettings() model.UnitSettings
	SetUnitSettings(model.UnitSettings) error
}

// Override replaces target's unit settings with want and returns a function
// that puts the previous settings back. The restore function is safe to call
// more than once; only the first call has an effect. Callers should defer it
// immediately so the settings are restored on every exit path.
func Override(target Configurable, want model.UnitSettings) (restore func() error, err error) {
	prev := target.UnitSettings()
	if err := target.SetUnitSettings(want); err != nil {
		return nil, fmt.Errorf("apply export unit settings: %w", err)
	}

	done := false
	return func() error {
		if done {
			return nil
		}
		done = true
		if err := target.SetUnitSettings(prev); err != nil {
			return fmt.Errorf("restore unit settings: %w", err)
		}
		return nil
	}, nil
}

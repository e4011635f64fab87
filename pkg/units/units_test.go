package units

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/hellenic-development/stf-exporter/pkg/model"
)

func TestToMeters(t *testing.T) {
	tests := []struct {
		name string
		feet float64
		want string
	}{
		{name: "ten feet", feet: 10, want: "3.048"},
		{name: "twenty feet", feet: 20, want: "6.096"},
		{name: "half foot", feet: 0.5, want: "0.1524"},
		{name: "zero", feet: 0, want: "0"},
		{name: "negative", feet: -5, want: "-1.524"},
		{name: "three feet", feet: 3, want: "0.9144"},
		{name: "eleven feet", feet: 11, want: "3.3528"},
		{name: "twelve feet", feet: 12, want: "3.6576"},
		{name: "tenth of a foot", feet: 0.1, want: "0.03048"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(ToMeters(tt.feet))
			if got != tt.want {
				t.Errorf("Format(ToMeters(%v)) = %q, want %q", tt.feet, got, tt.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "integer", value: 1200, want: "1200"},
		{name: "fraction", value: 0.7, want: "0.7"},
		{name: "negative zero", value: math.Copysign(0, -1), want: "0"},
		{name: "large value has no grouping", value: 1234567.25, want: "1234567.25"},
		{name: "small value has no exponent", value: 0.0000001, want: "0.0000001"},
		{name: "huge value has no exponent", value: 1e21, want: "1000000000000000000000"},
		{name: "float noise is rounded away", value: 3.6576000000000004, want: "3.6576"},
		{name: "fifteen significant digits", value: 1.23456789012345678, want: "1.23456789012346"},
		{name: "small noise", value: 0.030480000000000004, want: "0.03048"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Format(tt.value)
			if got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatIgnoresLocaleEnvironment(t *testing.T) {
	t.Setenv("LANG", "de_DE.UTF-8")
	t.Setenv("LC_ALL", "de_DE.UTF-8")
	t.Setenv("LC_NUMERIC", "de_DE.UTF-8")

	for _, v := range []float64{0.5, 1234.5, -98765.4321, 3.048, 1e-9, 1e15} {
		if got := Format(v); strings.Contains(got, ",") {
			t.Errorf("Format(%v) = %q, contains a comma", v, got)
		}
	}
}

func TestFormatAll(t *testing.T) {
	got := FormatAll(1.524, 0, 2.4384)
	want := "1.524 0 2.4384"
	if got != want {
		t.Errorf("FormatAll() = %q, want %q", got, want)
	}
	if got := FormatAll(); got != "" {
		t.Errorf("FormatAll() with no values = %q, want empty", got)
	}
}

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     float64
		wantUnit string
		wantErr  bool
	}{
		{name: "load with unit", input: "100.00 VA", want: 100, wantUnit: "VA"},
		{name: "flux with unit", input: "3600.0000000000 lm", want: 3600, wantUnit: "lm"},
		{name: "no space before unit", input: "36VA", want: 36, wantUnit: "VA"},
		{name: "no unit", input: "42.5", want: 42.5, wantUnit: ""},
		{name: "surrounding whitespace", input: "  7 W  ", want: 7, wantUnit: "W"},
		{name: "negative", input: "-1.5 V", want: -1.5, wantUnit: "V"},
		{name: "exponent", input: "1.2e3 lm", want: 1200, wantUnit: "lm"},
		{name: "unit starting with e", input: "5 eV", want: 5, wantUnit: "eV"},
		{name: "empty", input: "", wantErr: true},
		{name: "unit only", input: "lm", wantErr: true},
		{name: "shorter than the old suffix", input: "VA", wantErr: true},
		{name: "comma decimal", input: "1200,50 VA", wantErr: true},
		{name: "digit grouping", input: "1,200.00 VA", wantErr: true},
		{name: "not a number", input: "abc lm", wantErr: true},
		{name: "lone sign", input: "- lm", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseQuantity(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseQuantity(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedQuantity) {
					t.Errorf("ParseQuantity(%q) error = %v, want ErrMalformedQuantity", tt.input, err)
				}
				return
			}
			if got.Value != tt.want || got.Unit != tt.wantUnit {
				t.Errorf("ParseQuantity(%q) = %+v, want {Value:%v Unit:%s}", tt.input, got, tt.want, tt.wantUnit)
			}
		})
	}
}

type fakeDocument struct {
	settings model.UnitSettings
	sets     int
	failOn   int // fail the n-th SetUnitSettings call (1-based); 0 = never
}

func (d *fakeDocument) UnitSettings() model.UnitSettings { return d.settings }

func (d *fakeDocument) SetUnitSettings(u model.UnitSettings) error {
	d.sets++
	if d.failOn == d.sets {
		return errors.New("document is read-only")
	}
	d.settings = u
	return nil
}

func TestOverride(t *testing.T) {
	orig := model.UnitSettings{LengthUnit: "ft", DecimalSymbol: model.DecimalComma, DigitGrouping: true, Accuracy: 0.01}
	doc := &fakeDocument{settings: orig}

	restore, err := Override(doc, ExportSettings)
	if err != nil {
		t.Fatalf("Override() error = %v", err)
	}
	if doc.settings != ExportSettings {
		t.Errorf("settings during override = %+v, want %+v", doc.settings, ExportSettings)
	}

	if err := restore(); err != nil {
		t.Fatalf("restore() error = %v", err)
	}
	if doc.settings != orig {
		t.Errorf("settings after restore = %+v, want %+v", doc.settings, orig)
	}

	// A second restore must not touch the document again.
	doc.settings = ExportSettings
	if err := restore(); err != nil {
		t.Fatalf("second restore() error = %v", err)
	}
	if doc.settings != ExportSettings {
		t.Errorf("second restore() changed settings to %+v", doc.settings)
	}
}

func TestOverrideErrors(t *testing.T) {
	t.Run("apply fails", func(t *testing.T) {
		doc := &fakeDocument{failOn: 1}
		if _, err := Override(doc, ExportSettings); err == nil {
			t.Fatal("Override() error = nil, want error")
		}
	})

	t.Run("restore fails", func(t *testing.T) {
		doc := &fakeDocument{failOn: 2}
		restore, err := Override(doc, ExportSettings)
		if err != nil {
			t.Fatalf("Override() error = %v", err)
		}
		if err := restore(); err == nil {
			t.Fatal("restore() error = nil, want error")
		}
	})
}

package panel

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/san-kum/springsim/internal/physics"
)

var ErrBadValue = errors.New("value is not a number")

// Range is what a slider allows. Text entry is not limited to it.
type Range struct {
	Min, Max, Step float64
}

// Ranges for the pendulum parameters, keyed by physics.ParamNames.
var Ranges = map[string]Range{
	"L0":     {Min: 0, Max: 5, Step: 0.1},
	"g":      {Min: 0, Max: 30, Step: 0.1},
	"k":      {Min: 0, Max: 50, Step: 0.5},
	"ldc":    {Min: 0, Max: 5, Step: 0.05},
	"pxPerM": {Min: 5, Max: 300, Step: 1},
	"rBob":   {Min: 0.05, Max: 1, Step: 0.01},
	"rPivot": {Min: 0.05, Max: 1, Step: 0.01},
}

// Field is one parameter with its two inputs, a slider and a text box,
// kept in sync.
type Field struct {
	Name  string
	Range Range
	Input textinput.Model
	value float64
}

func NewField(name string, r Range, value float64) *Field {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 16
	ti.Width = 8
	f := &Field{Name: name, Range: r, Input: ti}
	f.SetValue(value)
	return f
}

// FieldsFor builds one field per parameter in panel order.
func FieldsFor(p physics.Params) []*Field {
	fields := make([]*Field, 0, len(physics.ParamNames))
	for _, name := range physics.ParamNames {
		v, _ := p.Get(name)
		fields = append(fields, NewField(name, Ranges[name], v))
	}
	return fields
}

func (f *Field) Value() float64 { return f.value }

// SetValue writes v into both inputs.
func (f *Field) SetValue(v float64) {
	f.value = v
	f.Input.SetValue(formatValue(v))
}

// Nudge moves the slider by dir steps, snapping to the step grid and
// staying inside the range.
func (f *Field) Nudge(dir int) float64 {
	v := f.Range.snap(f.value + float64(dir)*f.Range.Step)
	f.SetValue(v)
	return v
}

// SetFraction puts the slider knob at frac of its track.
func (f *Field) SetFraction(frac float64) float64 {
	r := f.Range
	v := r.snap(r.Min + math.Max(0, math.Min(1, frac))*(r.Max-r.Min))
	f.SetValue(v)
	return v
}

func (r Range) snap(v float64) float64 {
	if r.Step > 0 {
		v = r.Min + math.Round((v-r.Min)/r.Step)*r.Step
	}
	return math.Max(r.Min, math.Min(r.Max, v))
}

// CommitText applies the text box. Text that does not parse stays in the
// box and the value is unchanged.
func (f *Field) CommitText() (float64, error) {
	text := strings.TrimSpace(f.Input.Value())
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return f.value, fmt.Errorf("%s: %w: %q", f.Name, ErrBadValue, text)
	}
	f.SetValue(v)
	return v, nil
}

// Fraction is where the slider knob sits, 0 at Min and 1 at Max.
func (f *Field) Fraction() float64 {
	r := f.Range
	if r.Max <= r.Min {
		return 0
	}
	return math.Max(0, math.Min(1, (f.value-r.Min)/(r.Max-r.Min)))
}

// Slider draws the knob on a track width cells wide.
func (f *Field) Slider(width int) string {
	if width < 1 {
		return ""
	}
	knob := int(math.Round(f.Fraction() * float64(width-1)))
	return strings.Repeat("─", knob) + "●" + strings.Repeat("─", width-knob-1)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 6, 64)
}

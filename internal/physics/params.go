package physics

import (
	"fmt"

	"github.com/san-kum/springsim/internal/dynamo"
)

const (
	DefaultRestLength  = 1.0
	DefaultGravity     = 9.8
	DefaultStiffness   = 3.0
	DefaultDrag        = 0.1
	DefaultPxPerM      = 100.0
	DefaultBobRadius   = 0.15
	DefaultPivotRadius = 0.15
)

// Params are the physical constants of the pendulum. Values are taken as
// given; nothing here rejects a negative stiffness or a zero rest length.
type Params struct {
	L0     float64 `yaml:"L0" json:"L0"`
	G      float64 `yaml:"g" json:"g"`
	K      float64 `yaml:"k" json:"k"`
	Ldc    float64 `yaml:"ldc" json:"ldc"`
	PxPerM float64 `yaml:"pxPerM" json:"pxPerM"`
	RBob   float64 `yaml:"rBob" json:"rBob"`
	RPivot float64 `yaml:"rPivot" json:"rPivot"`
}

// ParamNames lists the editable parameters in panel order.
var ParamNames = []string{"L0", "g", "k", "ldc", "pxPerM", "rBob", "rPivot"}

func DefaultParams() Params {
	return Params{
		L0:     DefaultRestLength,
		G:      DefaultGravity,
		K:      DefaultStiffness,
		Ldc:    DefaultDrag,
		PxPerM: DefaultPxPerM,
		RBob:   DefaultBobRadius,
		RPivot: DefaultPivotRadius,
	}
}

func (p Params) GetParams() map[string]float64 {
	return map[string]float64{
		"L0":     p.L0,
		"g":      p.G,
		"k":      p.K,
		"ldc":    p.Ldc,
		"pxPerM": p.PxPerM,
		"rBob":   p.RBob,
		"rPivot": p.RPivot,
	}
}

// Get returns the named parameter.
func (p Params) Get(name string) (float64, error) {
	v, ok := p.GetParams()[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return v, nil
}

func (p *Params) SetParam(name string, value float64) error {
	switch name {
	case "L0":
		p.L0 = value
	case "g":
		p.G = value
	case "k":
		p.K = value
	case "ldc":
		p.Ldc = value
	case "pxPerM":
		p.PxPerM = value
	case "rBob":
		p.RBob = value
	case "rPivot":
		p.RPivot = value
	default:
		return fmt.Errorf("%w: %s", dynamo.ErrUnknownParam, name)
	}
	return nil
}

// MinLength is the shortest the spring may get before the bob touches the pivot.
func (p Params) MinLength() float64 {
	return p.RBob + p.RPivot
}

package config

import (
	"sort"

	"github.com/golang/geo/r3"
	"github.com/san-kum/uwvdyn/internal/dynamo"
	"github.com/san-kum/uwvdyn/internal/uwv"
)

var Presets = map[string]func() uwv.Parameters{
	"default": uwv.DefaultParameters,
	"intermediate": func() uwv.Parameters {
		p := uwv.DefaultParameters()
		p.ModelType = uwv.Intermediate
		return p
	},
	"complex": func() uwv.Parameters {
		p := uwv.DefaultParameters()
		p.ModelType = uwv.Complex
		// each DOF's speed scales a row-dominant quadratic drag matrix
		base := dynamo.Vector6{60, 80, 100, 10, 12, 12}
		p.DampingMatrices = make([]dynamo.Matrix6, dynamo.DOF)
		for i := range p.DampingMatrices {
			var m dynamo.Matrix6
			m[i][i] = base[i]
			switch i {
			case 1:
				m[5][1] = 4
			case 5:
				m[1][5] = 3
			}
			p.DampingMatrices[i] = m
		}
		return p
	},
	"neutral": func() uwv.Parameters {
		p := uwv.DefaultParameters()
		p.Buoyancy = p.Weight
		p.CenterOfBuoyancy = r3.Vector{}
		return p
	},
	"heavy": func() uwv.Parameters {
		p := uwv.DefaultParameters()
		p.Weight = 1200
		p.CenterOfGravity = r3.Vector{Z: 0.05}
		return p
	},
}

// GetPreset returns a fresh copy of the named preset, or nil.
func GetPreset(name string) *Vehicle {
	fn, ok := Presets[name]
	if !ok {
		return nil
	}
	return FromParameters(name, fn())
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

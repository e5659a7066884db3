package domain

import "sort"

const (
	kgToLb   = 2.2046226218
	inchToMM = 25.4
	mmToPt   = 72.0 / inchToMM
)

func unitLabel(s string) *string { return &s }

var presets = map[string]Axis{
	"kg->lb": {Kind: KindScaling, Factor: kgToLb, Unit: unitLabel("lb")},
	"mm->pt": {Kind: KindScaling, Factor: mmToPt, Unit: unitLabel("pt")},
	"in->mm": {Kind: KindScaling, Factor: inchToMM, Unit: unitLabel("mm")},
	"c->f":   {Kind: KindLinear, Factor: 1.8, Constant: 32},
	"c->k":   {Kind: KindLinear, Factor: 1, Constant: 273.15},
	"flip":   {Kind: KindReflect},
}

// LookupPreset returns a template axis for a built-in unit conversion.
// The returned axis has its Name set to the preset name.
func LookupPreset(name string) (Axis, bool) {
	p, ok := presets[name]
	if !ok {
		return Axis{}, false
	}
	p.Name = name
	if p.Unit != nil {
		p.Unit = unitLabel(*p.Unit)
	}
	return p, true
}

// PresetNames lists the built-in presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

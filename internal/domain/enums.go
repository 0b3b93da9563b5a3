package domain

import "strings"

type FluidType string

const (
	FluidWater    FluidType = "water"
	FluidCrudeOil FluidType = "crude_oil"
	FluidPetrol   FluidType = "petrol"
	FluidDiesel   FluidType = "diesel"
	FluidKerosene FluidType = "kerosene"
	FluidOther    FluidType = "other"
)

// FluidTypes lists every fluid type in form order.
var FluidTypes = []FluidType{
	FluidWater, FluidCrudeOil, FluidPetrol, FluidDiesel, FluidKerosene, FluidOther,
}

var fluidLabels = map[FluidType]string{
	FluidWater:    "Water",
	FluidCrudeOil: "Crude Oil",
	FluidPetrol:   "Petrol",
	FluidDiesel:   "Diesel",
	FluidKerosene: "Kerosene",
	FluidOther:    "Other",
}

// Label returns the human-readable name shown in forms and reports.
func (f FluidType) Label() string {
	if l, ok := fluidLabels[f]; ok {
		return l
	}
	return string(f)
}

func (f FluidType) Valid() bool {
	_, ok := fluidLabels[f]
	return ok
}

// ParseFluidType accepts either the canonical value ("crude_oil") or the
// label ("Crude Oil"), case-insensitively.
func ParseFluidType(s string) (FluidType, bool) {
	key := normalizeEnum(s)
	for _, f := range FluidTypes {
		if string(f) == key {
			return f, true
		}
	}
	return "", false
}

type Material string

const (
	MaterialIron      Material = "iron"
	MaterialAluminium Material = "aluminium"
	MaterialCopper    Material = "copper"
	MaterialDuralumin Material = "duralumin"
	MaterialComposite Material = "composite"
)

// Materials lists every pipeline material in form order.
var Materials = []Material{
	MaterialIron, MaterialAluminium, MaterialCopper, MaterialDuralumin, MaterialComposite,
}

var materialLabels = map[Material]string{
	MaterialIron:      "Iron",
	MaterialAluminium: "Aluminium",
	MaterialCopper:    "Copper",
	MaterialDuralumin: "Duralumin",
	MaterialComposite: "Composite",
}

func (m Material) Label() string {
	if l, ok := materialLabels[m]; ok {
		return l
	}
	return string(m)
}

func (m Material) Valid() bool {
	_, ok := materialLabels[m]
	return ok
}

// ParseMaterial accepts the canonical value or the label, case-insensitively.
func ParseMaterial(s string) (Material, bool) {
	key := normalizeEnum(s)
	for _, m := range Materials {
		if string(m) == key {
			return m, true
		}
	}
	return "", false
}

type FlowAdvisory string

const (
	FlowHighWarning FlowAdvisory = "high_flow_warning"
	FlowLowNotice   FlowAdvisory = "low_flow_notice"
	FlowSafeRange   FlowAdvisory = "safe_range"
)

// InputPolicy decides what happens to out-of-range parameters before they
// reach the risk engine.
type InputPolicy string

const (
	PolicyReject InputPolicy = "reject"
	PolicyClamp  InputPolicy = "clamp"
)

func ParseInputPolicy(s string) (InputPolicy, bool) {
	switch InputPolicy(normalizeEnum(s)) {
	case PolicyReject:
		return PolicyReject, true
	case PolicyClamp:
		return PolicyClamp, true
	}
	return "", false
}

func normalizeEnum(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, "-", "_")
	return strings.ReplaceAll(s, " ", "_")
}

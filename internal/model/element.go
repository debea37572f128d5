package model

// Element is a skill's elemental affinity. The five natural elements form
// a directed advantage cycle resolved by the element package; ElementNone
// is used by mental/physical/true skills that sit outside the cycle.
type Element string

const (
	ElementNone      Element = "none"
	ElementFire      Element = "fire"
	ElementWind      Element = "wind"
	ElementLightning Element = "lightning"
	ElementEarth     Element = "earth"
	ElementWater     Element = "water"
)

// ValidElement reports whether e is a known element.
func ValidElement(e Element) bool {
	switch e {
	case ElementNone, ElementFire, ElementWind, ElementLightning, ElementEarth, ElementWater:
		return true
	}
	return false
}

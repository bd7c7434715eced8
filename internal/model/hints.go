package model

// HintSet is the sparse output of the keyword pre-scan over scenario text.
// Every field is optional: a nil pointer (or nil slice) means "no signal",
// never "negative". SpecifiedAddons distinguishes the explicit empty list
// ("without addons") from absence by being non-nil and length zero.
type HintSet struct {
	VehicleAgeYears    *int
	ExpiryDays         *int
	BreakInDays        *int
	IncludeAllAddons   bool
	SpecifiedAddons    []string
	SpecifiedDiscounts []string
	Model              string
	Variant            string
	JourneyType        JourneyType
	OwnedBy            OwnedBy
}

// HasAddonSignal reports whether the text said anything about addons.
func (h HintSet) HasAddonSignal() bool {
	return h.IncludeAllAddons || h.SpecifiedAddons != nil
}

// HasDiscountSignal reports whether the text said anything about discounts.
func (h HintSet) HasDiscountSignal() bool {
	return h.SpecifiedDiscounts != nil
}

package pipeline

import (
	"math/rand"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/policyforge/casegen/internal/catalog"
	"github.com/policyforge/casegen/internal/model"
)

// Default IDV in currency units when the oracle gives none.
const (
	defaultIDV2W = 100000
	defaultIDV4W = 500000
)

// Normalize merges the oracle's untrusted scenario guess with the locally
// extracted hints and catalog lookups into a canonical Scenario. Hints win
// over oracle values where both exist — they are closer to literal user
// intent. The only fatal failure is an unknown product code.
func Normalize(raw model.RawScenario, h model.HintSet, cat *catalog.Catalog, now model.Date, rng *rand.Rand) (model.Scenario, error) {
	resolved, err := cat.ResolveProduct(raw.ProductCode)
	if err != nil {
		return model.Scenario{}, eris.Wrapf(err, "normalize: product %q", raw.ProductCode)
	}

	sc := model.Scenario{
		TestcaseID:  strings.TrimSpace(raw.TestcaseID),
		ProductCode: strings.TrimSpace(raw.ProductCode),
		VehicleType: resolved.VehicleType,
		InsurerName: resolved.InsurerName,
	}

	sc.JourneyType = normalizeJourney(raw.JourneyType, h)
	sc.OwnedBy = normalizeOwnedBy(raw.OwnedBy, h)

	currentYear := now.Year()
	sc.ManufacturingYear = normalizeManufacturingYear(raw.ManufacturingYear, h, currentYear)
	sc.RegistrationDate = normalizeRegistrationDate(raw.RegistrationDate, sc.ManufacturingYear, now, rng)

	sc.Addons = resolveSelection(h.SpecifiedAddons, h.IncludeAllAddons || raw.IncludeAllAddons, raw.SpecifiedAddons, cat.Addons(), cat.HasAddon)
	sc.Discounts = resolveSelection(h.SpecifiedDiscounts, false, raw.SpecifiedDiscounts, cat.Discounts(), cat.HasDiscount)

	sc.ClaimTaken = strings.EqualFold(strings.TrimSpace(raw.ClaimTaken), "Yes")
	sc.PreviousNcb = strings.TrimSpace(raw.PreviousNcb)
	if sc.PreviousNcb == "" {
		sc.PreviousNcb = "0%"
	}

	if idv, ok := toInt(raw.IDV); ok && idv > 0 {
		sc.IDV = idv
	} else if sc.VehicleType == model.Vehicle2W {
		sc.IDV = defaultIDV2W
	} else {
		sc.IDV = defaultIDV4W
	}

	if h.ExpiryDays != nil {
		sc.ExpiryDays = h.ExpiryDays
	} else {
		sc.ExpiryDays = toIntPtr(raw.ExpiryDays)
	}

	sc.SpecifiedKyc = strings.TrimSpace(raw.SpecifiedKyc)
	sc.Model = firstNonEmpty(h.Model, strings.ToUpper(strings.TrimSpace(raw.Model)))
	sc.Variant = firstNonEmpty(h.Variant, strings.ToUpper(strings.TrimSpace(raw.Variant)))

	sc.IsInspectionRequired = strings.TrimSpace(raw.IsInspectionRequired)
	if sc.IsInspectionRequired == "" {
		sc.IsInspectionRequired = "No"
	}
	sc.OwnershipChanged = strings.TrimSpace(raw.OwnershipChanged)
	if sc.OwnershipChanged == "" {
		sc.OwnershipChanged = "No"
	}

	return sc, nil
}

func normalizeJourney(raw string, h model.HintSet) model.JourneyType {
	switch model.JourneyType(strings.TrimSpace(raw)) {
	case model.JourneyNewBusiness:
		return model.JourneyNewBusiness
	case model.JourneyRollover:
		return model.JourneyRollover
	case model.JourneyNotSure:
		return model.JourneyNotSure
	}
	if h.JourneyType != "" {
		return h.JourneyType
	}
	return model.JourneyRollover
}

func normalizeOwnedBy(raw string, h model.HintSet) model.OwnedBy {
	switch model.OwnedBy(strings.TrimSpace(raw)) {
	case model.OwnedByIndividual:
		return model.OwnedByIndividual
	case model.OwnedByCompany:
		return model.OwnedByCompany
	}
	if h.OwnedBy != "" {
		return h.OwnedBy
	}
	return model.OwnedByIndividual
}

// normalizeManufacturingYear prefers the hint-derived year over the oracle
// value when both exist and disagree, then clamps to the current year.
func normalizeManufacturingYear(raw any, h model.HintSet, currentYear int) int {
	year, ok := toInt(raw)
	if h.VehicleAgeYears != nil {
		expected := currentYear - *h.VehicleAgeYears
		if ok && year != expected {
			zap.L().Warn("normalize: manufacturing year disagrees with vehicle age, hint wins",
				zap.Int("oracle_year", year),
				zap.Int("vehicle_age", *h.VehicleAgeYears),
				zap.Int("expected_year", expected),
			)
		}
		year = expected
	} else if !ok || year < 1900 {
		year = currentYear - 1
	}
	if year > currentYear {
		zap.L().Warn("normalize: manufacturing year in the future, clamping",
			zap.Int("year", year),
			zap.Int("current_year", currentYear),
		)
		year = currentYear
	}
	return year
}

// normalizeRegistrationDate keeps a parseable oracle date when it falls in
// [Jan 1 mfgYear, Dec 31 mfgYear+1] and not after the current date; anything
// else is replaced with a uniform draw from that window capped at today.
func normalizeRegistrationDate(raw string, mfgYear int, now model.Date, rng *rand.Rand) model.Date {
	windowStart := model.NewDate(mfgYear, 1, 1)
	windowEnd := model.NewDate(mfgYear+1, 12, 31)
	if windowEnd.After(now) {
		windowEnd = now
	}

	d, err := model.ParseDate(strings.TrimSpace(raw))
	if err == nil && !d.IsZero() {
		if d.Year() >= mfgYear && d.Year() <= mfgYear+1 && !d.After(now) {
			return d
		}
		zap.L().Warn("normalize: registration date outside valid window, regenerating",
			zap.String("registration_date", d.String()),
			zap.Int("manufacturing_year", mfgYear),
		)
	} else if err != nil {
		zap.L().Warn("normalize: unparseable registration date, regenerating",
			zap.String("registration_date", raw),
		)
	}

	return model.RandomDateIn(rng, windowStart, windowEnd)
}

// resolveSelection picks addon/discount codes: explicit hint list first, then
// the all-addons flag, then the oracle field. A "without" signal resolves to
// the empty set, never to absence. Unknown codes are dropped.
func resolveSelection(hinted []string, includeAll bool, rawField any, all []string, known func(string) bool) []string {
	if hinted != nil {
		return filterKnown(hinted, known)
	}
	if includeAll {
		out := make([]string, len(all))
		copy(out, all)
		return out
	}
	if raw := toStringList(rawField); raw != nil {
		return filterKnown(raw, known)
	}
	return nil
}

func filterKnown(codes []string, known func(string) bool) []string {
	out := []string{}
	for _, c := range codes {
		if known(c) {
			out = append(out, c)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

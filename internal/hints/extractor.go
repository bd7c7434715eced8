// Package hints performs the keyword pre-scan over free scenario text. The
// scan is deterministic and best-effort: unmatched patterns leave the
// corresponding hint unset, and when patterns overlap the later rule wins.
package hints

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/policyforge/casegen/internal/catalog"
	"github.com/policyforge/casegen/internal/model"
)

var (
	ageRe      = regexp.MustCompile(`(?i)(\d+)\s*years?\s*old`)
	expiryRe   = regexp.MustCompile(`(?i)(?:expired\s*(?:by|for|more\s*than)?|more\s*than)\s*(\d+)\s*days`)
	breakInRe  = regexp.MustCompile(`(?i)break[\s-]*in\s*(?:of\s*)?(\d+)\s*days`)
	allAddonRe = regexp.MustCompile(`(?i)all\s*addons`)
	noAddonRe  = regexp.MustCompile(`(?i)without\s*addons`)
	addonRe    = regexp.MustCompile(`(?i)with\s*([^,]+?)\s*addons?`)
	noDiscRe   = regexp.MustCompile(`(?i)without\s*discounts`)
	discRe     = regexp.MustCompile(`(?i)with\s*([^,]+?)\s*discounts?`)
	modelRe    = regexp.MustCompile(`(?i)model\s+(\w+)`)
	variantRe  = regexp.MustCompile(`(?i)variant\s+(\w+)`)
	newBizRe   = regexp.MustCompile(`(?i)new\s*(?:business|vehicle)`)
	rolloverRe = regexp.MustCompile(`(?i)rollover|expired`)
	companyRe  = regexp.MustCompile(`(?i)\bcompany\b`)
	individRe  = regexp.MustCompile(`(?i)\bindividual\b`)
	listSplit  = regexp.MustCompile(`(?i)\s*(?:\band\b|,)\s*`)
)

// Extract scans text for typed hints. Pure and side-effect free.
func Extract(text string, cat *catalog.Catalog) model.HintSet {
	var h model.HintSet

	if m := ageRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			h.VehicleAgeYears = &n
		}
	}

	if m := expiryRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			h.ExpiryDays = &n
		}
	}
	if m := breakInRe.FindStringSubmatch(text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			h.BreakInDays = &n
			if h.ExpiryDays == nil {
				h.ExpiryDays = &n
			}
		}
	}

	switch {
	case allAddonRe.MatchString(text):
		h.IncludeAllAddons = true
	case noAddonRe.MatchString(text):
		h.SpecifiedAddons = []string{}
	default:
		if m := addonRe.FindStringSubmatch(text); m != nil {
			h.SpecifiedAddons = filterCodes(m[1], cat.HasAddon)
		}
	}

	if noDiscRe.MatchString(text) {
		h.SpecifiedDiscounts = []string{}
	} else if m := discRe.FindStringSubmatch(text); m != nil {
		h.SpecifiedDiscounts = filterCodes(m[1], cat.HasDiscount)
	}

	if m := modelRe.FindStringSubmatch(text); m != nil {
		h.Model = strings.ToUpper(m[1])
	}
	if m := variantRe.FindStringSubmatch(text); m != nil {
		h.Variant = strings.ToUpper(m[1])
	}

	if newBizRe.MatchString(text) {
		h.JourneyType = model.JourneyNewBusiness
	} else if rolloverRe.MatchString(text) {
		h.JourneyType = model.JourneyRollover
	}

	if companyRe.MatchString(text) {
		h.OwnedBy = model.OwnedByCompany
	} else if individRe.MatchString(text) {
		h.OwnedBy = model.OwnedByIndividual
	}

	return h
}

// filterCodes splits a free-text "X and Y" list, uppercases, normalizes
// spaces to underscores, and keeps only codes the catalog knows. Unknown
// codes are dropped silently.
func filterCodes(list string, known func(string) bool) []string {
	parts := listSplit.Split(list, -1)
	out := []string{}
	for _, p := range parts {
		code := strings.ToUpper(strings.TrimSpace(p))
		code = strings.ReplaceAll(code, " ", "_")
		if code == "" || !known(code) {
			continue
		}
		out = append(out, code)
	}
	return out
}

package pipeline

import (
	"math/rand"

	"github.com/policyforge/casegen/internal/model"
)

// Expiry sampling windows for rollover scenarios without an explicit
// expiry-days hint: the "active" branch lands the prior policy between 90
// days ago and 30 days ahead, the "expired" branch strictly more than 90
// days ago.
const (
	activeWindowPastDays   = 90
	activeWindowFutureDays = 30
	expiredCutoffDays      = 91
)

// ResolvedDates is the full set of derived record dates.
type ResolvedDates struct {
	RegistrationDate     model.Date
	PreviousPolicyExpiry model.Date
	PreviousTpExpiry     model.Date
	PreviousTpStart      model.Date
	PucExpiry            model.Date
}

// ResolveDates derives all prior-policy and PUC dates for a normalized
// scenario. New-business scenarios get zero (empty-string) prior-policy
// dates. The resolver is a best-effort generator: an inconsistent upstream
// window degrades to the current date instead of erroring — the validator
// owns rejection.
func ResolveDates(sc model.Scenario, now model.Date, rng *rand.Rand) ResolvedDates {
	out := ResolvedDates{
		RegistrationDate: sc.RegistrationDate,
		PucExpiry:        now.AddMonths(6 + rng.Intn(7)),
	}

	if sc.JourneyType != model.JourneyRollover {
		return out
	}

	minExpiry := sc.RegistrationDate.AddYears(1)

	if sc.ExpiryDays != nil {
		// Stated expiry window, unless it contradicts vehicle age: the
		// registration-derived minimum overrides the hint.
		start := now.AddDays(-(*sc.ExpiryDays + 1))
		end := now.AddDays(-1)
		expiry := drawWindow(rng, start, end, now)
		if expiry.Before(minExpiry) {
			expiry = drawWindow(rng, minExpiry, now, now)
		}
		out.PreviousPolicyExpiry = expiry
	} else if rng.Intn(2) == 0 {
		// Active: policy still running or in its renewal grace window.
		out.PreviousPolicyExpiry = drawWindow(rng,
			now.AddDays(-activeWindowPastDays),
			now.AddDays(activeWindowFutureDays),
			now,
		)
	} else {
		// Expired: a real break-in, bounded below by vehicle age.
		out.PreviousPolicyExpiry = drawWindow(rng,
			minExpiry,
			now.AddDays(-expiredCutoffDays),
			now,
		)
	}

	// Third-party cover runs on fixed statutory tenures: 1 or 3 years for
	// private cars, 1 or 5 for two-wheelers, counted from registration.
	tenure := tpTenureYears(sc.VehicleType, rng)
	out.PreviousTpExpiry = sc.RegistrationDate.AddYears(tenure)
	out.PreviousTpStart = out.PreviousTpExpiry.AddYears(-1)

	return out
}

func tpTenureYears(vt model.VehicleType, rng *rand.Rand) int {
	long := 3
	if vt == model.Vehicle2W {
		long = 5
	}
	if rng.Intn(2) == 0 {
		return 1
	}
	return long
}

// drawWindow samples uniformly from [start, end]; an inverted window falls
// back to the caller's safe default.
func drawWindow(rng *rand.Rand, start, end, fallback model.Date) model.Date {
	if start.After(end) {
		return fallback
	}
	return model.RandomDateIn(rng, start, end)
}

package pipeline

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyforge/casegen/internal/model"
)

func rolloverScenario(reg model.Date) model.Scenario {
	return model.Scenario{
		JourneyType:      model.JourneyRollover,
		ProductCode:      "GODIGIT_PC_COMPREHENSIVE",
		VehicleType:      model.Vehicle4W,
		RegistrationDate: reg,
	}
}

func TestResolveDatesNewBusiness(t *testing.T) {
	now := testNow()
	sc := model.Scenario{
		JourneyType:      model.JourneyNewBusiness,
		VehicleType:      model.Vehicle4W,
		RegistrationDate: model.NewDate(2025, time.August, 1),
	}

	d := ResolveDates(sc, now, testRng())

	assert.True(t, d.PreviousPolicyExpiry.IsZero())
	assert.True(t, d.PreviousTpExpiry.IsZero())
	assert.True(t, d.PreviousTpStart.IsZero())
	assert.False(t, d.PucExpiry.IsZero())
}

func TestResolveDatesPucWindow(t *testing.T) {
	now := testNow()
	sc := rolloverScenario(model.NewDate(2020, time.June, 1))

	for seed := int64(0); seed < 50; seed++ {
		d := ResolveDates(sc, now, rand.New(rand.NewSource(seed)))
		min := now.AddMonths(6)
		max := now.AddMonths(12)
		assert.False(t, d.PucExpiry.Before(min), "seed %d: puc %s before %s", seed, d.PucExpiry, min)
		assert.False(t, d.PucExpiry.After(max), "seed %d: puc %s after %s", seed, d.PucExpiry, max)
	}
}

func TestResolveDatesExplicitExpiryDays(t *testing.T) {
	now := testNow()
	days := 95
	sc := rolloverScenario(model.NewDate(2015, time.June, 1))
	sc.ExpiryDays = &days

	for seed := int64(0); seed < 50; seed++ {
		d := ResolveDates(sc, now, rand.New(rand.NewSource(seed)))
		// Expiry lands in [now-96, now-1].
		assert.False(t, d.PreviousPolicyExpiry.Before(now.AddDays(-(days+1))), "seed %d", seed)
		assert.False(t, d.PreviousPolicyExpiry.After(now.AddDays(-1)), "seed %d", seed)
	}
}

func TestResolveDatesExpiryRedrawForYoungVehicle(t *testing.T) {
	now := testNow()
	days := 95
	// Registered 13 months ago: the one-year minimum expiry makes the stated
	// window impossible, so the resolver redraws in [minExpiry, now].
	reg := now.AddMonths(-13)
	sc := rolloverScenario(reg)
	sc.ExpiryDays = &days

	minExpiry := reg.AddYears(1)
	for seed := int64(0); seed < 50; seed++ {
		d := ResolveDates(sc, now, rand.New(rand.NewSource(seed)))
		assert.False(t, d.PreviousPolicyExpiry.Before(minExpiry), "seed %d", seed)
		assert.False(t, d.PreviousPolicyExpiry.After(now), "seed %d", seed)
	}
}

func TestResolveDatesCoinFlipBranches(t *testing.T) {
	now := testNow()
	sc := rolloverScenario(model.NewDate(2015, time.June, 1))
	minExpiry := sc.RegistrationDate.AddYears(1)

	sawActive, sawExpired := false, false
	for seed := int64(0); seed < 100; seed++ {
		d := ResolveDates(sc, now, rand.New(rand.NewSource(seed)))
		exp := d.PreviousPolicyExpiry
		require.False(t, exp.IsZero())

		if exp.After(now.AddDays(-91)) {
			sawActive = true
			assert.False(t, exp.Before(now.AddDays(-90)), "seed %d", seed)
			assert.False(t, exp.After(now.AddDays(30)), "seed %d", seed)
		} else {
			sawExpired = true
			assert.False(t, exp.Before(minExpiry), "seed %d", seed)
		}
	}
	assert.True(t, sawActive, "active branch never drawn")
	assert.True(t, sawExpired, "expired branch never drawn")
}

func TestResolveDatesTpTenure(t *testing.T) {
	now := testNow()
	reg := model.NewDate(2018, time.March, 10)

	tests := []struct {
		name    string
		vt      model.VehicleType
		tenures []int
	}{
		{"four wheeler", model.Vehicle4W, []int{1, 3}},
		{"two wheeler", model.Vehicle2W, []int{1, 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sc := rolloverScenario(reg)
			sc.VehicleType = tt.vt

			seen := map[string]bool{}
			for seed := int64(0); seed < 60; seed++ {
				d := ResolveDates(sc, now, rand.New(rand.NewSource(seed)))

				valid := false
				for _, tenure := range tt.tenures {
					if d.PreviousTpExpiry.Equal(reg.AddYears(tenure)) {
						valid = true
					}
				}
				assert.True(t, valid, "seed %d: tp expiry %s not a statutory tenure", seed, d.PreviousTpExpiry)
				assert.True(t, d.PreviousTpStart.Equal(d.PreviousTpExpiry.AddYears(-1)))
				seen[d.PreviousTpExpiry.String()] = true
			}
			assert.Len(t, seen, 2, "both tenures should occur across seeds")
		})
	}
}

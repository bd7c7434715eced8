package idgen

import (
	"math/rand"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	plateRe   = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z]{2}[0-9]{4}$`)
	engineRe  = regexp.MustCompile(`^[A-Z0-9]{10}$`)
	chassisRe = regexp.MustCompile(`^[A-Z0-9]{17}$`)
	gstinRe   = regexp.MustCompile(`^27[A-Z]{5}[0-9]{4}[A-Z][0-9]Z[0-9]$`)
)

func TestIdentifierFormats(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 50; i++ {
		assert.Regexp(t, plateRe, RegistrationNumber(rng))
		assert.Regexp(t, engineRe, EngineNumber(rng))
		assert.Regexp(t, chassisRe, ChassisNumber(rng))
		assert.Regexp(t, gstinRe, GSTIN(rng, "GTTPK1088Q"))
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	a := RegistrationNumber(rand.New(rand.NewSource(99)))
	b := RegistrationNumber(rand.New(rand.NewSource(99)))
	assert.Equal(t, a, b)
}

package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyforge/casegen/internal/model"
)

func TestResolveProduct(t *testing.T) {
	cat := Default()

	p, err := cat.ResolveProduct("GODIGIT_PC_COMPREHENSIVE")
	require.NoError(t, err)
	assert.Equal(t, model.Vehicle4W, p.VehicleType)
	assert.Equal(t, "GODIGIT", p.InsurerCode)
	assert.Equal(t, "Go Digit General Insurance", p.InsurerName)

	p, err = cat.ResolveProduct("  ICICI_TW_COMPREHENSIVE ")
	require.NoError(t, err)
	assert.Equal(t, model.Vehicle2W, p.VehicleType)

	_, err = cat.ResolveProduct("NOPE_PC_COMPREHENSIVE")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownProductCode)
}

func TestInsurerNamesDeduplicated(t *testing.T) {
	cat := Default()
	names := cat.InsurerNames()

	seen := map[string]int{}
	for _, n := range names {
		seen[n]++
	}
	for n, count := range seen {
		assert.Equal(t, 1, count, "insurer %q listed more than once", n)
	}
	assert.Contains(t, names, "HDFC ERGO General Insurance")
}

func TestAddonDiscountLookups(t *testing.T) {
	cat := Default()

	assert.True(t, cat.HasAddon(AddonZeroDepreciation))
	assert.False(t, cat.HasAddon("FREE_COFFEE"))
	assert.True(t, cat.HasDiscount(DiscountAntiTheft))
	assert.False(t, cat.HasDiscount("LOYALTY"))
}

func TestKYCByName(t *testing.T) {
	cat := Default()

	opt := cat.KYCByName("pan")
	require.NotNil(t, opt)
	assert.Equal(t, "GTTPK1088Q", opt["PAN"]["pan"])

	opt = cat.KYCByName("ckyc number")
	require.NotNil(t, opt)

	assert.Nil(t, cat.KYCByName("passport"))
}

func TestDefaultProposalQuestionsIsACopy(t *testing.T) {
	cat := Default()

	q := cat.DefaultProposalQuestions()
	q["valid_puc"] = "No"
	q["address"].(map[string]any)["pincode"] = "000000"

	fresh := cat.DefaultProposalQuestions()
	assert.Equal(t, "Yes", fresh.StringValue("valid_puc"))
	assert.Equal(t, "590001", fresh["address"].(map[string]any)["pincode"])
}

func TestLoadFileOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	yaml := `
products:
  - code: ACME_PC_COMPREHENSIVE
    vehicle_type: 4W
    insurer_code: ACME
insurer_names:
  ACME: Acme General Insurance
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cat, err := LoadFile(path)
	require.NoError(t, err)

	p, err := cat.ResolveProduct("ACME_PC_COMPREHENSIVE")
	require.NoError(t, err)
	assert.Equal(t, "Acme General Insurance", p.InsurerName)

	_, err = cat.ResolveProduct("GODIGIT_PC_COMPREHENSIVE")
	assert.Error(t, err)

	// Unset sections keep the built-in defaults.
	assert.True(t, cat.HasAddon(AddonPersonalAccident))
	assert.NotNil(t, cat.KYCByName("PAN"))
	assert.NotEmpty(t, cat.DefaultProposalQuestions())
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

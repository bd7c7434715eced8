package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddonListThreeStates(t *testing.T) {
	// nil means unspecified and serializes as "".
	b, err := json.Marshal(AddonList(nil))
	require.NoError(t, err)
	assert.Equal(t, `""`, string(b))

	// Empty non-nil means explicitly none.
	b, err = json.Marshal(AddonList{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(b))

	b, err = json.Marshal(AddonList{{InsuranceCoverCode: "ZERO_DEPRECIATION_COVER"}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"insurance_cover_code":"ZERO_DEPRECIATION_COVER"}]`, string(b))

	var l AddonList
	require.NoError(t, json.Unmarshal([]byte(`""`), &l))
	assert.Nil(t, l)
	require.NoError(t, json.Unmarshal([]byte(`[]`), &l))
	require.NotNil(t, l)
	assert.Len(t, l, 0)
}

func TestDiscountListThreeStates(t *testing.T) {
	b, err := json.Marshal(DiscountList(nil))
	require.NoError(t, err)
	assert.Equal(t, `""`, string(b))

	b, err = json.Marshal(DiscountList{{DiscountCode: "ANTI_THEFT_DISCOUNT", SumAssured: ""}})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"discount_code":"ANTI_THEFT_DISCOUNT","sa":""}]`, string(b))
}

func TestProposalQuestionsClone(t *testing.T) {
	orig := ProposalQuestions{
		"valid_puc": "Yes",
		"address": map[string]any{
			"pincode": "590001",
		},
	}

	copied := orig.Clone()
	copied["valid_puc"] = "No"
	copied["address"].(map[string]any)["pincode"] = "110001"

	assert.Equal(t, "Yes", orig.StringValue("valid_puc"))
	assert.Equal(t, "590001", orig["address"].(map[string]any)["pincode"])
}

func TestProposalQuestionsStringValue(t *testing.T) {
	p := ProposalQuestions{"a": "x", "b": 7}
	assert.Equal(t, "x", p.StringValue("a"))
	assert.Equal(t, "", p.StringValue("b"))
	assert.Equal(t, "", p.StringValue("missing"))
}

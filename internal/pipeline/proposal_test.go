package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyforge/casegen/internal/catalog"
	"github.com/policyforge/casegen/internal/model"
)

func testIdentifiers() GeneratedIdentifiers {
	return NewIdentifiers(testRng(), "GTTPK1088Q")
}

func testDates() ResolvedDates {
	return ResolvedDates{
		RegistrationDate:     model.NewDate(2020, time.June, 15),
		PreviousPolicyExpiry: model.NewDate(2025, time.May, 1),
		PreviousTpExpiry:     model.NewDate(2023, time.June, 15),
		PreviousTpStart:      model.NewDate(2022, time.June, 15),
		PucExpiry:            model.NewDate(2026, time.March, 1),
	}
}

func TestFilterProposalNeverAddsKeys(t *testing.T) {
	all := catalog.Default().DefaultProposalQuestions()
	sc := model.Scenario{
		JourneyType: model.JourneyRollover,
		ProductCode: "GODIGIT_PC_COMPREHENSIVE",
		OwnedBy:     model.OwnedByIndividual,
	}

	out := FilterProposal(all, sc, testDates(), testIdentifiers())

	for key := range out {
		_, existed := all[key]
		assert.True(t, existed, "filter introduced key %q", key)
	}
}

func TestFilterProposalDoesNotMutateInput(t *testing.T) {
	all := catalog.Default().DefaultProposalQuestions()
	before := all.Clone()

	sc := model.Scenario{
		JourneyType: model.JourneyNewBusiness,
		ProductCode: "GODIGIT_PC_COMPREHENSIVE",
		OwnedBy:     model.OwnedByCompany,
	}
	FilterProposal(all, sc, testDates(), testIdentifiers())

	assert.Equal(t, before, all)
}

func TestFilterProposalOwnershipRules(t *testing.T) {
	all := catalog.Default().DefaultProposalQuestions()
	dates := testDates()
	ids := testIdentifiers()

	individual := FilterProposal(all, model.Scenario{
		JourneyType: model.JourneyRollover,
		ProductCode: "GODIGIT_PC_COMPREHENSIVE",
		OwnedBy:     model.OwnedByIndividual,
	}, dates, ids)

	company := FilterProposal(all, model.Scenario{
		JourneyType: model.JourneyRollover,
		ProductCode: "GODIGIT_PC_COMPREHENSIVE",
		OwnedBy:     model.OwnedByCompany,
	}, dates, ids)

	// Company questions survive only for companies, customer questions only
	// for individuals.
	assert.NotContains(t, individual, "gstin")
	assert.NotContains(t, individual, "company_name")
	assert.Contains(t, individual, "proposer_pan")

	assert.Contains(t, company, "gstin")
	assert.Contains(t, company, "company_name")
	assert.NotContains(t, company, "proposer_pan")
	assert.NotContains(t, company, "proposer_first_name")
	// Companies never carry nominee or PA-declination questions.
	assert.NotContains(t, company, "nominee_first_name")
	assert.NotContains(t, company, "NO_PA_Cover")
}

func TestFilterProposalPersonalAccidentRules(t *testing.T) {
	all := catalog.Default().DefaultProposalQuestions()
	dates := testDates()
	ids := testIdentifiers()

	withPA := FilterProposal(all, model.Scenario{
		JourneyType: model.JourneyRollover,
		ProductCode: "GODIGIT_PC_COMPREHENSIVE",
		OwnedBy:     model.OwnedByIndividual,
		Addons:      []string{catalog.AddonPersonalAccident},
	}, dates, ids)

	withoutPA := FilterProposal(all, model.Scenario{
		JourneyType: model.JourneyRollover,
		ProductCode: "GODIGIT_PC_COMPREHENSIVE",
		OwnedBy:     model.OwnedByIndividual,
	}, dates, ids)

	assert.Contains(t, withPA, "nominee_first_name")
	assert.NotContains(t, withPA, "NO_PA_Cover")

	assert.NotContains(t, withoutPA, "nominee_first_name")
	assert.Contains(t, withoutPA, "NO_PA_Cover")
}

func TestFilterProposalJourneyRules(t *testing.T) {
	all := catalog.Default().DefaultProposalQuestions()
	dates := testDates()
	ids := testIdentifiers()

	newBiz := FilterProposal(all, model.Scenario{
		JourneyType: model.JourneyNewBusiness,
		ProductCode: "GODIGIT_PC_COMPREHENSIVE",
		OwnedBy:     model.OwnedByIndividual,
	}, dates, ids)
	assert.NotContains(t, newBiz, "previous_policy_expiry_date")
	assert.NotContains(t, newBiz, "previous_tp_policy_expiry_date")

	notSure := FilterProposal(all, model.Scenario{
		JourneyType: model.JourneyNotSure,
		ProductCode: "GODIGIT_PC_COMPREHENSIVE",
		OwnedBy:     model.OwnedByIndividual,
	}, dates, ids)
	assert.NotContains(t, notSure, "previous_policy_expiry_date")

	rollover := FilterProposal(all, model.Scenario{
		JourneyType: model.JourneyRollover,
		ProductCode: "GODIGIT_PC_COMPREHENSIVE",
		OwnedBy:     model.OwnedByIndividual,
	}, dates, ids)
	assert.Equal(t, "01/05/2025", rollover.StringValue("previous_policy_expiry_date"))
	assert.Equal(t, "15/06/2023", rollover.StringValue("previous_tp_policy_expiry_date"))
	assert.Equal(t, "15/06/2022", rollover.StringValue("previous_tp_policy_start_date"))
}

func TestFilterProposalInjectsIdentifiers(t *testing.T) {
	all := catalog.Default().DefaultProposalQuestions()
	ids := testIdentifiers()
	sc := model.Scenario{
		JourneyType:       model.JourneyRollover,
		ProductCode:       "GODIGIT_PC_COMPREHENSIVE",
		OwnedBy:           model.OwnedByIndividual,
		ManufacturingYear: 2020,
	}

	out := FilterProposal(all, sc, testDates(), ids)

	assert.Equal(t, ids.RegistrationNumber, out.StringValue("registration_number"))
	assert.Equal(t, ids.EngineNumber, out.StringValue("engine_number"))
	assert.Equal(t, ids.ChassisNumber, out.StringValue("chassis_number"))
	assert.Equal(t, "2020", out.StringValue("manufacturing_year"))
}

func TestNewIdentifiersShape(t *testing.T) {
	ids := testIdentifiers()
	require.Len(t, ids.ChassisNumber, 17)
	require.Len(t, ids.EngineNumber, 10)
	assert.Equal(t, "27GTTPK1088Q", ids.GSTIN[:12])
	assert.Equal(t, "KA01", ids.RegistrationNumber[:4])
}

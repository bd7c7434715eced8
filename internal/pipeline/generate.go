package pipeline

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"

	"github.com/policyforge/casegen/internal/catalog"
	"github.com/policyforge/casegen/internal/idgen"
	"github.com/policyforge/casegen/internal/model"
)

// Fixed test persona contact details carried on every record.
const (
	personaCustomerName = "Nisha"
	personaCompanyName  = "UMBO IDTECH PRIVATE LIMITED"
	personaContact      = "8970987654"
	personaEmail        = "nisha.kalpathri@riskcovry.com"
)

const (
	defaultMakeModel2W = "HONDA ACTIVA"
	defaultMakeModel4W = "HONDA CITY"
	defaultVariant     = "STANDARD"
)

var nonIDChars = regexp.MustCompile(`[^A-Z0-9]+`)

// Generate assembles the final test record for a normalized scenario: derived
// dates, the filtered proposal-question set, generated identifiers, and the
// persona defaults.
func Generate(sc model.Scenario, dates ResolvedDates, questions model.ProposalQuestions, cat *catalog.Catalog, rng *rand.Rand) model.TestRecord {
	ids := NewIdentifiers(rng, questions.StringValue("proposer_pan"))
	filtered := FilterProposal(questions, sc, dates, ids)

	previousInsurer := sc.InsurerName
	if sc.IsRollover() {
		previousInsurer = pickOtherInsurer(cat, sc.InsurerName, rng)
	}

	rec := model.TestRecord{
		TestcaseID:         testcaseID(sc),
		Category:           category(sc.VehicleType),
		JourneyType:        sc.JourneyType,
		RegistrationNumber: ids.RegistrationNumber,
		MakeModel:          makeModel(sc),
		Variant:            variant(sc),
		RegistrationDate:   dates.RegistrationDate.String(),
		RTO:                idgen.DefaultRTO,
		OwnedBy:            sc.OwnedBy,
		IsOwnershipChanged: sc.OwnershipChanged,

		PreviousExpiryDate:         dates.PreviousPolicyExpiry.String(),
		OffsetPreviousExpiryDate:   offsetDays(sc.ExpiryDays),
		PreviousInsurer:            previousInsurer,
		PreviousTpExpiryDate:       dates.PreviousTpExpiry.String(),
		OffsetPreviousTpExpiryDate: "",
		PreviousTpStartDate:        dates.PreviousTpStart.String(),
		PreviousTpInsurer:          previousInsurer,

		NotSure:                     "",
		KnowPreviousTpExpiryDate:    "Yes",
		NotSurePreviousTpExpiryDate: "",

		ClaimTaken:  yesNo(sc.ClaimTaken),
		PreviousNcb: sc.PreviousNcb,
		ProductCode: sc.ProductCode,

		CustomerName:  customerName(sc.OwnedBy),
		ContactNumber: personaContact,
		Email:         personaEmail,

		IDV:    sc.IDV,
		NCBTwo: "",

		Addons:    addonList(sc.Addons),
		Discounts: discountList(sc.Discounts),

		SelectTab:       selectTab(sc.ProductCode),
		KYC:             selectKYC(sc, cat, rng),
		KYCVerification: "Pending",
		PucExpiryDate:   dates.PucExpiry.String(),

		ProposalQuestions:    filtered,
		IsInspectionRequired: sc.IsInspectionRequired,
		CarrierName:          sc.InsurerName,
	}

	if !sc.IsRollover() {
		// First-time issuance: prior-policy fields are the explicit empty
		// sentinel, not merely unset.
		rec.PreviousExpiryDate = ""
		rec.PreviousTpExpiryDate = ""
		rec.PreviousTpStartDate = ""
		rec.OffsetPreviousExpiryDate = ""
		rec.PreviousInsurer = sc.InsurerName
		rec.PreviousTpInsurer = sc.InsurerName
	}

	return rec
}

func testcaseID(sc model.Scenario) string {
	if sc.TestcaseID != "" {
		return sc.TestcaseID
	}
	insurer := nonIDChars.ReplaceAllString(strings.ToUpper(sc.InsurerName), "_")
	journey := nonIDChars.ReplaceAllString(strings.ToUpper(string(sc.JourneyType)), "_")
	return fmt.Sprintf("%s_%s_%s_01", insurer, sc.VehicleType, journey)
}

func category(vt model.VehicleType) string {
	if vt == model.Vehicle2W {
		return "two_wheeler"
	}
	return "four_wheeler"
}

func makeModel(sc model.Scenario) string {
	if sc.Model != "" {
		return sc.Model
	}
	if sc.VehicleType == model.Vehicle2W {
		return defaultMakeModel2W
	}
	return defaultMakeModel4W
}

func variant(sc model.Scenario) string {
	if sc.Variant != "" {
		return sc.Variant
	}
	return defaultVariant
}

func customerName(o model.OwnedBy) string {
	if o == model.OwnedByCompany {
		return personaCompanyName
	}
	return personaCustomerName
}

func offsetDays(days *int) string {
	if days == nil {
		return ""
	}
	return strconv.Itoa(*days)
}

func selectTab(productCode string) string {
	if strings.Contains(productCode, "THIRD_PARTY") {
		return "Third Party"
	}
	return "Comprehensive"
}

// pickOtherInsurer draws a random insurer different from current; falls back
// to current when the catalog has no alternative.
func pickOtherInsurer(cat *catalog.Catalog, current string, rng *rand.Rand) string {
	var others []string
	for _, name := range cat.InsurerNames() {
		if name != current {
			others = append(others, name)
		}
	}
	if len(others) == 0 {
		return current
	}
	return others[rng.Intn(len(others))]
}

// selectKYC honors an explicitly requested format, otherwise draws one of the
// supported bundles at random.
func selectKYC(sc model.Scenario, cat *catalog.Catalog, rng *rand.Rand) []model.KYCOption {
	if sc.SpecifiedKyc != "" {
		if opt := cat.KYCByName(sc.SpecifiedKyc); opt != nil {
			return []model.KYCOption{opt}
		}
	}
	formats := cat.KYCFormats()
	if len(formats) == 0 {
		return nil
	}
	return []model.KYCOption{formats[rng.Intn(len(formats))]}
}

// addonList materializes the three-state addon selection: nil stays nil
// (serialized as ""), an explicit empty set stays an empty list.
func addonList(codes []string) model.AddonList {
	if codes == nil {
		return nil
	}
	out := model.AddonList{}
	for _, c := range codes {
		out = append(out, model.AddonSelection{InsuranceCoverCode: c})
	}
	return out
}

func discountList(codes []string) model.DiscountList {
	if codes == nil {
		return nil
	}
	out := model.DiscountList{}
	for _, c := range codes {
		out = append(out, model.DiscountSelection{DiscountCode: c})
	}
	return out
}

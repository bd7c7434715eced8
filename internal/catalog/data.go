package catalog

import "github.com/policyforge/casegen/internal/model"

// Addon codes known to the motor products.
const (
	AddonZeroDepreciation = "ZERO_DEPRECIATION_COVER"
	AddonRoadSideAssist   = "ROAD_SIDE_ASSISTANCE"
	AddonEngineProtection = "ENGINE_PROTECTION"
	AddonPersonalAccident = "PERSONAL_ACCIDENT"
	AddonReturnToInvoice  = "RETURN_TO_INVOICE"
)

// Discount codes known to the motor products.
const (
	DiscountAntiTheft           = "ANTI_THEFT_DISCOUNT"
	DiscountVoluntaryDeductible = "VOLUNTARY_DEDUCTIBLE"
	DiscountNCBProtection       = "NCB_PROTECTION"
)

var defaultProducts = []Product{
	{Code: "GODIGIT_PC_COMPREHENSIVE", VehicleType: model.Vehicle4W, InsurerCode: "GODIGIT"},
	{Code: "GODIGIT_TW_COMPREHENSIVE", VehicleType: model.Vehicle2W, InsurerCode: "GODIGIT"},
	{Code: "ICICI_PC_COMPREHENSIVE", VehicleType: model.Vehicle4W, InsurerCode: "ICICI"},
	{Code: "ICICI_PC_THIRD_PARTY", VehicleType: model.Vehicle4W, InsurerCode: "ICICI"},
	{Code: "ICICI_TW_COMPREHENSIVE", VehicleType: model.Vehicle2W, InsurerCode: "ICICI"},
	{Code: "HDFC_PC_COMPREHENSIVE", VehicleType: model.Vehicle4W, InsurerCode: "HDFC"},
	{Code: "HDFC_PC_OD_ONLY", VehicleType: model.Vehicle4W, InsurerCode: "HDFC"},
	{Code: "HDFC_TW_THIRD_PARTY", VehicleType: model.Vehicle2W, InsurerCode: "HDFC"},
	{Code: "BAJAJ_PC_THIRD_PARTY", VehicleType: model.Vehicle4W, InsurerCode: "BAJAJ"},
	{Code: "BAJAJ_TW_COMPREHENSIVE", VehicleType: model.Vehicle2W, InsurerCode: "BAJAJ"},
	{Code: "TATA_PC_COMPREHENSIVE", VehicleType: model.Vehicle4W, InsurerCode: "TATA"},
	{Code: "TATA_TW_OD_ONLY", VehicleType: model.Vehicle2W, InsurerCode: "TATA"},
}

var defaultInsurerNames = map[string]string{
	"GODIGIT": "Go Digit General Insurance",
	"ICICI":   "ICICI Lombard General Insurance",
	"HDFC":    "HDFC ERGO General Insurance",
	"BAJAJ":   "Bajaj Allianz General Insurance",
	"TATA":    "Tata AIG General Insurance",
}

var defaultAddons = []string{
	AddonZeroDepreciation,
	AddonRoadSideAssist,
	AddonEngineProtection,
	AddonPersonalAccident,
	AddonReturnToInvoice,
}

var defaultDiscounts = []string{
	DiscountAntiTheft,
	DiscountVoluntaryDeductible,
	DiscountNCBProtection,
}

var defaultProductTypes = []string{
	"PC_COMPREHENSIVE",
	"PC_THIRD_PARTY",
	"PC_OD_ONLY",
}

var defaultKYCFormats = []model.KYCOption{
	{
		"OVD": {
			"proposer_poi_document_type": "PAN Card",
			"proposer_poa_document_type": "Aadhaar Card",
			"proposer_phone_number":      "8970985822",
			"proposer_email":             "nisha.kalpathri@riskcovry.com",
		},
	},
	{
		"PAN": {
			"pan": "GTTPK1088Q",
			"dob": "28/10/1994",
		},
	},
	{
		"CKYC Number": {
			"ckyc_number": "60061639446221",
			"dob":         "28/10/1994",
		},
	},
}

// defaultProposalQuestions is the single canned test persona. Generated
// identifiers (registration/engine/chassis numbers) are replaced per record.
var defaultProposalQuestions = model.ProposalQuestions{
	"manufacturing_year":    "",
	"registration_number":   "",
	"engine_number":         "234we32432",
	"chassis_number":        "78u781678936y6789",
	"financier_name":        "",
	"financier_type":        "",
	"valid_puc":             "Yes",
	"puc_number":            "PUC123456",
	"gstin":                 "27AAUFM1756H1ZT",
	"company_name":          "UMBO IDTECH PRIVATE LIMITED",
	"proposer_email":        "nisha.kalpathri@riskcovry.com",
	"proposer_phone_number": "8970985822",
	"address": map[string]any{
		"address_line_1": "D/O SUBBARAO",
		"address_line_2": "SHIVAJI NAGAR",
		"pincode":        "590001",
		"city":           "Belgaum",
		"state":          "Karnataka",
	},
	"is_address_same":                 "Yes",
	"registration_address":            "",
	"previous_policy_carrier_code":    "",
	"previous_policy_type":            "",
	"previous_policy_number":          "",
	"previous_policy_expiry_date":     "",
	"previous_tp_policy_start_date":   "",
	"previous_tp_policy_expiry_date":  "",
	"previous_tp_policy_carrier_code": "",
	"previous_tp_policy_number":       "",
	"NO_PA_Cover":                     "",
	"proposer_first_name":             "Nisha",
	"proposer_last_name":              "Kalpathri",
	"proposer_salutation":             "Ms",
	"proposer_dob":                    "28/10/1994",
	"proposer_age":                    "30",
	"proposer_alternate_number":       "",
	"proposer_marital_status":         "Single",
	"proposer_pan":                    "GTTPK1088Q",
	"proposer_gstin":                  "",
	"proposer_annual_income":          "500000",
	"proposer_occupation":             "Engineer",
	"proposer_title":                  "Ms",
	"company_details":                 "",
	"company_date_of_incorporation":   "01/01/2015",
	"nominee_salutation":              "Mr",
	"nominee_first_name":              "Ravi",
	"nominee_last_name":               "Kalpathri",
	"nominee_dob":                     "15/06/1990",
	"nominee_age":                     "35",
	"nominee_gender":                  "Male",
	"nominee_relation":                "Brother",
	"nominee_details":                 "",
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultProducts, defaultInsurerNames, defaultAddons, defaultDiscounts, defaultKYCFormats, defaultProductTypes, defaultProposalQuestions)
}

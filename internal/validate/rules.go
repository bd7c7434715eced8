// Package validate re-checks a fully assembled test record against a
// declarative constraint table and repairs every violation in place. The
// engine is a repair loop, not a reject loop: each emitted error is paired
// with exactly one fix, and the corrected record is always returned.
package validate

import (
	"math/rand"
	"regexp"
	"strconv"

	"github.com/policyforge/casegen/internal/idgen"
	"github.com/policyforge/casegen/internal/model"
)

// Context carries everything a predicate or repair may consult.
type Context struct {
	Scenario model.Scenario
	Record   *model.TestRecord
	Now      model.Date
	Rng      *rand.Rand
}

// Rule is one row of the constraint table. Mandatory may be nil (never
// mandatory) or a predicate; Pattern and Condition apply whenever the field
// is present. Repair must produce a value that satisfies the rule — the
// engine trusts it and does not re-check.
type Rule struct {
	Field     string
	Mandatory func(*Context) bool
	Pattern   *regexp.Regexp
	Condition func(*Context, string) bool
	Message   string
	Repair    func(*Context) string
}

var (
	regNumberRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z]{2}[0-9]{4}$`)
	engineRe    = regexp.MustCompile(`^[A-Za-z0-9]{6,}$`)
	chassisRe   = regexp.MustCompile(`^[A-Za-z0-9]{17}$`)
	panRe       = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
	gstinRe     = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][0-9A-Z]Z[0-9A-Z]$`)
	yearRe      = regexp.MustCompile(`^[0-9]{4}$`)
	phoneRe     = regexp.MustCompile(`^[0-9]{10}$`)
	pincodeRe   = regexp.MustCompile(`^[0-9]{6}$`)
	emailRe     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	yesNoRe     = regexp.MustCompile(`^(Yes|No)$`)
)

// Persona repair values: the fixed test identity every record carries.
const (
	personaPAN     = "GTTPK1088Q"
	personaDOB     = "28/10/1994"
	personaPhone   = "8970985822"
	personaEmail   = "nisha.kalpathri@riskcovry.com"
	personaCompany = "UMBO IDTECH PRIVATE LIMITED"
	personaIncDate = "01/01/2015"
	personaPincode = "590001"
	personaPUC     = "PUC123456"
)

func isIndividual(ctx *Context) bool { return ctx.Scenario.OwnedBy == model.OwnedByIndividual }
func isCompany(ctx *Context) bool    { return ctx.Scenario.OwnedBy == model.OwnedByCompany }
func isRollover(ctx *Context) bool   { return ctx.Scenario.IsRollover() }
func always(*Context) bool           { return true }

// rules is the constraint table, in processing order. The TP expiry rule
// precedes the TP start rule: the start repair reads the (possibly repaired)
// expiry value.
var rules = []Rule{
	{
		Field:     "registration_number",
		Mandatory: always,
		Pattern:   regNumberRe,
		Message:   "registration number must match RTO plate format",
		Repair:    func(ctx *Context) string { return idgen.RegistrationNumber(ctx.Rng) },
	},
	{
		Field:     "engine_number",
		Mandatory: always,
		Pattern:   engineRe,
		Message:   "engine number must be alphanumeric",
		Repair:    func(ctx *Context) string { return idgen.EngineNumber(ctx.Rng) },
	},
	{
		Field:     "chassis_number",
		Mandatory: always,
		Pattern:   chassisRe,
		Message:   "chassis number must be 17 alphanumeric characters",
		Repair:    func(ctx *Context) string { return idgen.ChassisNumber(ctx.Rng) },
	},
	{
		Field:     "manufacturing_year",
		Mandatory: always,
		Pattern:   yearRe,
		Condition: manufacturingYearValid,
		Message:   "manufacturing year must precede registration and not exceed the current year",
		Repair:    repairManufacturingYear,
	},
	{
		Field:     "gstin",
		Mandatory: isCompany,
		Pattern:   gstinRe,
		Message:   "gstin must be format-shaped (state code + PAN + entity + Z + check digit)",
		Repair:    func(ctx *Context) string { return idgen.GSTIN(ctx.Rng, personaPAN) },
	},
	{
		Field:     "company_name",
		Mandatory: isCompany,
		Message:   "company name is required for company-owned vehicles",
		Repair:    func(*Context) string { return personaCompany },
	},
	{
		Field:     "company_date_of_incorporation",
		Mandatory: isCompany,
		Condition: pastDateValid,
		Message:   "incorporation date must be a past DD/MM/YYYY date",
		Repair:    func(*Context) string { return personaIncDate },
	},
	{
		Field:     "proposer_pan",
		Mandatory: isIndividual,
		Pattern:   panRe,
		Message:   "PAN must match AAAAA9999A",
		Repair:    func(*Context) string { return personaPAN },
	},
	{
		Field:     "proposer_dob",
		Mandatory: isIndividual,
		Condition: pastDateValid,
		Message:   "date of birth must be a past DD/MM/YYYY date",
		Repair:    func(*Context) string { return personaDOB },
	},
	{
		Field:     "proposer_email",
		Mandatory: isIndividual,
		Pattern:   emailRe,
		Message:   "proposer email must be a valid address",
		Repair:    func(*Context) string { return personaEmail },
	},
	{
		Field:     "proposer_phone_number",
		Mandatory: isIndividual,
		Pattern:   phoneRe,
		Message:   "phone number must be 10 digits",
		Repair:    func(*Context) string { return personaPhone },
	},
	{
		Field:   "address.pincode",
		Pattern: pincodeRe,
		Message: "pincode must be 6 digits",
		Repair:  func(*Context) string { return personaPincode },
	},
	{
		Field:   "valid_puc",
		Pattern: yesNoRe,
		Message: "valid_puc must be Yes or No",
		Repair:  func(*Context) string { return "Yes" },
	},
	{
		Field:     "puc_number",
		Mandatory: pucRequired,
		Message:   "puc number is required while the PUC is valid",
		Repair:    func(*Context) string { return personaPUC },
	},
	{
		Field:     "previous_policy_expiry_date",
		Mandatory: isRollover,
		Condition: previousExpiryValid,
		Message:   "previous policy expiry must fall at least one year after registration and not beyond the grace window",
		Repair:    repairPreviousExpiry,
	},
	{
		Field:     "previous_tp_policy_expiry_date",
		Mandatory: isRollover,
		Condition: tpExpiryValid,
		Message:   "previous TP expiry must be registration plus a statutory tenure",
		Repair:    repairTpExpiry,
	},
	{
		Field:     "previous_tp_policy_start_date",
		Mandatory: isRollover,
		Condition: tpStartValid,
		Message:   "previous TP start must be exactly one year before TP expiry",
		Repair:    repairTpStart,
	},
}

func manufacturingYearValid(ctx *Context, v string) bool {
	year, ok := atoiStrict(v)
	if !ok || year > ctx.Now.Year() {
		return false
	}
	reg, err := model.ParseDate(ctx.Record.RegistrationDate)
	if err != nil || reg.IsZero() {
		return true
	}
	return reg.Year() >= year && reg.Year() <= year+1
}

// repairManufacturingYear keeps the scenario's year only when it is
// consistent with the record's registration date; otherwise the registration
// year wins, so the repaired value always passes manufacturingYearValid.
func repairManufacturingYear(ctx *Context) string {
	if y := ctx.Scenario.ManufacturingYear; y > 0 && manufacturingYearValid(ctx, strconv.Itoa(y)) {
		return strconv.Itoa(y)
	}
	if reg, err := model.ParseDate(ctx.Record.RegistrationDate); err == nil && !reg.IsZero() {
		y := reg.Year()
		if y > ctx.Now.Year() {
			y = ctx.Now.Year()
		}
		return strconv.Itoa(y)
	}
	return strconv.Itoa(ctx.Now.Year() - 1)
}

func pastDateValid(ctx *Context, v string) bool {
	d, err := model.ParseDate(v)
	return err == nil && !d.IsZero() && d.Before(ctx.Now)
}

func pucRequired(ctx *Context) bool {
	return ctx.Record.ProposalQuestions.StringValue("valid_puc") == "Yes"
}

// previousExpiryValid accepts dates in [registration+1y, now+30d]. When the
// vehicle is under a year old that window is empty, so any date up to the
// grace cutoff is accepted — the generator already degraded to a safe value.
func previousExpiryValid(ctx *Context, v string) bool {
	d, err := model.ParseDate(v)
	if err != nil || d.IsZero() {
		return false
	}
	grace := ctx.Now.AddDays(30)
	if d.After(grace) {
		return false
	}
	minExpiry := minPreviousExpiry(ctx)
	if minExpiry.After(ctx.Now) {
		return true
	}
	return !d.Before(minExpiry)
}

func repairPreviousExpiry(ctx *Context) string {
	minExpiry := minPreviousExpiry(ctx)
	if minExpiry.After(ctx.Now) {
		return ctx.Now.String()
	}
	return model.RandomDateIn(ctx.Rng, minExpiry, ctx.Now).String()
}

func minPreviousExpiry(ctx *Context) model.Date {
	reg, err := model.ParseDate(ctx.Record.RegistrationDate)
	if err != nil || reg.IsZero() {
		return ctx.Now
	}
	return reg.AddYears(1)
}

// tpExpiryValid accepts registration plus any statutory tenure for the
// vehicle segment: {1,3} years for 4W, {1,5} for 2W.
func tpExpiryValid(ctx *Context, v string) bool {
	d, err := model.ParseDate(v)
	if err != nil || d.IsZero() {
		return false
	}
	reg, err := model.ParseDate(ctx.Record.RegistrationDate)
	if err != nil || reg.IsZero() {
		return false
	}
	for _, tenure := range tenuresFor(ctx.Scenario.VehicleType) {
		if reg.AddYears(tenure).Equal(d) {
			return true
		}
	}
	return false
}

func repairTpExpiry(ctx *Context) string {
	reg, err := model.ParseDate(ctx.Record.RegistrationDate)
	if err != nil || reg.IsZero() {
		return ctx.Now.String()
	}
	tenures := tenuresFor(ctx.Scenario.VehicleType)
	return reg.AddYears(tenures[ctx.Rng.Intn(len(tenures))]).String()
}

func tenuresFor(vt model.VehicleType) []int {
	if vt == model.Vehicle2W {
		return []int{1, 5}
	}
	return []int{1, 3}
}

func tpStartValid(ctx *Context, v string) bool {
	start, err := model.ParseDate(v)
	if err != nil || start.IsZero() {
		return false
	}
	expiry, err := model.ParseDate(ctx.Record.ProposalQuestions.StringValue("previous_tp_policy_expiry_date"))
	if err != nil || expiry.IsZero() {
		return false
	}
	return expiry.AddYears(-1).Equal(start)
}

func repairTpStart(ctx *Context) string {
	expiry, err := model.ParseDate(ctx.Record.ProposalQuestions.StringValue("previous_tp_policy_expiry_date"))
	if err != nil || expiry.IsZero() {
		return ctx.Record.RegistrationDate
	}
	return expiry.AddYears(-1).String()
}

func atoiStrict(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil && n >= 0
}

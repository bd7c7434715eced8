package validate

import (
	"math/rand"
	"strings"

	"go.uber.org/zap"

	"github.com/policyforge/casegen/internal/catalog"
	"github.com/policyforge/casegen/internal/model"
)

// Validate runs the constraint table over the record's proposal questions,
// repairs every violation, then reconciles the root-level mirrors of the
// previous-policy fields with their nested counterparts. The repaired record
// is returned inside the result regardless of validity.
//
// Repairs are idempotent: validating the returned record again yields zero
// errors, which is what the engine's own tests pin down.
func Validate(sc model.Scenario, rec model.TestRecord, now model.Date, rng *rand.Rand) model.ValidationResult {
	rec.ProposalQuestions = rec.ProposalQuestions.Clone()
	ctx := &Context{Scenario: sc, Record: &rec, Now: now, Rng: rng}

	var errs, fixes []model.Issue
	for i := range rules {
		if issue, fix, ok := applyRule(ctx, &rules[i]); ok {
			errs = append(errs, issue)
			fixes = append(fixes, fix)
		}
	}

	syncErrs, syncFixes := syncMirrors(ctx)
	errs = append(errs, syncErrs...)
	fixes = append(fixes, syncFixes...)

	if len(errs) > 0 || len(syncFixes) > 0 {
		zap.L().Debug("record repaired",
			zap.String("testcase_id", rec.TestcaseID),
			zap.Int("errors", len(errs)),
			zap.Int("fixes", len(fixes)))
	}

	return model.ValidationResult{
		IsValid: len(errs) == 0,
		Errors:  errs,
		Fixes:   fixes,
		Record:  rec,
	}
}

// applyRule checks one field and repairs it when violated. An absent field
// counts as empty: mandatory fields are repaired back in, while keys the
// filter dropped for a non-mandatory rule stay dropped.
func applyRule(ctx *Context, r *Rule) (model.Issue, model.Issue, bool) {
	val, present := getField(ctx.Record.ProposalQuestions, r.Field)

	if !present || val == "" {
		if r.Mandatory == nil || !r.Mandatory(ctx) {
			return model.Issue{}, model.Issue{}, false
		}
		repaired := r.Repair(ctx)
		setField(ctx.Record.ProposalQuestions, r.Field, repaired)
		issue := model.Issue{Field: r.Field, Kind: model.IssueMandatory, Message: r.Field + " is required", OldValue: ""}
		fix := issue
		fix.NewValue = repaired
		return issue, fix, true
	}

	kind := model.IssueKind("")
	switch {
	case r.Pattern != nil && !r.Pattern.MatchString(val):
		kind = model.IssuePattern
	case r.Condition != nil && !r.Condition(ctx, val):
		kind = model.IssueCondition
	default:
		return model.Issue{}, model.Issue{}, false
	}

	repaired := r.Repair(ctx)
	setField(ctx.Record.ProposalQuestions, r.Field, repaired)
	issue := model.Issue{Field: r.Field, Kind: kind, Message: r.Message, OldValue: val}
	fix := issue
	fix.NewValue = repaired
	return issue, fix, true
}

// syncMirrors reconciles the duplicated previous-policy dates: the nested
// proposal values are authoritative and the root fields follow them. For a
// non-rollover journey any non-empty previous-policy field, root or nested,
// is a hard invariant violation — it is errored, not just repaired.
func syncMirrors(ctx *Context) ([]model.Issue, []model.Issue) {
	rec := ctx.Record

	if !ctx.Scenario.IsRollover() {
		var errs, fixes []model.Issue
		for _, m := range []struct {
			name string
			root *string
		}{
			{"previous_expiry_date", &rec.PreviousExpiryDate},
			{"previous_tp_expiry_date", &rec.PreviousTpExpiryDate},
			{"previous_tp_start_date", &rec.PreviousTpStartDate},
		} {
			if *m.root != "" {
				issue := model.Issue{
					Field:    m.name,
					Kind:     model.IssueSync,
					Message:  "previous-policy dates must be empty on a new business journey",
					OldValue: *m.root,
				}
				errs = append(errs, issue)
				fixes = append(fixes, issue)
				*m.root = ""
			}
		}
		for _, key := range catalog.PreviousPolicyQuestions {
			val, present := getField(rec.ProposalQuestions, key)
			if !present || val == "" {
				continue
			}
			issue := model.Issue{
				Field:    key,
				Kind:     model.IssueSync,
				Message:  "previous-policy fields must be empty on a new business journey",
				OldValue: val,
			}
			errs = append(errs, issue)
			fixes = append(fixes, issue)
			setField(rec.ProposalQuestions, key, "")
		}
		return errs, fixes
	}

	var fixes []model.Issue
	for _, m := range []struct {
		nested string
		name   string
		root   *string
	}{
		{"previous_policy_expiry_date", "previous_expiry_date", &rec.PreviousExpiryDate},
		{"previous_tp_policy_expiry_date", "previous_tp_expiry_date", &rec.PreviousTpExpiryDate},
		{"previous_tp_policy_start_date", "previous_tp_start_date", &rec.PreviousTpStartDate},
	} {
		want := rec.ProposalQuestions.StringValue(m.nested)
		if want == "" || *m.root == want {
			continue
		}
		fixes = append(fixes, model.Issue{
			Field:    m.name,
			Kind:     model.IssueSync,
			Message:  m.name + " must mirror the proposal value",
			OldValue: *m.root,
			NewValue: want,
		})
		*m.root = want
	}

	if rn := rec.ProposalQuestions.StringValue("registration_number"); rn != "" && rec.RegistrationNumber != rn {
		fixes = append(fixes, model.Issue{
			Field:    "registration_number",
			Kind:     model.IssueSync,
			Message:  "registration_number must mirror the proposal value",
			OldValue: rec.RegistrationNumber,
			NewValue: rn,
		})
		rec.RegistrationNumber = rn
	}
	return nil, fixes
}

// getField resolves a possibly dotted field path. Only one level of nesting
// exists in the proposal (the address object).
func getField(q model.ProposalQuestions, path string) (string, bool) {
	if outer, inner, ok := strings.Cut(path, "."); ok {
		nested, found := q[outer].(map[string]any)
		if !found {
			return "", false
		}
		v, present := nested[inner]
		s, _ := v.(string)
		return s, present
	}
	v, present := q[path]
	s, _ := v.(string)
	return s, present
}

func setField(q model.ProposalQuestions, path string, val string) {
	if outer, inner, ok := strings.Cut(path, "."); ok {
		if nested, found := q[outer].(map[string]any); found {
			nested[inner] = val
		}
		return
	}
	q[path] = val
}

package pipeline

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/policyforge/casegen/internal/catalog"
	"github.com/policyforge/casegen/internal/hints"
	"github.com/policyforge/casegen/internal/idgen"
	"github.com/policyforge/casegen/internal/model"
	"github.com/policyforge/casegen/internal/oracle"
	"github.com/policyforge/casegen/internal/validate"
)

var ErrMissingRequiredInput = eris.New("missing required input")

const defaultConcurrency = 8

// Generator drives the whole run: hint extraction, one oracle call for the
// batch, then per-scenario normalization, date resolution, record assembly
// and validation. Scenario failures are isolated; they surface in the
// response instead of aborting the batch.
type Generator struct {
	oracle      oracle.Oracle
	catalog     *catalog.Catalog
	now         func() model.Date
	seed        func() int64
	concurrency int
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock overrides the wall clock. The current date is pinned once per
// run, so every scenario in a batch sees the same "today".
func WithClock(now func() model.Date) Option {
	return func(g *Generator) { g.now = now }
}

// WithSeed pins the random source, making runs reproducible.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.seed = func() int64 { return seed } }
}

// WithConcurrency caps the number of scenarios processed in parallel.
func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

// New creates a Generator. A nil oracle is allowed: the run then relies on
// locally extracted hints alone, which is also the degraded path taken when
// the oracle returns garbage.
func New(o oracle.Oracle, cat *catalog.Catalog, opts ...Option) *Generator {
	g := &Generator{
		oracle:      o,
		catalog:     cat,
		now:         func() model.Date { return model.DateOf(time.Now()) },
		seed:        func() int64 { return time.Now().UnixNano() },
		concurrency: defaultConcurrency,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// workItem is one scenario that survived input validation and product
// resolution, carrying its original batch position.
type workItem struct {
	index    int
	input    model.ScenarioInput
	hints    model.HintSet
	resolved catalog.ResolvedProduct
	raw      model.RawScenario
}

// Run executes one generation batch.
func (g *Generator) Run(ctx context.Context, req model.GenerateRequest) (*model.GenerateResponse, error) {
	if len(req.Scenarios) == 0 {
		return nil, eris.Wrap(ErrMissingRequiredInput, "pipeline: no scenarios")
	}

	now := g.now()
	seed := g.seed()
	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("generation run started",
		zap.Int("scenarios", len(req.Scenarios)),
		zap.String("current_date", now.String()))

	items, failures := g.prepare(req.Scenarios)

	questions := g.catalog.DefaultProposalQuestions()
	if g.oracle != nil && len(items) > 0 {
		g.consultOracle(ctx, log, items, &questions, now)
	}
	mergeOverrides(questions, req.ProposalOverrides)

	records := make([]*model.TestRecord, len(req.Scenarios))
	validations := make([]*model.ValidationResult, len(req.Scenarios))
	var (
		grp    errgroup.Group
		failMu sync.Mutex
	)
	grp.SetLimit(g.concurrency)
	for _, item := range items {
		item := item
		grp.Go(func() error {
			rng := rand.New(rand.NewSource(seed + int64(item.index)))
			rec, res, err := g.processOne(item, questions, now, rng)
			if err != nil {
				log.Warn("scenario failed",
					zap.Int("index", item.index),
					zap.Error(err))
				failMu.Lock()
				failures = append(failures, model.ScenarioError{Index: item.index, Error: err.Error()})
				failMu.Unlock()
				return nil
			}
			records[item.index] = rec
			validations[item.index] = res
			return nil
		})
	}
	_ = grp.Wait()

	resp := &model.GenerateResponse{
		RunID:       runID,
		CurrentDate: now.String(),
		Failures:    orderFailures(failures),
	}
	for i := range records {
		if records[i] == nil {
			continue
		}
		resp.Records = append(resp.Records, *records[i])
		resp.Validations = append(resp.Validations, *validations[i])
	}

	log.Info("generation run finished",
		zap.Int("records", len(resp.Records)),
		zap.Int("failures", len(resp.Failures)))
	return resp, nil
}

// ParseResponse is the intermediate output of scenario parsing: the loose
// per-scenario guesses and the proposal-question set, before any record is
// assembled.
type ParseResponse struct {
	Scenarios         []model.RawScenario     `json:"scenarios"`
	ProposalQuestions model.ProposalQuestions `json:"proposal_questions"`
	Failures          []model.ScenarioError   `json:"failures,omitempty"`
}

// Parse runs hint extraction and the oracle call without generating records.
func (g *Generator) Parse(ctx context.Context, req model.GenerateRequest) (*ParseResponse, error) {
	if len(req.Scenarios) == 0 {
		return nil, eris.Wrap(ErrMissingRequiredInput, "pipeline: no scenarios")
	}

	now := g.now()
	items, failures := g.prepare(req.Scenarios)

	questions := g.catalog.DefaultProposalQuestions()
	if g.oracle != nil && len(items) > 0 {
		g.consultOracle(ctx, zap.L(), items, &questions, now)
	}
	mergeOverrides(questions, req.ProposalOverrides)
	questions["registration_number"] = idgen.RegistrationNumber(rand.New(rand.NewSource(g.seed())))

	resp := &ParseResponse{
		ProposalQuestions: questions,
		Failures:          orderFailures(failures),
	}
	for _, item := range items {
		resp.Scenarios = append(resp.Scenarios, item.raw)
	}
	return resp, nil
}

// prepare validates inputs, extracts hints and resolves products. Scenarios
// that fail here are reported and excluded from the oracle call.
func (g *Generator) prepare(inputs []model.ScenarioInput) ([]workItem, []model.ScenarioError) {
	var (
		items    []workItem
		failures []model.ScenarioError
	)
	for i, in := range inputs {
		if in.Text == "" || in.ProductCode == "" {
			failures = append(failures, model.ScenarioError{
				Index: i,
				Error: eris.Wrap(ErrMissingRequiredInput, "pipeline: scenario text and product code are required").Error(),
			})
			continue
		}
		resolved, err := g.catalog.ResolveProduct(in.ProductCode)
		if err != nil {
			failures = append(failures, model.ScenarioError{Index: i, Error: err.Error()})
			continue
		}
		items = append(items, workItem{
			index:    i,
			input:    in,
			hints:    hints.Extract(in.Text, g.catalog),
			resolved: resolved,
			raw: model.RawScenario{
				Text:             in.Text,
				ProductCode:      in.ProductCode,
				VehicleType:      string(resolved.VehicleType),
				InsuranceCompany: resolved.InsurerName,
			},
		})
	}
	return items, failures
}

// consultOracle makes the single batch call and, on success, replaces each
// item's hint-only raw scenario with the oracle's richer guess. Any oracle
// failure degrades to hints silently from the caller's perspective.
func (g *Generator) consultOracle(ctx context.Context, log *zap.Logger, items []workItem, questions *model.ProposalQuestions, now model.Date) {
	enriched := make([]oracle.EnrichedScenario, len(items))
	for i, item := range items {
		enriched[i] = oracle.NewEnriched(item.input, string(item.resolved.VehicleType), item.resolved.InsurerName, item.hints)
	}
	result, err := g.oracle.ParseScenarios(ctx, oracle.ParseRequest{
		Scenarios:         enriched,
		AvailableInsurers: g.catalog.InsurerNames(),
		Addons:            g.catalog.Addons(),
		Discounts:         g.catalog.Discounts(),
		ProposalDefaults:  *questions,
		CurrentDate:       now,
	})
	if err != nil {
		log.Warn("oracle unavailable, generating from hints alone", zap.Error(err))
		return
	}
	for i := range items {
		if i < len(result.Scenarios) {
			raw := result.Scenarios[i]
			raw.ProductCode = items[i].input.ProductCode
			raw.VehicleType = string(items[i].resolved.VehicleType)
			raw.InsuranceCompany = items[i].resolved.InsurerName
			items[i].raw = raw
		}
	}
	if len(result.ProposalQuestions) > 0 {
		merged := g.catalog.DefaultProposalQuestions()
		mergeOverrides(merged, result.ProposalQuestions)
		*questions = merged
	}
}

func (g *Generator) processOne(item workItem, questions model.ProposalQuestions, now model.Date, rng *rand.Rand) (*model.TestRecord, *model.ValidationResult, error) {
	sc, err := Normalize(item.raw, item.hints, g.catalog, now, rng)
	if err != nil {
		return nil, nil, err
	}
	dates := ResolveDates(sc, now, rng)
	rec := Generate(sc, dates, questions, g.catalog, rng)
	res := validate.Validate(sc, rec, now, rng)
	return &res.Record, &res, nil
}

// mergeOverrides lays override values on top of the base question set,
// merging the nested address object field by field.
func mergeOverrides(base model.ProposalQuestions, overrides model.ProposalQuestions) {
	for k, v := range overrides {
		om, ok := v.(map[string]any)
		if !ok {
			base[k] = v
			continue
		}
		bm, ok := base[k].(map[string]any)
		if !ok {
			bm = make(map[string]any, len(om))
			base[k] = bm
		}
		for nk, nv := range om {
			bm[nk] = nv
		}
	}
}

func orderFailures(failures []model.ScenarioError) []model.ScenarioError {
	sort.Slice(failures, func(i, j int) bool { return failures[i].Index < failures[j].Index })
	return failures
}

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/policyforge/casegen/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	st, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func sampleRun(id string) (model.GenerateRequest, *model.GenerateResponse) {
	req := model.GenerateRequest{
		Scenarios: []model.ScenarioInput{
			{Text: "rollover case", ProductCode: "GODIGIT_PC_COMPREHENSIVE"},
		},
	}
	resp := &model.GenerateResponse{
		RunID:       id,
		CurrentDate: "01/09/2025",
		Records: []model.TestRecord{{
			TestcaseID:  "TC_01",
			JourneyType: model.JourneyRollover,
			Addons:      model.AddonList{{InsuranceCoverCode: "ZERO_DEPRECIATION_COVER"}},
			ProposalQuestions: model.ProposalQuestions{
				"valid_puc": "Yes",
			},
		}},
		Validations: []model.ValidationResult{{IsValid: true}},
	}
	return req, resp
}

func TestSaveAndGetRun(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	req, resp := sampleRun("run-1")
	saved, err := st.SaveRun(ctx, req, resp)
	require.NoError(t, err)
	assert.Equal(t, "run-1", saved.ID)
	assert.Equal(t, 1, saved.ScenarioCount)
	assert.Equal(t, 1, saved.RecordCount)
	assert.Equal(t, 0, saved.FailureCount)

	got, err := st.GetRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.ID)
	require.Len(t, got.Response.Records, 1)
	assert.Equal(t, "TC_01", got.Response.Records[0].TestcaseID)
	require.Len(t, got.Response.Records[0].Addons, 1)
	assert.Equal(t, "rollover case", got.Request.Scenarios[0].Text)
}

func TestGetRunNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.GetRun(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	for _, id := range []string{"run-a", "run-b", "run-c"} {
		req, resp := sampleRun(id)
		_, err := st.SaveRun(ctx, req, resp)
		require.NoError(t, err)
	}

	runs, err := st.ListRuns(ctx, RunFilter{})
	require.NoError(t, err)
	assert.Len(t, runs, 3)

	runs, err = st.ListRuns(ctx, RunFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestDeleteRun(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	req, resp := sampleRun("run-del")
	_, err := st.SaveRun(ctx, req, resp)
	require.NoError(t, err)

	require.NoError(t, st.DeleteRun(ctx, "run-del"))

	_, err = st.GetRun(ctx, "run-del")
	assert.ErrorIs(t, err, ErrRunNotFound)

	err = st.DeleteRun(ctx, "run-del")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

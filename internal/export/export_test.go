package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/policyforge/casegen/internal/model"
)

func sampleRecord() model.TestRecord {
	return model.TestRecord{
		TestcaseID:         "TC_01",
		Category:           "four_wheeler",
		JourneyType:        model.JourneyRollover,
		RegistrationNumber: "KA01AB1234",
		ProductCode:        "GODIGIT_PC_COMPREHENSIVE",
		IDV:                500000,
		Addons:             model.AddonList{{InsuranceCoverCode: "ZERO_DEPRECIATION_COVER"}},
		Discounts:          nil,
		ProposalQuestions: model.ProposalQuestions{
			"valid_puc": "Yes",
		},
	}
}

func TestFlattenMatchesColumns(t *testing.T) {
	row, err := Flatten(sampleRecord())
	require.NoError(t, err)
	assert.Len(t, row, len(columns))
	assert.Equal(t, "TC_01", row[0])
	assert.Contains(t, row, "500000")
	// nil discounts render as the empty-string sentinel.
	assert.Contains(t, row, `""`)
}

func TestWriteXLSXRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	records := []model.TestRecord{sampleRecord(), sampleRecord()}

	require.NoError(t, WriteXLSX(path, records))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets, 1)

	sheet := f.Sheets[0]
	assert.Equal(t, "test_cases", sheet.Name)
	require.Len(t, sheet.Rows, 3) // header + 2 records
	assert.Equal(t, "testcase_id", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "TC_01", sheet.Rows[1].Cells[0].String())
	assert.Len(t, sheet.Rows[0].Cells, len(columns))
}

func TestWriteXLSXTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stream.xlsx")
	out, err := os.Create(path)
	require.NoError(t, err)

	require.NoError(t, WriteXLSXTo(out, []model.TestRecord{sampleRecord()}))
	require.NoError(t, out.Close())

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	require.Len(t, f.Sheets[0].Rows, 2)
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteJSON(path, []model.TestRecord{sampleRecord()}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back []model.TestRecord
	require.NoError(t, json.Unmarshal(data, &back))
	require.Len(t, back, 1)
	assert.Equal(t, "TC_01", back[0].TestcaseID)
	require.Len(t, back[0].Addons, 1)
}

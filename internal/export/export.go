// Package export flattens generated test records into tabular form and
// writes them as XLSX workbooks or JSON files.
package export

import (
	"encoding/json"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/policyforge/casegen/internal/model"
)

// columns is the flattened header order. Proposal questions collapse into a
// single JSON cell so the sheet stays one row per record.
var columns = []string{
	"testcase_id",
	"category",
	"journey_type",
	"product_code",
	"carrier_name",
	"registration_number",
	"make_model",
	"variant",
	"registration_date",
	"rto",
	"owned_by",
	"previous_expiry_date",
	"previous_insurer",
	"previous_tp_expiry_date",
	"previous_tp_start_date",
	"previous_tp_insurer",
	"claim_taken",
	"previous_ncb",
	"idv",
	"addons",
	"discounts",
	"select_tab",
	"customer_name",
	"contact_number",
	"email",
	"kyc_verification",
	"puc_expiry_date",
	"is_inspection_required",
	"proposal_questions",
}

// Flatten renders one record as a row in column order.
func Flatten(rec model.TestRecord) ([]string, error) {
	addons, err := json.Marshal(rec.Addons)
	if err != nil {
		return nil, eris.Wrap(err, "export: marshal addons")
	}
	discounts, err := json.Marshal(rec.Discounts)
	if err != nil {
		return nil, eris.Wrap(err, "export: marshal discounts")
	}
	proposal, err := json.Marshal(rec.ProposalQuestions)
	if err != nil {
		return nil, eris.Wrap(err, "export: marshal proposal questions")
	}

	return []string{
		rec.TestcaseID,
		rec.Category,
		string(rec.JourneyType),
		rec.ProductCode,
		rec.CarrierName,
		rec.RegistrationNumber,
		rec.MakeModel,
		rec.Variant,
		rec.RegistrationDate,
		rec.RTO,
		string(rec.OwnedBy),
		rec.PreviousExpiryDate,
		rec.PreviousInsurer,
		rec.PreviousTpExpiryDate,
		rec.PreviousTpStartDate,
		rec.PreviousTpInsurer,
		rec.ClaimTaken,
		rec.PreviousNcb,
		strconv.Itoa(rec.IDV),
		string(addons),
		string(discounts),
		rec.SelectTab,
		rec.CustomerName,
		rec.ContactNumber,
		rec.Email,
		rec.KYCVerification,
		rec.PucExpiryDate,
		rec.IsInspectionRequired,
		string(proposal),
	}, nil
}

func workbook(records []model.TestRecord) (*xlsx.File, error) {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("test_cases")
	if err != nil {
		return nil, eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().Value = col
	}

	for _, rec := range records {
		cells, err := Flatten(rec)
		if err != nil {
			return nil, err
		}
		row := sheet.AddRow()
		for _, c := range cells {
			row.AddCell().Value = c
		}
	}
	return f, nil
}

// WriteXLSX writes the records as a single-sheet workbook at path.
func WriteXLSX(path string, records []model.TestRecord) error {
	f, err := workbook(records)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

// WriteXLSXTo streams the workbook to w, for HTTP downloads.
func WriteXLSXTo(w io.Writer, records []model.TestRecord) error {
	f, err := workbook(records)
	if err != nil {
		return err
	}
	return eris.Wrap(f.Write(w), "export: write workbook")
}

// WriteJSON writes the records as an indented JSON array at path.
func WriteJSON(path string, records []model.TestRecord) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return eris.Wrap(err, "export: marshal records")
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "export: write %s", path)
	}
	return nil
}

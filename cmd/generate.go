package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/policyforge/casegen/internal/export"
	"github.com/policyforge/casegen/internal/model"
	"github.com/policyforge/casegen/internal/pipeline"
)

var (
	generateProduct string
	generateInput   string
	generateOutput  string
	generateXLSX    string
	generateNoSave  bool
	generateAsOf    string
)

var generateCmd = &cobra.Command{
	Use:   "generate [scenario]...",
	Short: "Generate test case records from natural language scenarios",
	Long: `Generates one test case record per scenario. Scenarios are given either
as positional arguments (all sharing --product) or as a JSON request file
via --input:

  casegen generate --product GODIGIT_PC_COMPREHENSIVE "10 year old car, policy expired 95 days ago"
  casegen generate --input request.json --xlsx cases.xlsx`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		req, err := buildRequest(args)
		if err != nil {
			return err
		}

		var opts []pipeline.Option
		if generateAsOf != "" {
			asOf, err := model.ParseDate(generateAsOf)
			if err != nil || asOf.IsZero() {
				return eris.Errorf("invalid --as-of date %q, want DD/MM/YYYY", generateAsOf)
			}
			opts = append(opts, pipeline.WithClock(func() model.Date { return asOf }))
		}

		gen, err := initGenerator(opts...)
		if err != nil {
			return err
		}

		resp, err := gen.Run(ctx, req)
		if err != nil {
			return err
		}

		if !generateNoSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if _, err := st.SaveRun(ctx, req, resp); err != nil {
				zap.L().Warn("save run failed", zap.Error(err))
			}
		}

		if generateXLSX != "" {
			if err := export.WriteXLSX(generateXLSX, resp.Records); err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Wrote %d records to %s\n", len(resp.Records), generateXLSX)
		}

		out := os.Stdout
		if generateOutput != "" {
			f, err := os.Create(generateOutput)
			if err != nil {
				return eris.Wrapf(err, "create %s", generateOutput)
			}
			defer f.Close() //nolint:errcheck
			out = f
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			return eris.Wrap(err, "encode response")
		}

		for _, f := range resp.Failures {
			fmt.Fprintf(os.Stderr, "scenario %d failed: %s\n", f.Index, f.Error)
		}
		return nil
	},
}

func buildRequest(args []string) (model.GenerateRequest, error) {
	var req model.GenerateRequest

	if generateInput != "" {
		data, err := os.ReadFile(generateInput)
		if err != nil {
			return req, eris.Wrapf(err, "read %s", generateInput)
		}
		if err := json.Unmarshal(data, &req); err != nil {
			return req, eris.Wrapf(err, "parse %s", generateInput)
		}
		return req, nil
	}

	if len(args) == 0 {
		return req, eris.New("no scenarios given: pass scenario text or --input")
	}
	if generateProduct == "" {
		return req, eris.New("--product is required with positional scenarios")
	}
	for _, text := range args {
		req.Scenarios = append(req.Scenarios, model.ScenarioInput{
			Text:        text,
			ProductCode: generateProduct,
		})
	}
	return req, nil
}

func init() {
	generateCmd.Flags().StringVar(&generateProduct, "product", "", "product code for positional scenarios")
	generateCmd.Flags().StringVar(&generateInput, "input", "", "JSON request file")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "write response JSON to file (default stdout)")
	generateCmd.Flags().StringVar(&generateXLSX, "xlsx", "", "also write records as an XLSX workbook")
	generateCmd.Flags().BoolVar(&generateNoSave, "no-save", false, "skip recording the run in history")
	generateCmd.Flags().StringVar(&generateAsOf, "as-of", "", "pin the current date (DD/MM/YYYY) for reproducible runs")
	rootCmd.AddCommand(generateCmd)
}

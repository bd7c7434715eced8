package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/policyforge/casegen/internal/model"
)

var parseProduct string

var parseCmd = &cobra.Command{
	Use:   "parse [scenario]...",
	Short: "Parse scenarios without generating records",
	Long:  "Runs hint extraction and the model call only, printing the structured scenario guesses. Useful for debugging scenario phrasing.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if parseProduct == "" {
			return eris.New("--product is required")
		}

		gen, err := initGenerator()
		if err != nil {
			return err
		}

		var req model.GenerateRequest
		for _, text := range args {
			req.Scenarios = append(req.Scenarios, model.ScenarioInput{
				Text:        text,
				ProductCode: parseProduct,
			})
		}

		resp, err := gen.Parse(cmd.Context(), req)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(resp), "encode response")
	},
}

func init() {
	parseCmd.Flags().StringVar(&parseProduct, "product", "", "product code for the scenarios")
	rootCmd.AddCommand(parseCmd)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dashforge/internal/analyze"
	"dashforge/internal/generate"
)

var (
	generateAnswers []string
	generateOut     string
)

var generateCmd = &cobra.Command{
	Use:   "generate <data.json>",
	Short: "Generate a dashboard state from a data file",
	Long: `Generate analyzes the data file and produces a versioned dashboard
state. Without --answers the pending questions are printed instead, so
the flow mirrors the API: answer first, then generate.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringArrayVar(&generateAnswers, "answers", nil, "answer as key=value (repeatable)")
	generateCmd.Flags().StringVarP(&generateOut, "out", "o", "", "write the state JSON to this file instead of stdout")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	input, err := readDataFile(args[0])
	if err != nil {
		return err
	}
	data, err := dataObject(input)
	if err != nil {
		return err
	}

	analyzer := analyze.NewAnalyzer(domainRegistry())
	analysis := analyzer.AnalyzeContext(input, nil)
	answers := parseAnswers(generateAnswers)

	if len(answers) == 0 && len(analysis.Questions) > 0 {
		out, err := json.MarshalIndent(map[string]any{
			"needs_questions": true,
			"questions":       analysis.Questions,
		}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	}

	orch := &generate.Orchestrator{}
	res := orch.Generate(cmd.Context(), data, analysis, answers)
	state := generate.CreateUIState(input, res.Schema)

	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	if generateOut != "" {
		return os.WriteFile(generateOut, raw, 0o644)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}

// dataObject unwraps an optional {type, data} envelope around the payload.
func dataObject(input any) (map[string]any, error) {
	obj, ok := input.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("data file must contain a JSON object")
	}
	if inner, ok := obj["data"].(map[string]any); ok {
		if _, hasType := obj["type"]; hasType {
			return inner, nil
		}
	}
	return obj, nil
}

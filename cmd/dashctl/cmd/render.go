package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dashforge/internal/generate"
	"dashforge/internal/render"
)

var (
	renderDataPath string
	renderTitle    string
	renderOut      string
)

var renderCmd = &cobra.Command{
	Use:   "render <state.json>",
	Short: "Render a dashboard state to a standalone HTML page",
	Args:  cobra.ExactArgs(1),
	RunE:  runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVar(&renderDataPath, "data", "", "data file resolved into bindings")
	renderCmd.Flags().StringVar(&renderTitle, "title", "Dashboard", "page title")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "write the HTML to this file instead of stdout")
}

func runRender(cmd *cobra.Command, args []string) error {
	raw, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}
	var state generate.UIState
	if err := json.Unmarshal(raw, &state); err != nil {
		return fmt.Errorf("parse %s: %w", args[0], err)
	}
	if state.Schema == nil {
		return fmt.Errorf("state has no schema")
	}

	var data map[string]any
	if renderDataPath != "" {
		input, err := readDataFile(renderDataPath)
		if err != nil {
			return err
		}
		data, err = dataObject(input)
		if err != nil {
			return err
		}
	}

	page := render.RenderDocument(renderTitle, state.Schema, data)
	if renderOut != "" {
		return os.WriteFile(renderOut, []byte(page), 0o644)
	}
	fmt.Fprint(cmd.OutOrStdout(), page)
	return nil
}

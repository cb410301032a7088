package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"dashforge/internal/domain"
)

var domainStorePath string

var rootCmd = &cobra.Command{
	Use:   "dashctl",
	Short: "Dashboard generation toolkit",
	Long: `dashctl runs the dashboard pipeline from the command line.

It analyzes a JSON data file, generates a component schema from it and
renders the result to a standalone HTML page, without a running server.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&domainStorePath, "domains", "data/domains.json", "path of the custom domain config store")
}

func domainRegistry() *domain.Registry {
	return domain.NewRegistryFromEnv(domainStorePath)
}

// parseAnswers turns repeated key=value flags into an answer map.
func parseAnswers(pairs []string) map[string]string {
	if len(pairs) == 0 {
		return nil
	}
	answers := make(map[string]string, len(pairs))
	for _, p := range pairs {
		k, v, ok := strings.Cut(p, "=")
		if !ok {
			continue
		}
		answers[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return answers
}

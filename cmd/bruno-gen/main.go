package main

import (
	"fmt"
	"os"

	"rcfm/internal/brunogen"

	"github.com/spf13/cobra"
)

func main() {
	var outputDir, baseURL, apiDir string

	cmd := &cobra.Command{
		Use:   "bruno-gen",
		Short: "Generate a Bruno collection from the rcfm API routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			generator := brunogen.NewGenerator(outputDir, baseURL, apiDir)
			if err := generator.Generate(); err != nil {
				return fmt.Errorf("failed to generate Bruno collection: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Generated %d requests in %s/\n", len(generator.Routes()), outputDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output", "bruno_auto", "output directory for the generated collection")
	cmd.Flags().StringVar(&baseURL, "base-url", "{{baseUrl}}", "base URL for API requests")
	cmd.Flags().StringVar(&apiDir, "api-dir", "internal/api", "directory containing the API handler files")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/russellstrauss/applicationator-sub000/pkg/docfill"
)

const version = "0.1.0"

var (
	templatePath string
	profilePath  string
	outputPath   string
	styleAttrs   string
	verbose      bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "docfill",
	Short: "docfill - template expansion for remote rich-text documents",
	Long: `docfill fills document templates containing {{placeholder}},
{{#each name}}...{{/endeach}}, and {{#if name}}...{{/endif}} markers
from a profile record.

The preview command renders a local template file through the full
expansion pipeline using the in-memory document backend, so templates
can be checked without a remote document service.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Optional .env for DOCFILL_* settings
		_ = godotenv.Load()
		config := docfill.ConfigFromEnvironment()
		if verbose {
			config.LogLevel = "debug"
		}
		if err := config.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		docfill.SetGlobalConfig(config)
		return nil
	},
}

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Expand a local template file against a profile",
	Long: `Loads a template from a plain-text file and a profile from a YAML or
JSON file, runs the full fill pipeline in memory, and prints the
expanded text (or writes it with --out).

Example:
  docfill preview -t resume-template.txt -p profile.yaml -o resume.txt`,
	RunE: runPreview,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("docfill version %s\n", version)
	},
}

func runPreview(cmd *cobra.Command, args []string) error {
	templateText, err := os.ReadFile(templatePath)
	if err != nil {
		return fmt.Errorf("failed to read template file: %w", err)
	}

	profile, err := docfill.LoadProfile(profilePath)
	if err != nil {
		return err
	}

	var opts []docfill.Option
	if styleAttrs != "" {
		style, err := docfill.ParseStyleAttributes(styleAttrs)
		if err != nil {
			return err
		}
		opts = append(opts, docfill.WithTitleStyle(style))
	}

	client := docfill.NewMemoryClient()
	engine := docfill.NewWithOptions(client, opts...)

	templateID := client.CreateDocument("template", string(templateText))
	output, err := engine.FillAndExport(context.Background(), templateID, profile)
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, output, 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		fmt.Printf("wrote %d bytes to %s\n", len(output), outputPath)
		return nil
	}

	fmt.Print(string(output))
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	previewCmd.Flags().StringVarP(&templatePath, "template", "t", "", "template text file (required)")
	previewCmd.Flags().StringVarP(&profilePath, "profile", "p", "", "profile YAML/JSON file (required)")
	previewCmd.Flags().StringVarP(&outputPath, "out", "o", "", "write expanded text to file instead of stdout")
	previewCmd.Flags().StringVar(&styleAttrs, "title-style", "", "extra title style attributes, e.g. \"italic size:12 color:blue\"")
	_ = previewCmd.MarkFlagRequired("template")
	_ = previewCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

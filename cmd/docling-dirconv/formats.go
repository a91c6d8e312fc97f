// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/prof-ramos/docling-diretorio/internal/scan"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported file extensions",
	Long: `Formats prints the fixed allow-list of file extensions eligible for
conversion: documents, plain text, images, and audio.`,
	Args: cobra.NoArgs,
	RunE: runFormats,
}

func init() {
	formatsCmd.Flags().String("format", "text", "output format: text, yaml, or json")

	rootCmd.AddCommand(formatsCmd)
}

func runFormats(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	exts := scan.Extensions()

	switch format {
	case "text", "":
		for _, ext := range exts {
			fmt.Println(ext)
		}
	case "yaml":
		out, err := yaml.Marshal(struct {
			Extensions []string `yaml:"extensions"`
		}{Extensions: exts})
		if err != nil {
			return err
		}
		os.Stdout.Write(out)
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Extensions []string `json:"extensions"`
		}{Extensions: exts})
	default:
		return fmt.Errorf("unsupported format %q: use text, yaml, or json", format)
	}
	return nil
}

package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/fairscore/crednorm/internal/model"
)

// Renderer writes normalization results as JSON, markdown and a short
// terminal summary.
type Renderer struct {
	pretty bool
}

// NewRenderer creates a new renderer
func NewRenderer(pretty bool) *Renderer {
	return &Renderer{pretty: pretty}
}

// RenderJSON writes the result envelope to path, or stdout for "-".
func (r *Renderer) RenderJSON(result *model.Result, path string) error {
	var data []byte
	var err error
	if r.pretty {
		data, err = json.MarshalIndent(result, "", "  ")
	} else {
		data, err = json.Marshal(result)
	}
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	data = append(data, '\n')

	if path == "-" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RenderMarkdown writes a human-readable run summary to path.
func (r *Renderer) RenderMarkdown(result *model.Result, path string) error {
	var b strings.Builder

	b.WriteString("# Credit File Normalization\n\n")
	if result.Success {
		b.WriteString("**Status:** success\n\n")
	} else {
		b.WriteString("**Status:** failed\n\n")
	}

	if result.CreditFile != nil {
		b.WriteString(fmt.Sprintf("- File ID: `%s`\n", result.CreditFile.FileID))
		b.WriteString(fmt.Sprintf("- Created: %s\n", result.CreditFile.CreatedAt))
		b.WriteString("\n")
	}

	s := result.Summary
	b.WriteString("## Entities\n\n")
	b.WriteString("| Entity | Count |\n|---|---|\n")
	b.WriteString(fmt.Sprintf("| Imports | %d |\n", s.Imports))
	b.WriteString(fmt.Sprintf("| Subject names | %d |\n", s.SubjectNames))
	b.WriteString(fmt.Sprintf("| Organisations | %d |\n", s.Organisations))
	b.WriteString(fmt.Sprintf("| Addresses | %d |\n", s.Addresses))
	b.WriteString(fmt.Sprintf("| Address associations | %d |\n", s.AddressAssociations))
	b.WriteString(fmt.Sprintf("| Tradelines | %d |\n", s.Tradelines))
	b.WriteString(fmt.Sprintf("| Searches | %d |\n", s.Searches))
	b.WriteString(fmt.Sprintf("| Credit scores | %d |\n", s.CreditScores))
	b.WriteString(fmt.Sprintf("| Electoral roll | %d |\n", s.ElectoralRoll))
	b.WriteString(fmt.Sprintf("| Financial associates | %d |\n", s.FinancialAssociates))

	if len(result.Errors) > 0 {
		b.WriteString("\n## Errors\n\n")
		for _, e := range result.Errors {
			b.WriteString(fmt.Sprintf("- `%s` %s: %s\n", e.Code, e.Path, e.Message))
		}
	}

	if len(result.Warnings) > 0 {
		b.WriteString("\n## Warnings\n\n")
		for _, w := range result.Warnings {
			b.WriteString(fmt.Sprintf("- [%s] %s: %s\n", w.Domain, w.Field, w.Message))
		}
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}

// RenderSummary prints a short colored summary to stdout.
func (r *Renderer) RenderSummary(res *FileResult) {
	result := res.Result
	s := result.Summary

	header := color.New(color.Bold)
	header.Printf("\n%s\n", res.Path)

	if result.Success {
		color.Green("  status: success")
	} else {
		color.Red("  status: failed (%d errors)", len(result.Errors))
	}
	if res.Cached {
		color.Cyan("  served from cache")
	}

	fmt.Printf("  tradelines=%d searches=%d scores=%d addresses=%d organisations=%d\n",
		s.Tradelines, s.Searches, s.CreditScores, s.Addresses, s.Organisations)

	if s.Warnings > 0 {
		color.Yellow("  warnings: %d", s.Warnings)
	}
	for _, e := range result.Errors {
		color.Red("  error: %s %s: %s", e.Code, e.Path, e.Message)
	}
}

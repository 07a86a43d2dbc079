package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/roguepikachu/snippets/internal/domain"
	"gopkg.in/yaml.v3"
)

// NotFoundMessage is printed in text mode for an empty result.
const NotFoundMessage = "404: Snippet Not Found"

const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

func validateOutput(format string) error {
	switch format {
	case outputText, outputJSON, outputYAML:
		return nil
	}
	return fmt.Errorf("unknown output format %q (want text, json or yaml)", format)
}

// FormatCatalogue joins names with "; ".
func FormatCatalogue(names []string) string {
	return strings.Join(names, "; ")
}

// FormatMatches renders search results as "name: text" pairs joined with "; ".
func FormatMatches(entries []domain.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Name+": "+e.Text)
	}
	return strings.Join(parts, "; ")
}

// Structured results for json and yaml output.
type (
	postResult struct {
		Name   string `json:"name" yaml:"name"`
		Text   string `json:"text" yaml:"text"`
		Hidden bool   `json:"hidden" yaml:"hidden"`
	}
	getResult struct {
		Name  string `json:"name" yaml:"name"`
		Found bool   `json:"found" yaml:"found"`
		Text  string `json:"text,omitempty" yaml:"text,omitempty"`
	}
	catalogueResult struct {
		Found bool     `json:"found" yaml:"found"`
		Names []string `json:"names" yaml:"names"`
	}
	searchResult struct {
		Query   string         `json:"query" yaml:"query"`
		Found   bool           `json:"found" yaml:"found"`
		Matches []domain.Entry `json:"matches" yaml:"matches"`
	}
)

// render writes v as json or yaml, or calls text for the text format.
func render(w io.Writer, format string, v any, text func(io.Writer)) error {
	switch format {
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		text(w)
		return nil
	}
}

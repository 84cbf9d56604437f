/*
Package changelog renders and updates per-module changelog files for modrel.
*/
package changelog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/oarkflow/modrel/internal/conventional"
)

// DateLayout is the layout of entry dates
const DateLayout = "2006-01-02"

// Entry is one released version in a changelog
type Entry struct {
	Version  string                 `yaml:"version" json:"version"`
	Date     time.Time              `yaml:"-" json:"-"`
	Sections []conventional.Section `yaml:"sections" json:"sections"`
}

// Heading returns the top-level heading for a module changelog.
func Heading(module string) string {
	return "# Change Log - " + module
}

// Markdown renders the entry as a markdown block ending in a blank line.
func (e Entry) Markdown() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "## %s (%s)\n\n", e.Version, e.Date.Format(DateLayout))
	for _, s := range e.Sections {
		if len(s.Entries) == 0 {
			continue
		}
		fmt.Fprintf(&buf, "### %s\n", s.Title)
		for _, line := range s.Entries {
			fmt.Fprintf(&buf, "- %s\n", line)
		}
		buf.WriteString("\n")
	}

	return buf.String()
}

// Format renders the entry as markdown, json or yaml.
func (e Entry) Format(format string) (string, error) {
	switch format {
	case "", "markdown", "md":
		return e.Markdown(), nil
	case "json":
		data, err := json.MarshalIndent(e.document(), "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	case "yaml", "yml":
		data, err := yaml.Marshal(e.document())
		if err != nil {
			return "", err
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("unsupported changelog format: %s", format)
	}
}

type document struct {
	Version  string                 `yaml:"version" json:"version"`
	Date     string                 `yaml:"date" json:"date"`
	Sections []conventional.Section `yaml:"sections" json:"sections"`
}

func (e Entry) document() document {
	sections := e.Sections
	if sections == nil {
		sections = []conventional.Section{}
	}
	return document{
		Version:  e.Version,
		Date:     e.Date.Format(DateLayout),
		Sections: sections,
	}
}

// Prepend places entry above the existing entries of content, keeping a
// single module heading at the top.
func Prepend(content, module string, entry Entry) string {
	heading := Heading(module)

	var rest []string
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimRight(line, "\r ") == heading {
			continue
		}
		rest = append(rest, line)
	}
	body := strings.TrimLeft(strings.Join(rest, "\n"), "\r\n")

	var buf strings.Builder
	buf.WriteString(heading)
	buf.WriteString("\n\n")
	buf.WriteString(entry.Markdown())
	if body != "" {
		buf.WriteString(body)
		if !strings.HasSuffix(body, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.String()
}

// Update prepends entry to the changelog file at path, creating it if needed.
func Update(path, module string, entry Entry) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to read changelog: %w", err)
	}

	if err := os.WriteFile(path, []byte(Prepend(string(data), module, entry)), 0644); err != nil {
		return fmt.Errorf("failed to write changelog: %w", err)
	}
	return nil
}

// Touch creates an empty changelog at path if none exists.
func Touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to create changelog: %w", err)
	}
	return f.Close()
}

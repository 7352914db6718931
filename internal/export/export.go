// Package export writes reports of the cached summaries.
package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mandolyte/mdtopdf"
	"gopkg.in/yaml.v3"

	"github.com/sekirofabio/desafio-tecnico-itau/internal/article"
)

// Format is a report format. It implements pflag.Value.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatPDF  Format = "pdf"
)

func (f *Format) String() string {
	return string(*f)
}

func (f *Format) Set(value string) error {
	switch Format(strings.ToLower(value)) {
	case FormatYAML:
		*f = FormatYAML
	case FormatPDF:
		*f = FormatPDF
	default:
		return fmt.Errorf("unsupported format %q, must be one of yaml, pdf", value)
	}
	return nil
}

func (f *Format) Type() string {
	return "format"
}

// Extension returns the file extension of the format.
func (f Format) Extension() string {
	if f == FormatYAML {
		return ".yml"
	}
	return "." + string(f)
}

// Report is the exported document.
type Report struct {
	GeneratedAt time.Time                `yaml:"generated_at"`
	Summaries   []article.SummaryListing `yaml:"summaries"`
}

// Write renders listings in format to path and returns its absolute path.
// Missing parent directories are created.
func Write(format Format, path string, listings []article.SummaryListing, now time.Time) (string, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("os.MkdirAll(%s) > %w", dir, err)
		}
	}

	report := Report{GeneratedAt: now, Summaries: listings}
	switch format {
	case FormatYAML:
		if err := writeYAML(path, report); err != nil {
			return "", err
		}
	case FormatPDF:
		renderer := mdtopdf.NewPdfRenderer("P", "A4", path, "", nil, mdtopdf.LIGHT)
		if err := renderer.Process(Markdown(report)); err != nil {
			return "", fmt.Errorf("renderer.Process() > %w", err)
		}
	default:
		return "", fmt.Errorf("unsupported format %q", format)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return absPath, nil
}

func writeYAML(path string, report Report) error {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("write report %s: %w", path, err)
	}
	return nil
}

// Markdown renders the report as markdown, one section per word.
func Markdown(report Report) []byte {
	var b strings.Builder
	b.WriteString("# Wikipedia summaries\n\n")
	fmt.Fprintf(&b, "Generated at %s.\n\n", report.GeneratedAt.Format(time.RFC3339))
	if len(report.Summaries) == 0 {
		b.WriteString("No summaries cached.\n")
		return []byte(b.String())
	}

	var current string
	for _, s := range report.Summaries {
		if s.WordSlug != current {
			current = s.WordSlug
			fmt.Fprintf(&b, "## %s\n\n", strings.ReplaceAll(s.Word, "_", " "))
		}
		fmt.Fprintf(&b, "### %d words\n\n", s.WordCount)
		b.WriteString(strings.TrimSpace(s.SummaryText))
		b.WriteString("\n\n")
	}
	return []byte(b.String())
}

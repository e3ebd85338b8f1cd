package presentation

import (
	"fmt"
	"io"
	"strings"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/templateservice"
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// JSON writes v as two-space indented JSON with literal non-ASCII text.
func (f *Formatter) JSON(v any) error {
	data, err := schema.Marshal(v)
	if err != nil {
		return err
	}
	_, err = f.writer.Write(data)
	return err
}

// FormatTemplates formats a list of templates as JSON
func (f *Formatter) FormatTemplates(templates []TemplateDTO) error {
	return f.JSON(templates)
}

// FormatImportResult formats an import summary as JSON
func (f *Formatter) FormatImportResult(result ImportResultDTO) error {
	return f.JSON(result)
}

// TemplateMarkdown renders a template summary as markdown, suitable for
// glamour.
func TemplateMarkdown(info templateservice.Info) string {
	md := info.Metadata
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", md.Name)
	if md.Description != "" {
		fmt.Fprintf(&sb, "%s\n\n", md.Description)
	}
	fmt.Fprintf(&sb, "- **ID:** `%s`\n", info.ID)
	fmt.Fprintf(&sb, "- **Category:** %s\n", md.Category)
	fmt.Fprintf(&sb, "- **Version:** %s\n", md.Version)
	if len(md.Tags) > 0 {
		fmt.Fprintf(&sb, "- **Tags:** %s\n", strings.Join(md.Tags, ", "))
	}
	fmt.Fprintf(&sb, "- **Page title:** %s / %s\n", info.Preview.PageTitleEN, info.Preview.PageTitleCN)

	for _, c := range schema.Categories {
		entries := info.Preview.Entries(c)
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "\n## %s (%d)\n\n", c.Label(), len(entries))
		sb.WriteString("| Name | English | Chinese | Rows |\n|---|---|---|---|\n")
		for _, entry := range entries {
			for name, l := range entry {
				fmt.Fprintf(&sb, "| %s | %s | %s | %d |\n", name, l.En, l.Cn, l.Rows)
			}
		}
	}
	return sb.String()
}

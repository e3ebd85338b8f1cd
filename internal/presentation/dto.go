// Package presentation converts catalog and workspace values into the JSON
// shapes printed by the CLI.
package presentation

import (
	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/templateservice"
	"github.com/vvwxvv/Data-Schema-Json-App/internal/workspace"
)

// TemplateDTO represents a template for presentation
type TemplateDTO struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Description       string         `json:"description"`
	Category          string         `json:"category"`
	Version           string         `json:"version"`
	Author            string         `json:"author"`
	Tags              []string       `json:"tags"`
	RequiresImages    bool           `json:"requires_images"`
	RequiresFiltering bool           `json:"requires_filtering"`
	Variables         map[string]int `json:"variables"` // count per wire key
}

// FromTemplateInfo converts a catalog entry to a DTO.
func FromTemplateInfo(info templateservice.Info) TemplateDTO {
	md := info.Metadata
	tags := md.Tags
	if tags == nil {
		tags = []string{}
	}

	counts := make(map[string]int, len(schema.Categories))
	for _, c := range schema.Categories {
		counts[c.WireKey()] = len(info.Preview.Entries(c))
	}

	return TemplateDTO{
		ID:                info.ID,
		Name:              md.Name,
		Description:       md.Description,
		Category:          md.Category,
		Version:           md.Version,
		Author:            md.Author,
		Tags:              tags,
		RequiresImages:    md.RequiresImages,
		RequiresFiltering: md.RequiresFiltering,
		Variables:         counts,
	}
}

// FromTemplateInfos converts a slice of catalog entries to DTOs
func FromTemplateInfos(infos []templateservice.Info) []TemplateDTO {
	dtos := make([]TemplateDTO, len(infos))
	for i, info := range infos {
		dtos[i] = FromTemplateInfo(info)
	}
	return dtos
}

// SkippedDTO is one entry rejected by an import.
type SkippedDTO struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// DroppedDTO is a repeated variable left out of an imported schema.
type DroppedDTO struct {
	Schema string `json:"schema"`
	Entry  string `json:"entry"`
}

// ImportResultDTO summarizes an import.
type ImportResultDTO struct {
	File     string       `json:"file"`
	Imported []string     `json:"imported"`
	Skipped  []SkippedDTO `json:"skipped"`
	Dropped  []DroppedDTO `json:"dropped"`
}

// FromImportReport converts an import report to a DTO.
func FromImportReport(file string, report schema.ImportReport) ImportResultDTO {
	dto := ImportResultDTO{
		File:     file,
		Imported: report.Imported,
		Skipped:  make([]SkippedDTO, 0, len(report.Skipped)),
		Dropped:  make([]DroppedDTO, 0, len(report.Dropped)),
	}
	if dto.Imported == nil {
		dto.Imported = []string{}
	}
	for _, s := range report.Skipped {
		dto.Skipped = append(dto.Skipped, SkippedDTO{Name: s.Name, Error: s.Err.Error()})
	}
	for _, d := range report.Dropped {
		dto.Dropped = append(dto.Dropped, DroppedDTO{Schema: d.Schema, Entry: d.Path})
	}
	return dto
}

// SchemaSummaryDTO describes one schema of a workspace.
type SchemaSummaryDTO struct {
	Name        string `json:"name"`
	PageTitleEN string `json:"page_title_en"`
	PageTitleCN string `json:"page_title_cn"`
	Variables   int    `json:"variables"`
}

// SummarizeWorkspace lists the schemas of w in name order.
func SummarizeWorkspace(w *workspace.Workspace) []SchemaSummaryDTO {
	reg := w.Registry()
	out := make([]SchemaSummaryDTO, 0, reg.Len())
	for _, name := range reg.Names() {
		s, _ := reg.Get(name)
		out = append(out, SchemaSummaryDTO{
			Name:        name,
			PageTitleEN: s.PageTitleEN,
			PageTitleCN: s.PageTitleCN,
			Variables:   s.VariableCount(),
		})
	}
	return out
}

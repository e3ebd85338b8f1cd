// Package docdiff compares two schema documents line by line after
// normalizing them to sorted-key, two-space JSON.
package docdiff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/vvwxvv/Data-Schema-Json-App/internal/schema"
)

// LineType classifies a diff line.
type LineType int

const (
	LineContext LineType = iota
	LineAddition
	LineDeletion
)

// Prefix returns the unified-diff marker for the line type.
func (t LineType) Prefix() string {
	switch t {
	case LineAddition:
		return "+"
	case LineDeletion:
		return "-"
	default:
		return " "
	}
}

// Line is one line of a diff.
type Line struct {
	Type LineType
	Text string
}

// Result is the line diff of two documents.
type Result struct {
	Lines   []Line
	Added   int
	Removed int
}

// Equal reports whether the documents normalize to the same text.
func (r Result) Equal() bool {
	return r.Added == 0 && r.Removed == 0
}

// String renders the diff with one marker character per line.
func (r Result) String() string {
	var sb strings.Builder
	for _, l := range r.Lines {
		sb.WriteString(l.Type.Prefix())
		sb.WriteString(l.Text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Documents normalizes both inputs with schema.Format and diffs the result.
func Documents(a, b []byte) (Result, error) {
	na, err := schema.Format(a)
	if err != nil {
		return Result{}, fmt.Errorf("left document: %w", err)
	}
	nb, err := schema.Format(b)
	if err != nil {
		return Result{}, fmt.Errorf("right document: %w", err)
	}
	return Lines(string(na), string(nb)), nil
}

// Lines computes a line-level diff of two texts.
func Lines(a, b string) Result {
	dmp := diffmatchpatch.New()

	// Map each distinct line to a rune so the diff runs per line.
	ca, cb, lineArray := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffMain(ca, cb, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var res Result
	for _, d := range diffs {
		typ := LineContext
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			typ = LineAddition
		case diffmatchpatch.DiffDelete:
			typ = LineDeletion
		}
		for _, text := range splitLines(d.Text) {
			res.Lines = append(res.Lines, Line{Type: typ, Text: text})
			switch typ {
			case LineAddition:
				res.Added++
			case LineDeletion:
				res.Removed++
			}
		}
	}
	return res
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

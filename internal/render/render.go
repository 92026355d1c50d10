// Package render draws extraction and comparison results as aligned terminal
// tables.
package render

import (
	"fmt"
	"strings"

	"github.com/gookit/color"
	"github.com/mattn/go-runewidth"

	"github.com/dbsmedya/goinsight/internal/model"
)

// XRay renders a presented extraction result.
func XRay(r *model.ExtractionResult) string {
	var b strings.Builder

	title := "x-ray"
	if r.Model != nil {
		title = fmt.Sprintf("x-ray: %s %v", r.Model.Kind(), r.Model)
	}
	b.WriteString(color.Bold.Sprint(title))
	b.WriteString("\n")
	if r.Sampled {
		b.WriteString(color.Yellow.Sprint("(computed over a sample)"))
		b.WriteString("\n")
	}

	if r.Features != nil {
		b.WriteString(featureTable(r.Features))
	}
	if r.Constituents != nil {
		for el := r.Constituents.Front(); el != nil; el = el.Next() {
			b.WriteString("\n")
			b.WriteString(color.Cyan.Sprint(el.Key))
			b.WriteString("\n")
			b.WriteString(featureTable(el.Value.Features))
		}
	}
	return b.String()
}

// Compare renders a presented comparison result.
func Compare(cr *model.CompareResult) string {
	var b strings.Builder

	b.WriteString(color.Bold.Sprintf("compare: %v vs %v", cr.A, cr.B))
	b.WriteString("\n")
	if cr.Sampled {
		b.WriteString(color.Yellow.Sprint("(computed over a sample)"))
		b.WriteString("\n")
	}

	switch {
	case cr.Leaf != nil:
		b.WriteString(fmt.Sprintf("distance: %v  significant: %v\n", cr.Leaf.Distance, cr.Significant))
	case cr.Fields != nil:
		rows := make([][]string, 0, cr.Fields.Len())
		for el := cr.Fields.Front(); el != nil; el = el.Next() {
			rows = append(rows, []string{
				el.Key,
				fmt.Sprintf("%v", el.Value.Distance),
				fmt.Sprintf("%v", el.Value.Significant),
			})
		}
		b.WriteString(table([]string{"field", "distance", "significant"}, rows))
	}

	if len(cr.Contributors) > 0 {
		b.WriteString("\n")
		b.WriteString(color.Bold.Sprint("top contributors"))
		b.WriteString("\n")
		rows := make([][]string, 0, len(cr.Contributors))
		for _, c := range cr.Contributors {
			rows = append(rows, []string{c.Field, c.Feature, fmt.Sprintf("%v", c.Value)})
		}
		b.WriteString(table([]string{"field", "feature", "contribution"}, rows))
	}
	return b.String()
}

// featureTable renders one feature map, splitting {value, description} pairs
// produced by enrichment into their own columns.
func featureTable(features *model.FeatureMap) string {
	rows := make([][]string, 0, features.Len())
	for el := features.Front(); el != nil; el = el.Next() {
		value, description := splitEnriched(el.Value)
		rows = append(rows, []string{el.Key, value, description})
	}
	return table([]string{"feature", "value", "description"}, rows)
}

func splitEnriched(v any) (value, description string) {
	wrapped, ok := v.(*model.FeatureMap)
	if !ok {
		return formatValue(v), ""
	}
	inner, hasValue := wrapped.Get("value")
	desc, hasDesc := wrapped.Get("description")
	if !hasValue || !hasDesc {
		return formatValue(v), ""
	}
	return formatValue(inner), fmt.Sprintf("%v", desc)
}

func formatValue(v any) string {
	switch v := v.(type) {
	case []float64:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = fmt.Sprintf("%v", f)
		}
		return "[" + strings.Join(parts, " ") + "]"
	case *model.FeatureMap:
		parts := make([]string, 0, v.Len())
		for el := v.Front(); el != nil; el = el.Next() {
			parts = append(parts, fmt.Sprintf("%s=%v", el.Key, el.Value))
		}
		return "{" + strings.Join(parts, " ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// table renders rows under a header with runewidth-aware column padding.
func table(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			b.WriteString(runewidth.FillRight(cell, widths[i]))
		}
		b.WriteString("\n")
	}

	// Color codes confuse width math, so pad the plain text before coloring.
	headerCells := make([]string, len(header))
	for i, h := range header {
		headerCells[i] = color.Gray.Sprint(runewidth.FillRight(h, widths[i]))
	}
	b.WriteString(strings.Join(headerCells, "  "))
	b.WriteString("\n")

	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}

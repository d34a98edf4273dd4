package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"mediavault/internal/domain/entity"
)

var (
	styleHeader  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "5", Dark: "5"}).Bold(true)
	styleBorder  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "8"})
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "2"}).Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "8", Dark: "8"})
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "1"})
)

type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) render() string {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = lipgloss.Width(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && lipgloss.Width(cell) > widths[i] {
				widths[i] = lipgloss.Width(cell)
			}
		}
	}

	var b strings.Builder
	header := make([]string, len(t.headers))
	rule := make([]string, len(t.headers))
	for i, h := range t.headers {
		header[i] = pad(h, widths[i])
		rule[i] = strings.Repeat("─", widths[i])
	}
	b.WriteString(styleHeader.Render(strings.Join(header, "  ")))
	b.WriteString("\n")
	b.WriteString(styleBorder.Render(strings.Join(rule, "  ")))
	b.WriteString("\n")
	for _, row := range t.rows {
		cells := make([]string, len(t.headers))
		for i := range t.headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			cells[i] = pad(cell, widths[i])
		}
		b.WriteString(strings.TrimRight(strings.Join(cells, "  "), " "))
		b.WriteString("\n")
	}
	return b.String()
}

func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}

func (a *app) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printSuccess(format string, args ...interface{}) {
	fmt.Fprintln(a.out, styleSuccess.Render("✔ "+fmt.Sprintf(format, args...)))
}

func (a *app) printAssets(assets []entity.Asset) error {
	if a.jsonOut {
		return a.printJSON(assets)
	}
	if len(assets) == 0 {
		fmt.Fprintln(a.out, styleMuted.Render("No assets found"))
		return nil
	}
	t := newTable("ID", "TITLE", "TAGS", "COLLECTION", "SIZE", "UPLOADED")
	for _, asset := range assets {
		collection := "-"
		if asset.CollectionID != nil {
			collection = *asset.CollectionID
		}
		t.add(asset.ID, asset.Title, strings.Join(asset.Tags, ","), collection, humanSize(asset.FileSize), asset.UploadDate.Format("2006-01-02"))
	}
	fmt.Fprint(a.out, t.render())
	return nil
}

func (a *app) printAsset(asset *entity.Asset) error {
	if a.jsonOut {
		return a.printJSON(asset)
	}
	collection := "-"
	if asset.CollectionID != nil {
		collection = *asset.CollectionID
	}
	t := newTable("FIELD", "VALUE")
	t.add("id", asset.ID)
	t.add("title", asset.Title)
	t.add("description", asset.Description)
	t.add("tags", strings.Join(asset.Tags, ", "))
	t.add("collection", collection)
	t.add("file", fmt.Sprintf("%s (%s, %s, %dx%d)", asset.FileName, humanSize(asset.FileSize), asset.Format, asset.Dimensions.Width, asset.Dimensions.Height))
	t.add("imageUrl", asset.ImageURL)
	t.add("copyright", asset.Copyright)
	t.add("usageRights", asset.UsageRights)
	t.add("uploaded", asset.UploadDate.Format("2006-01-02 15:04:05"))
	t.add("updated", asset.UpdatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprint(a.out, t.render())
	return nil
}

func humanSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}

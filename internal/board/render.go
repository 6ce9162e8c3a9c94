package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/jobboard/internal/listing"
	"github.com/amishk599/jobboard/internal/model"
)

const (
	descPreviewLen = 150
	cardGap        = 1
)

// columnsFor picks how many job cards fit side by side.
func columnsFor(width int) int {
	switch {
	case width >= 105:
		return 3
	case width >= 70:
		return 2
	default:
		return 1
	}
}

func renderChips(chips []listing.Chip, cursor int, focused bool) string {
	if len(chips) == 0 {
		return ""
	}
	parts := make([]string, 0, len(chips))
	for i, c := range chips {
		st := chipStyle
		if focused && i == cursor {
			st = selectedChipStyle
		}
		parts = append(parts, st.Render(c.Value+" ✕"))
	}
	return strings.Join(parts, " ")
}

func renderChecklist(options []string, checked func(string) bool, cursor int, focused bool) string {
	var b strings.Builder
	for i, opt := range options {
		box := "[ ]"
		if checked(opt) {
			box = "[x]"
		}
		line := box + " " + opt
		if focused && i == cursor {
			b.WriteString(selectedOptionStyle.Render("> " + line))
		} else {
			b.WriteString(optionStyle.Render("  " + line))
		}
		if i < len(options)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderCard(j model.Job, width int, selected bool) string {
	inner := max(width-4, 10)

	var b strings.Builder
	b.WriteString(cardTitleStyle.Width(inner).Render(j.Title))
	b.WriteByte('\n')

	meta := []string{}
	if j.Company != "" {
		meta = append(meta, j.Company)
	}
	meta = append(meta, j.Location)
	if j.Level != "" {
		meta = append(meta, j.Level)
	}
	b.WriteString(cardMetaStyle.Width(inner).Render(strings.Join(meta, " · ")))
	b.WriteByte('\n')

	if j.Salary > 0 {
		b.WriteString(cardBodyStyle.Render(fmt.Sprintf("CTC: %dk", j.Salary/1000)))
		b.WriteByte('\n')
	}
	if j.Description != "" {
		b.WriteString(cardBodyStyle.Width(inner).Render(preview(j.Description, descPreviewLen)))
	}

	border := inactiveBorderStyle
	if selected {
		border = activeBorderStyle
	}
	return border.Width(width - 2).Render(strings.TrimRight(b.String(), "\n"))
}

// renderCards lays the page out as a grid, row by row.
func renderCards(jobs []model.Job, width, cursor int, focused bool) string {
	if len(jobs) == 0 {
		return emptyStyle.Render("No jobs match the current filters.")
	}
	return lipgloss.JoinVertical(lipgloss.Left, renderCardRows(jobs, width, cursor, focused)...)
}

func renderCardRows(jobs []model.Job, width, cursor int, focused bool) []string {
	cols := columnsFor(width)
	cardWidth := (width - cardGap*(cols-1)) / cols

	var rows []string
	for start := 0; start < len(jobs); start += cols {
		end := min(start+cols, len(jobs))
		cells := make([]string, 0, cols*2)
		for i := start; i < end; i++ {
			if i > start {
				cells = append(cells, strings.Repeat(" ", cardGap))
			}
			cells = append(cells, renderCard(jobs[i], cardWidth, focused && i == cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return rows
}

// renderPagination draws ‹ 1 2 3 › with the current page highlighted.
func renderPagination(page, total int) string {
	if total == 0 {
		return ""
	}
	prev := arrowStyle
	if page <= 1 {
		prev = disabledArrowStyle
	}
	next := arrowStyle
	if page >= total {
		next = disabledArrowStyle
	}

	parts := []string{prev.Render("‹")}
	for p := 1; p <= total; p++ {
		st := pageStyle
		if p == page {
			st = currentPageStyle
		}
		parts = append(parts, st.Render(fmt.Sprint(p)))
	}
	parts = append(parts, next.Render("›"))
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func renderDetail(j model.Job, width int) string {
	var b strings.Builder
	b.WriteString(detailTitleStyle.Render(j.Title))
	b.WriteByte('\n')

	field := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString(value)
		b.WriteByte('\n')
	}
	field("Company", j.Company)
	field("Category", j.Category)
	field("Location", j.Location)
	field("Level", j.Level)
	if j.Salary > 0 {
		field("CTC", fmt.Sprintf("%d", j.Salary))
	}
	if j.PostedAt != nil {
		field("Posted", j.PostedAt.Format("2006-01-02"))
	}
	field("Source", j.Source)

	if j.Description != "" {
		b.WriteByte('\n')
		b.WriteString(wordWrap(j.Description, max(width-4, 20)))
		b.WriteByte('\n')
	}
	return b.String()
}

func preview(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "…"
}

func wordWrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}
	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) <= width {
			line += " " + w
		} else {
			lines = append(lines, line)
			line = w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}

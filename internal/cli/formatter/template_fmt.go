package formatter

import (
	"fmt"
	"strings"

	"github.com/mhalvorsen/treeline/internal/domain"
	"github.com/mhalvorsen/treeline/internal/outline"
)

// FormatTemplateList renders a styled template list inside a bordered box.
func FormatTemplateList(templates []*domain.Template) string {
	headers := []string{"ID", "NAME", "CREATED"}
	rows := make([][]string, 0, len(templates))

	for _, t := range templates {
		rows = append(rows, []string{
			Dim(ShortID(t.ID)),
			Bold(t.Name),
			Dim(HumanDate(t.CreatedAt)),
		})
	}

	return RenderBox("Templates", RenderTable(headers, rows))
}

// FormatSectionList renders a template's sections in display order.
func FormatSectionList(sections []*domain.Section) string {
	headers := []string{"#", "ID", "TITLE"}
	rows := make([][]string, 0, len(sections))

	for _, s := range sections {
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", s.OrderIndex+1)),
			Dim(ShortID(s.ID)),
			StyleFg.Render(s.Title),
		})
	}

	return RenderTable(headers, rows)
}

// FormatTemplateInspect renders a template header followed by its full
// outline.
func FormatTemplateInspect(t *domain.Template, groups []outline.SectionTree) string {
	var b strings.Builder

	b.WriteString(StyleBold.Render(t.Name) + "\n")
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("ID     "), Dim(t.ID)))
	b.WriteString(fmt.Sprintf("  %s  %s\n", StyleDim.Render("CREATED"), Dim(HumanDate(t.CreatedAt))))
	b.WriteString("\n")
	b.WriteString(FormatOutline(groups, nil))

	return RenderBox("", b.String())
}

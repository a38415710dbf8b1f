package formatter

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/ganttplan/internal/domain"
)

// ScheduleText renders "Mar w1, 8 weeks".
func ScheduleText(s domain.Schedule) string {
	unit := "weeks"
	if s.DurationWeeks == 1 {
		unit = "week"
	}
	return fmt.Sprintf("%s w%d, %d %s", domain.MonthShortName(s.StartMonth), s.StartWeekOffset+1, s.DurationWeeks, unit)
}

// FormatProjectList renders the projects of a year in display order.
func FormatProjectList(projects []domain.Project) string {
	headers := []string{"#", "NAME", "SCHEDULE", "PROGRESS", "COLOR", "STAGES", "ID"}
	rows := make([][]string, 0, len(projects))
	for i, p := range projects {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			Truncate(p.Name, 32),
			ScheduleText(p.Schedule),
			RenderProgress(p.Progress, 10),
			Swatch(p.Color) + " " + p.Color,
			strconv.Itoa(len(p.Stages)),
			Dim(shortID(p.ID)),
		})
	}
	return RenderTable(headers, rows)
}

// FormatProjectDetail renders one project with its stages and comments.
func FormatProjectDetail(p domain.Project, comments []*domain.Comment, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Bold(p.Name), Dim(p.ID))
	fmt.Fprintf(&b, "Schedule  %s\n", ScheduleText(p.Schedule))
	fmt.Fprintf(&b, "Span      %s to %s\n",
		domain.MonthName(p.Schedule.StartMonth), domain.MonthName(min(p.Schedule.LastMonth(), domain.MonthsPerYear-1)))
	fmt.Fprintf(&b, "Progress  %s\n", RenderProgress(p.Progress, 20))
	fmt.Fprintf(&b, "Color     %s %s\n", Swatch(p.Color), p.Color)
	if p.DriveLink != "" {
		fmt.Fprintf(&b, "Drive     %s\n", p.DriveLink)
	}
	fmt.Fprintf(&b, "Updated   %s\n", RelativeTime(p.UpdatedAt, now))

	if len(p.Stages) > 0 {
		b.WriteString("\n" + Header("Stages") + "\n")
		b.WriteString(FormatStageList(p.Stages))
	}
	if len(comments) > 0 {
		b.WriteString("\n" + Header("Comments") + "\n")
		b.WriteString(FormatCommentList(comments, now))
	}
	return b.String()
}

// FormatStageList renders a project's stages in position order.
func FormatStageList(stages []domain.Stage) string {
	headers := []string{"#", "STAGE", "SCHEDULE", "ID"}
	rows := make([][]string, 0, len(stages))
	for i, s := range stages {
		rows = append(rows, []string{strconv.Itoa(i + 1), s.Name, ScheduleText(s.Schedule), Dim(shortID(s.ID))})
	}
	return RenderTable(headers, rows)
}

// FormatCommentList renders comments as they are given (newest first).
func FormatCommentList(comments []*domain.Comment, now time.Time) string {
	var b strings.Builder
	for _, c := range comments {
		fmt.Fprintf(&b, "%s %s %s\n", StyleBlue.Render(c.AuthorName), Dim("·"), Dim(RelativeTime(c.CreatedAt, now)))
		for _, line := range strings.Split(c.Content, "\n") {
			b.WriteString("  " + line + "\n")
		}
		b.WriteString("  " + Dim(shortID(c.ID)) + "\n")
	}
	return b.String()
}

// FormatContractList renders contracts with their years.
func FormatContractList(contracts []*domain.Contract, years map[string][]*domain.Year) string {
	headers := []string{"CONTRACT", "YEARS", "ID"}
	rows := make([][]string, 0, len(contracts))
	for _, c := range contracts {
		vals := make([]string, 0, len(years[c.ID]))
		for _, y := range years[c.ID] {
			vals = append(vals, y.String())
		}
		list := strings.Join(vals, ", ")
		if list == "" {
			list = Dim("none")
		}
		rows = append(rows, []string{c.Name, list, Dim(shortID(c.ID))})
	}
	return RenderTable(headers, rows)
}

// FormatYearList renders the years of one contract.
func FormatYearList(years []*domain.Year) string {
	headers := []string{"YEAR", "ID"}
	rows := make([][]string, 0, len(years))
	for _, y := range years {
		rows = append(rows, []string{y.String(), Dim(shortID(y.ID))})
	}
	return RenderTable(headers, rows)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

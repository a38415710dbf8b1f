// Package export renders a contract year's chart to files: a PNG raster,
// a plain-text Gantt and a JSON document that the importer reads back.
package export

import (
	"fmt"
	"time"

	"github.com/alexanderramin/ganttplan/internal/domain"
)

// Format names an output format.
type Format string

const (
	FormatPNG  Format = "png"
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatPNG, FormatText, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown export format %q (png, text, json)", domain.ErrInvalid, s)
}

// Ext returns the file extension of the format.
func (f Format) Ext() string {
	if f == FormatText {
		return "txt"
	}
	return string(f)
}

// Chart is everything an export needs: the year being shown and its
// projects in display order, with stages attached.
type Chart struct {
	Contract string
	Year     int
	Projects []domain.Project
}

// Title is the heading drawn above the chart.
func (c Chart) Title() string {
	return fmt.Sprintf("%s - %d", c.Contract, c.Year)
}

// DefaultFileName is gantt-chart-YYYY-MM-DD.<ext> for the given day.
func DefaultFileName(f Format, now time.Time) string {
	return fmt.Sprintf("gantt-chart-%s.%s", now.Format("2006-01-02"), f.Ext())
}

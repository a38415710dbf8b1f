package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/ganttplan/internal/importer"
)

// Schema converts the chart into the import file format.
func Schema(c Chart) importer.ImportSchema {
	out := importer.ImportSchema{
		Contract: c.Contract,
		Year:     c.Year,
		Projects: make([]importer.ProjectImport, 0, len(c.Projects)),
	}
	for _, p := range c.Projects {
		pi := importer.ProjectImport{
			Name:           p.Name,
			ScheduleImport: scheduleImport(p.Schedule.StartMonth, p.Schedule.StartWeekOffset, p.Schedule.DurationWeeks),
			Color:          p.Color,
			Progress:       p.Progress,
			ShowProgress:   p.ShowProgress,
			DriveLink:      p.DriveLink,
		}
		for _, st := range p.Stages {
			pi.Stages = append(pi.Stages, importer.StageImport{
				Name:           st.Name,
				ScheduleImport: scheduleImport(st.Schedule.StartMonth, st.Schedule.StartWeekOffset, st.Schedule.DurationWeeks),
			})
		}
		out.Projects = append(out.Projects, pi)
	}
	return out
}

func scheduleImport(month, offset, weeks int) importer.ScheduleImport {
	return importer.ScheduleImport{StartMonth: month, StartWeekOffset: offset, DurationWeeks: &weeks}
}

// WriteJSON writes the chart as an indented import document.
func WriteJSON(w io.Writer, c Chart) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Schema(c)); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

package importer

import (
	"time"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/google/uuid"
)

// Converted is the domain form of an import file, ready for persistence.
// Projects carry their stages but no contract, year or sort order; the
// importing service assigns those.
type Converted struct {
	Contract string
	Year     int
	Projects []*domain.Project
}

// Convert transforms a validated ImportSchema into domain objects ready for persistence.
// Call ValidateImportSchema first; Convert assumes the schema is valid.
func Convert(schema *ImportSchema) *Converted {
	now := time.Now().UTC()

	out := &Converted{
		Contract: schema.Contract,
		Year:     schema.Year,
		Projects: make([]*domain.Project, 0, len(schema.Projects)),
	}
	for _, pi := range schema.Projects {
		p := &domain.Project{
			ID:           uuid.New().String(),
			Name:         pi.Name,
			Schedule:     pi.schedule(),
			Color:        domain.NormalizeColor(pi.Color),
			Progress:     pi.Progress,
			ShowProgress: pi.ShowProgress,
			DriveLink:    pi.DriveLink,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		for j, si := range pi.Stages {
			p.Stages = append(p.Stages, domain.Stage{
				ID:        uuid.New().String(),
				ProjectID: p.ID,
				Name:      si.Name,
				Schedule:  si.schedule(),
				Position:  j,
			})
		}
		out.Projects = append(out.Projects, p)
	}
	return out
}

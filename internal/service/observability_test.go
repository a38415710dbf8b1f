package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogUseCaseObserver_Levels(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"success", nil, "INFO"},
		{"invalid schedule", fmt.Errorf("update schedule: %w", domain.ErrInvalid), "WARN"},
		{"missing project", domain.ErrNotFound, "WARN"},
		{"wrong password", ErrWrongPassword, "WARN"},
		{"store failure", errors.New("database is locked"), "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			obs := NewLogUseCaseObserver(slog.New(slog.NewJSONHandler(&buf, nil)))

			obs.ObserveUseCase(context.Background(), UseCaseEvent{
				Name:     "project.update_schedule",
				Duration: 12 * time.Millisecond,
				Success:  tt.err == nil,
				Err:      tt.err,
			})

			var rec map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
			assert.Equal(t, tt.level, rec["level"])
			assert.Equal(t, "service_use_case", rec["msg"])
			assert.Equal(t, "project.update_schedule", rec["use_case"])
			assert.EqualValues(t, 12, rec["duration_ms"])
			if tt.err != nil {
				assert.Equal(t, tt.err.Error(), rec["error"])
			} else {
				assert.NotContains(t, rec, "error")
			}
		})
	}
}

func TestLogUseCaseObserver_FieldsInKeyOrder(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogUseCaseObserver(slog.New(slog.NewTextHandler(&buf, nil)))

	obs.ObserveUseCase(context.Background(), UseCaseEvent{
		Name:    "project.reorder",
		Success: true,
		Fields:  map[string]any{"year_id": "y1", "changed": 3, "projects": 4},
	})

	line := buf.String()
	changed := strings.Index(line, "changed=3")
	projects := strings.Index(line, "projects=4")
	year := strings.Index(line, "year_id=y1")
	require.True(t, changed > 0 && projects > 0 && year > 0, line)
	assert.Less(t, changed, projects)
	assert.Less(t, projects, year)
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.IsType(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}

func TestObserve_ReportsNamedError(t *testing.T) {
	obs := &recordingObserver{}
	run := func() (err error) {
		defer observe(context.Background(), obs, "stage.save_all", map[string]any{"project_id": "p1"})(&err)
		return domain.ErrInvalid
	}

	require.ErrorIs(t, run(), domain.ErrInvalid)
	ev := obs.last()
	assert.Equal(t, "stage.save_all", ev.Name)
	assert.False(t, ev.Success)
	assert.ErrorIs(t, ev.Err, domain.ErrInvalid)
	assert.Equal(t, "p1", ev.Fields["project_id"])
	assert.False(t, ev.StartedAt.IsZero())
}

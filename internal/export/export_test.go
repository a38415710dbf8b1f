package export

import (
	"bytes"
	"image/color"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/importer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleChart() Chart {
	return Chart{
		Contract: "Lucrari Sector 3",
		Year:     2025,
		Projects: []domain.Project{
			{
				ID:       "p1",
				Name:     "Scoala 12",
				Schedule: domain.Schedule{StartMonth: 2, DurationWeeks: 8},
				Color:    "#EF4444",
				Progress: 50,
				Stages: []domain.Stage{
					{ID: "s1", ProjectID: "p1", Name: "Demolare", Schedule: domain.Schedule{StartMonth: 3, DurationWeeks: 2}},
				},
			},
		},
	}
}

func TestDefaultFileName(t *testing.T) {
	day := time.Date(2025, 3, 7, 15, 4, 0, 0, time.UTC)
	assert.Equal(t, "gantt-chart-2025-03-07.png", DefaultFileName(FormatPNG, day))
	assert.Equal(t, "gantt-chart-2025-03-07.txt", DefaultFileName(FormatText, day))
	assert.Equal(t, "gantt-chart-2025-03-07.json", DefaultFileName(FormatJSON, day))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("json")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("pdf")
	assert.ErrorIs(t, err, domain.ErrInvalid)
}

func TestWritePNG_Geometry(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePNG(&buf, sampleChart(), PNGOptions{Stages: true}))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 1564, img.Bounds().Dx())
	assert.Equal(t, TitleHeight+HeaderHeight+2*RowHeight, img.Bounds().Dy())

	rgba := func(x, y int) color.RGBA {
		r, g, b, a := img.At(x, y).RGBA()
		return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
	}
	row0 := TitleHeight + HeaderHeight

	// Bar spans weeks 8-15: x in [220+224, 220+448).
	assert.Equal(t, color.RGBA{0x8F, 0x28, 0x28, 0xFF}, rgba(450, row0+12), "first half is the darkened progress overlay")
	assert.Equal(t, color.RGBA{0xEF, 0x44, 0x44, 0xFF}, rgba(600, row0+12))
	assert.Equal(t, background, rgba(700, row0+12), "nothing after week 16")

	// Stage bar starts at week 12.
	assert.Equal(t, color.RGBA{0xEF, 0x44, 0x44, 0xFF}, rgba(LabelWidth+12*28+5, row0+RowHeight+14))
	assert.Equal(t, background, rgba(LabelWidth+16*28+5, row0+RowHeight+14))
}

func TestSize_EmptyChartKeepsOneRow(t *testing.T) {
	w, h := Size(Chart{Contract: "C", Year: 2025}, PNGOptions{})
	assert.Equal(t, 1564, w)
	assert.Equal(t, TitleHeight+HeaderHeight+RowHeight, h)
}

func TestTextBar(t *testing.T) {
	bar := []rune(TextBar(domain.Schedule{StartMonth: 2, DurationWeeks: 8}, '#'))
	require.Len(t, bar, 48)
	assert.Equal(t, "|...|...", string(bar[:8]))
	assert.Equal(t, "########", string(bar[8:16]))
	assert.Equal(t, '|', bar[16])
}

func TestWriteText(t *testing.T) {
	c := sampleChart()
	c.Projects[0].ShowProgress = true

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, c, true))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "Lucrari Sector 3 - 2025", lines[0])
	assert.Contains(t, lines[2], "Ian Feb Mar")
	assert.True(t, strings.HasPrefix(lines[3], "Scoala 12 50%"))
	assert.Contains(t, lines[3], "████████")
	assert.Contains(t, lines[4], "▒▒")

	buf.Reset()
	require.NoError(t, WriteText(&buf, Chart{Contract: "C", Year: 2025}, false))
	assert.Contains(t, buf.String(), "No projects available")
}

func TestWriteJSON_ReadsBackAsImport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleChart()))

	schema, err := importer.ParseImportSchema(buf.Bytes(), ".json")
	require.NoError(t, err)
	assert.Empty(t, importer.ValidateImportSchema(schema))

	conv := importer.Convert(schema)
	require.Len(t, conv.Projects, 1)
	p := conv.Projects[0]
	assert.Equal(t, domain.Schedule{StartMonth: 2, DurationWeeks: 8}, p.Schedule)
	assert.Equal(t, 50, p.Progress)
	require.Len(t, p.Stages, 1)
	assert.Equal(t, domain.Schedule{StartMonth: 3, DurationWeeks: 2}, p.Stages[0].Schedule)
}

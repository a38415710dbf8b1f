package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/alexanderramin/ganttplan/internal/domain"
	"github.com/alexanderramin/ganttplan/internal/timeline"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Raster layout, in pixels. Week columns are timeline.CellWidth wide.
const (
	LabelWidth   = 220
	RowHeight    = 28
	TitleHeight  = 24
	HeaderHeight = 24
	barInset     = 5
	stageInset   = 9
)

var (
	background = color.RGBA{0xF9, 0xFA, 0xFB, 0xFF}
	gridMonth  = color.RGBA{0xD1, 0xD5, 0xDB, 0xFF}
	gridWeek   = color.RGBA{0xEC, 0xEE, 0xF1, 0xFF}
	textDark   = color.RGBA{0x1F, 0x29, 0x37, 0xFF}
	textMuted  = color.RGBA{0x6B, 0x72, 0x80, 0xFF}
	textLight  = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
)

// PNGOptions controls what the raster includes.
type PNGOptions struct {
	// Stages draws every project's stages as nested rows.
	Stages bool
}

type pngRow struct {
	label    string
	schedule domain.Schedule
	color    string
	progress int
	showPct  bool
	stage    bool
}

func pngRows(c Chart, opts PNGOptions) []pngRow {
	var rows []pngRow
	for _, p := range c.Projects {
		rows = append(rows, pngRow{
			label:    p.Name,
			schedule: p.Schedule,
			color:    p.Color,
			progress: p.Progress,
			showPct:  p.ShowProgress,
		})
		if !opts.Stages {
			continue
		}
		for _, st := range p.Stages {
			rows = append(rows, pngRow{label: "  " + st.Name, schedule: st.Schedule, color: p.Color, stage: true})
		}
	}
	return rows
}

// Size returns the raster dimensions for the chart.
func Size(c Chart, opts PNGOptions) (width, height int) {
	n := len(pngRows(c, opts))
	if n == 0 {
		n = 1
	}
	return LabelWidth + timeline.GridWidth(timeline.CellWidth), TitleHeight + HeaderHeight + n*RowHeight
}

// Render draws the chart into a new image.
func Render(c Chart, opts PNGOptions) *image.RGBA {
	width, height := Size(c, opts)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	drawText(img, 8, 16, c.Title(), textDark)

	gridTop := TitleHeight
	for w := 0; w <= domain.TotalWeeks; w++ {
		x := LabelWidth + w*timeline.CellWidth
		col := gridWeek
		if w%domain.WeeksPerMonth == 0 {
			col = gridMonth
		}
		fill(img, image.Rect(x, gridTop, x+1, height), col)
	}
	for m := 0; m < domain.MonthsPerYear; m++ {
		x := LabelWidth + m*domain.WeeksPerMonth*timeline.CellWidth
		drawText(img, x+6, gridTop+16, domain.MonthShortName(m), textMuted)
	}
	fill(img, image.Rect(0, gridTop+HeaderHeight-1, width, gridTop+HeaderHeight), gridMonth)

	rows := pngRows(c, opts)
	top := TitleHeight + HeaderHeight
	if len(rows) == 0 {
		drawText(img, LabelWidth+8, top+18, "No projects available", textMuted)
	}
	for i, r := range rows {
		y := top + i*RowHeight
		drawText(img, 8, y+18, clip(r.label, (LabelWidth-16)/7), textDark)
		drawBar(img, r, y)
	}
	return img
}

func drawBar(img *image.RGBA, r pngRow, y int) {
	g := timeline.Geometry(r.schedule.Clamp(), timeline.CellWidth)
	inset := barInset
	if r.stage {
		inset = stageInset
	}
	rect := image.Rect(LabelWidth+g.Left+1, y+inset, LabelWidth+g.Right()-1, y+RowHeight-inset)
	fill(img, rect, hexRGBA(r.color))
	if r.stage {
		return
	}
	if r.progress > 0 {
		done := rect
		done.Max.X = rect.Min.X + rect.Dx()*r.progress/100
		fill(img, done, hexRGBA(domain.DarkenColor(r.color, 0.4)))
	}
	if r.showPct {
		label := fmt.Sprintf("%d%%", r.progress)
		if x := rect.Max.X - 7*len(label) - 4; x > rect.Min.X {
			drawText(img, x, y+18, label, textLight)
		}
	}
}

// WritePNG encodes the rendered chart as PNG.
func WritePNG(w io.Writer, c Chart, opts PNGOptions) error {
	if err := png.Encode(w, Render(c, opts)); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

func fill(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawText(img *image.RGBA, x, y int, s string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func hexRGBA(hex string) color.RGBA {
	r, g, b, err := domain.ParseHexColor(domain.NormalizeColor(hex))
	if err != nil {
		return color.RGBA{0x3B, 0x82, 0xF6, 0xFF}
	}
	return color.RGBA{r, g, b, 0xFF}
}

func clip(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	if n <= 1 {
		return string(rs[:n])
	}
	return string(rs[:n-1]) + "~"
}

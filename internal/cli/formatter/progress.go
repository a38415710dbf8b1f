package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/ganttplan/internal/domain"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a percentage as [████░░░░]  45%, coloured by its
// progress bucket.
func RenderProgress(pct, width int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if width < 2 {
		width = 2
	}

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	style := ProgressStyle(domain.BucketFor(pct))
	return fmt.Sprintf("[%s] %3d%%", style.Render(bar), pct)
}

// ProgressLabel renders "45%" in the bucket colour.
func ProgressLabel(pct int) string {
	return ProgressStyle(domain.BucketFor(pct)).Render(fmt.Sprintf("%d%%", pct))
}

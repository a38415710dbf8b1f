package domain

type ProgressBucket string

const (
	ProgressNone     ProgressBucket = "none"
	ProgressStarted  ProgressBucket = "started"
	ProgressAdvanced ProgressBucket = "advanced"
	ProgressDone     ProgressBucket = "done"
)

// BucketFor maps a percentage to its colour bucket:
// 0 none, 1-49 started, 50-99 advanced, 100 done.
// Anything outside 0-100 falls back to none.
func BucketFor(progress int) ProgressBucket {
	switch {
	case progress >= 1 && progress <= 49:
		return ProgressStarted
	case progress >= 50 && progress <= 99:
		return ProgressAdvanced
	case progress == 100:
		return ProgressDone
	default:
		return ProgressNone
	}
}

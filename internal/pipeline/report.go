package pipeline

import (
	"time"

	"ytsite/internal/site"
)

// State is a stage of a generator run.
type State int

const (
	StateListing State = iota
	StateEnriching
	StatePersisting
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateListing:
		return "listing"
	case StateEnriching:
		return "enriching"
	case StatePersisting:
		return "persisting"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Status is the outcome of one listed video.
type Status string

const (
	StatusRendered Status = "rendered"
	StatusSkipped  Status = "skipped"
)

// ItemResult records what happened to one listed video ID.
type ItemResult struct {
	ID     string
	Status Status
	// Reason explains a skip; empty for rendered items.
	Reason string
	Err    error
}

// Report is the outcome of a run.
type Report struct {
	RunID     string
	ChannelID string

	// State is StateDone on success and StateFailed otherwise.
	State State
	// FailedIn is the stage that failed; only meaningful when State is StateFailed.
	FailedIn State

	// Listed is the number of video IDs the channel listing returned.
	Listed int
	// Items holds one result per listed ID, in listing order.
	Items []ItemResult
	// Videos is the rendered collection, in listing order.
	Videos []site.Video

	StartedAt  time.Time
	FinishedAt time.Time
}

// Rendered returns how many videos got a page.
func (r *Report) Rendered() int {
	return r.count(StatusRendered)
}

// Skipped returns how many listed videos were skipped.
func (r *Report) Skipped() int {
	return r.count(StatusSkipped)
}

// SkippedItems returns the skipped results in listing order.
func (r *Report) SkippedItems() []ItemResult {
	var out []ItemResult
	for _, it := range r.Items {
		if it.Status == StatusSkipped {
			out = append(out, it)
		}
	}
	return out
}

// Elapsed returns the run duration.
func (r *Report) Elapsed() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

func (r *Report) count(s Status) int {
	n := 0
	for _, it := range r.Items {
		if it.Status == s {
			n++
		}
	}
	return n
}

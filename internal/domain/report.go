package domain

import "time"

// Report is the outcome of replaying one instruction file.
type Report struct {
	ID   string `json:"id,omitempty"`
	Path string `json:"path"`
	Dims int    `json:"dims"`

	// Instructions counts parsed lines; Applied those that reached the set
	// (after region clipping), Skipped those clipped away entirely.
	Instructions int `json:"instructions"`
	Applied      int `json:"applied"`
	Skipped      int `json:"skipped"`

	Volume uint64 `json:"volume"`
	Boxes  int    `json:"boxes"`

	// Bounds is the inclusive extent of the lit region per axis; empty when
	// nothing is lit.
	Bounds []Range `json:"bounds,omitempty"`
	Region *Range  `json:"region,omitempty"`

	// Rendering holds the drawn grid of a 2D program when requested.
	Rendering string `json:"rendering,omitempty"`

	StartedAt time.Time `json:"started_at"`
	EndedAt   time.Time `json:"ended_at"`
}

// Duration is the wall time spent on the replay.
func (r Report) Duration() time.Duration {
	if r.StartedAt.IsZero() || r.EndedAt.IsZero() {
		return 0
	}
	return r.EndedAt.Sub(r.StartedAt)
}

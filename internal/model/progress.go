package model

import "math"

type Progress struct {
	Total      int `json:"total"`
	Completed  int `json:"completed"`
	Percentage int `json:"percentage"`
}

// ComputeProgress derives completion stats from a plan's daily contents.
// It is never stored; callers recompute it on every read.
func ComputeProgress(contents []*DailyContent) Progress {
	p := Progress{Total: len(contents)}
	for _, c := range contents {
		if c.Completed {
			p.Completed++
		}
	}
	if p.Total > 0 {
		p.Percentage = int(math.Round(100 * float64(p.Completed) / float64(p.Total)))
	}
	return p
}

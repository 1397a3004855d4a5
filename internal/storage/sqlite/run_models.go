package sqlite

import "time"

// RunRecord is the provenance row stored after each completed run.
type RunRecord struct {
	ID         int64         `json:"id"`
	StartedAt  time.Time     `json:"started_at"`
	OutputFile string        `json:"output_file"`
	Records    int64         `json:"records"`
	Bytes      int64         `json:"bytes"`
	Duration   time.Duration `json:"duration"`
	Seed       int64         `json:"seed"`
}

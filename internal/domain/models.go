package domain

import (
	"time"
)

const (
	// TargetWidth and TargetHeight are the fixed output dimensions.
	TargetWidth  = 28
	TargetHeight = 28
)

// Image describes one file written (or found) in the destination directory.
type Image struct {
	Name         string    `json:"name"`
	SourcePath   string    `json:"source_path,omitempty"`
	OutputPath   string    `json:"output_path"`
	SourceWidth  int       `json:"source_width,omitempty"`
	SourceHeight int       `json:"source_height,omitempty"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	Size         int64     `json:"size"`
	ContentType  string    `json:"content_type"`
	ProcessedAt  time.Time `json:"processed_at"`
}

// RunReport is the result of one batch resize run.
type RunReport struct {
	RunID     string        `json:"run_id"`
	SourceDir string        `json:"source_dir"`
	DestDir   string        `json:"dest_dir"`
	Filter    string        `json:"filter"`
	Images    []Image       `json:"images"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// PublishedObject is one destination file mirrored to object storage.
type PublishedObject struct {
	Name        string    `json:"name"`
	Key         string    `json:"key"`
	Size        int64     `json:"size"`
	ContentType string    `json:"content_type"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

package baf

import (
	"fmt"

	"go.uber.org/zap"
)

// Options configure creating or opening an archive.
type Options struct {
	// DirsPerSegment is the directory slot capacity of newly appended
	// file table segments. Must be >= 1.
	DirsPerSegment uint32

	// FilesPerSegment is the file slot capacity of newly appended file
	// table segments. Must be >= 1.
	FilesPerSegment uint32

	// FirstSegmentDirs overrides the directory capacity of the first
	// segment at creation time. 0 means no override. Useful when the
	// initial workload size is known up front.
	FirstSegmentDirs uint32

	// FirstSegmentFiles overrides the file capacity of the first segment
	// at creation time. 0 means no override.
	FirstSegmentFiles uint32

	// Logger receives debug-level operational logging. nil disables it.
	Logger *zap.SugaredLogger
}

// DefaultOptions returns the standard configuration: segments of 100+100
// slots, with a small 10+10 first segment.
func DefaultOptions() Options {
	return Options{
		DirsPerSegment:    100,
		FilesPerSegment:   100,
		FirstSegmentDirs:  10,
		FirstSegmentFiles: 10,
	}
}

func (o Options) validate() error {
	if o.DirsPerSegment < 1 {
		return fmt.Errorf("dirs per segment must be >= 1: %w", ErrInvalidOptions)
	}

	if o.FilesPerSegment < 1 {
		return fmt.Errorf("files per segment must be >= 1: %w", ErrInvalidOptions)
	}

	if o.DirsPerSegment > maxSlotsPerSegment || o.FilesPerSegment > maxSlotsPerSegment {
		return fmt.Errorf("segment capacity exceeds %d: %w", maxSlotsPerSegment, ErrInvalidOptions)
	}

	if o.FirstSegmentDirs > maxSlotsPerSegment || o.FirstSegmentFiles > maxSlotsPerSegment {
		return fmt.Errorf("first segment capacity exceeds %d: %w", maxSlotsPerSegment, ErrInvalidOptions)
	}

	return nil
}

// logger returns the configured logger or a no-op one.
func (o Options) logger() *zap.SugaredLogger {
	if o.Logger != nil {
		return o.Logger
	}

	return zap.NewNop().Sugar()
}

// firstSegmentCapacities resolves the first-segment overrides.
func (o Options) firstSegmentCapacities() (dirs, files uint32) {
	dirs, files = o.DirsPerSegment, o.FilesPerSegment

	if o.FirstSegmentDirs != 0 {
		dirs = o.FirstSegmentDirs
	}

	if o.FirstSegmentFiles != 0 {
		files = o.FirstSegmentFiles
	}

	return dirs, files
}

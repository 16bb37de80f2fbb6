// Package limits defines the process-wide resource thresholds (spec.md
// §4.2) that gate parsing and arena growth, and the per-worker recursion
// depth tracker that enforces them during a single parse.
package limits

import "time"

// SecurityLimits is the enumerated set of thresholds a pipeline invocation
// runs under. Zero-value fields are replaced by Defaults() before use.
type SecurityLimits struct {
	MaxSourceSizeBytes int64
	MaxTokenCount       int
	MaxArenaCapacity    int
	MaxNodeDepth        int
	ParsingTimeout      time.Duration
	MaxHeapUsageBytes   int64
}

// Defaults returns the spec.md §4.2 default thresholds. MAX_NODE_DEPTH and
// MAX_PARSE_DEPTH are unified to a single field per the resolved open
// question (100 is the conservative middle of 100/30/200 seen in different
// places in the source material).
func Defaults() SecurityLimits {
	return SecurityLimits{
		MaxSourceSizeBytes: 10 * 1024 * 1024,
		MaxTokenCount:      1_000_000,
		MaxArenaCapacity:   100_000,
		MaxNodeDepth:       100,
		ParsingTimeout:     30 * time.Second,
		MaxHeapUsageBytes:  512 * 1024 * 1024,
	}
}

// WithOverrides returns a copy of l with every non-zero field of o applied
// on top, the way the teacher's config layer merges file-supplied values
// over compiled-in defaults (internal/config.Validator.setSmartDefaults).
func (l SecurityLimits) WithOverrides(o SecurityLimits) SecurityLimits {
	merged := l
	if o.MaxSourceSizeBytes != 0 {
		merged.MaxSourceSizeBytes = o.MaxSourceSizeBytes
	}
	if o.MaxTokenCount != 0 {
		merged.MaxTokenCount = o.MaxTokenCount
	}
	if o.MaxArenaCapacity != 0 {
		merged.MaxArenaCapacity = o.MaxArenaCapacity
	}
	if o.MaxNodeDepth != 0 {
		merged.MaxNodeDepth = o.MaxNodeDepth
	}
	if o.ParsingTimeout != 0 {
		merged.ParsingTimeout = o.ParsingTimeout
	}
	if o.MaxHeapUsageBytes != 0 {
		merged.MaxHeapUsageBytes = o.MaxHeapUsageBytes
	}
	return merged
}

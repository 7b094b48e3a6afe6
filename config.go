package swr

import (
	"encoding/json"
	"io"
	"runtime"
)

// AffinityPolicy selects how a worker thread relates to its allowed CPU
// set.
type AffinityPolicy string

const (
	// AffinityAny lets a worker run on any core in its allowed set.
	AffinityAny AffinityPolicy = "any"

	// AffinityOne pins a worker to exactly one core in its allowed set.
	AffinityOne AffinityPolicy = "one"
)

// Config holds the renderer's external configuration. The only keys the
// core consumes are ThreadCount, AffinityMask, and AffinityPolicy;
// unknown JSON keys are ignored rather than rejected.
type Config struct {
	// ThreadCount is the worker pool size. 0 means auto: min(logicalCPUs, 16).
	ThreadCount uint32 `json:"ThreadCount"`

	// AffinityMask is a bitmask of allowed cores. 0 is invalid and is
	// treated as "all cores".
	AffinityMask uint64 `json:"AffinityMask"`

	// AffinityPolicy is "any" or "one"; any other value (including empty)
	// falls back to AffinityAny.
	AffinityPolicy AffinityPolicy `json:"AffinityPolicy"`
}

// DefaultConfig returns the configuration used when no overrides are
// supplied: auto thread count, all cores allowed, "any" affinity policy.
func DefaultConfig() Config {
	return Config{
		ThreadCount:    0,
		AffinityMask:   ^uint64(0),
		AffinityPolicy: AffinityAny,
	}
}

// normalize fills in defaults for zero/invalid fields: 0 thread count
// means auto, a zero affinity mask means all cores, and an unrecognized
// affinity policy falls back to "any". It never fails: a malformed
// Config degrades to defaults rather than erroring.
func (c Config) normalize() Config {
	out := c
	if out.ThreadCount == 0 {
		n := runtime.NumCPU()
		if n > 16 {
			n = 16
		}
		out.ThreadCount = uint32(n) //nolint:gosec // clamped to [1,16]
	}
	if out.AffinityMask == 0 {
		out.AffinityMask = ^uint64(0)
	}
	if out.AffinityPolicy != AffinityAny && out.AffinityPolicy != AffinityOne {
		out.AffinityPolicy = AffinityAny
	}
	return out
}

// LoadConfig reads a JSON configuration document from r. A parse failure
// is logged as a warning and DefaultConfig is returned instead of an
// error, matching the recoverable "Configuration parse failure" row of
// the error taxonomy: callers that want to detect the failure should
// inspect the log, not a returned error.
func LoadConfig(r io.Reader) Config {
	var c Config
	dec := json.NewDecoder(r)
	if err := dec.Decode(&c); err != nil {
		Logger().Warn("config: failed to parse configuration, using defaults", "error", err)
		return DefaultConfig()
	}
	return c.normalize()
}

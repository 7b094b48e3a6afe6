package swr

// RendererOption configures a Renderer during creation. Use functional
// options to override worker pool sizing and thread-affinity policy
// without exposing Config's zero-value quirks directly.
//
// Example:
//
//	// Default: auto-sized worker pool, all cores, "any" affinity.
//	r := swr.NewRenderer(swr.DefaultConfig())
//
//	// Pin to 8 worker threads with one-core-per-worker affinity.
//	r := swr.NewRendererWithOptions(swr.WithThreadCount(8), swr.WithAffinityPolicy(swr.AffinityOne))
type RendererOption func(*Config)

// WithThreadCount overrides the worker pool size. A count of 0 restores
// the auto-sizing behavior (min(logicalCPUs, 16)).
func WithThreadCount(n uint32) RendererOption {
	return func(c *Config) {
		c.ThreadCount = n
	}
}

// WithAffinityMask overrides the bitmask of cores workers are allowed to
// run on. A mask of 0 is treated as "all cores" by Config.normalize.
func WithAffinityMask(mask uint64) RendererOption {
	return func(c *Config) {
		c.AffinityMask = mask
	}
}

// WithAffinityPolicy overrides how a worker relates to its allowed core
// set: AffinityAny (default) or AffinityOne.
func WithAffinityPolicy(p AffinityPolicy) RendererOption {
	return func(c *Config) {
		c.AffinityPolicy = p
	}
}

// applyOptions folds opts onto a base Config, in order, before
// normalization.
func applyOptions(base Config, opts ...RendererOption) Config {
	for _, opt := range opts {
		opt(&base)
	}
	return base.normalize()
}

// NewRendererWithOptions builds a Renderer from DefaultConfig with opts
// applied on top, the functional-options entry point callers reach for
// instead of hand-assembling a Config.
func NewRendererWithOptions(opts ...RendererOption) *Renderer {
	return NewRenderer(applyOptions(DefaultConfig(), opts...))
}

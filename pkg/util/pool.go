package util

import "runtime"

// GetOptimalPoolSize returns the pool size for CPU-bound parallel work.
//
// Formula: min(max(runtime.NumCPU() * 2, 4), 32)
//
// 2x cores keeps parsers busy while CGO calls block; the floor keeps some
// parallelism on small machines and the cap bounds memory on big ones.
// Used for both the parser pool and the generator's worker count so that
// workers never block waiting for an available parser.
func GetOptimalPoolSize() int {
	size := runtime.NumCPU() * 2
	if size < 4 {
		size = 4
	}
	if size > 32 {
		size = 32
	}
	return size
}

// GetOptimalPoolSizeWithOverride returns override when > 0, otherwise the
// CPU-derived default. The override exists for tests and tuning.
func GetOptimalPoolSizeWithOverride(override int) int {
	if override > 0 {
		return override
	}
	return GetOptimalPoolSize()
}

// Package generator orchestrates schema generation for a component
// library: file discovery, parsing, per-file schema building, caching,
// watch mode, and combined JSON output.
package generator

// Config configures a generation run.
type Config struct {
	// Include glob patterns for spec file matching.
	Include []string
	// Exclude glob patterns.
	Exclude []string
}

// DefaultConfig returns the default configuration. By convention native
// component specs live in files named *NativeComponent.<ext>.
func DefaultConfig() Config {
	return Config{
		Include: []string{
			"**/*NativeComponent.ts",
			"**/*NativeComponent.tsx",
			"**/*NativeComponent.js",
			"**/*NativeComponent.jsx",
		},
		Exclude: []string{
			"node_modules/**",
			".git/**",
			"dist/**",
			"build/**",
			"coverage/**",
			"out/**",
			"**/*.test.*",
			"**/*.spec.*",
			"**/*.stories.*",
			"__tests__/**",
			"**/__tests__/**",
			"**/__mocks__/**",
		},
	}
}

// Stats tracks generation performance and failure counts.
type Stats struct {
	FilesDiscovered int
	FilesBuilt      int
	FilesFailed     int
	CacheHits       int
	DiscoveryTimeMs int64
	BuildTimeMs     int64
	TotalTimeMs     int64
}

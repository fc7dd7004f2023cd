package maven

import "time"

// Config holds configuration for the repository client.
type Config struct {
	// SearchURL is the search endpoint queried for latest versions.
	SearchURL string `mapstructure:"search_url" default:"https://search.maven.org/solrsearch/select"`
	// RepoURL is the root of the artifact download layout.
	RepoURL string `mapstructure:"repo_url" default:"https://repo1.maven.org/maven2"`
	// Timeout bounds each version lookup.
	Timeout time.Duration `mapstructure:"timeout" default:"10s"`
	// DownloadTimeout bounds each archive download.
	DownloadTimeout time.Duration `mapstructure:"download_timeout" default:"5m"`
	// RequestsPerSecond throttles search queries. Zero disables throttling.
	RequestsPerSecond float64 `mapstructure:"requests_per_second" default:"5"`
	// CacheTTL is how long a resolved latest version is reused. Zero disables caching.
	CacheTTL time.Duration `mapstructure:"cache_ttl" default:"10m"`
	// UserAgent is sent with every request.
	UserAgent string `mapstructure:"user_agent" default:"dependency-manager/1.0"`
}

// DefaultConfig returns the configuration used when no overrides are given.
func DefaultConfig() Config {
	return Config{
		SearchURL:         "https://search.maven.org/solrsearch/select",
		RepoURL:           "https://repo1.maven.org/maven2",
		Timeout:           10 * time.Second,
		DownloadTimeout:   5 * time.Minute,
		RequestsPerSecond: 5,
		CacheTTL:          10 * time.Minute,
		UserAgent:         "dependency-manager/1.0",
	}
}

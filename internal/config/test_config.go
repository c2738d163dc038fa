package config

import "time"

// TestConfig returns a config suitable for testing
func TestConfig() *Config {
	d := defaultConfig()
	return &Config{
		Catalog: CatalogConfig{
			BaseURL:        "http://127.0.0.1:0/3",
			Token:          "test-token",
			ImageBaseURL:   "https://image.tmdb.org/t/p/w500",
			MoviePageURL:   "https://www.themoviedb.org/movie",
			FallbackPoster: "no-movie.png",
			HTTPTimeout:    5 * time.Second,
			UserAgent:      "reel-test/1.0",
		},
		Trends: TrendsConfig{Limit: 5},
		Database: DatabaseConfig{
			Path:    ":memory:",
			Timeout: 1 * time.Second,
		},
		Search: SearchConfig{
			DebounceMillis:  500,
			MaxQueryLength:  256,
			SuggestionLimit: 3,
		},
		UI:    d.UI,
		Media: d.Media,
		Keys:  d.Keys,
		Log:   LogConfig{Level: "off"},
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Trends   TrendsConfig   `mapstructure:"trends"`
	Database DatabaseConfig `mapstructure:"database"`
	Search   SearchConfig   `mapstructure:"search"`
	UI       UIConfig       `mapstructure:"ui"`
	Media    MediaConfig    `mapstructure:"media"`
	Keys     KeyConfig      `mapstructure:"keys"`
	Log      LogConfig      `mapstructure:"log"`
}

type CatalogConfig struct {
	BaseURL        string `mapstructure:"base_url" validate:"required,url"`
	Token          string `mapstructure:"token"`
	ImageBaseURL   string `mapstructure:"image_base_url" validate:"required,url"`
	MoviePageURL   string `mapstructure:"movie_page_url" validate:"required,url"`
	FallbackPoster string `mapstructure:"fallback_poster" validate:"required"`
	// HTTPTimeout of zero leaves requests unbounded.
	HTTPTimeout time.Duration `mapstructure:"http_timeout" validate:"min=0"`
	UserAgent   string        `mapstructure:"user_agent"`
}

type TrendsConfig struct {
	Limit int `mapstructure:"limit" validate:"min=1,max=100"`
}

type DatabaseConfig struct {
	Path        string        `mapstructure:"path" validate:"required"`
	Timeout     time.Duration `mapstructure:"timeout"`
	SearchIndex string        `mapstructure:"search_index"`
}

type SearchConfig struct {
	DebounceMillis  int  `mapstructure:"debounce_ms" validate:"min=0,max=10000"`
	MaxQueryLength  int  `mapstructure:"max_query_length" validate:"min=1"`
	DiscardStale    bool `mapstructure:"discard_stale"`
	SuggestionLimit int  `mapstructure:"suggestion_limit" validate:"min=0"`
}

type UIConfig struct {
	Colors UIColors     `mapstructure:"colors"`
	Detail DetailConfig `mapstructure:"detail"`
}

type UIColors struct {
	Primary    string `mapstructure:"primary"`
	Secondary  string `mapstructure:"secondary"`
	Accent     string `mapstructure:"accent"`
	Background string `mapstructure:"background"`
	Surface    string `mapstructure:"surface"`
	Text       string `mapstructure:"text"`
	Muted      string `mapstructure:"muted"`
	Error      string `mapstructure:"error"`
	Success    string `mapstructure:"success"`
}

type DetailConfig struct {
	WordWrapMaxWidth int `mapstructure:"word_wrap_max_width"`
	WordWrapMinWidth int `mapstructure:"word_wrap_min_width"`
	CacheSize        int `mapstructure:"cache_size"`
}

type MediaConfig struct {
	Darwin        MediaPlayers `mapstructure:"darwin"`
	Linux         MediaPlayers `mapstructure:"linux"`
	Windows       MediaPlayers `mapstructure:"windows"`
	DefaultOpener string       `mapstructure:"default_opener"`
}

type MediaPlayers struct {
	Image []string `mapstructure:"image"`
	Web   []string `mapstructure:"web"`
}

type KeyConfig struct {
	Modifier string      `mapstructure:"modifier"`
	Bindings KeyBindings `mapstructure:"bindings"`
}

type KeyBindings struct {
	Quit       string `mapstructure:"quit"`
	Trending   string `mapstructure:"trending"`
	OpenPoster string `mapstructure:"open_poster"`
	OpenPage   string `mapstructure:"open_page"`
	Focus      string `mapstructure:"focus"`
	Back       string `mapstructure:"back"`
	Help       string `mapstructure:"help"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error off DEBUG INFO WARN WARNING ERROR OFF"`
	File  string `mapstructure:"file"`
}

func defaultConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	dbPath := filepath.Join(homeDir, ".reel", "reel.db")
	searchIndexPath := filepath.Join(homeDir, ".reel", "suggest.bleve")

	return &Config{
		Catalog: CatalogConfig{
			BaseURL:        "https://api.themoviedb.org/3",
			ImageBaseURL:   "https://image.tmdb.org/t/p/w500",
			MoviePageURL:   "https://www.themoviedb.org/movie",
			FallbackPoster: "no-movie.png",
			HTTPTimeout:    0,
			UserAgent:      "reel/1.0 (https://github.com/pders01/reel)",
		},
		Trends: TrendsConfig{
			Limit: 5,
		},
		Database: DatabaseConfig{
			Path:        dbPath,
			Timeout:     1 * time.Second,
			SearchIndex: searchIndexPath,
		},
		Search: SearchConfig{
			DebounceMillis:  500,
			MaxQueryLength:  256,
			DiscardStale:    false,
			SuggestionLimit: 3,
		},
		UI: UIConfig{
			Colors: UIColors{
				Primary:    "#AB8BFF",
				Secondary:  "#D6C7FF",
				Accent:     "#CECEFB",
				Background: "#030014",
				Surface:    "#0F0D23",
				Text:       "#EAEAEA",
				Muted:      "#A8B5DB",
				Error:      "#F87171",
				Success:    "#4ADE80",
			},
			Detail: DetailConfig{
				WordWrapMaxWidth: 100,
				WordWrapMinWidth: 40,
				CacheSize:        64,
			},
		},
		Media: MediaConfig{
			Darwin: MediaPlayers{
				Image: []string{"open"},
				Web:   []string{"open"},
			},
			Linux: MediaPlayers{
				Image: []string{"sxiv", "feh", "eog", "xdg-open"},
				Web:   []string{"xdg-open"},
			},
			Windows: MediaPlayers{
				Image: []string{"start"},
				Web:   []string{"start"},
			},
			DefaultOpener: getDefaultOpener(),
		},
		Keys: KeyConfig{
			Modifier: "ctrl",
			Bindings: KeyBindings{
				Quit:       "q",
				Trending:   "t",
				OpenPoster: "o",
				OpenPage:   "w",
				Focus:      "tab",
				Back:       "esc",
				Help:       "?",
			},
		},
		Log: LogConfig{
			Level: "off",
		},
	}
}

func getDefaultOpener() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "linux":
		return "xdg-open"
	case "windows":
		return "start"
	default:
		return "open"
	}
}

// setDefaults registers every leaf key so that env overrides and partial
// config files merge with the defaults instead of replacing whole sections.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("catalog.base_url", cfg.Catalog.BaseURL)
	v.SetDefault("catalog.token", cfg.Catalog.Token)
	v.SetDefault("catalog.image_base_url", cfg.Catalog.ImageBaseURL)
	v.SetDefault("catalog.movie_page_url", cfg.Catalog.MoviePageURL)
	v.SetDefault("catalog.fallback_poster", cfg.Catalog.FallbackPoster)
	v.SetDefault("catalog.http_timeout", cfg.Catalog.HTTPTimeout)
	v.SetDefault("catalog.user_agent", cfg.Catalog.UserAgent)

	v.SetDefault("trends.limit", cfg.Trends.Limit)

	v.SetDefault("database.path", cfg.Database.Path)
	v.SetDefault("database.timeout", cfg.Database.Timeout)
	v.SetDefault("database.search_index", cfg.Database.SearchIndex)

	v.SetDefault("search.debounce_ms", cfg.Search.DebounceMillis)
	v.SetDefault("search.max_query_length", cfg.Search.MaxQueryLength)
	v.SetDefault("search.discard_stale", cfg.Search.DiscardStale)
	v.SetDefault("search.suggestion_limit", cfg.Search.SuggestionLimit)

	v.SetDefault("ui.colors.primary", cfg.UI.Colors.Primary)
	v.SetDefault("ui.colors.secondary", cfg.UI.Colors.Secondary)
	v.SetDefault("ui.colors.accent", cfg.UI.Colors.Accent)
	v.SetDefault("ui.colors.background", cfg.UI.Colors.Background)
	v.SetDefault("ui.colors.surface", cfg.UI.Colors.Surface)
	v.SetDefault("ui.colors.text", cfg.UI.Colors.Text)
	v.SetDefault("ui.colors.muted", cfg.UI.Colors.Muted)
	v.SetDefault("ui.colors.error", cfg.UI.Colors.Error)
	v.SetDefault("ui.colors.success", cfg.UI.Colors.Success)
	v.SetDefault("ui.detail.word_wrap_max_width", cfg.UI.Detail.WordWrapMaxWidth)
	v.SetDefault("ui.detail.word_wrap_min_width", cfg.UI.Detail.WordWrapMinWidth)
	v.SetDefault("ui.detail.cache_size", cfg.UI.Detail.CacheSize)

	v.SetDefault("media.darwin.image", cfg.Media.Darwin.Image)
	v.SetDefault("media.darwin.web", cfg.Media.Darwin.Web)
	v.SetDefault("media.linux.image", cfg.Media.Linux.Image)
	v.SetDefault("media.linux.web", cfg.Media.Linux.Web)
	v.SetDefault("media.windows.image", cfg.Media.Windows.Image)
	v.SetDefault("media.windows.web", cfg.Media.Windows.Web)
	v.SetDefault("media.default_opener", cfg.Media.DefaultOpener)

	v.SetDefault("keys.modifier", cfg.Keys.Modifier)
	v.SetDefault("keys.bindings.quit", cfg.Keys.Bindings.Quit)
	v.SetDefault("keys.bindings.trending", cfg.Keys.Bindings.Trending)
	v.SetDefault("keys.bindings.open_poster", cfg.Keys.Bindings.OpenPoster)
	v.SetDefault("keys.bindings.open_page", cfg.Keys.Bindings.OpenPage)
	v.SetDefault("keys.bindings.focus", cfg.Keys.Bindings.Focus)
	v.SetDefault("keys.bindings.back", cfg.Keys.Bindings.Back)
	v.SetDefault("keys.bindings.help", cfg.Keys.Bindings.Help)

	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.file", cfg.Log.File)
}

// Load reads configuration from configPath, or from the default locations
// when configPath is empty. A .env file in the working directory is applied
// to the process environment first.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v, defaultConfig())

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir := filepath.Join(homeDir, ".config", "reel")

		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("REEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("catalog.token", "REEL_CATALOG_TOKEN", "TMDB_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding token env: %w", err)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	expandPaths(&config)

	return &config, nil
}

var validate = validator.New()

// Validate checks the loaded values. The catalog token is checked separately
// by RequireToken because offline commands do not need it.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config value for %s: failed %q", fe.Namespace(), fe.Tag())
		}
		return fmt.Errorf("validating config: %w", err)
	}
	return nil
}

// RequireToken reports an error when no catalog API token is configured.
func (c *Config) RequireToken() error {
	if strings.TrimSpace(c.Catalog.Token) == "" {
		return fmt.Errorf("no catalog token configured: set REEL_CATALOG_TOKEN or catalog.token")
	}
	return nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}

	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}

	return path
}

func expandPaths(cfg *Config) {
	cfg.Database.Path = expandPath(cfg.Database.Path)
	cfg.Database.SearchIndex = expandPath(cfg.Database.SearchIndex)
	cfg.Log.File = expandPath(cfg.Log.File)
}

// Save writes config as TOML. The catalog token is never persisted.
func Save(config *Config, path string) error {
	v := viper.New()

	catalogCfg := map[string]interface{}{
		"base_url":        config.Catalog.BaseURL,
		"image_base_url":  config.Catalog.ImageBaseURL,
		"movie_page_url":  config.Catalog.MoviePageURL,
		"fallback_poster": config.Catalog.FallbackPoster,
		"http_timeout":    config.Catalog.HTTPTimeout.String(),
		"user_agent":      config.Catalog.UserAgent,
	}

	dbCfg := map[string]interface{}{
		"path":         config.Database.Path,
		"timeout":      config.Database.Timeout.String(),
		"search_index": config.Database.SearchIndex,
	}

	searchCfg := map[string]interface{}{
		"debounce_ms":      config.Search.DebounceMillis,
		"max_query_length": config.Search.MaxQueryLength,
		"discard_stale":    config.Search.DiscardStale,
		"suggestion_limit": config.Search.SuggestionLimit,
	}

	v.Set("catalog", catalogCfg)
	v.Set("trends", map[string]interface{}{"limit": config.Trends.Limit})
	v.Set("database", dbCfg)
	v.Set("search", searchCfg)
	v.Set("ui", map[string]interface{}{
		"colors": map[string]interface{}{
			"primary":    config.UI.Colors.Primary,
			"secondary":  config.UI.Colors.Secondary,
			"accent":     config.UI.Colors.Accent,
			"background": config.UI.Colors.Background,
			"surface":    config.UI.Colors.Surface,
			"text":       config.UI.Colors.Text,
			"muted":      config.UI.Colors.Muted,
			"error":      config.UI.Colors.Error,
			"success":    config.UI.Colors.Success,
		},
		"detail": map[string]interface{}{
			"word_wrap_max_width": config.UI.Detail.WordWrapMaxWidth,
			"word_wrap_min_width": config.UI.Detail.WordWrapMinWidth,
			"cache_size":          config.UI.Detail.CacheSize,
		},
	})
	v.Set("media", map[string]interface{}{
		"darwin":         playersMap(config.Media.Darwin),
		"linux":          playersMap(config.Media.Linux),
		"windows":        playersMap(config.Media.Windows),
		"default_opener": config.Media.DefaultOpener,
	})
	v.Set("keys", map[string]interface{}{
		"modifier": config.Keys.Modifier,
		"bindings": map[string]interface{}{
			"quit":        config.Keys.Bindings.Quit,
			"trending":    config.Keys.Bindings.Trending,
			"open_poster": config.Keys.Bindings.OpenPoster,
			"open_page":   config.Keys.Bindings.OpenPage,
			"focus":       config.Keys.Bindings.Focus,
			"back":        config.Keys.Bindings.Back,
			"help":        config.Keys.Bindings.Help,
		},
	})
	v.Set("log", map[string]interface{}{"level": config.Log.Level, "file": config.Log.File})

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return v.WriteConfigAs(path)
}

func playersMap(p MediaPlayers) map[string]interface{} {
	return map[string]interface{}{"image": p.Image, "web": p.Web}
}

func GenerateDefaultConfig(path string) error {
	return Save(defaultConfig(), path)
}

package media

import (
	_ "embed"
	"net/url"
	"path"
	"runtime"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

//go:embed media_types.toml
var mediaTypesTOML []byte

type Type int

const (
	TypeUnknown Type = iota
	TypeImage
	TypeWeb
)

func (t Type) String() string {
	switch t {
	case TypeImage:
		return "image"
	case TypeWeb:
		return "web"
	default:
		return "unknown"
	}
}

type TypeConfig struct {
	Extensions  []string `toml:"extensions"`
	URLPatterns []string `toml:"url_patterns"`
}

type TypesConfig struct {
	Image     TypeConfig                `toml:"image"`
	Web       TypeConfig                `toml:"web"`
	Platforms map[string]PlatformConfig `toml:"platforms"`
}

type PlatformConfig struct {
	DefaultOpener string `toml:"default_opener"`
}

type TypeDetector struct {
	config *TypesConfig
}

func NewTypeDetector() (*TypeDetector, error) {
	var cfg TypesConfig
	if _, err := toml.Decode(string(mediaTypesTOML), &cfg); err != nil {
		return nil, err
	}
	return &TypeDetector{config: &cfg}, nil
}

// DetectType classifies target. Anything that is not an http(s) URL is
// unknown; http(s) URLs that are not images are web pages.
func (d *TypeDetector) DetectType(target string) Type {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return TypeUnknown
	}

	lower := strings.ToLower(u.Host + u.Path)
	if matchesPattern(lower, d.config.Web.URLPatterns) {
		return TypeWeb
	}

	ext := strings.TrimPrefix(strings.ToLower(path.Ext(u.Path)), ".")
	if ext != "" && slices.Contains(d.config.Image.Extensions, ext) {
		return TypeImage
	}
	if matchesPattern(lower, d.config.Image.URLPatterns) {
		return TypeImage
	}
	return TypeWeb
}

func (d *TypeDetector) GetDefaultOpener() string {
	if pc, ok := d.config.Platforms[runtime.GOOS]; ok && pc.DefaultOpener != "" {
		return pc.DefaultOpener
	}
	if fallback, ok := d.config.Platforms["fallback"]; ok && fallback.DefaultOpener != "" {
		return fallback.DefaultOpener
	}
	return "open"
}

func matchesPattern(s string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FilePathValidator provides file path validation and sanitization for the
// database, suggestion index and log locations.
type FilePathValidator struct {
	// AllowedBaseDirs restricts file operations to specific base directories
	AllowedBaseDirs []string
	// AllowHomeExpansion determines if tilde expansion is permitted
	AllowHomeExpansion bool
	// AllowRelativePaths determines if relative paths are permitted
	AllowRelativePaths bool
	// MaxPathLength is the maximum allowed path length
	MaxPathLength int
}

// NewFilePathValidator creates a new validator with secure defaults
func NewFilePathValidator() *FilePathValidator {
	homeDir, _ := os.UserHomeDir()
	return &FilePathValidator{
		AllowedBaseDirs: []string{
			filepath.Join(homeDir, ".reel"),
			filepath.Join(homeDir, ".config", "reel"),
			os.TempDir(),
		},
		AllowHomeExpansion: true,
		AllowRelativePaths: false,
		MaxPathLength:      4096,
	}
}

// NewPermissiveFilePathValidator accepts any directory. Used for paths the
// user passed explicitly on the command line.
func NewPermissiveFilePathValidator() *FilePathValidator {
	return &FilePathValidator{
		AllowedBaseDirs:    []string{},
		AllowHomeExpansion: true,
		AllowRelativePaths: true,
		MaxPathLength:      4096,
	}
}

// ValidateAndSanitize validates and normalizes a file path
func (v *FilePathValidator) ValidateAndSanitize(path string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("path cannot be empty")
	}

	if len(path) > v.MaxPathLength {
		return "", fmt.Errorf("path too long (max %d characters)", v.MaxPathLength)
	}

	if err := validateCharacters(path); err != nil {
		return "", err
	}

	normalizedPath, err := v.normalizePath(path)
	if err != nil {
		return "", fmt.Errorf("path normalization failed: %w", err)
	}

	if err := v.validateBaseDirs(normalizedPath); err != nil {
		return "", err
	}

	return normalizedPath, nil
}

func validateCharacters(path string) error {
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("path contains null bytes")
	}

	for _, char := range path {
		if char < 32 {
			return fmt.Errorf("path contains control characters")
		}
	}

	for _, component := range strings.FieldsFunc(path, func(r rune) bool { return r == '/' || r == '\\' }) {
		if component == ".." {
			return fmt.Errorf("directory traversal not allowed")
		}
	}

	return nil
}

func (v *FilePathValidator) normalizePath(path string) (string, error) {
	if len(path) >= 2 && path[:2] == "~/" {
		if !v.AllowHomeExpansion {
			return "", fmt.Errorf("tilde expansion not allowed")
		}
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	} else if strings.HasPrefix(path, "~") {
		return "", fmt.Errorf("invalid tilde usage")
	}

	if !filepath.IsAbs(path) {
		if !v.AllowRelativePaths {
			return "", fmt.Errorf("relative paths not allowed: %s", path)
		}
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("cannot make path absolute: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// validateBaseDirs ensures the path is within allowed base directories
func (v *FilePathValidator) validateBaseDirs(path string) error {
	if len(v.AllowedBaseDirs) == 0 {
		return nil
	}

	for _, baseDir := range v.AllowedBaseDirs {
		absBaseDir, err := filepath.Abs(baseDir)
		if err != nil {
			continue
		}

		relPath, err := filepath.Rel(absBaseDir, path)
		if err != nil {
			continue
		}

		if relPath != ".." && !strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
			return nil
		}
	}

	return fmt.Errorf("path not within allowed directories: %v", v.AllowedBaseDirs)
}

// ValidateDirectory ensures a directory path is safe and creates it if necessary
func (v *FilePathValidator) ValidateDirectory(path string, createIfNotExist bool) (string, error) {
	validatedPath, err := v.ValidateAndSanitize(path)
	if err != nil {
		return "", err
	}

	info, err := os.Stat(validatedPath)
	switch {
	case err == nil:
		if !info.IsDir() {
			return "", fmt.Errorf("path exists but is not a directory: %s", validatedPath)
		}
	case os.IsNotExist(err):
		if createIfNotExist {
			if mkErr := os.MkdirAll(validatedPath, 0o755); mkErr != nil {
				return "", fmt.Errorf("failed to create directory: %w", mkErr)
			}
		}
	default:
		return "", fmt.Errorf("checking directory: %w", err)
	}

	return validatedPath, nil
}

// ValidateFile ensures a file path is safe for read/write operations
func (v *FilePathValidator) ValidateFile(path string) (string, error) {
	validatedPath, err := v.ValidateAndSanitize(path)
	if err != nil {
		return "", err
	}

	if info, err := os.Stat(validatedPath); err == nil && info.IsDir() {
		return "", fmt.Errorf("path is a directory, not a file: %s", validatedPath)
	}

	return validatedPath, nil
}

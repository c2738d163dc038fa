package validation

import (
	"os"
	"path/filepath"
)

// PathHandler resolves the on-disk locations reel writes to.
type PathHandler struct {
	validator *FilePathValidator
}

func NewSecurePathHandler() *PathHandler {
	return &PathHandler{validator: NewFilePathValidator()}
}

func NewPermissivePathHandler() *PathHandler {
	return &PathHandler{validator: NewPermissiveFilePathValidator()}
}

func defaultPath(parts ...string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(append([]string{homeDir}, parts...)...), nil
}

// DatabasePath validates userPath, or the default ~/.reel/reel.db, and
// creates its parent directory.
func (ph *PathHandler) DatabasePath(userPath string) (string, error) {
	return ph.fileWithParent(userPath, ".reel", "reel.db")
}

// LogPath validates userPath, or the default ~/.reel/reel.log, and creates
// its parent directory.
func (ph *PathHandler) LogPath(userPath string) (string, error) {
	return ph.fileWithParent(userPath, ".reel", "reel.log")
}

// IndexPath validates the suggestion index directory. The directory itself
// is left for bleve to create.
func (ph *PathHandler) IndexPath(userPath string) (string, error) {
	if userPath == "" {
		p, err := defaultPath(".reel", "suggest.bleve")
		if err != nil {
			return "", err
		}
		userPath = p
	}

	p, err := ph.validator.ValidateDirectory(userPath, false)
	if err != nil {
		return "", err
	}
	if _, err := ph.validator.ValidateDirectory(filepath.Dir(p), true); err != nil {
		return "", err
	}
	return p, nil
}

// ConfigPath validates userPath or the default ~/.config/reel/config.toml.
func (ph *PathHandler) ConfigPath(userPath string) (string, error) {
	if userPath == "" {
		p, err := defaultPath(".config", "reel", "config.toml")
		if err != nil {
			return "", err
		}
		userPath = p
	}
	return ph.validator.ValidateFile(userPath)
}

func (ph *PathHandler) fileWithParent(userPath string, defaults ...string) (string, error) {
	if userPath == "" {
		p, err := defaultPath(defaults...)
		if err != nil {
			return "", err
		}
		userPath = p
	}

	p, err := ph.validator.ValidateFile(userPath)
	if err != nil {
		return "", err
	}
	if _, err := ph.validator.ValidateDirectory(filepath.Dir(p), true); err != nil {
		return "", err
	}
	return p, nil
}

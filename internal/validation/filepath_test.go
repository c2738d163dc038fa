package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePathValidator_ValidateAndSanitize(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	v := NewFilePathValidator()

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  string
	}{
		{name: "reel dir", input: filepath.Join(home, ".reel", "reel.db"), expected: filepath.Join(home, ".reel", "reel.db")},
		{name: "tilde", input: "~/.reel/reel.db", expected: filepath.Join(home, ".reel", "reel.db")},
		{name: "config dir", input: "~/.config/reel/config.toml", expected: filepath.Join(home, ".config", "reel", "config.toml")},
		{name: "empty", input: "", wantErr: "cannot be empty"},
		{name: "null byte", input: "~/.reel/a\x00b", wantErr: "null bytes"},
		{name: "control char", input: "~/.reel/a\nb", wantErr: "control characters"},
		{name: "traversal", input: "~/.reel/../.ssh/id_rsa", wantErr: "traversal"},
		{name: "bad tilde", input: "~root/.reel", wantErr: "tilde"},
		{name: "relative", input: "reel.db", wantErr: "relative"},
		{name: "outside allowed", input: "/etc/reel.db", wantErr: "not within allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateAndSanitize(tt.input)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFilePathValidator_TooLong(t *testing.T) {
	v := NewFilePathValidator()
	_, err := v.ValidateAndSanitize("/" + strings.Repeat("a", 5000))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too long")
}

func TestPermissiveFilePathValidator(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	v := NewPermissiveFilePathValidator()

	got, err := v.ValidateAndSanitize("local.db")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "local.db", filepath.Base(got))

	_, err = v.ValidateAndSanitize("../escape.db")
	assert.Error(t, err, "traversal is rejected even when permissive")
}

func TestFilePathValidator_ValidateDirectory(t *testing.T) {
	v := NewPermissiveFilePathValidator()
	root := t.TempDir()

	target := filepath.Join(root, "a", "b")
	got, err := v.ValidateDirectory(target, false)
	require.NoError(t, err)
	assert.Equal(t, target, got)
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr), "directory must not be created")

	_, err = v.ValidateDirectory(target, true)
	require.NoError(t, err)
	info, err := os.Stat(target)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	file := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(file, nil, 0o600))
	_, err = v.ValidateDirectory(file, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestFilePathValidator_ValidateFile(t *testing.T) {
	v := NewPermissiveFilePathValidator()
	root := t.TempDir()

	_, err := v.ValidateFile(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")

	got, err := v.ValidateFile(filepath.Join(root, "new.db"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "new.db"), got)
}

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointValidator_ValidateAndNormalize(t *testing.T) {
	v := NewEndpointValidator()

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  string
	}{
		{name: "catalog base", input: "https://api.themoviedb.org/3", expected: "https://api.themoviedb.org/3"},
		{name: "trailing slash trimmed", input: "https://api.themoviedb.org/3/", expected: "https://api.themoviedb.org/3"},
		{name: "scheme added", input: "api.themoviedb.org/3", expected: "https://api.themoviedb.org/3"},
		{name: "surrounding space", input: "  https://image.tmdb.org/t/p/w500  ", expected: "https://image.tmdb.org/t/p/w500"},
		{name: "empty", input: "", wantErr: "cannot be empty"},
		{name: "bad scheme", input: "ftp://api.themoviedb.org", wantErr: "http or https"},
		{name: "javascript", input: "javascript://example.org", wantErr: "http or https"},
		{name: "quote", input: "https://x.org/\"", wantErr: "invalid characters"},
		{name: "localhost", input: "http://localhost:8080/3", wantErr: "localhost"},
		{name: "loopback ip", input: "http://127.0.0.1/3", wantErr: "localhost"},
		{name: "private ip", input: "http://192.168.1.10/3", wantErr: "private"},
		{name: "traversal", input: "https://api.themoviedb.org/3/../admin", wantErr: "traversal"},
		{name: "unroutable", input: "http://0.0.0.0/3", wantErr: "unroutable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := v.ValidateAndNormalize(tt.input)
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

func TestEndpointValidator_TooLong(t *testing.T) {
	v := NewEndpointValidator()
	_, err := v.ValidateAndNormalize("https://x.org/" + strings.Repeat("a", 2100))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too long")
}

func TestPermissiveEndpointValidator(t *testing.T) {
	v := NewPermissiveEndpointValidator()

	for _, input := range []string{"http://127.0.0.1:54321/3", "http://localhost/3", "http://10.0.0.5"} {
		_, err := v.ValidateAndNormalize(input)
		assert.NoError(t, err, input)
	}
}

func TestIsWebURL(t *testing.T) {
	assert.True(t, IsWebURL("https://image.tmdb.org/t/p/w500/x.jpg"))
	assert.True(t, IsWebURL("http://www.themoviedb.org/movie/1"))
	assert.False(t, IsWebURL("no-movie.png"))
	assert.False(t, IsWebURL("/no-movie.png"))
	assert.False(t, IsWebURL("file:///etc/passwd"))
	assert.False(t, IsWebURL(""))
}

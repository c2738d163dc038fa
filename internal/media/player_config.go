package media

import (
	_ "embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

//go:embed players.toml
var playersTOML []byte

// PlayerDefinition defines how a viewer should be invoked
type PlayerDefinition struct {
	Description string   `toml:"description"`
	Platforms   []string `toml:"platforms"`
	// Command replaces the player name as the executable, for shell
	// builtins such as Windows start.
	Command string     `toml:"command,omitempty"`
	Image   *ArgConfig `toml:"image,omitempty"`
	Web     *ArgConfig `toml:"web,omitempty"`
}

// ArgConfig holds the arguments placed before the target
type ArgConfig struct {
	Args        []string `toml:"args,omitempty"`
	ArgsDarwin  []string `toml:"args_darwin,omitempty"`
	ArgsLinux   []string `toml:"args_linux,omitempty"`
	ArgsWindows []string `toml:"args_windows,omitempty"`
}

// PlayersConfig holds all player definitions
type PlayersConfig struct {
	Players map[string]PlayerDefinition `toml:"players"`
}

// PlayerRegistry manages player definitions
type PlayerRegistry struct {
	players map[string]PlayerDefinition
	goos    string
}

// NewPlayerRegistry creates a registry from the embedded TOML merged with
// any user definitions.
func NewPlayerRegistry() (*PlayerRegistry, error) {
	var cfg PlayersConfig
	if err := toml.Unmarshal(playersTOML, &cfg); err != nil {
		return nil, fmt.Errorf("parsing players.toml: %w", err)
	}
	if cfg.Players == nil {
		cfg.Players = make(map[string]PlayerDefinition)
	}

	registry := &PlayerRegistry{players: cfg.Players, goos: runtime.GOOS}
	registry.loadUserConfig()
	return registry, nil
}

func (r *PlayerRegistry) loadUserConfig() {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "reel", "players.toml"))
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		if err := r.Merge(data); err != nil {
			continue
		}
	}
}

// Merge overlays definitions from TOML data onto the registry.
func (r *PlayerRegistry) Merge(data []byte) error {
	var user PlayersConfig
	if err := toml.Unmarshal(data, &user); err != nil {
		return fmt.Errorf("parsing player definitions: %w", err)
	}
	for name, def := range user.Players {
		r.players[name] = def
	}
	return nil
}

// Has reports whether name has a definition.
func (r *PlayerRegistry) Has(name string) bool {
	_, ok := r.players[name]
	return ok
}

// GetCommand builds the command for a specific player and target type
func (r *PlayerRegistry) GetCommand(playerName string, kind Type, target string) (*exec.Cmd, error) {
	player, exists := r.players[playerName]
	if !exists {
		return exec.Command(playerName, target), nil
	}

	if !slices.Contains(player.Platforms, r.goos) {
		return nil, fmt.Errorf("%s not supported on %s", playerName, r.goos)
	}

	var ac *ArgConfig
	switch kind {
	case TypeImage:
		ac = player.Image
	case TypeWeb:
		ac = player.Web
	}
	if ac == nil {
		return nil, fmt.Errorf("%s cannot open %s targets", playerName, kind)
	}

	bin := playerName
	if player.Command != "" {
		bin = player.Command
	}

	args := append(append([]string{}, r.getArgs(ac)...), target)
	return exec.Command(bin, args...), nil
}

func (r *PlayerRegistry) getArgs(ac *ArgConfig) []string {
	switch r.goos {
	case "darwin":
		if len(ac.ArgsDarwin) > 0 {
			return ac.ArgsDarwin
		}
	case "linux":
		if len(ac.ArgsLinux) > 0 {
			return ac.ArgsLinux
		}
	case "windows":
		if len(ac.ArgsWindows) > 0 {
			return ac.ArgsWindows
		}
	}
	return ac.Args
}

// Package media opens posters and movie pages in external applications.
package media

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strconv"
	"strings"

	"github.com/pders01/reel/internal/config"
	"github.com/pders01/reel/internal/debuglog"
)

// ErrNotOpenable is returned for targets that are not http(s) URLs, such as
// the fallback poster asset.
var ErrNotOpenable = errors.New("nothing to open")

var lookPath = exec.LookPath

type Launcher struct {
	imageViewer   string
	webOpener     string
	defaultOpener string
	pageBaseURL   string
	registry      *PlayerRegistry
	detector      *TypeDetector
	start         func(*exec.Cmd) error
}

func NewLauncher(cfg *config.Config) *Launcher {
	registry, err := NewPlayerRegistry()
	if err != nil {
		debuglog.Warnf("player definitions unavailable: %v", err)
		registry = &PlayerRegistry{players: make(map[string]PlayerDefinition), goos: runtime.GOOS}
	}

	detector, err := NewTypeDetector()
	if err != nil {
		debuglog.Warnf("media type table unavailable: %v", err)
		detector = &TypeDetector{config: &TypesConfig{}}
	}

	defaultOpener := cfg.Media.DefaultOpener
	if defaultOpener == "" {
		defaultOpener = detector.GetDefaultOpener()
	}

	var players config.MediaPlayers
	switch runtime.GOOS {
	case "darwin":
		players = cfg.Media.Darwin
	case "windows":
		players = cfg.Media.Windows
	default:
		players = cfg.Media.Linux
	}

	l := &Launcher{
		defaultOpener: defaultOpener,
		pageBaseURL:   strings.TrimRight(cfg.Catalog.MoviePageURL, "/"),
		registry:      registry,
		detector:      detector,
		start:         startDetached,
	}
	l.imageViewer = l.findCommand(players.Image...)
	l.webOpener = l.findCommand(players.Web...)
	if l.imageViewer == "" {
		l.imageViewer = defaultOpener
	}
	if l.webOpener == "" {
		l.webOpener = defaultOpener
	}
	return l
}

// findCommand returns the first candidate that is installed or that the
// registry maps to another executable.
func (l *Launcher) findCommand(candidates ...string) string {
	for _, name := range candidates {
		bin := name
		if def, ok := l.registry.players[name]; ok && def.Command != "" {
			bin = def.Command
		}
		if _, err := lookPath(bin); err == nil {
			return name
		}
	}
	return ""
}

// PageURL is the catalog web page of a movie.
func (l *Launcher) PageURL(movieID int) string {
	return l.pageBaseURL + "/" + strconv.Itoa(movieID)
}

// Command builds, without starting, the command that would open target.
func (l *Launcher) Command(target string) (*exec.Cmd, error) {
	kind := l.detector.DetectType(target)

	var player string
	switch kind {
	case TypeImage:
		player = l.imageViewer
	case TypeWeb:
		player = l.webOpener
	default:
		return nil, fmt.Errorf("%w: %q", ErrNotOpenable, target)
	}
	if player == "" {
		return nil, fmt.Errorf("no application found to open %s targets", kind)
	}

	cmd, err := l.registry.GetCommand(player, kind, target)
	if err != nil {
		debuglog.Debugf("falling back to plain %s for %s: %v", player, target, err)
		cmd = exec.Command(player, target)
	}
	return cmd, nil
}

// Open launches the viewer for target and returns once it has started.
func (l *Launcher) Open(target string) error {
	cmd, err := l.Command(target)
	if err != nil {
		return err
	}
	if err := l.start(cmd); err != nil {
		return fmt.Errorf("failed to start %s: %w", cmd.Path, err)
	}
	return nil
}

// OpenPage opens the catalog web page of a movie.
func (l *Launcher) OpenPage(movieID int) error {
	return l.Open(l.PageURL(movieID))
}

func startDetached(cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		_ = cmd.Wait()
	}()
	return nil
}

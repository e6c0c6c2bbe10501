package deps

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// Requirement defines an external binary ytdlx relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Path        string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Locator resolves binary names to absolute paths and remembers the answer.
// Overrides take precedence over PATH lookup. A Locator is safe for
// concurrent use; tests build their own instead of sharing one.
type Locator struct {
	mu        sync.Mutex
	overrides map[string]string
	found     map[string]string
	lookPath  func(string) (string, error)
}

// NewLocator returns a Locator. overrides maps a binary name such as "yt-dlp"
// to a configured command or path.
func NewLocator(overrides map[string]string) *Locator {
	cp := make(map[string]string, len(overrides))
	for name, cmd := range overrides {
		if cmd = strings.TrimSpace(cmd); cmd != "" {
			cp[name] = cmd
		}
	}
	return &Locator{overrides: cp, found: map[string]string{}, lookPath: exec.LookPath}
}

// Resolve returns the executable path for name. Only successful lookups are
// memoized so a binary installed later is picked up on the next call.
func (l *Locator) Resolve(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("resolve binary: empty name")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if path, ok := l.found[name]; ok {
		return path, nil
	}
	cmd := name
	if override, ok := l.overrides[name]; ok {
		cmd = override
	}
	path, err := l.lookPath(cmd)
	if err != nil {
		return "", fmt.Errorf("binary %q not found: %w", cmd, err)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if err := unix.Access(path, unix.X_OK); err != nil {
		return "", fmt.Errorf("binary %q is not executable: %w", path, err)
	}
	l.found[name] = path
	return path, nil
}

// Command returns the configured command for name without resolving it.
func (l *Locator) Command(name string) string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if override, ok := l.overrides[name]; ok {
		return override
	}
	return name
}

// Forget drops the memoized path for name.
func (l *Locator) Forget(name string) {
	l.mu.Lock()
	delete(l.found, name)
	l.mu.Unlock()
}

// Check evaluates the provided requirements against the locator.
func (l *Locator) Check(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		status := Status{
			Name:        req.Name,
			Command:     l.Command(strings.TrimSpace(req.Command)),
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if strings.TrimSpace(req.Command) == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		path, err := l.Resolve(req.Command)
		if err != nil {
			status.Detail = err.Error()
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Path = path
		results = append(results, status)
	}
	return results
}

// Standard returns the binaries ytdlx shells out to.
func Standard() []Requirement {
	return []Requirement{
		{Name: "yt-dlp", Command: "yt-dlp", Description: "Extracts video metadata and formats"},
		{Name: "FFmpeg", Command: "ffmpeg", Description: "Transcodes picked streams downstream", Optional: true},
		{Name: "FFprobe", Command: "ffprobe", Description: "Inspects picked streams (ytdlx probe)", Optional: true},
	}
}

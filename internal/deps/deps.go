// Package deps checks for and installs the external tools downloads rely on.
package deps

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrMissingDependencies is returned when a required tool is unavailable.
var ErrMissingDependencies = errors.New("missing dependencies")

// Requirement defines an external dependency the download script relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	// VersionArgs query the version; empty skips the query.
	VersionArgs []string
	// Package is the system package name, PipPackage the pip one when
	// the tool is installable through pip.
	Package    string
	PipPackage string
	// ManualHint lists install commands to show when installation fails.
	ManualHint []string
}

// Status reports the availability of a dependency.
type Status struct {
	Name         string
	Command      string
	Description  string
	Optional     bool
	Available    bool
	Version      string
	Detail       string
	InstalledVia string
}

// DefaultRequirements returns the tools the generated script calls.
func DefaultRequirements() []Requirement {
	return []Requirement{
		{
			Name:        "yt-dlp",
			Command:     "yt-dlp",
			Description: "Searches YouTube and downloads audio",
			VersionArgs: []string{"--version"},
			Package:     "yt-dlp",
			PipPackage:  "yt-dlp",
			ManualHint:  []string{"Arch: sudo pacman -S yt-dlp", "Other: pip install yt-dlp"},
		},
		{
			Name:        "ffmpeg",
			Command:     "ffmpeg",
			Description: "Extracts and converts audio",
			VersionArgs: []string{"-version"},
			Package:     "ffmpeg",
			ManualHint:  []string{"Arch: sudo pacman -S ffmpeg", "Other: use your system package manager"},
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		results = append(results, checkBinary(req))
	}
	return results
}

func checkBinary(req Requirement) Status {
	cmd := strings.TrimSpace(req.Command)
	status := Status{
		Name:        req.Name,
		Command:     cmd,
		Description: strings.TrimSpace(req.Description),
		Optional:    req.Optional,
	}
	if cmd == "" {
		status.Detail = "command not configured"
		return status
	}
	resolved, err := exec.LookPath(cmd)
	if err != nil {
		status.Detail = fmt.Sprintf("binary %q not found", cmd)
		return status
	}
	status.Command = resolved
	status.Available = true
	return status
}

// Missing returns the required dependencies that are unavailable.
func Missing(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}

// ResolvedCommand returns the command path of the available dependency
// called name, or "" when it is absent.
func ResolvedCommand(statuses []Status, name string) string {
	for _, status := range statuses {
		if status.Name == name && status.Available {
			return status.Command
		}
	}
	return ""
}

// MissingError wraps ErrMissingDependencies with the names of missing tools,
// or returns nil when nothing required is missing.
func MissingError(statuses []Status) error {
	missing := Missing(statuses)
	if len(missing) == 0 {
		return nil
	}
	names := make([]string, 0, len(missing))
	for _, status := range missing {
		names = append(names, status.Name)
	}
	return fmt.Errorf("%w: %s", ErrMissingDependencies, strings.Join(names, ", "))
}

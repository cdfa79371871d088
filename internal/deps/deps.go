// Package deps verifies that the external binaries crescendo shells
// out to are installed before a run depends on them.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"crescendo/internal/config"
	"crescendo/internal/services/imdl"
)

// Requirement defines an external dependency crescendo relies on.
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
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// ForConfig returns the requirements implied by cfg. The torrent hash
// checker is optional when hash checking is disabled.
func ForConfig(cfg *config.Config) []Requirement {
	binary := cfg.Verify.ImdlBinary
	if strings.TrimSpace(binary) == "" {
		binary = imdl.DefaultBinary
	}
	return []Requirement{
		{
			Name:        "imdl",
			Command:     binary,
			Description: "torrent descriptor verification",
			Optional:    cfg.Verify.SkipHashCheck,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// MissingRequired filters statuses down to unavailable, non-optional
// dependencies.
func MissingRequired(statuses []Status) []Status {
	var missing []Status
	for _, status := range statuses {
		if !status.Available && !status.Optional {
			missing = append(missing, status)
		}
	}
	return missing
}

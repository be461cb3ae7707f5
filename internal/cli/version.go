// Package cli holds the pieces shared by the wu command line tools:
// version information, logging and configuration.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"
)

// Set at link time, e.g. -ldflags "-X github.com/wu-lang/wu/internal/cli.Version=0.2.0".
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	CommitSHA = "unknown"
)

// VersionInfo describes the running binary.
type VersionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	CommitSHA string `json:"commit_sha"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
	Arch      string `json:"arch"`
}

// GetVersionInfo collects the link-time variables and runtime details.
func GetVersionInfo() *VersionInfo {
	return &VersionInfo{
		Version:   Version,
		BuildDate: BuildDate,
		CommitSHA: CommitSHA,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

func (v *VersionInfo) text(tool string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s v%s\n", tool, v.Version)
	fmt.Fprintf(&sb, "Build Date: %s\n", v.BuildDate)
	if v.CommitSHA != "" && v.CommitSHA != "unknown" {
		fmt.Fprintf(&sb, "Commit: %s\n", v.CommitSHA)
	}
	fmt.Fprintf(&sb, "Go Version: %s\n", v.GoVersion)
	fmt.Fprintf(&sb, "Platform: %s/%s\n", v.Platform, v.Arch)
	return sb.String()
}

// PrintVersion writes the version of tool to w, as text or as a JSON
// object {"tool": ..., "version_info": {...}}.
func PrintVersion(w io.Writer, tool string, jsonOutput bool) error {
	info := GetVersionInfo()

	if !jsonOutput {
		_, err := io.WriteString(w, info.text(tool))
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(struct {
		Tool        string       `json:"tool"`
		VersionInfo *VersionInfo `json:"version_info"`
	}{tool, info}); err != nil {
		return fmt.Errorf("failed to encode version info: %w", err)
	}
	return nil
}

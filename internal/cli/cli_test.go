package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintVersion(&buf, "wu", false); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "wu v"+Version+"\n") {
		t.Errorf("text output = %q", buf.String())
	}

	buf.Reset()
	if err := PrintVersion(&buf, "wu", true); err != nil {
		t.Fatal(err)
	}
	var decoded struct {
		Tool        string      `json:"tool"`
		VersionInfo VersionInfo `json:"version_info"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("JSON output invalid: %v", err)
	}
	if decoded.Tool != "wu" || decoded.VersionInfo.Version != Version {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		name           string
		verbose, debug bool
		want           []string
		skip           []string
	}{
		{"quiet", false, false, []string{"warn-msg", "error-msg"}, []string{"info-msg", "debug-msg"}},
		{"verbose", true, false, []string{"info-msg", "warn-msg"}, []string{"debug-msg"}},
		{"debug", false, true, []string{"debug-msg", "info-msg"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := NewLogger(&buf, "text", tt.verbose, tt.debug)
			l.Debug("debug-msg")
			l.Info("info-msg")
			l.Warn("warn-msg")
			l.Error("error-msg")

			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("missing %q in %q", s, out)
				}
			}
			for _, s := range tt.skip {
				if strings.Contains(out, s) {
					t.Errorf("unexpected %q in %q", s, out)
				}
			}
		})
	}
}

func TestLoggerRunID(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf, "json", false, false)
	l.With("file", "main.wu").Warn("slow")

	var record map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("JSON log invalid: %v", err)
	}
	if record["run_id"] != l.RunID() || len(l.RunID()) != 36 {
		t.Errorf("run_id = %v, want %s", record["run_id"], l.RunID())
	}
	if record["file"] != "main.wu" {
		t.Errorf("file = %v", record["file"])
	}

	other := NewLogger(&buf, "json", false, false)
	if other.RunID() == l.RunID() {
		t.Error("each logger should get a fresh run id")
	}
}

func TestLoadConfigFormats(t *testing.T) {
	files := map[string]string{
		"wu.toml": "verbose = true\ncolor = \"never\"\nmodule_paths = [\"lib\", \"vendor\"]\nprelude = [\"core\"]\n",
		"wu.yaml": "verbose: true\ncolor: never\nmodule_paths: [lib, vendor]\nprelude: [core]\n",
		"wu.json": `{"verbose": true, "color": "never", "module_paths": ["lib", "vendor"], "prelude": ["core"]}`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
				t.Fatal(err)
			}

			cfg, err := LoadConfig(path)
			if err != nil {
				t.Fatalf("LoadConfig failed: %v", err)
			}
			if !cfg.Verbose || cfg.Color != "never" {
				t.Errorf("cfg = %+v", cfg)
			}
			if len(cfg.ModulePaths) != 2 || cfg.ModulePaths[1] != "vendor" {
				t.Errorf("ModulePaths = %v", cfg.ModulePaths)
			}
			if len(cfg.Prelude) != 1 || cfg.Prelude[0] != "core" {
				t.Errorf("Prelude = %v", cfg.Prelude)
			}
			if cfg.LogFormat != "text" {
				t.Errorf("LogFormat default lost: %q", cfg.LogFormat)
			}
		})
	}
}

func TestLoadConfigDefaultsAndErrors(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file should yield defaults: %v", err)
	}
	if cfg.Color != "auto" || len(cfg.ModulePaths) != 1 {
		t.Errorf("defaults = %+v", cfg)
	}

	dir := t.TempDir()
	bad := map[string]string{
		"bad.toml":  "verbose = ",
		"bad.yaml":  "color: sometimes\n",
		"bad.json":  `{"log_format": "xml"}`,
		"wu.config": "verbose = true",
	}
	for name, content := range bad {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Errorf("LoadConfig(%s) should fail", name)
		}
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Debug = true
	cfg.Prelude = []string{"core", "math"}

	for _, name := range []string{"out.toml", "out.yaml", "out.json"} {
		path := filepath.Join(t.TempDir(), name)
		if err := cfg.SaveConfig(path); err != nil {
			t.Fatalf("SaveConfig(%s) failed: %v", name, err)
		}
		loaded, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig(%s) failed: %v", name, err)
		}
		if !loaded.Debug || len(loaded.Prelude) != 2 {
			t.Errorf("%s: loaded = %+v", name, loaded)
		}
	}
}

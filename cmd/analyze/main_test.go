package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/wricardo/monopoly-engine/game/engine"
)

func writeConfig(t *testing.T, config interface{}) string {
	t.Helper()
	data, err := json.Marshal(config)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	path := filepath.Join(t.TempDir(), "test.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestAnalyzeConfig_Valid(t *testing.T) {
	var out bytes.Buffer
	if !analyzeConfig(&out, writeConfig(t, engine.DefaultConfig())) {
		t.Fatalf("Expected classic rules to validate:\n%s", out.String())
	}

	report := out.String()
	for _, want := range []string{"Name: classic", "✅ Valid", "dark_blue", "Housing shortage", "Laps of salary"} {
		if !strings.Contains(report, want) {
			t.Errorf("Expected %q in report:\n%s", want, report)
		}
	}
}

func TestAnalyzeConfig_Invalid(t *testing.T) {
	config := engine.DefaultConfig()
	config.MinPlayers = 1

	var out bytes.Buffer
	if analyzeConfig(&out, writeConfig(t, config)) {
		t.Error("Expected min_players 1 to fail validation")
	}
	if !strings.Contains(out.String(), "min_players") {
		t.Errorf("Expected the validation error in report:\n%s", out.String())
	}
}

func TestAnalyzeConfig_BadFiles(t *testing.T) {
	var out bytes.Buffer
	if analyzeConfig(&out, filepath.Join(t.TempDir(), "missing.json")) {
		t.Error("Expected failure for a missing file")
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	os.WriteFile(path, []byte("{"), 0644)
	out.Reset()
	if analyzeConfig(&out, path) {
		t.Error("Expected failure for broken JSON")
	}
	if !strings.Contains(out.String(), "Error parsing JSON") {
		t.Errorf("Unexpected output %s", out.String())
	}
}

func TestReportGroups_Affordability(t *testing.T) {
	config := engine.DefaultConfig()
	config.StartingCash = 100000
	config.Houses = 1000
	config.Hotels = 1000

	var out bytes.Buffer
	reportGroups(&out, config, engine.NewBoard())

	report := out.String()
	if strings.Contains(report, "shortage") {
		t.Errorf("Expected no shortage with a large bank:\n%s", report)
	}
	if !strings.Contains(report, "Fully developable on starting cash: brown") {
		t.Errorf("Expected every group to be affordable:\n%s", report)
	}
}

func TestBundledConfigs(t *testing.T) {
	files, _ := filepath.Glob(filepath.Join("..", "..", "configs", "*.json"))
	if len(files) == 0 {
		t.Skip("configs directory not found")
	}
	for _, path := range files {
		var out bytes.Buffer
		if !analyzeConfig(&out, path) {
			t.Errorf("%s does not validate:\n%s", filepath.Base(path), out.String())
		}
	}
}

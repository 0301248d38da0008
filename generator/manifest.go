package generator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ManifestFileName is written into the results directory after every run.
const ManifestFileName = "utgen-run.json"

// Summary describes one completed run. It doubles as the run manifest.
type Summary struct {
	RunID       string    `json:"run_id"`
	Module      string    `json:"module"`
	Environment string    `json:"environment"`
	Compound    bool      `json:"compound"`
	ScriptsDir  string    `json:"scripts_dir"`
	ResultsDir  string    `json:"results_dir"`
	Subprograms []string  `json:"subprograms"`
	Scripts     []string  `json:"scripts"`
	Reports     []string  `json:"reports"`
	Warnings    []Warning `json:"warnings,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	FinishedAt  time.Time `json:"finished_at"`
}

// WriteManifest writes s to <resultsDir>/utgen-run.json
func WriteManifest(resultsDir string, s *Summary) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(resultsDir, ManifestFileName), data, 0644)
}

// ReadManifest reads the manifest of the last run from resultsDir.
func ReadManifest(resultsDir string) (*Summary, error) {
	path := filepath.Join(resultsDir, ManifestFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("no run manifest in %s: %w", resultsDir, err)
	}

	var s Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("invalid run manifest %s: %w", path, err)
	}
	return &s, nil
}

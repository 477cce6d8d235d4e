// Package runlog publishes a per-run manifest of what the pipeline did:
// row counts per source, per-gate drops, synthesized identifiers, and
// rows loaded. It is an audit artifact for operators; publishing it never
// affects the run outcome.
package runlog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type RunManifest struct {
	RunID                  string `json:"runId"`
	StartedAtEpochSecond   int64  `json:"startedAt"`
	FinishedAtEpochSecond  int64  `json:"finishedAt"`
	MarketplaceRows        int    `json:"marketplaceRows"`
	WholesaleRows          int    `json:"wholesaleRows"`
	MasterRows             int    `json:"masterRows"`
	DuplicateSKUsRemoved   int    `json:"duplicateSkusRemoved"`
	DroppedMissingSKU      int    `json:"droppedMissingSku"`
	DroppedInvalidDate     int    `json:"droppedInvalidDate"`
	DroppedCriticalNulls   int    `json:"droppedCriticalNulls"`
	SyntheticIDsGenerated  int    `json:"syntheticIdsGenerated"`
	UnpricedSales          int    `json:"unpricedSales"`
	RowsLoaded             int    `json:"rowsLoaded"`
}

type Publisher interface {
	PublishLatest(m RunManifest) error
}

type FilesystemPublisher struct {
	baseDir string
}

func NewFilesystemPublisher(baseDir string) *FilesystemPublisher {
	return &FilesystemPublisher{baseDir: baseDir}
}

func (f *FilesystemPublisher) PublishLatest(m RunManifest) error {
	if err := os.MkdirAll(f.baseDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	file := filepath.Join(f.baseDir, "run.latest.json")
	out, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer out.Close()
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(&m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func (f *FilesystemPublisher) ReadLatest() (RunManifest, error) {
	data, err := os.ReadFile(filepath.Join(f.baseDir, "run.latest.json"))
	if err != nil {
		return RunManifest{}, fmt.Errorf("read run manifest: %w", err)
	}
	var m RunManifest
	if err := json.Unmarshal(data, &m); err != nil {
		return RunManifest{}, fmt.Errorf("unmarshal run manifest: %w", err)
	}
	return m, nil
}

// NowUnix returns current time in epoch seconds. Split for testability.
var NowUnix = func() int64 { return time.Now().UTC().Unix() }

package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/models"
)

// exportSnapshot writes the flat JSON snapshot files consumed by external
// tooling. A concurrent run writing to the same directory simply overwrites:
// the last writer's snapshot wins.
func exportSnapshot(outputDir string, snap *models.Snapshot) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	files := map[string]any{
		"topology.json":           snap.Topology,
		"aggregated_traffic.json": snap.Traffic,
		"dashboard.json":          snap.DashboardView(),
		"full_output.json":        snap,
	}
	for name, payload := range files {
		if err := writeJSONFile(filepath.Join(outputDir, name), payload); err != nil {
			return err
		}
	}
	return nil
}

func writeJSONFile(path string, payload any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

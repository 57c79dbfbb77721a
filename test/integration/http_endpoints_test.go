//go:build integration
// +build integration

package integration_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/capacity"
	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/fhd"
	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/pipeline"
	"github.com/FHOpt-25-26J-117/fronthaul-core/internal/synthetic"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/config"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/logger"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/models"
)

// startService builds the full stack over seeded synthetic fixtures: the
// generator writes .dat files, the pipeline loads and analyzes them, and the
// HTTP server fronts the snapshot store.
func startService(t *testing.T) (*httptest.Server, *config.Config) {
	t.Helper()

	root := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.ThroughputDir = filepath.Join(root, "throughput")
	cfg.PacketStatsDir = filepath.Join(root, "packet_stats")
	cfg.OutputDir = filepath.Join(root, "output")
	cfg.NumCells = 6
	cfg.NumLinks = 2
	cfg.SyntheticSlots = 400
	cfg.AggregationStepSlots = 50

	if err := synthetic.NewGenerator(cfg).WriteFixtures(); err != nil {
		t.Fatalf("WriteFixtures: %v", err)
	}

	log := logger.New("error", io.Discard)
	store := fhd.NewSnapshotStore(pipeline.New(cfg, nil, log))
	server := fhd.NewHTTPServer(store, capacity.NewEstimator(cfg))
	srv := httptest.NewServer(server.Handler())
	t.Cleanup(srv.Close)
	return srv, cfg
}

func decodeGet(t *testing.T, url string, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s: status %d body %s", url, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func TestEndToEndEndpoints(t *testing.T) {
	srv, cfg := startService(t)

	var health map[string]any
	decodeGet(t, srv.URL+"/healthz", &health)
	if health["status"] != "ok" {
		t.Fatalf("unexpected health response %v", health)
	}

	var topo models.Topology
	decodeGet(t, srv.URL+"/v1/topology", &topo)
	// DU + per-link Link/RU pair + one node per cell
	wantNodes := 1 + 2*cfg.NumLinks + cfg.NumCells
	if len(topo.Nodes) != wantNodes {
		t.Errorf("expected %d topology nodes, got %d", wantNodes, len(topo.Nodes))
	}
	if len(topo.Edges) != len(topo.Nodes)-1 {
		t.Errorf("topology is not a tree: %d nodes, %d edges", len(topo.Nodes), len(topo.Edges))
	}

	var traffic []models.TrafficSample
	decodeGet(t, srv.URL+"/v1/traffic", &traffic)
	if len(traffic) == 0 {
		t.Fatal("expected aggregated traffic samples")
	}
	for i := 1; i < len(traffic); i++ {
		if traffic[i].Slot <= traffic[i-1].Slot {
			t.Fatalf("traffic slots not increasing at %d: %d then %d", i, traffic[i-1].Slot, traffic[i].Slot)
		}
	}

	var dash models.Dashboard
	decodeGet(t, srv.URL+"/v1/dashboard", &dash)
	if len(dash.CellIDs) != cfg.NumCells {
		t.Errorf("expected %d dashboard cells, got %d", cfg.NumCells, len(dash.CellIDs))
	}
	for _, cid := range dash.CellIDs {
		if _, ok := dash.Congestion[cid]; !ok {
			t.Errorf("cell %d missing from congestion summary", cid)
		}
		if _, ok := dash.CellToLink[cid]; !ok {
			t.Errorf("cell %d missing from link assignment", cid)
		}
	}

	var capResp struct {
		WithBuffer bool                               `json:"with_buffer"`
		Estimates  map[string]models.CapacityEstimate `json:"estimates"`
	}
	decodeGet(t, srv.URL+"/v1/capacity?with_buffer=false", &capResp)
	if capResp.WithBuffer {
		t.Error("expected with_buffer false to be echoed")
	}
	if len(capResp.Estimates) == 0 {
		t.Fatal("expected at least one capacity estimate")
	}
	for name, est := range capResp.Estimates {
		if est.WithBufferGbps != est.WithoutBufferGbps {
			t.Errorf("link %s: buffering disabled but estimates differ: %f vs %f",
				name, est.WithBufferGbps, est.WithoutBufferGbps)
		}
		if est.PeakGbps <= 0 {
			t.Errorf("link %s: non-positive peak %f", name, est.PeakGbps)
		}
	}
}

func TestEndToEndProcessAndExport(t *testing.T) {
	srv, cfg := startService(t)

	resp, err := http.Post(srv.URL+"/v1/process", "application/json", bytes.NewReader(nil))
	if err != nil {
		t.Fatalf("POST process: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var body struct {
		Status string `json:"status"`
		RunID  string `json:"run_id"`
		Source string `json:"source"`
		Cells  int    `json:"cells"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" || body.RunID == "" {
		t.Fatalf("unexpected process response %+v", body)
	}
	if body.Source != string(models.DataSourceMeasured) {
		t.Errorf("expected measured source over fixtures, got %q", body.Source)
	}
	if body.Cells != cfg.NumCells {
		t.Errorf("expected %d cells, got %d", cfg.NumCells, body.Cells)
	}

	for _, name := range []string{"topology.json", "aggregated_traffic.json", "dashboard.json", "full_output.json"} {
		path := filepath.Join(cfg.OutputDir, name)
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("expected export %s: %v", name, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("export %s is empty", name)
		}
	}
}

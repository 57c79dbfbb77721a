package measurement

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/config"
	"github.com/FHOpt-25-26J-117/fronthaul-core/pkg/logger"
)

// cellIDPattern matches the first 1-2 digit token embedded in a filename,
// e.g. "throughput_cell_07.dat" or "ps5.dat".
var cellIDPattern = regexp.MustCompile(`\d{1,2}`)

// LoadResult records the outcome of parsing one measurement file. A skipped
// file is not an error: loading continues for every other file.
type LoadResult struct {
	File    string
	CellID  int
	Rows    int
	Skipped bool
	Reason  string
}

// Loader reads raw per-cell measurement files from a directory and produces
// one normalized Series per cell.
type Loader struct {
	cfg  *config.Config
	norm *Normalizer
	log  *slog.Logger
}

// NewLoader creates a Loader for the given run configuration
func NewLoader(cfg *config.Config, log *slog.Logger) *Loader {
	if log == nil {
		log = logger.Default
	}
	return &Loader{
		cfg:  cfg,
		norm: NewNormalizer(cfg),
		log:  log,
	}
}

// LoadDir loads every .dat file under dir as the given signal kind. Files
// that fail to parse are skipped and reported in the results, never raised.
// A missing directory yields an empty map; a directory-level read error is
// surfaced to the caller as a run failure.
func (l *Loader) LoadDir(ctx context.Context, dir string, kind SignalKind) (map[int]*Series, []LoadResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[int]*Series{}, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read %s directory %s: %w", kind, dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".dat") {
			continue
		}
		files = append(files, e.Name())
	}

	// Per-file parsing is embarrassingly parallel; results are indexed by
	// file position and merged in sorted-filename order afterwards so the
	// output never depends on worker scheduling.
	parsed := make([]*Series, len(files))
	results := make([]LoadResult, len(files))

	workers := l.cfg.LoaderWorkers
	if workers < 1 {
		workers = 1
	}
	if workers > len(files) {
		workers = len(files)
	}
	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					return
				}
				series, rows, reason := l.parseFile(filepath.Join(dir, files[i]), kind)
				parsed[i] = series
				results[i] = LoadResult{
					File:    files[i],
					Rows:    rows,
					Skipped: series == nil,
					Reason:  reason,
				}
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	// Deterministic merge: cell ids are derived in sorted filename order,
	// so the ordinal fallback never depends on load timing.
	seriesByCell := make(map[int]*Series)
	used := make(map[int]bool)
	nextOrdinal := 0
	for i, name := range files {
		if results[i].Skipped {
			l.log.Warn("skipping measurement file",
				"file", name, "kind", string(kind), "reason", results[i].Reason)
			continue
		}
		cellID, found := extractCellID(name, l.cfg.NumCells)
		if !found {
			for used[nextOrdinal] {
				nextOrdinal++
			}
			cellID = nextOrdinal % l.cfg.NumCells
		}
		results[i].CellID = cellID
		seriesByCell[cellID] = parsed[i]
		used[cellID] = true
	}

	l.log.Debug("loaded measurement directory",
		"dir", dir, "kind", string(kind), "files", len(files), "cells", len(seriesByCell))
	return seriesByCell, results, nil
}

// extractCellID derives a cell id from the first 1-2 digit numeric token in
// the filename, reduced modulo the known cell count.
func extractCellID(filename string, numCells int) (int, bool) {
	token := cellIDPattern.FindString(filename)
	if token == "" {
		return 0, false
	}
	n, err := strconv.Atoi(token)
	if err != nil {
		return 0, false
	}
	return n % numCells, true
}

// parseFile parses one measurement file into a Series. A nil series and a
// non-empty reason marks the file as skipped.
func (l *Loader) parseFile(path string, kind SignalKind) (*Series, int, string) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Sprintf("unreadable: %v", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	delim := ""
	var rows [][]string
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if delim == "" {
			// Tab takes precedence over comma when both appear on the
			// first line.
			if strings.Contains(line, "\t") {
				delim = "\t"
			} else {
				delim = ","
			}
		}
		fields := strings.Split(line, delim)
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if len(fields) < 2 {
			return nil, 0, fmt.Sprintf("row %d has fewer than 2 columns", len(rows))
		}
		rows = append(rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, fmt.Sprintf("read failed: %v", err)
	}
	if len(rows) == 0 {
		return nil, 0, "empty file"
	}

	// The time column is used as symbol ticks only if every row parses;
	// otherwise slots fall back to row position.
	ticks := make([]float64, len(rows))
	timeNumeric := true
	for i, fields := range rows {
		t, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			timeNumeric = false
			break
		}
		ticks[i] = t
	}

	samples := make([]Sample, 0, len(rows))
	for i, fields := range rows {
		var slot int64
		if timeNumeric {
			slot = l.norm.SlotForTick(ticks[i])
		} else {
			slot = l.norm.SlotForRow(i)
		}

		var value float64
		switch kind {
		case SignalThroughput:
			// Non-numeric values coerce to zero rather than failing the row.
			bytesPerSymbol := parseFloatOrZero(fields[1])
			value = l.norm.Gbps(bytesPerSymbol)
		case SignalPacketStats:
			sent := parseFloatOrZero(fields[1])
			lost := 0.0
			if len(fields) > 2 {
				lost = parseFloatOrZero(fields[2])
			}
			value = l.norm.LossRate(sent, lost)
		default:
			return nil, 0, fmt.Sprintf("unknown signal kind %q", kind)
		}
		samples = append(samples, Sample{Slot: slot, Value: value})
	}

	return NewSeries(kind, samples), len(rows), ""
}

func parseFloatOrZero(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/orrery/internal/kinematics"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string            `json:"id"`
	Catalog   string            `json:"catalog"`
	Timestamp time.Time         `json:"timestamp"`
	Seed      int64             `json:"seed"`
	Dt        float64           `json:"dt"`
	Frames    int               `json:"frames"`
	Speed     float64           `json:"speed"`
	Tuning    kinematics.Tuning `json:"tuning"`
	Summary   map[string]Rate   `json:"summary"`
}

func (s *Store) Save(meta RunMetadata, run *Run) (string, error) {
	now := time.Now()
	if meta.ID == "" {
		meta.ID = fmt.Sprintf("run_%s_%d", now.Format("20060102-150405.000"), meta.Seed)
	}
	if meta.Timestamp.IsZero() {
		meta.Timestamp = now
	}
	if meta.Summary == nil {
		meta.Summary = Summarize(run)
	}

	runDir := filepath.Join(s.baseDir, meta.ID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, "angles.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	header := []string{"time", "elapsed", "speed"}
	for _, b := range run.Bodies {
		header = append(header, b+".angle")
	}
	for _, b := range run.Bodies {
		header = append(header, b+".spin")
	}
	if err := w.Write(header); err != nil {
		return "", err
	}

	format := func(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }
	for i := range run.Times {
		row := []string{format(run.Times[i]), format(run.Elapsed[i]), format(run.Speeds[i])}
		for _, v := range run.Angles[i] {
			row = append(row, format(v))
		}
		for _, v := range run.Spins[i] {
			row = append(row, format(v))
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}

	return meta.ID, nil
}

// List returns every readable run, newest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.After(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadRun(runID string) (*Run, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "angles.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("run %s: empty angles file", runID)
	}

	header := records[0]
	n := (len(header) - 3) / 2
	run := &Run{Bodies: make([]string, n)}
	for i := 0; i < n; i++ {
		name := header[3+i]
		run.Bodies[i] = name[:len(name)-len(".angle")]
	}

	for line, record := range records[1:] {
		vals := make([]float64, len(record))
		for j, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("run %s line %d: %w", runID, line+2, err)
			}
			vals[j] = v
		}
		run.Times = append(run.Times, vals[0])
		run.Elapsed = append(run.Elapsed, vals[1])
		run.Speeds = append(run.Speeds, vals[2])
		run.Angles = append(run.Angles, vals[3:3+n])
		run.Spins = append(run.Spins, vals[3+n:3+2*n])
	}
	return run, nil
}

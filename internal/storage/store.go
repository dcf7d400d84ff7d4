package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/beamlab/internal/beam"
)

var (
	ErrRunNotFound    = errors.New("storage: run not found")
	ErrInvalidRunName = errors.New("storage: invalid run name")
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

// ModelSummary is the tip state of one model in a stored run.
type ModelSummary struct {
	Model       beam.Model        `json:"model"`
	Label       string            `json:"label"`
	Color       string            `json:"color"`
	TipX        float64           `json:"tip_x"`
	TipY        float64           `json:"tip_y"`
	TipAngle    float64           `json:"tip_angle"`
	MaxStress   float64           `json:"max_stress"`
	Points      int               `json:"points"`
	Convergence *beam.Convergence `json:"convergence,omitempty"`
	Diagnostics map[string]any    `json:"diagnostics,omitempty"`
}

type RunMetadata struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Timestamp time.Time      `json:"timestamp"`
	Params    beam.Params    `json:"params"`
	LoadCase  beam.LoadCase  `json:"load_case"`
	Models    []ModelSummary `json:"models"`
}

func summarize(r beam.Result) (ModelSummary, error) {
	ms := ModelSummary{
		Model:       r.Model,
		Label:       r.Label,
		Color:       r.Color,
		TipX:        r.TipX,
		TipY:        r.TipY,
		TipAngle:    r.TipAngle,
		MaxStress:   r.MaxStress,
		Points:      len(r.Points),
		Convergence: r.Convergence,
	}
	if r.Diagnostics != nil {
		// round-trip through JSON to keep the family's field names
		data, err := json.Marshal(r.Diagnostics)
		if err != nil {
			return ms, fmt.Errorf("%s diagnostics: %w", r.Model, err)
		}
		if err := json.Unmarshal(data, &ms.Diagnostics); err != nil {
			return ms, fmt.Errorf("%s diagnostics: %w", r.Model, err)
		}
		if ms.Diagnostics == nil {
			ms.Diagnostics = make(map[string]any)
		}
		ms.Diagnostics["family"] = r.Diagnostics.Family()
	}
	return ms, nil
}

// checkName rejects run names that would not stay a single directory
// component under the base directory.
func checkName(name string) error {
	if name == "" || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidRunName, name)
	}
	return nil
}

// Save writes metadata.json and shapes.csv under a fresh run directory.
func (s *Store) Save(name string, p beam.Params, lc beam.LoadCase, results []beam.Result) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}

	now := time.Now()
	runID := fmt.Sprintf("%s_%d", name, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	meta := RunMetadata{
		ID:        runID,
		Name:      name,
		Timestamp: now,
		Params:    p,
		LoadCase:  lc,
		Models:    make([]ModelSummary, len(results)),
	}
	for i, r := range results {
		ms, err := summarize(r)
		if err != nil {
			return "", err
		}
		meta.Models[i] = ms
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, "metadata.json"), func(f *os.File) error {
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, "shapes.csv"), func(f *os.File) error {
		return WriteShapesCSV(csv.NewWriter(f), results)
	}); err != nil {
		return "", err
	}

	return runID, nil
}

// writeFile creates path, hands it to fill and reports the first of the
// fill and close errors.
func writeFile(path string, fill func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fill(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteShapesCSV writes series,model,index,x,y rows and flushes w. The
// series column is the result's position, so repeated models stay apart.
func WriteShapesCSV(w *csv.Writer, results []beam.Result) error {
	if err := w.Write([]string{"series", "model", "index", "x", "y"}); err != nil {
		return err
	}
	for j, r := range results {
		for i, pt := range r.Points {
			row := []string{
				strconv.Itoa(j),
				r.Model.String(),
				strconv.Itoa(i),
				strconv.FormatFloat(pt.X, 'g', -1, 64),
				strconv.FormatFloat(pt.Y, 'g', -1, 64),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	w.Flush()
	return w.Error()
}

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

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

// runPath rejects IDs that would escape the base directory.
func (s *Store) runPath(runID, file string) (string, error) {
	if runID == "" || runID != filepath.Base(runID) || runID == ".." || runID == "." {
		return "", fmt.Errorf("%w: %q", ErrRunNotFound, runID)
	}
	return filepath.Join(s.baseDir, runID, file), nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	path, err := s.runPath(runID, "metadata.json")
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// Shape is one stored polyline.
type Shape struct {
	Model  beam.Model
	Points []beam.Point
}

// LoadShapes reads the stored polylines, one per saved result in save order.
func (s *Store) LoadShapes(runID string) ([]Shape, error) {
	path, err := s.runPath(runID, "shapes.csv")
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 5

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	var shapes []Shape
	for i := 1; i < len(records); i++ {
		rec := records[i]

		series, err := strconv.Atoi(rec[0])
		if err != nil || series < 0 {
			return nil, fmt.Errorf("shapes.csv line %d: bad series %q", i+1, rec[0])
		}
		m, err := beam.ParseModel(rec[1])
		if err != nil {
			return nil, fmt.Errorf("shapes.csv line %d: %w", i+1, err)
		}
		x, err := strconv.ParseFloat(rec[3], 64)
		if err != nil {
			return nil, fmt.Errorf("shapes.csv line %d: %w", i+1, err)
		}
		y, err := strconv.ParseFloat(rec[4], 64)
		if err != nil {
			return nil, fmt.Errorf("shapes.csv line %d: %w", i+1, err)
		}

		// results without points leave gaps, filled with empty shapes
		for len(shapes) <= series {
			shapes = append(shapes, Shape{})
		}
		sh := &shapes[series]
		if len(sh.Points) == 0 {
			sh.Model = m
		} else if sh.Model != m {
			return nil, fmt.Errorf("shapes.csv line %d: series %d mixes models", i+1, series)
		}
		sh.Points = append(sh.Points, beam.Point{X: x, Y: y})
	}

	return shapes, nil
}

// Results rebuilds display-ready results from a stored run, in stored order.
func (s *Store) Results(runID string) (*RunMetadata, []beam.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	shapes, err := s.LoadShapes(runID)
	if err != nil {
		return nil, nil, err
	}

	results := make([]beam.Result, len(meta.Models))
	for i, ms := range meta.Models {
		r := beam.NewResult(ms.Model)
		if i < len(shapes) && shapes[i].Model == ms.Model {
			r.Points = shapes[i].Points
		}
		r.TipX, r.TipY, r.TipAngle = ms.TipX, ms.TipY, ms.TipAngle
		r.MaxStress = ms.MaxStress
		r.Convergence = ms.Convergence
		results[i] = r
	}
	return meta, results, nil
}

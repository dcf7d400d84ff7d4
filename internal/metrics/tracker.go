package metrics

import "github.com/san-kum/beamlab/internal/beam"

// Tracker keeps one set of metrics per model, each scored against ref.
type Tracker struct {
	ref     beam.Model
	order   []beam.Model
	metrics map[beam.Model][]Metric
}

func NewTracker(ref beam.Model) *Tracker {
	return &Tracker{ref: ref, metrics: make(map[beam.Model][]Metric)}
}

func defaults() []Metric {
	return []Metric{NewTipError(), NewShapeDeviation(), NewLengthDrift()}
}

// Observe scores one comparison. It does nothing when the reference is
// absent or degenerate; degenerate results are skipped.
func (t *Tracker) Observe(results []beam.Result) {
	var ref beam.Result
	found := false
	for _, r := range results {
		if r.Model == t.ref {
			ref, found = r, true
		}
	}
	if !found || ref.IsEmpty() {
		return
	}

	for _, r := range results {
		if r.Model == t.ref || r.IsEmpty() {
			continue
		}
		ms, ok := t.metrics[r.Model]
		if !ok {
			ms = defaults()
			t.metrics[r.Model] = ms
			t.order = append(t.order, r.Model)
		}
		for _, m := range ms {
			m.Observe(r, ref)
		}
	}
}

// Models lists the scored models in first-seen order.
func (t *Tracker) Models() []beam.Model { return t.order }

// Values returns the metric values for m keyed by metric name, or nil.
func (t *Tracker) Values(m beam.Model) map[string]float64 {
	ms, ok := t.metrics[m]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(ms))
	for _, metric := range ms {
		out[metric.Name()] = metric.Value()
	}
	return out
}

func (t *Tracker) Reset() {
	for _, ms := range t.metrics {
		for _, m := range ms {
			m.Reset()
		}
	}
}

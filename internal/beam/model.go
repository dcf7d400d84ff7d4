package beam

import (
	"fmt"
	"strings"
)

// Model selects one of the four mechanical models.
type Model int

const (
	Linear Model = iota
	Nonlinear
	PRB1R
	PRB3R
)

// Models lists every model in display order.
var Models = []Model{Linear, Nonlinear, PRB1R, PRB3R}

// Style is the presentation metadata attached to a model's results.
type Style struct {
	Key   string
	Label string
	Color string
}

var styles = map[Model]Style{
	Linear:    {Key: "linear", Label: "Linear (small deflection)", Color: "#3b82f6"},
	Nonlinear: {Key: "nonlinear", Label: "Nonlinear (elastica)", Color: "#ef4444"},
	PRB1R:     {Key: "prb1r", Label: "PRB 1R", Color: "#10b981"},
	PRB3R:     {Key: "prb3r", Label: "PRB 3R", Color: "#f59e0b"},
}

// Style returns the label and color for m. Unknown models get an empty style.
func (m Model) Style() Style {
	return styles[m]
}

func (m Model) String() string {
	if s, ok := styles[m]; ok {
		return s.Key
	}
	return fmt.Sprintf("model(%d)", int(m))
}

// Valid reports whether m is one of the known models.
func (m Model) Valid() bool {
	_, ok := styles[m]
	return ok
}

// RigidLink reports whether m produces a sparse joint polyline.
func (m Model) RigidLink() bool {
	return m == PRB1R || m == PRB3R
}

// ParseModel maps a key such as "prb3r" to its Model.
func ParseModel(name string) (Model, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, m := range Models {
		if styles[m].Key == key {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownModel, name)
}

// ParseModels parses a list of keys, rejecting the whole list on the first bad entry.
func ParseModels(names []string) ([]Model, error) {
	out := make([]Model, 0, len(names))
	for _, n := range names {
		m, err := ParseModel(n)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// LoadCase selects the empirical constants of the PRB-1R model.
type LoadCase int

const (
	PureForce LoadCase = iota
	CombinedForce
	PureMoment
)

var loadCaseKeys = map[LoadCase]string{
	PureForce:     "force",
	CombinedForce: "combined",
	PureMoment:    "moment",
}

func (lc LoadCase) String() string {
	if k, ok := loadCaseKeys[lc]; ok {
		return k
	}
	return fmt.Sprintf("loadcase(%d)", int(lc))
}

// ParseLoadCase maps "force", "combined" or "moment" to a LoadCase.
// An empty name selects PureForce.
func ParseLoadCase(name string) (LoadCase, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return PureForce, nil
	}
	for lc, k := range loadCaseKeys {
		if k == key {
			return lc, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLoadCase, name)
}

// MarshalText lets a LoadCase travel through JSON and YAML as its key.
func (lc LoadCase) MarshalText() ([]byte, error) {
	return []byte(lc.String()), nil
}

func (lc *LoadCase) UnmarshalText(text []byte) error {
	v, err := ParseLoadCase(string(text))
	if err != nil {
		return err
	}
	*lc = v
	return nil
}

func (m Model) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownModel, int(m))
	}
	return []byte(m.String()), nil
}

func (m *Model) UnmarshalText(text []byte) error {
	v, err := ParseModel(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

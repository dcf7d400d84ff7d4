package export

import (
	"encoding/json"
	"io"

	"github.com/san-kum/beamlab/internal/beam"
)

type Document struct {
	Name     string        `json:"name"`
	Params   beam.Params   `json:"params"`
	LoadCase beam.LoadCase `json:"load_case"`
	Results  []beam.Result `json:"results"`
}

func JSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

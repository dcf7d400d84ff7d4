package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/san-kum/beamlab/internal/beam"
	"github.com/san-kum/beamlab/internal/config"
	"github.com/san-kum/beamlab/internal/export"
	"github.com/san-kum/beamlab/internal/solver"
	"github.com/san-kum/beamlab/internal/storage"
)

type SolveRequest struct {
	Name     string        `json:"name,omitempty"`
	Params   beam.Params   `json:"params"`
	Models   []beam.Model  `json:"models,omitempty"`
	LoadCase beam.LoadCase `json:"load_case"`
	Save     bool          `json:"save,omitempty"`
}

type SolveResponse struct {
	Name     string        `json:"name,omitempty"`
	RunID    string        `json:"run_id,omitempty"`
	Params   beam.Params   `json:"params"`
	LoadCase beam.LoadCase `json:"load_case"`
	Results  []beam.Result `json:"results"`
}

type modelInfo struct {
	Key       string `json:"key"`
	Label     string `json:"label"`
	Color     string `json:"color"`
	RigidLink bool   `json:"rigid_link"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func decodeSolve(r *http.Request) (*SolveRequest, error) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, err
	}
	if err := req.Params.Validate(); err != nil {
		return nil, err
	}
	if len(req.Models) == 0 {
		req.Models = beam.Models
	}
	return &req, nil
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	out := make([]modelInfo, 0, len(beam.Models))
	for _, m := range beam.Models {
		st := m.Style()
		out = append(out, modelInfo{Key: st.Key, Label: st.Label, Color: st.Color, RigidLink: m.RigidLink()})
	}
	writeJSON(w, out)
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSolve(r)
	if err != nil {
		http.Error(w, "Invalid request payload: "+err.Error(), http.StatusBadRequest)
		return
	}

	results, err := solver.Compare(r.Context(), req.Params, req.Models, req.LoadCase)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	resp := SolveResponse{Name: req.Name, Params: req.Params, LoadCase: req.LoadCase, Results: results}
	if req.Save {
		if s.store == nil {
			http.Error(w, "Run storage is disabled", http.StatusNotImplemented)
			return
		}
		name := req.Name
		if name == "" {
			name = "api"
		}
		id, err := s.store.Save(name, req.Params, req.LoadCase, results)
		if errors.Is(err, storage.ErrInvalidRunName) {
			http.Error(w, "Invalid run name", http.StatusBadRequest)
			return
		}
		if err != nil {
			s.log.Error("save run", "err", err)
			http.Error(w, "Failed to save run", http.StatusInternalServerError)
			return
		}
		resp.RunID = id
	}
	writeJSON(w, resp)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	req, err := decodeSolve(r)
	if err != nil {
		http.Error(w, "Invalid request payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	results, err := solver.Compare(r.Context(), req.Params, req.Models, req.LoadCase)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	switch mux.Vars(r)["format"] {
	case "svg":
		w.Header().Set("Content-Type", "image/svg+xml")
		w.Write([]byte(export.SVG(results, 800, 400)))
	case "pdf":
		title := req.Name
		if title == "" {
			title = "Cantilever deflection"
		}
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "attachment; filename=beam_report.pdf")
		if err := export.Report(w, title, results, req.Params); err != nil {
			s.log.Error("render report", "err", err)
		}
	}
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, config.ListPresets())
}

func (s *Server) handlePreset(w http.ResponseWriter, r *http.Request) {
	cfg, err := config.GetPreset(mux.Vars(r)["name"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	res, err := cfg.Resolve()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	results, err := solver.Compare(r.Context(), res.Params, res.Models, res.LoadCase)
	if err != nil {
		http.Error(w, "Calculation error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, SolveResponse{Name: res.Name, Params: res.Params, LoadCase: res.LoadCase, Results: results})
}

func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeJSON(w, []storage.RunMetadata{})
		return
	}
	runs, err := s.store.List()
	if err != nil {
		http.Error(w, "Failed to list runs", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []storage.RunMetadata{}
	}
	writeJSON(w, runs)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		http.Error(w, "Run storage is disabled", http.StatusNotFound)
		return
	}
	meta, results, err := s.store.Results(mux.Vars(r)["id"])
	if errors.Is(err, storage.ErrRunNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load run", http.StatusInternalServerError)
		return
	}
	writeJSON(w, SolveResponse{Name: meta.Name, RunID: meta.ID, Params: meta.Params, LoadCase: meta.LoadCase, Results: results})
}

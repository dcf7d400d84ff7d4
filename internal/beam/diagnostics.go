package beam

// Diagnostics is the closed set of per-family pseudo-rigid-body constants.
// Only PRB1RDiagnostics and PRB3RDiagnostics implement it.
type Diagnostics interface {
	diagnostics()
	Family() string
}

// PRB1RDiagnostics are the constants of the single-pivot model.
type PRB1RDiagnostics struct {
	LoadCase LoadCase `json:"load_case"`
	Gamma    float64  `json:"gamma"`   // characteristic radius
	KTheta   float64  `json:"k_theta"` // nondimensional stiffness
	CTheta   float64  `json:"c_theta"` // tip angle factor
	K        float64  `json:"k"`       // torsional spring (N*m/rad)
}

func (PRB1RDiagnostics) diagnostics()   {}
func (PRB1RDiagnostics) Family() string { return "prb1r" }

// PRB3RDiagnostics are the constants of the three-joint chain.
type PRB3RDiagnostics struct {
	Ratios       [4]float64 `json:"ratios"`       // g0..g3
	Coefficients [3]float64 `json:"coefficients"` // K_c1..K_c3
	K            [3]float64 `json:"k"`            // N*m/rad per joint
}

func (PRB3RDiagnostics) diagnostics()   {}
func (PRB3RDiagnostics) Family() string { return "prb3r" }

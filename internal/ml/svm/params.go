package svm

import "fmt"

// Params controls the dual coordinate descent solver.
type Params struct {
	C       float64 `json:"c"`
	MaxIter int     `json:"max_iter"`
	Tol     float64 `json:"tol"`
	Seed    uint64  `json:"seed"`
}

// DefaultParams returns C=1, 1000 passes, tolerance 1e-3, seed 42.
func DefaultParams() Params {
	return Params{C: 1.0, MaxIter: 1000, Tol: 1e-3, Seed: 42}
}

// withDefaults fills zero fields from DefaultParams.
func (p Params) withDefaults() Params {
	d := DefaultParams()
	if p.C == 0 {
		p.C = d.C
	}
	if p.MaxIter == 0 {
		p.MaxIter = d.MaxIter
	}
	if p.Tol == 0 {
		p.Tol = d.Tol
	}
	return p
}

// Validate checks the parameters for correctness.
func (p Params) Validate() error {
	if p.C <= 0 {
		return fmt.Errorf("c must be positive, got %g", p.C)
	}
	if p.MaxIter <= 0 {
		return fmt.Errorf("max_iter must be positive, got %d", p.MaxIter)
	}
	if p.Tol <= 0 {
		return fmt.Errorf("tol must be positive, got %g", p.Tol)
	}
	return nil
}

// Package dimacs bridges the external DIMACS CNF parser to the solver. CNF
// parsing itself is out of the solver core's scope; this package only
// turns the parser's callbacks into AddVariable/AddClause calls.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	extdimacs "github.com/rhartert/dimacs"

	"github.com/hartwell/cdclsat/internal/sat"
)

// SATSolver is the interface the adapter builds against. *sat.Solver
// satisfies it.
type SATSolver interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS parses the DIMACS CNF file at filename and loads its formula
// into solver. Clause literal magnitudes are validated by the underlying
// parser against the problem line's declared variable count.
func LoadDIMACS(filename string, gzipped bool, solver SATSolver) error {
	r, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("dimacs: could not open %q: %w", filename, err)
	}
	defer r.Close()

	b := &builder{solver: solver}
	if err := extdimacs.ReadBuilder(r, b); err != nil {
		return fmt.Errorf("dimacs: %w", err)
	}
	return nil
}

// builder adapts SATSolver to the extdimacs.Builder interface expected by
// the external parser.
type builder struct {
	solver SATSolver
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("dimacs: unsupported problem type %q", problem)
	}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l < 0 {
			clause[i] = sat.NegativeLiteral(-l - 1)
		} else {
			clause[i] = sat.PositiveLiteral(l - 1)
		}
	}
	return b.solver.AddClause(clause)
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}

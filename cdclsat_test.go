package main

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hartwell/cdclsat/internal/dimacs"
	"github.com/hartwell/cdclsat/internal/sat"
)

// This test suite verifies that the solver reports the correct
// satisfiability verdict for a set of instances with a known status (see
// testdataDir). Status fixtures were derived either by direct construction
// (a planted satisfying assignment, or the pigeonhole counting argument) or
// by hand for small boundary cases, not by running a reference solver.

var testdataDir = "testdata"

type testCase struct {
	name         string
	instanceFile string
	statusFile   string
}

// listTestCases returns the list of test cases contained in the file tree
// rooted at dir. Each instance file (".cnf") must be paired with a
// ".cnf.status" file containing exactly "SAT" or "UNSAT".
func listTestCases(dir string) ([]testCase, error) {
	var cases []testCase
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".cnf") {
			return nil
		}
		cases = append(cases, testCase{
			name:         d.Name(),
			instanceFile: path,
			statusFile:   path + ".status",
		})
		return nil
	})
	return cases, err
}

func readStatus(path string) (sat.LBool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return sat.Unknown, err
	}
	switch strings.TrimSpace(string(b)) {
	case "SAT":
		return sat.True, nil
	case "UNSAT":
		return sat.False, nil
	default:
		return sat.Unknown, nil
	}
}

// TestSolve verifies the solver's verdict against every fixture under
// testdataDir. Cases run in parallel.
func TestSolve(t *testing.T) {
	cases, err := listTestCases(testdataDir)
	if err != nil {
		t.Fatalf("listTestCases(%q): %s", testdataDir, err)
	}
	if len(cases) == 0 {
		t.Fatalf("no test cases found under %q", testdataDir)
	}

	for i := range cases {
		tc := cases[i]
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			want, err := readStatus(tc.statusFile)
			if err != nil {
				t.Fatalf("readStatus(%q): %s", tc.statusFile, err)
			}

			s := sat.NewSolver()
			if err := dimacs.LoadDIMACS(tc.instanceFile, false, s); err != nil {
				t.Fatalf("LoadDIMACS(%q): %s", tc.instanceFile, err)
			}

			got := s.Solve()
			if got != want {
				t.Errorf("Solve() = %s, want %s", got, want)
			}
		})
	}
}

// TestSolve_idempotent verifies that a second call to Solve on an already
// decided solver returns the same verdict without panicking, covering the
// unsat-is-permanent fast path.
func TestSolve_idempotent(t *testing.T) {
	s := sat.NewSolver()
	if err := dimacs.LoadDIMACS(filepath.Join(testdataDir, "conflicting_units.cnf"), false, s); err != nil {
		t.Fatalf("LoadDIMACS(): %s", err)
	}
	if got := s.Solve(); got != sat.False {
		t.Fatalf("Solve() = %s, want UNSAT", got)
	}
	if got := s.Solve(); got != sat.False {
		t.Errorf("second Solve() = %s, want UNSAT", got)
	}
}

// rawInstance captures a parsed DIMACS instance as plain signed integers,
// independent of the solver's own literal encoding, so the brute-force
// oracle below never touches sat.Literal.
type rawInstance struct {
	nVars   int
	clauses [][]int
}

func (r *rawInstance) AddVariable() int {
	r.nVars++
	return r.nVars - 1
}

func (r *rawInstance) AddClause(literals []sat.Literal) error {
	clause := make([]int, len(literals))
	for i, l := range literals {
		if l.IsPositive() {
			clause[i] = l.VarID() + 1
		} else {
			clause[i] = -(l.VarID() + 1)
		}
	}
	r.clauses = append(r.clauses, clause)
	return nil
}

// satisfiedBy reports whether assignment (indexed by 0-based variable ID)
// satisfies every clause.
func (r *rawInstance) satisfiedBy(assignment []bool) bool {
	for _, clause := range r.clauses {
		satisfied := false
		for _, lit := range clause {
			v := lit
			if v < 0 {
				v = -v
			}
			v--
			if (lit > 0) == assignment[v] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			return false
		}
	}
	return true
}

// bruteForceSAT exhaustively tries every assignment of r's variables and
// reports whether at least one satisfies every clause. It is only used on
// small instances (a handful of variables) as an independent oracle for the
// solver's verdict.
func bruteForceSAT(r *rawInstance) bool {
	assignment := make([]bool, r.nVars)
	total := 1 << uint(r.nVars)
	for bits := 0; bits < total; bits++ {
		for v := 0; v < r.nVars; v++ {
			assignment[v] = bits&(1<<uint(v)) != 0
		}
		if r.satisfiedBy(assignment) {
			return true
		}
	}
	return false
}

// TestSolve_matchesBruteForceOracle cross-checks the solver's verdict
// against an independent brute-force enumerator for instances small enough
// to enumerate exhaustively, a soundness check exercised directly rather
// than inferred from the solver's own isSatisfied check.
func TestSolve_matchesBruteForceOracle(t *testing.T) {
	oracleCases := []string{
		"oracle_sat_8v.cnf",
		"oracle_pigeonhole_4_3.cnf",
		"unit_sat.cnf",
		"conflicting_units.cnf",
		"xor_unsat.cnf",
		"chain_propagation.cnf",
		"tautology_only.cnf",
	}

	for _, name := range oracleCases {
		name := name
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(testdataDir, name)

			raw := &rawInstance{}
			if err := dimacs.LoadDIMACS(path, false, raw); err != nil {
				t.Fatalf("LoadDIMACS(%q): %s", path, err)
			}
			want := bruteForceSAT(raw)

			s := sat.NewSolver()
			if err := dimacs.LoadDIMACS(path, false, s); err != nil {
				t.Fatalf("LoadDIMACS(%q): %s", path, err)
			}
			got := s.Solve() == sat.True

			if got != want {
				t.Errorf("Solve() reports SAT=%v, brute-force oracle reports SAT=%v", got, want)
			}
		})
	}
}

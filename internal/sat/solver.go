package sat

import (
	"fmt"
	"log"
)

// StatsRecorder receives purely observational callbacks from the driver
// loop. Implementations must not call back into the Solver: they exist so
// that an external metrics exporter (see internal/metrics) can mirror the
// search's progress without the core depending on it.
type StatsRecorder interface {
	Decision()
	Conflict()
	Propagation()
	Backtrack(level int)
}

// Solver is the CDCL engine: the literal/state model, variable nodes,
// trail, formula store, propagator, decision heuristic, conflict analyzer,
// backtracker and driver loop all live here. It is single-threaded and has
// no suspension points — a call to Solve runs to completion.
type Solver struct {
	vars    []variable
	trail   *Trail
	formula *Formula

	// checked is reused across calls to analyze to avoid reallocating a set
	// on every conflict.
	checked *ResetSet

	unsat bool // permanent top-level conflict

	// Search statistics. Exported so that a caller (e.g. the CLI) can report
	// them; they never feed back into the search itself.
	TotalDecisions    int64
	TotalConflicts    int64
	TotalPropagations int64

	learnedSizeEMA ema

	stats StatsRecorder
}

// NewSolver returns an empty, ready-to-use solver.
func NewSolver() *Solver {
	return &Solver{
		trail:          NewTrail(),
		formula:        &Formula{},
		checked:        &ResetSet{},
		learnedSizeEMA: newEMA(0.95),
	}
}

// SetStatsRecorder attaches an observer notified of decisions, conflicts,
// propagations and backtracks. Pass nil to detach.
func (s *Solver) SetStatsRecorder(r StatsRecorder) {
	s.stats = r
}

// NumVariables returns the number of variables declared so far.
func (s *Solver) NumVariables() int {
	return len(s.vars)
}

// NumClauses returns the number of clauses (original and learned) in the
// formula store.
func (s *Solver) NumClauses() int {
	return s.formula.Len()
}

// LearnedClauseSizeEMA returns the exponential moving average of learned
// clause sizes. It is purely a reporting statistic.
func (s *Solver) LearnedClauseSizeEMA() float64 {
	return s.learnedSizeEMA.val()
}

// VarValue returns the tri-valued state of variable v.
func (s *Solver) VarValue(v int) LBool {
	return s.vars[v].value
}

// LitValue returns the tri-valued state of literal l given the current
// variable assignment: Unknown if its variable is Unknown, v's value if l
// is positive, the complement of v's value otherwise.
func (s *Solver) LitValue(l Literal) LBool {
	v := s.vars[l.VarID()].value
	if v == Unknown || l.IsPositive() {
		return v
	}
	return v.Opposite()
}

// AddVariable declares a new variable and returns its ID.
func (s *Solver) AddVariable() int {
	s.vars = append(s.vars, variable{value: Unknown})
	s.checked.Expand()
	return len(s.vars) - 1
}

// AddClause adds an original (non-learned) clause to the formula. It
// returns an error unless the solver is at decision level 0, which holds
// before the first call to Solve; a Solve that returns SAT leaves its
// decisions on the trail.
func (s *Solver) AddClause(literals []Literal) error {
	if s.trail.CurrentLevel() != 0 {
		return fmt.Errorf("sat: AddClause called below the root decision level")
	}
	s.formula.Add(NewClause(literals, false))
	return nil
}

// Solve runs the driver loop to completion: propagate to a fixpoint or a
// conflict; on conflict, analyze and backtrack, or report UNSAT if the
// conflict cannot be resolved; otherwise, if every clause is satisfied,
// report SAT, else make a decision and repeat.
func (s *Solver) Solve() LBool {
	if s.unsat {
		return False
	}

	for {
		conflict := s.propagate()
		if conflict == nil {
			if s.isSatisfied() {
				return True
			}
			s.decide()
			continue
		}

		s.TotalConflicts++
		if s.stats != nil {
			s.stats.Conflict()
		}

		learned, backtrackLevel, ok := s.analyze(conflict)
		if !ok {
			s.unsat = true
			return False
		}

		s.backtrackTo(backtrackLevel)
		if s.stats != nil {
			s.stats.Backtrack(backtrackLevel)
		}
		s.recordLearned(learned)
	}
}

// propagate runs unit propagation to a fixpoint, or until a clause
// evaluates to False. It re-scans the whole formula every pass: there are
// no watched literals here.
func (s *Solver) propagate() *Clause {
	type unit struct {
		lit    Literal
		clause *Clause
	}

	for {
		var units []unit
		for _, c := range s.formula.All() {
			switch c.value(s) {
			case True:
				continue
			case False:
				return c
			default:
				if lit, ok := c.unitLiteral(s); ok {
					units = append(units, unit{lit, c})
				}
			}
		}

		if len(units) == 0 {
			return nil
		}

		// Apply this pass's units in reverse discovery order. Correctness
		// does not depend on the order; this fixes one so that behavior is
		// reproducible across runs.
		for i := len(units) - 1; i >= 0; i-- {
			u := units[i]
			if s.vars[u.lit.VarID()].value != Unknown {
				continue // already assigned, e.g. by an earlier unit this pass
			}
			s.assign(u.lit, u.clause)
			s.TotalPropagations++
			if s.stats != nil {
				s.stats.Propagation()
			}
		}
	}
}

// decide applies the decision heuristic: open a new decision level and
// assign its chosen literal to True.
func (s *Solver) decide() {
	lit, ok := s.selectDecisionLiteral()
	if !ok {
		log.Fatal("sat: decide called with no unassigned variable remaining")
	}

	s.trail.Push()
	s.vars[lit.VarID()].reason = nil
	s.assign(lit, nil)

	s.TotalDecisions++
	if s.stats != nil {
		s.stats.Decision()
	}
}

// assign records l as True at the current decision level, with the given
// antecedent clause (nil for a decision).
func (s *Solver) assign(l Literal, reason *Clause) {
	v := l.VarID()
	if l.IsPositive() {
		s.vars[v].value = True
	} else {
		s.vars[v].value = False
	}
	level := s.trail.CurrentLevel()
	s.vars[v].level = level
	s.vars[v].reason = reason
	s.trail.Append(level, l)
}

// backtrackTo unwinds every variable assigned above level beta and
// truncates the trail accordingly.
func (s *Solver) backtrackTo(beta int) {
	for v := range s.vars {
		if s.vars[v].level > beta {
			s.vars[v].value = Unknown
			s.vars[v].level = 0
			s.vars[v].reason = nil
		}
	}
	s.trail.TruncateTo(beta)
}

// recordLearned appends a conflict-derived clause to the formula. The
// clause is not explicitly enqueued: the next call to propagate will find
// it unit (the backtrack level analyze returned guarantees this) and
// propagate it like any other clause.
func (s *Solver) recordLearned(literals []Literal) {
	s.formula.Add(NewClause(literals, true))
	s.learnedSizeEMA.add(float64(len(literals)))
}

// isSatisfied reports whether every clause in the formula currently
// evaluates to True.
func (s *Solver) isSatisfied() bool {
	for _, c := range s.formula.All() {
		if c.value(s) != True {
			return false
		}
	}
	return true
}

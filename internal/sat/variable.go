package sat

// variable is the per-variable record described by the data model: its
// current tri-valued assignment, the decision level at which it was last
// assigned, and the antecedent ("parents") clause that forced it by unit
// propagation. It carries no logic beyond storage — reads and writes are
// done directly by the propagator, decision heuristic, analyzer, and
// backtracker.
type variable struct {
	value  LBool
	level  int
	reason *Clause // nil for decisions and unassigned variables
}

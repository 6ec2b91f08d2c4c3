package sat

import "strings"

// Clause is an ordered, immutable-length sequence of literals. Satisfiability
// never depends on the order; it is kept for deterministic printing and
// because the decision heuristic breaks ties by first-seen position. A
// clause is never mutated after creation and is never deleted: the formula
// store (see Solver.formula) only ever appends to its clause list.
type Clause struct {
	literals []Literal

	// learnt records whether the clause came from conflict analysis rather
	// than the original problem. Nothing in the package reads it: it affects
	// neither propagation, analysis nor printing.
	learnt bool
}

// NewClause returns a clause with the given literals, in the given order.
func NewClause(literals []Literal, learnt bool) *Clause {
	c := &Clause{learnt: learnt}
	c.literals = append(c.literals, literals...)
	return c
}

// Literals returns the clause's literals in the order they were added.
func (c *Clause) Literals() []Literal {
	return c.literals
}

// Len returns the number of literals in the clause.
func (c *Clause) Len() int {
	return len(c.literals)
}

// value returns the clause's tri-valued state under s's current assignment:
// True if any literal is True, False if every literal is False (vacuously
// True for the empty clause's absence of a True literal, i.e. the empty
// clause is always False), Unknown otherwise.
func (c *Clause) value(s *Solver) LBool {
	allFalse := true
	for _, l := range c.literals {
		switch s.LitValue(l) {
		case True:
			return True
		case Unknown:
			allFalse = false
		}
	}
	if allFalse {
		return False
	}
	return Unknown
}

// unitLiteral returns the clause's single Unknown literal and true if the
// clause is unit under s's current assignment (exactly one Unknown literal,
// all others False). It returns (0, false) otherwise.
func (c *Clause) unitLiteral(s *Solver) (Literal, bool) {
	unit := Literal(-1)
	found := 0
	for _, l := range c.literals {
		switch s.LitValue(l) {
		case True:
			return 0, false // clause already satisfied, not unit
		case Unknown:
			found++
			if found > 1 {
				return 0, false
			}
			unit = l
		}
	}
	if found == 1 {
		return unit, true
	}
	return 0, false
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}

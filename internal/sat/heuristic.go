package sat

// selectDecisionLiteral picks the next literal to branch on: among every
// currently Unknown variable, the literal whose signed form occurs most
// frequently across all clauses of the current formula (original and
// learned). Ties are broken by the literal's first-seen position while
// scanning the formula, so that runs are reproducible. Returns false if
// every variable is already assigned.
//
// This is intentionally simple — a static recount per decision rather than
// an incrementally maintained activity score (VSIDS) — since it need only
// be correct and adequate for small instances, not competitive.
func (s *Solver) selectDecisionLiteral() (Literal, bool) {
	nLits := 2 * len(s.vars)
	counts := make([]int, nLits)
	firstSeen := make([]int, nLits)
	for i := range firstSeen {
		firstSeen[i] = -1
	}

	pos := 0
	for _, c := range s.formula.All() {
		for _, l := range c.Literals() {
			counts[l]++
			if firstSeen[l] == -1 {
				firstSeen[l] = pos
			}
			pos++
		}
	}

	best := Literal(-1)
	bestCount := -1
	bestSeen := pos // worse than any real first-seen position
	for v := range s.vars {
		if s.vars[v].value != Unknown {
			continue
		}
		for _, lit := range [2]Literal{PositiveLiteral(v), NegativeLiteral(v)} {
			count := counts[lit]
			seen := firstSeen[lit]
			if seen == -1 {
				seen = pos // never occurs in the formula; lowest priority
			}
			if count > bestCount || (count == bestCount && seen < bestSeen) {
				best, bestCount, bestSeen = lit, count, seen
			}
		}
	}

	if best < 0 {
		return 0, false
	}
	return best, true
}

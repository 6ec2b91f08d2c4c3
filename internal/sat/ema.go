package sat

// ema is an exponential moving average used to track the trend of learned
// clause sizes across a solve. It is purely observational: the driver loop
// feeds it every learned clause's length, and the CLI logs its value with
// the other search statistics. It never influences propagation, analysis, or the
// decision heuristic.
type ema struct {
	decay float64
	value float64
	init  bool
}

func newEMA(decay float64) ema {
	return ema{decay: decay}
}

func (e *ema) add(x float64) {
	if !e.init {
		e.init = true
		e.value = x
		return
	}
	e.value = e.decay*e.value + x*(1-e.decay)
}

func (e *ema) val() float64 {
	return e.value
}

package mc

import "math"

const (
	warmupRounds     = 100
	trialCount       = 11
	trialCycles      = 10
	calibrationTol   = 0.005
	calibrationLimit = 100
)

// BracketCode reports how a bracketing round resolved against the
// acceptance target.
type BracketCode int

const (
	// Converged indicates the target acceptance lies strictly within the
	// trial range; TransDelta was narrowed towards it.
	Converged BracketCode = iota
	// TooDense indicates every trial delta under-accepted; the system
	// cannot reach the target acceptance at any of the trialled steps.
	TooDense
	// TooDilute indicates every trial delta over-accepted.
	TooDilute
)

// Calibrate chooses Kernel.TransDelta so its observed acceptance matches
// target within calibrationTol. It first runs the bracketing routine
// warmupRounds times to disrupt any lattice ordering left by the relaxer,
// then iterates bracketing until converged, flagged too-dense/dilute on
// the first iteration, or calibrationLimit iterations pass.
//
// It returns the final bracket code from the converging (or terminating)
// iteration and the measured acceptance probability at that delta.
func (k *Kernel) Calibrate(target float64) (BracketCode, float64) {
	deltaMin := 0.01 * k.Cfg.MinRadius()
	deltaMax := k.Cfg.CellLen_2

	for i := 0; i < warmupRounds; i++ {
		dMin, dMax := deltaMin, deltaMax
		k.bracket(dMin, dMax, target)
	}

	code := Converged
	accProb := 0.0
	for iteration := 0; iteration < calibrationLimit; iteration++ {
		code, accProb = k.bracket(deltaMin, deltaMax, target)

		if code == TooDense && iteration == 0 {
			return code, accProb
		}
		if code == TooDilute && iteration == 0 {
			return code, accProb
		}
		if math.Abs(accProb-target) < calibrationTol {
			return code, accProb
		}
		if iteration == calibrationLimit-1 {
			return code, accProb
		}
	}
	return code, accProb
}

// bracket builds 11 trial deltas geometrically spaced between deltaMin and
// deltaMax, measures each trial's acceptance over trialCycles cycles, then
// either flags the system too dense/dilute or tightens the bracket and sets
// k.TransDelta to its geometric midpoint. It finishes by measuring the
// acceptance at the resulting delta over trialCycles more cycles.
func (k *Kernel) bracket(deltaMin, deltaMax, target float64) (BracketCode, float64) {
	logMin := math.Log10(deltaMin)
	logMax := math.Log10(deltaMax)

	trialDelta := make([]float64, trialCount)
	trialProb := make([]float64, trialCount)
	for i := 0; i < trialCount; i++ {
		trialDelta[i] = math.Pow(10, logMin+float64(i)*(logMax-logMin)/float64(trialCount-1))
	}

	for i := 0; i < trialCount; i++ {
		k.TransDelta = trialDelta[i]
		accCount := 0
		for c := 0; c < trialCycles; c++ {
			accCount += k.Cycle()
		}
		trialProb[i] = float64(accCount) / float64(trialCycles*k.Cfg.N)
	}

	code := Converged
	switch {
	case trialProb[0] < target:
		k.TransDelta = trialDelta[0]
		code = TooDense
	case trialProb[trialCount-1] > target:
		k.TransDelta = trialDelta[trialCount-1]
		code = TooDilute
	default:
		for i := 0; i < trialCount; i++ {
			if trialProb[i] > target {
				deltaMin = trialDelta[i]
			} else if trialProb[i] < target {
				deltaMax = trialDelta[i]
				break
			}
		}
		k.TransDelta = math.Pow(10, 0.5*(math.Log10(deltaMin)+math.Log10(deltaMax)))
	}

	accCount := 0
	for c := 0; c < trialCycles; c++ {
		accCount += k.Cycle()
	}
	accProb := float64(accCount) / float64(trialCycles*k.Cfg.N)

	return code, accProb
}

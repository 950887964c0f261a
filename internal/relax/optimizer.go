package relax

import "math"

// objective evaluates energy and gradient for a trial point, matching the
// signature potential.energyGradient exposes.
type objective interface {
	energyGradient(xy, grad []float64) float64
}

// steepestDescentArmijo minimises an objective by steepest descent with
// Armijo backtracking line search. maxIters bounds the outer loop;
// convergence is declared once either the step or the gradient norm falls
// below tol.
type steepestDescentArmijo struct {
	maxIters  int
	initStep  float64
	tol       float64
}

func newSteepestDescentArmijo(maxIters int, initStep, tol float64) *steepestDescentArmijo {
	return &steepestDescentArmijo{maxIters: maxIters, initStep: initStep, tol: tol}
}

const (
	armijoC     = 1e-4
	armijoShrink = 0.5
	armijoMaxBacktracks = 60
)

// minimise mutates xy in place to a local minimum of obj.
func (o *steepestDescentArmijo) minimise(obj objective, xy []float64) {
	grad := make([]float64, len(xy))
	trial := make([]float64, len(xy))
	step := o.initStep

	energy := obj.energyGradient(xy, grad)

	for iter := 0; iter < o.maxIters; iter++ {
		gradNormSq := 0.0
		for _, g := range grad {
			gradNormSq += g * g
		}
		if gradNormSq < o.tol*o.tol {
			return
		}
		gradNorm := math.Sqrt(gradNormSq)

		// Armijo backtracking along the steepest-descent direction -grad.
		alpha := step
		var newEnergy float64
		accepted := false
		for bt := 0; bt < armijoMaxBacktracks; bt++ {
			for k := range xy {
				trial[k] = xy[k] - alpha*grad[k]
			}
			newGrad := make([]float64, len(xy))
			newEnergy = obj.energyGradient(trial, newGrad)
			if newEnergy <= energy-armijoC*alpha*gradNormSq {
				copy(xy, trial)
				grad = newGrad
				accepted = true
				break
			}
			alpha *= armijoShrink
		}

		if !accepted {
			return
		}

		stepNorm := alpha * gradNorm
		energy = newEnergy
		if stepNorm < o.tol {
			return
		}
	}
}

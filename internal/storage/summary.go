package storage

import (
	"gonum.org/v1/gonum/stat"
)

// Rate is the observed angular velocity of a body over a run, in radians
// per unit of simulated time.
type Rate struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"stddev"`
}

// Summarize computes per-body orbital rates from consecutive frames that
// advanced simulated time.
func Summarize(run *Run) map[string]Rate {
	out := make(map[string]Rate, len(run.Bodies))
	for b, name := range run.Bodies {
		var rates []float64
		for i := 1; i < run.Len(); i++ {
			dt := run.Times[i] - run.Times[i-1]
			if dt <= 0 {
				continue
			}
			rates = append(rates, (run.Angles[i][b]-run.Angles[i-1][b])/dt)
		}
		if len(rates) == 0 {
			out[name] = Rate{}
			continue
		}
		mean, std := stat.MeanStdDev(rates, nil)
		if len(rates) == 1 {
			std = 0
		}
		out[name] = Rate{Mean: mean, StdDev: std}
	}
	return out
}

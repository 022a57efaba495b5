package metrics

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat"
)

var ErrOrderSamples = errors.New("metrics: need at least two positive (h, error) pairs")

// ObservedOrder fits log(err) = c + p*log(h) by least squares and returns
// the slope p, the empirical convergence order. Pairs with a zero error are
// skipped since they carry no slope information.
func ObservedOrder(hs, errs []float64) (float64, error) {
	if len(hs) != len(errs) {
		return 0, ErrOrderSamples
	}

	logH := make([]float64, 0, len(hs))
	logE := make([]float64, 0, len(errs))
	for i := range hs {
		if hs[i] <= 0 || errs[i] <= 0 {
			continue
		}
		logH = append(logH, math.Log(hs[i]))
		logE = append(logE, math.Log(errs[i]))
	}
	if len(logH) < 2 {
		return 0, ErrOrderSamples
	}

	_, slope := stat.LinearRegression(logH, logE, nil, false)
	return slope, nil
}

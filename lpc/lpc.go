// Package lpc implements block-wise linear predictive coding with
// integer-reversible residuals: autocorrelation, Levinson-Durbin
// recursion, and residual computation/restoration. The prediction loop
// mirrors the fixed/FIR predictors FLAC subframes use
// (github.com/pchchv/flac/encode_subframe.go's getLPCResiduals), generalized
// here to floating-point coefficients solved directly from the
// autocorrelation rather than FLAC's quantized integer coefficients.
package lpc

import "math"

// Autocorrelation returns r[0..=order] where
// r[k] = Σ_{i=k}^{n-1} signal[i]*signal[i-k], computed in double precision.
func Autocorrelation(signal []int32, order int) []float64 {
	r := make([]float64, order+1)
	for k := 0; k <= order; k++ {
		var sum float64
		for i := k; i < len(signal); i++ {
			sum += float64(signal[i]) * float64(signal[i-k])
		}
		r[k] = sum
	}
	return r
}

// LevinsonDurbin solves the Yule-Walker equations for order predictor
// coefficients from autocorrelation r. If |r[0]| < 1e-9 the signal carries
// no predictable energy and LevinsonDurbin returns order zero coefficients.
func LevinsonDurbin(r []float64, order int) []float64 {
	if math.Abs(r[0]) < 1e-9 {
		return make([]float64, order)
	}

	a := make([]float64, order+1)
	a[0] = 1.0
	e := r[0]

	for k := 1; k <= order; k++ {
		var lambda float64
		for j := 0; j < k; j++ {
			lambda -= a[j] * r[k-j]
		}
		lambda /= e

		newA := make([]float64, order+1)
		copy(newA, a)
		for j := 1; j < k; j++ {
			newA[j] = a[j] + lambda*a[k-j]
		}
		newA[k] = lambda
		a = newA

		e *= 1 - lambda*lambda
	}

	return a[1:]
}

// ComputeResiduals predicts each sample from the previously *input* samples
// using coeffs (x̂[i] = -Σ coeffs[j]*signal[i-j-1]) and returns
// r[i] = signal[i] - round(x̂[i]), rounding half away from zero.
func ComputeResiduals(signal []int32, coeffs []float64) []int32 {
	residuals := make([]int32, len(signal))
	order := len(coeffs)

	for i := range signal {
		prediction := predict(signal, i, coeffs, order)
		residuals[i] = signal[i] - int32(math.Round(prediction))
	}

	return residuals
}

// RestoreSignal inverts ComputeResiduals, predicting each sample from
// *already reconstructed* samples so that identical rounding on both sides
// makes the transform exactly reversible.
func RestoreSignal(residuals []int32, coeffs []float64) []int32 {
	signal := make([]int32, len(residuals))
	order := len(coeffs)

	for i := range residuals {
		prediction := predict(signal, i, coeffs, order)
		signal[i] = residuals[i] + int32(math.Round(prediction))
	}

	return signal
}

// predict computes x̂[i] = -Σ_{j=0}^{order-1} coeffs[j]*prev[i-j-1], where
// prev is either the input signal (encode) or the reconstructed prefix of
// signal built so far (decode); terms with i<=j contribute zero.
func predict(prev []int32, i int, coeffs []float64, order int) float64 {
	var prediction float64
	for j := 0; j < order; j++ {
		if i > j {
			prediction -= coeffs[j] * float64(prev[i-j-1])
		}
	}
	return prediction
}

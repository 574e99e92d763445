package bgnbd

import "math"

const (
	hypTolerance = 1e-12
	hypMaxTerms  = 10000
)

// hyp2f1 evaluates the Gauss hypergeometric function 2F1(a, b; c; z) by its
// power series. The BG/NBD expressions only ever need z in [0, 1); when z is
// close to 1 the series is first rebased through the Euler transformation
// 2F1(a,b;c;z) = (1-z)^(c-a-b) * 2F1(c-a, c-b; c; z), which keeps the tail
// converging at a usable rate for long prediction horizons.
func hyp2f1(a, b, c, z float64) float64 {
	if z == 0 {
		return 1
	}
	if z > 0.75 && z < 1 {
		return math.Pow(1-z, c-a-b) * hypSeries(c-a, c-b, c, z)
	}
	return hypSeries(a, b, c, z)
}

func hypSeries(a, b, c, z float64) float64 {
	term := 1.0
	sum := 1.0
	for n := 0; n < hypMaxTerms; n++ {
		fn := float64(n)
		term *= (a + fn) * (b + fn) / ((c + fn) * (fn + 1)) * z
		sum += term
		if math.Abs(term) < hypTolerance*math.Abs(sum) {
			break
		}
	}
	return sum
}

package features

import "math"

// fft performs an in-place radix-2 Cooley-Tukey FFT.
// re and im must have the same power-of-2 length.
func fft(re, im []float64) {
	n := len(re)
	if n <= 1 {
		return
	}

	// Bit-reversal permutation
	j := 0
	for i := 0; i < n-1; i++ {
		if i < j {
			re[i], re[j] = re[j], re[i]
			im[i], im[j] = im[j], im[i]
		}
		k := n >> 1
		for k <= j {
			j -= k
			k >>= 1
		}
		j += k
	}

	for size := 2; size <= n; size <<= 1 {
		half := size >> 1
		angle := -2.0 * math.Pi / float64(size)
		wR, wI := math.Cos(angle), math.Sin(angle)

		for start := 0; start < n; start += size {
			tR, tI := 1.0, 0.0
			for k := 0; k < half; k++ {
				u := start + k
				v := u + half

				xR := tR*re[v] - tI*im[v]
				xI := tR*im[v] + tI*re[v]
				re[v] = re[u] - xR
				im[v] = im[u] - xI
				re[u] += xR
				im[u] += xI

				tR, tI = tR*wR-tI*wI, tR*wI+tI*wR
			}
		}
	}
}

// hannWindow generates a periodic Hann window of length n.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n))
	}
	return w
}

func isPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

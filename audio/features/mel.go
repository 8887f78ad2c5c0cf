package features

import "math"

// hzToMel converts frequency in Hz to mel scale.
func hzToMel(hz float64) float64 {
	return 2595.0 * math.Log10(1.0+hz/700.0)
}

// melToHz converts mel scale frequency back to Hz.
func melToHz(mel float64) float64 {
	return 700.0 * (math.Pow(10.0, mel/2595.0) - 1.0)
}

// melFilterBank creates triangular filters, [numMels][fftSize/2+1].
func melFilterBank(numMels, fftSize, sampleRate int, lowFreq, highFreq float64) [][]float64 {
	bins := fftSize/2 + 1
	lowMel, highMel := hzToMel(lowFreq), hzToMel(highFreq)

	// numMels + 2 equally spaced mel points, expressed in Hz
	points := make([]float64, numMels+2)
	step := (highMel - lowMel) / float64(numMels+1)
	for i := range points {
		points[i] = melToHz(lowMel + float64(i)*step)
	}

	binHz := float64(sampleRate) / float64(fftSize)
	bank := make([][]float64, numMels)
	for m := 0; m < numMels; m++ {
		left, center, right := points[m], points[m+1], points[m+2]
		filter := make([]float64, bins)
		for k := 0; k < bins; k++ {
			f := float64(k) * binHz
			switch {
			case f > left && f <= center:
				filter[k] = (f - left) / (center - left)
			case f > center && f < right:
				filter[k] = (right - f) / (right - center)
			}
		}
		bank[m] = filter
	}
	return bank
}

// dctMatrix returns the first numCoeffs rows of an orthonormal DCT-II over n inputs.
func dctMatrix(numCoeffs, n int) [][]float64 {
	m := make([][]float64, numCoeffs)
	for k := 0; k < numCoeffs; k++ {
		scale := math.Sqrt(2.0 / float64(n))
		if k == 0 {
			scale = math.Sqrt(1.0 / float64(n))
		}
		row := make([]float64, n)
		for i := 0; i < n; i++ {
			row[i] = scale * math.Cos(math.Pi*float64(k)*(float64(i)+0.5)/float64(n))
		}
		m[k] = row
	}
	return m
}

// powerToDB converts power to decibels, floored at amin and clipped to
// topDB below the loudest value across all frames.
func powerToDB(frames [][]float64, amin, topDB float64) {
	peak := math.Inf(-1)
	for _, frame := range frames {
		for i, v := range frame {
			db := 10 * math.Log10(math.Max(amin, v))
			frame[i] = db
			if db > peak {
				peak = db
			}
		}
	}
	floor := peak - topDB
	for _, frame := range frames {
		for i, v := range frame {
			if v < floor {
				frame[i] = floor
			}
		}
	}
}

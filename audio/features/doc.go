// Package features extracts the per-clip voice statistics used by the
// heuristic classifier: pitch, spectral centroid and rolloff, zero-crossing
// rate, RMS energy and MFCC variation.
//
// Frames are analysed with a Hann-windowed radix-2 FFT. Defaults follow the
// usual speech analysis front-end at 16 kHz: 2048-sample frames, 512-sample
// hop, 13 MFCCs over 128 mel bands and an 85% rolloff point.
package features

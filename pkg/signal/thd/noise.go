package thd

import "math"

// guardBins is the half-width of the exclusion band around DC, the
// fundamental, and each harmonic. It covers the Hann/Hamming mainlobe so
// window leakage is not counted as noise.
const guardBins = 3

// noiseMetrics computes SNR and the average per-bin noise floor, both in
// dB relative to the fundamental. Noise is every bin outside the guard
// bands around DC, the fundamental, and the harmonics up to nharm.
func noiseMetrics(spec spectrum, fundBin, nharm int) (snrDB, floorDB float64) {
	fundAmp := spec.mags[fundBin]
	if fundAmp <= 0 {
		return math.NaN(), math.NaN()
	}

	centers := append([]int{0, fundBin}, spec.harmonicBins(fundBin, nharm)...)
	excluded := make(map[int]struct{}, len(centers)*(2*guardBins+1))
	for _, c := range centers {
		for i := c - guardBins; i <= c+guardBins; i++ {
			if i >= 0 && i < len(spec.mags) {
				excluded[i] = struct{}{}
			}
		}
	}

	sumSquares := 0.0
	count := 0
	for i, mag := range spec.mags {
		if _, skip := excluded[i]; skip {
			continue
		}
		sumSquares += mag * mag
		count++
	}

	if count == 0 {
		return math.NaN(), math.NaN()
	}
	if sumSquares <= 0 {
		return math.Inf(1), math.Inf(-1)
	}

	noiseRMS := math.Sqrt(sumSquares / float64(count))
	snrDB = 10 * math.Log10(fundAmp*fundAmp/sumSquares)
	floorDB = 20 * math.Log10(noiseRMS/fundAmp)
	return snrDB, floorDB
}

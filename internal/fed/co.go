package fed

import (
	"math"

	"tenability/internal/models"
)

const (
	coDoseConstant       = 35000.0 // ppm·min
	co2PotentiationLimit = 2.0     // %
	hypoxiaLimit         = 13.0    // % O2
	ambientO2            = 20.9    // %
)

// ComputeCO integrates FED for carbon monoxide along p. Each segment's walk
// begins at its second sample pair.
func ComputeCO(src SeriesSource, p Path, prm Params) (models.FEDSeries, error) {
	h := prm.MonitoringHeight
	return integrate(src, p, prm, 1, func(string) (stepFunc, error) {
		return func(a, b models.Sample) float64 {
			co2, co, o2 := speciesAt(a, b, Classify(a, b, h))
			return COIncrement(co2, co, o2, minutes(a, b))
		}, nil
	})
}

// speciesAt averages CO2 (%), CO (ppm) and O2 (%) over a step in the given layer.
func speciesAt(a, b models.Sample, l Layer) (co2, co, o2 float64) {
	if l == LowerLayer {
		return mean(a.CO2Lower, b.CO2Lower), mean(a.COLower, b.COLower), mean(a.O2Lower, b.O2Lower)
	}
	return mean(a.CO2Upper, b.CO2Upper), mean(a.COUpper, b.COUpper), mean(a.O2Upper, b.O2Upper)
}

// Potentiation is the CO2 hyperventilation factor applied to the CO uptake.
func Potentiation(co2 float64) float64 {
	if co2 > co2PotentiationLimit {
		return math.Exp(co2 / 5)
	}
	return 1
}

// HypoxiaIncrement is the low-oxygen dose over dtMin minutes, zero at or above 13 % O2.
func HypoxiaIncrement(o2, dtMin float64) float64 {
	if o2 < hypoxiaLimit {
		return dtMin / math.Exp(8.13-0.54*(ambientO2-o2))
	}
	return 0
}

// COIncrement is the toxic dose of one step of dtMin minutes.
func COIncrement(co2, co, o2, dtMin float64) float64 {
	return co*dtMin*Potentiation(co2)/coDoseConstant + HypoxiaIncrement(o2, dtMin)
}

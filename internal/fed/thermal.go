package fed

import (
	"math"

	"tenability/internal/models"
)

const (
	stefanBoltzmann    = 5.67e-8 // W/m²K⁴
	upperEmissivity    = 1.0
	tenableGasTemp     = 25.0   // °C
	tenableFlux        = 2500.0 // W/m²
	nonIncapacitating  = 9e9    // min
	convectiveConstant = 5e7
)

// ComputeThermal integrates convective plus radiative FED along p. Each
// segment's walk begins at its first sample pair.
func ComputeThermal(src SeriesSource, geom GeometrySource, p Path, prm Params) (models.FEDSeries, error) {
	h := prm.MonitoringHeight
	return integrate(src, p, prm, 0, func(room string) (stepFunc, error) {
		g, err := geom.Geometry(room)
		if err != nil {
			return nil, err
		}
		return func(a, b models.Sample) float64 {
			upper := mean(a.UpperLayerTemp, b.UpperLayerTemp)
			gas, vf := upper, 1.0
			if Classify(a, b, h) == LowerLayer {
				gas = mean(a.LowerLayerTemp, b.LowerLayerTemp)
				vf = ViewFactor(g.Length, g.Width, mean(a.LayerHeight, b.LayerHeight)-h)
			}
			return ThermalIncrement(gas, RadiativeFlux(vf, upper), minutes(a, b))
		}, nil
	})
}

// ViewFactor from a rectangular layer of length × width to a point d below its centre.
func ViewFactor(length, width, d float64) float64 {
	a := length / (2 * d)
	b := width / (2 * d)
	ra := math.Sqrt(1 + a*a)
	rb := math.Sqrt(1 + b*b)
	return (2 / math.Pi) * ((a/ra)*math.Atan(b/ra) + (b/rb)*math.Atan(a/rb))
}

// RadiativeFlux is the heat flux in W/m² received from the upper layer at upperTemp °C.
func RadiativeFlux(viewFactor, upperTemp float64) float64 {
	return viewFactor * upperEmissivity * stefanBoltzmann * math.Pow(upperTemp+273, 4)
}

// ConvectiveTime is the time to incapacitation in minutes from gas at gasTemp °C.
func ConvectiveTime(gasTemp float64) float64 {
	if gasTemp < tenableGasTemp {
		return nonIncapacitating
	}
	return convectiveConstant * math.Pow(gasTemp, -3.4)
}

// RadiativeTime is the time to incapacitation in minutes under flux q W/m².
func RadiativeTime(q float64) float64 {
	if q < tenableFlux {
		return nonIncapacitating
	}
	return 6.9 * math.Pow(q/1000, -1.56)
}

// ThermalIncrement is the thermal dose of one step of dtMin minutes.
func ThermalIncrement(gasTemp, q, dtMin float64) float64 {
	return (1/ConvectiveTime(gasTemp) + 1/RadiativeTime(q)) * dtMin
}

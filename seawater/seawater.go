// Package seawater provides the seawater density relations needed for
// temperature-salinity diagrams: the UNESCO 1983 (EOS-80) one-atmosphere
// equation of state and the reference-composition salinity scale factor.
package seawater

import "math"

// AbsoluteSalinity converts practical salinity to absolute salinity in
// g/kg using the reference-composition scale factor (Millero et al. 2008).
func AbsoluteSalinity(sp float64) float64 {
	return sp * 35.16504 / 35.0
}

// Density returns seawater density in kg/m^3 at atmospheric pressure for
// practical salinity s and temperature t in degrees Celsius, following the
// UNESCO 1983 polynomial. Check value: Density(35, 5) = 1027.67547.
func Density(s, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	t4 := t3 * t
	t5 := t4 * t

	// Density of pure water (Bigg 1967).
	rhoW := 999.842594 +
		6.793952e-2*t -
		9.095290e-3*t2 +
		1.001685e-4*t3 -
		1.120083e-6*t4 +
		6.536332e-9*t5

	a := 8.24493e-1 -
		4.0899e-3*t +
		7.6438e-5*t2 -
		8.2467e-7*t3 +
		5.3875e-9*t4

	b := -5.72466e-3 +
		1.0227e-4*t -
		1.6546e-6*t2

	const c = 4.8314e-4

	return rhoW + a*s + b*s*math.Sqrt(s) + c*s*s
}

// Sigma0 returns the surface-referenced density anomaly sigma-theta in
// kg/m^3, the quantity contoured on TS diagrams.
func Sigma0(s, t float64) float64 {
	return Density(s, t) - 1000
}

package interp

// Linear2 blends x0 and x1 by frac in [0,1]:
//
//	x0*(1-frac) + x1*frac
//
// The two-term form (rather than x0 + frac*(x1-x0)) returns x0 exactly at
// frac 0 and x1 exactly at frac 1.
func Linear2(frac, x0, x1 float32) float32 {
	return x0*(1-frac) + x1*frac
}

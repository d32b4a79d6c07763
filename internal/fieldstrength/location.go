package fieldstrength

import "math"

// LocationCorrection holds the GE06 location statistics: the two
// standard deviations, their combination, the distribution factor mu and
// the resulting correction Cl.
type LocationCorrection struct {
	SigmaBuildingDB float64
	SigmaMacroDB    float64
	SigmaTotalDB    float64
	Mu              float64
	CorrectionDB    float64 // Cl
}

// computeLocationCorrection derives the correction for a validated
// profile:
//
//	sigma_total = sqrt(sigma_b^2 + sigma_m^2)
//	mu          = Qi(1 - p)
//	Cl          = mu * sigma_total
//
// sigma_b defaults to the Table 27 value for indoor UHF reception and
// zero otherwise; both sigmas are independently overridable, but the
// combination formula always runs.
func computeLocationCorrection(p Profile, cats Categories) LocationCorrection {
	var lc LocationCorrection

	switch {
	case p.Overrides.SigmaBuildingDB != nil:
		lc.SigmaBuildingDB = *p.Overrides.SigmaBuildingDB
	case cats.BuildingLossApplies && p.Band() == BandIVV:
		lc.SigmaBuildingDB = buildingTable[p.Building].SigmaDB
	}

	lc.SigmaMacroDB = DefaultSigmaMacroDB
	if v := p.Overrides.SigmaMacroDB; v != nil {
		lc.SigmaMacroDB = *v
	}

	lc.SigmaTotalDB = math.Sqrt(lc.SigmaBuildingDB*lc.SigmaBuildingDB + lc.SigmaMacroDB*lc.SigmaMacroDB)
	lc.Mu = qi(1.0 - p.LocationProbability)
	lc.CorrectionDB = lc.Mu * lc.SigmaTotalDB

	return lc
}

// qi approximates the inverse complementary cumulative normal
// distribution per the GE06 Final Acts A.2.1.12, equations (26a-d).
// The caller guarantees 0.01 <= x <= 0.99.
func qi(x float64) float64 {
	if x <= 0.5 {
		return qiT(x) - qiXi(x)
	}
	y := 1.0 - x
	return -(qiT(y) - qiXi(y))
}

// qiT is T(z) = sqrt(-2 ln z) from (26c).
func qiT(z float64) float64 {
	return math.Sqrt(-2.0 * math.Log(z))
}

// qiXi is the rational term of (26d).
func qiXi(z float64) float64 {
	const (
		c0, c1, c2 = 2.515517, 0.802853, 0.010328
		d1, d2, d3 = 1.432788, 0.189269, 0.001308
	)
	t := qiT(z)
	num := c0 + c1*t + c2*t*t
	den := 1.0 + d1*t + d2*t*t + d3*t*t*t
	return num / den
}

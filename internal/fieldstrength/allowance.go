package fieldstrength

import "fmt"

// Allowances are the three additive corrections applied on top of Emin:
// man-made noise, receive height loss and building entry loss.
type Allowances struct {
	ManMadeNoiseDB float64 // Pmmn
	HeightLossDB   float64 // Lh
	BuildingLossDB float64 // Lb
}

// computeAllowances resolves the allowances for a profile. Overrides
// bypass the lookup but not the applicability gating: an allowance that
// does not apply to the mode stays zero unless the caller explicitly
// overrides it (building loss for non-PI modes is rejected earlier, in
// validation).
func computeAllowances(p Profile, cats Categories) (Allowances, error) {
	var a Allowances

	pmmn, ok := mmnTable[mmnKey{p.Environment, p.Band(), cats.MMN}]
	if !ok {
		return Allowances{}, fmt.Errorf("%w: man-made noise for env=%v band=%v category=%v",
			ErrUnknownCategory, p.Environment, p.Band(), cats.MMN)
	}
	a.ManMadeNoiseDB = pmmn

	switch {
	case p.Overrides.HeightLossDB != nil:
		a.HeightLossDB = *p.Overrides.HeightLossDB
	case cats.HeightLossApplies && p.Band() == BandIVV:
		a.HeightLossDB = interpLogFreq(heightLossUHF[p.Environment], p.FreqMHz)
	}

	switch {
	case p.Overrides.BuildingLossDB != nil:
		a.BuildingLossDB = *p.Overrides.BuildingLossDB
	case cats.BuildingLossApplies && p.Band() == BandIVV:
		entry, ok := buildingTable[p.Building]
		if !ok {
			return Allowances{}, fmt.Errorf("%w: building class %v", ErrUnknownCategory, p.Building)
		}
		a.BuildingLossDB = entry.LossDB
	}

	return a, nil
}

package fieldstrength

import "fmt"

// Evaluate runs the full calculation chain for a profile and returns the
// line-item breakdown ending in E_med. The profile is validated first;
// every error path fires before any table lookup or arithmetic, so a
// returned Result is always complete.
func Evaluate(p Profile) (*Result, error) {
	r, _, err := EvaluateDetailed(p)
	return r, err
}

// EvaluateDetailed is Evaluate plus the category and operand diagnostics
// that the summary output does not print.
func EvaluateDetailed(p Profile) (*Result, Diagnostics, error) {
	if err := validateProfile(p); err != nil {
		return nil, Diagnostics{}, err
	}

	cats, err := SelectCategories(p)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	lb, err := computeLinkBudget(p, cats)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	allow, err := computeAllowances(p, cats)
	if err != nil {
		return nil, Diagnostics{}, err
	}

	loc := computeLocationCorrection(p, cats)

	r := &Result{
		FreqMHz:         p.FreqMHz,
		Band:            p.Band().String(),
		ReceptionMode:   p.Mode.String(),
		ReceiverType:    p.Receiver.String(),
		HandheldAntenna: p.Antenna.String(),
		Environment:     p.Environment.String(),
		Modulation:      p.Modulation.String(),
		CodeRate:        p.CodeRate.String(),

		CNRequiredDB:        lb.CNRequiredDB,
		NoisePowerDBW:       lb.NoisePowerDBW,
		MinReceiverPowerDBW: lb.MinReceiverPowerDBW,
		AntennaGainDBD:      lb.AntennaGainDBD,
		FeederLossDB:        lb.FeederLossDB,
		ApertureDBM2:        lb.ApertureDBM2,
		MinPFDDBWPerM2:      lb.MinPFDDBWPerM2,
		EminDBuVPerM:        lb.EminDBuVPerM,

		ManMadeNoiseDB: allow.ManMadeNoiseDB,
		HeightLossDB:   allow.HeightLossDB,
		BuildingLossDB: allow.BuildingLossDB,

		SigmaTotalDB: loc.SigmaTotalDB,
		Mu:           loc.Mu,
		CorrectionDB: loc.CorrectionDB,
	}

	// E_med = Emin + Pmmn + Cl, plus the allowances the mode carries.
	r.EmedDBuVPerM = r.EminDBuVPerM + r.ManMadeNoiseDB + r.CorrectionDB +
		r.HeightLossDB + r.BuildingLossDB

	diag := Diagnostics{
		Fading:              cats.Fading,
		Gain:                cats.Gain,
		MMN:                 cats.MMN,
		NoiseFigureDB:       lb.NoiseFigureDB,
		NoiseBandwidthHz:    lb.NoiseBandwidthHz,
		SigmaBuildingDB:     loc.SigmaBuildingDB,
		SigmaMacroDB:        loc.SigmaMacroDB,
		LocationProbability: p.LocationProbability,
		HeightLossApplies:   cats.HeightLossApplies,
		BuildingLossApplies: cats.BuildingLossApplies,
	}
	if cats.Gain == GainHandheld && p.Band() == BandIVV && p.Overrides.AntennaGainDBD == nil {
		diag.GainAnchors = handheldGainUHF
	}
	if cats.HeightLossApplies && p.Band() == BandIVV && p.Overrides.HeightLossDB == nil {
		diag.HeightLossAnchors = heightLossUHF[p.Environment]
	}
	return r, diag, nil
}

// validateProfile rejects tag combinations the tables do not define.
// All structural checks run before any numeric work so that error
// behavior does not depend on frequency or overrides.
func validateProfile(p Profile) error {
	if p.FreqMHz <= 0 {
		return fmt.Errorf("%w: frequency %g MHz", ErrInvalidCombination, p.FreqMHz)
	}

	portable := p.Mode == ModePO || p.Mode == ModePI
	if portable && p.Receiver == ReceiverNone {
		return fmt.Errorf("%w: mode %v requires a receiver type", ErrInvalidCombination, p.Mode)
	}
	if !portable && p.Receiver != ReceiverNone {
		return fmt.Errorf("%w: receiver type %v is meaningless for mode %v",
			ErrInvalidCombination, p.Receiver, p.Mode)
	}

	handheld := p.Receiver == ReceiverHandheld
	if handheld && p.Antenna == AntennaNone {
		return fmt.Errorf("%w: handheld receiver requires an antenna type", ErrInvalidCombination)
	}
	if !handheld && p.Antenna != AntennaNone {
		return fmt.Errorf("%w: antenna type %v is meaningless for receiver %v",
			ErrInvalidCombination, p.Antenna, p.Receiver)
	}

	if p.Mode == ModePI && p.Building == BuildingNone {
		return fmt.Errorf("%w: mode PI requires a building class", ErrInvalidCombination)
	}
	if p.Mode != ModePI && p.Building != BuildingNone {
		return fmt.Errorf("%w: building class %v is meaningless for mode %v",
			ErrInvalidCombination, p.Building, p.Mode)
	}
	if p.Mode != ModePI && p.Overrides.BuildingLossDB != nil {
		return fmt.Errorf("%w: building loss override for mode %v", ErrInvalidCombination, p.Mode)
	}

	if p.LocationProbability < 0.01 || p.LocationProbability > 0.99 {
		return fmt.Errorf("%w: %g", ErrOutOfRangeProbability, p.LocationProbability)
	}

	return nil
}

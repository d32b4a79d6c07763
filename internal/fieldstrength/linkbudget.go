package fieldstrength

import (
	"fmt"
	"math"
)

// LinkBudget holds every quantity of the Attachment-1 receiver chain,
// from noise power up to the minimum equivalent field strength.
type LinkBudget struct {
	NoiseFigureDB    float64
	NoiseBandwidthHz float64

	CNRequiredDB        float64
	NoisePowerDBW       float64 // Pn
	MinReceiverPowerDBW float64 // Ps_min
	AntennaGainDBD      float64 // G
	FeederLossDB        float64 // Lf
	ApertureDBM2        float64 // Aa
	MinPFDDBWPerM2      float64 // Phi_min
	EminDBuVPerM        float64 // Emin
}

// computeLinkBudget runs the sequential chain
//
//	Pn     = F + 10 log10(k T0 B)
//	Ps_min = C/N + Pn
//	Aa     = G + 10 log10(1.64 lambda^2 / 4pi)
//	Phi    = Ps_min - Aa + Lf
//	Emin   = Phi + 145.8
//
// Overrides substitute individual operands (F, B, G, Lf); no step is
// ever skipped.
func computeLinkBudget(p Profile, cats Categories) (LinkBudget, error) {
	lb := LinkBudget{
		NoiseFigureDB:    DefaultNoiseFigureDB,
		NoiseBandwidthHz: DefaultNoiseBandwidthHz,
	}
	if v := p.Overrides.NoiseFigureDB; v != nil {
		lb.NoiseFigureDB = *v
	}
	if v := p.Overrides.NoiseBandwidthHz; v != nil {
		lb.NoiseBandwidthHz = *v
	}

	cn, err := requiredCN(p.Modulation, p.CodeRate, cats.Fading)
	if err != nil {
		return LinkBudget{}, err
	}
	lb.CNRequiredDB = cn

	lb.NoisePowerDBW = lb.NoiseFigureDB + db10(boltzmann*noiseTempK*lb.NoiseBandwidthHz)
	lb.MinReceiverPowerDBW = lb.CNRequiredDB + lb.NoisePowerDBW

	if v := p.Overrides.AntennaGainDBD; v != nil {
		lb.AntennaGainDBD = *v
	} else {
		g, err := antennaGain(cats.Gain, p.Band(), p.FreqMHz)
		if err != nil {
			return LinkBudget{}, err
		}
		lb.AntennaGainDBD = g
	}

	if v := p.Overrides.FeederLossDB; v != nil {
		lb.FeederLossDB = *v
	} else if cats.Gain == GainFixed {
		lb.FeederLossDB = fixedFeederLoss[p.Band()]
	}

	wavelength := speedOfLight / (p.FreqMHz * 1e6)
	lb.ApertureDBM2 = lb.AntennaGainDBD + db10(dipoleGainFactor*wavelength*wavelength/(4.0*math.Pi))

	lb.MinPFDDBWPerM2 = lb.MinReceiverPowerDBW - lb.ApertureDBM2 + lb.FeederLossDB
	lb.EminDBuVPerM = lb.MinPFDDBWPerM2 + pfdToFieldDB

	return lb, nil
}

// requiredCN returns the Table 2 C/N for the exact (modulation, code
// rate) pair under the given fading model.
func requiredCN(mod Modulation, rate CodeRate, fading FadingModel) (float64, error) {
	entry, ok := cnTable[cnKey{mod, rate}]
	if !ok {
		return 0, fmt.Errorf("%w: %v %v", ErrUnsupportedModulationCodeRate, mod, rate)
	}
	switch fading {
	case FadingRicean:
		return entry.Ricean, nil
	case FadingRayleigh:
		return entry.Rayleigh, nil
	default:
		return 0, fmt.Errorf("%w: fading model %v", ErrUnknownCategory, fading)
	}
}

// antennaGain resolves the default gain for a category and band.
// Handheld UHF gain is interpolated over the Table 29 anchors with the
// log-frequency rule; every other entry is a per-band constant.
func antennaGain(cat GainCategory, band Band, freqMHz float64) (float64, error) {
	switch cat {
	case GainFixed:
		return fixedGain[band], nil
	case GainPortable:
		return portableGain[band], nil
	case GainMobile:
		return mobileGain[band], nil
	case GainHandheld:
		if band == BandIII {
			return handheldGainVHF, nil
		}
		return interpLogFreq(handheldGainUHF, freqMHz), nil
	default:
		return 0, fmt.Errorf("%w: gain category %v", ErrUnknownCategory, cat)
	}
}

func db10(x float64) float64 { return 10.0 * math.Log10(x) }

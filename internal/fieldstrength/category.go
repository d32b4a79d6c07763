package fieldstrength

import "fmt"

// FadingModel selects the C/N column of Table 2.
type FadingModel int

const (
	// FadingRicean applies to fixed rooftop reception.
	FadingRicean FadingModel = iota
	// FadingRayleigh applies to portable and mobile reception.
	FadingRayleigh
)

func (f FadingModel) String() string {
	if f == FadingRicean {
		return "Ricean"
	}
	return "Rayleigh"
}

// MMNCategory is the man-made-noise antenna category of BT.2033-2
// Tables 31-32.
type MMNCategory int

const (
	MMNRooftop MMNCategory = iota
	MMNAdapted
	MMNIntegrated
	MMNExternal
)

func (c MMNCategory) String() string {
	switch c {
	case MMNRooftop:
		return "rooftop"
	case MMNAdapted:
		return "adapted"
	case MMNIntegrated:
		return "integrated"
	case MMNExternal:
		return "external"
	default:
		return "UNKNOWN"
	}
}

// GainCategory selects the antenna gain table.
type GainCategory int

const (
	GainFixed GainCategory = iota
	GainPortable
	GainHandheld
	GainMobile
)

func (g GainCategory) String() string {
	switch g {
	case GainFixed:
		return "fixed"
	case GainPortable:
		return "portable"
	case GainHandheld:
		return "handheld"
	case GainMobile:
		return "mobile"
	default:
		return "UNKNOWN"
	}
}

// Categories is the full table-selection outcome for a profile: which
// C/N column, gain table and man-made-noise row apply, and whether the
// height-loss and building-loss allowances participate in E_med.
type Categories struct {
	Fading              FadingModel
	Gain                GainCategory
	MMN                 MMNCategory
	HeightLossApplies   bool
	BuildingLossApplies bool
}

// SelectCategories maps a validated profile to its table categories.
// The mapping is exhaustive over (mode, receiver, antenna); any tag
// combination that survives validation but matches no case is reported
// as ErrUnknownCategory.
func SelectCategories(p Profile) (Categories, error) {
	switch p.Mode {
	case ModeFX:
		return Categories{
			Fading: FadingRicean,
			Gain:   GainFixed,
			MMN:    MMNRooftop,
		}, nil

	case ModeMO:
		return Categories{
			Fading:            FadingRayleigh,
			Gain:              GainMobile,
			MMN:               MMNAdapted,
			HeightLossApplies: true,
		}, nil

	case ModePO, ModePI:
		cats := Categories{
			Fading:              FadingRayleigh,
			HeightLossApplies:   true,
			BuildingLossApplies: p.Mode == ModePI,
		}
		switch p.Receiver {
		case ReceiverPortable:
			cats.Gain = GainPortable
			cats.MMN = MMNIntegrated
		case ReceiverHandheld:
			cats.Gain = GainHandheld
			if p.Antenna == AntennaExternal {
				cats.MMN = MMNExternal
			} else {
				cats.MMN = MMNIntegrated
			}
		default:
			return Categories{}, fmt.Errorf("%w: receiver type %v for mode %v",
				ErrUnknownCategory, p.Receiver, p.Mode)
		}
		return cats, nil

	default:
		return Categories{}, fmt.Errorf("%w: reception mode %v", ErrUnknownCategory, p.Mode)
	}
}

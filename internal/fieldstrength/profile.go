// Package fieldstrength implements the ITU-R BT.2033-2 / GE06 minimum
// field-strength calculation chain for DVB-T2 coverage planning.
//
// The pipeline turns a reception scenario (frequency, environment,
// modulation, code rate, reception mode, receiver and antenna type) into
// the minimum median equivalent field strength E_med, producing every
// intermediate line item of BT.2033-2 Tables 12 and 13 along the way:
// required C/N, receiver noise power Pn, minimum input power Ps_min,
// effective aperture Aa, minimum power flux density Phi_min, minimum
// field strength Emin, man-made-noise / height / building allowances,
// and the GE06 location correction Cl.
//
// Every computation is a pure function of a Profile and the static
// reference tables; concurrent evaluation of independent profiles is
// safe without locking.
package fieldstrength

import "fmt"

// Mode is the reception mode of a planning scenario.
type Mode int

const (
	// ModeFX is fixed rooftop reception.
	ModeFX Mode = iota
	// ModePO is portable outdoor reception.
	ModePO
	// ModePI is portable indoor reception.
	ModePI
	// ModeMO is mobile reception.
	ModeMO
)

func (m Mode) String() string {
	switch m {
	case ModeFX:
		return "FX"
	case ModePO:
		return "PO"
	case ModePI:
		return "PI"
	case ModeMO:
		return "MO"
	default:
		return "UNKNOWN"
	}
}

// ParseMode parses a reception mode name (case-sensitive, as the ITU text
// writes them).
func ParseMode(s string) (Mode, error) {
	switch s {
	case "FX":
		return ModeFX, nil
	case "PO":
		return ModePO, nil
	case "PI":
		return ModePI, nil
	case "MO":
		return ModeMO, nil
	default:
		return 0, fmt.Errorf("%w: reception mode %q", ErrInvalidCombination, s)
	}
}

// Environment selects the man-made-noise and height-loss tables.
type Environment int

const (
	EnvUrban Environment = iota
	EnvRural
)

func (e Environment) String() string {
	if e == EnvRural {
		return "rural"
	}
	return "urban"
}

// ParseEnvironment parses "urban" or "rural".
func ParseEnvironment(s string) (Environment, error) {
	switch s {
	case "urban":
		return EnvUrban, nil
	case "rural":
		return EnvRural, nil
	default:
		return 0, fmt.Errorf("%w: environment %q", ErrInvalidCombination, s)
	}
}

// ReceiverType distinguishes portable from handheld receivers. It is
// meaningful only for PO and PI modes; FX and MO carry ReceiverNone.
type ReceiverType int

const (
	ReceiverNone ReceiverType = iota
	ReceiverPortable
	ReceiverHandheld
)

func (r ReceiverType) String() string {
	switch r {
	case ReceiverPortable:
		return "portable"
	case ReceiverHandheld:
		return "handheld"
	default:
		return "-"
	}
}

// ParseReceiverType parses "portable" or "handheld".
func ParseReceiverType(s string) (ReceiverType, error) {
	switch s {
	case "portable":
		return ReceiverPortable, nil
	case "handheld":
		return ReceiverHandheld, nil
	default:
		return 0, fmt.Errorf("%w: receiver type %q", ErrInvalidCombination, s)
	}
}

// AntennaType distinguishes the integrated from the external antenna of a
// handheld receiver. Non-handheld scenarios carry AntennaNone.
type AntennaType int

const (
	AntennaNone AntennaType = iota
	AntennaIntegrated
	AntennaExternal
)

func (a AntennaType) String() string {
	switch a {
	case AntennaIntegrated:
		return "integrated"
	case AntennaExternal:
		return "external"
	default:
		return "-"
	}
}

// ParseAntennaType parses "integrated" or "external".
func ParseAntennaType(s string) (AntennaType, error) {
	switch s {
	case "integrated":
		return AntennaIntegrated, nil
	case "external":
		return AntennaExternal, nil
	default:
		return 0, fmt.Errorf("%w: handheld antenna type %q", ErrInvalidCombination, s)
	}
}

// BuildingClass is the BT.2033-2 Table 27 building category for portable
// indoor reception. Non-PI scenarios carry BuildingNone.
type BuildingClass int

const (
	BuildingNone BuildingClass = iota
	BuildingHigh
	BuildingMedium
	BuildingLow
)

func (b BuildingClass) String() string {
	switch b {
	case BuildingHigh:
		return "high"
	case BuildingMedium:
		return "medium"
	case BuildingLow:
		return "low"
	default:
		return "-"
	}
}

// ParseBuildingClass parses "high", "medium" or "low".
func ParseBuildingClass(s string) (BuildingClass, error) {
	switch s {
	case "high":
		return BuildingHigh, nil
	case "medium":
		return BuildingMedium, nil
	case "low":
		return BuildingLow, nil
	default:
		return 0, fmt.Errorf("%w: building class %q", ErrInvalidCombination, s)
	}
}

// Modulation is the DVB-T2 constellation.
type Modulation int

const (
	ModQPSK Modulation = iota
	Mod16QAM
	Mod64QAM
	Mod256QAM
)

func (m Modulation) String() string {
	switch m {
	case ModQPSK:
		return "QPSK"
	case Mod16QAM:
		return "16QAM"
	case Mod64QAM:
		return "64QAM"
	case Mod256QAM:
		return "256QAM"
	default:
		return "UNKNOWN"
	}
}

// ParseModulation parses a constellation name.
func ParseModulation(s string) (Modulation, error) {
	switch s {
	case "QPSK":
		return ModQPSK, nil
	case "16QAM":
		return Mod16QAM, nil
	case "64QAM":
		return Mod64QAM, nil
	case "256QAM":
		return Mod256QAM, nil
	default:
		return 0, fmt.Errorf("%w: modulation %q", ErrUnsupportedModulationCodeRate, s)
	}
}

// CodeRate is the DVB-T2 FEC code rate.
type CodeRate int

const (
	Rate1of2 CodeRate = iota
	Rate3of5
	Rate2of3
	Rate3of4
	Rate4of5
	Rate5of6
)

func (c CodeRate) String() string {
	switch c {
	case Rate1of2:
		return "1/2"
	case Rate3of5:
		return "3/5"
	case Rate2of3:
		return "2/3"
	case Rate3of4:
		return "3/4"
	case Rate4of5:
		return "4/5"
	case Rate5of6:
		return "5/6"
	default:
		return "UNKNOWN"
	}
}

// ParseCodeRate parses a code rate written as a fraction, e.g. "3/5".
func ParseCodeRate(s string) (CodeRate, error) {
	switch s {
	case "1/2":
		return Rate1of2, nil
	case "3/5":
		return Rate3of5, nil
	case "2/3":
		return Rate2of3, nil
	case "3/4":
		return Rate3of4, nil
	case "4/5":
		return Rate4of5, nil
	case "5/6":
		return Rate5of6, nil
	default:
		return 0, fmt.Errorf("%w: code rate %q", ErrUnsupportedModulationCodeRate, s)
	}
}

// Overrides replaces individual looked-up or default parameters before
// they enter the calculation chain. A nil field means "use the table
// value". Overrides substitute operands only; they never change which
// category or table is selected.
type Overrides struct {
	NoiseFigureDB    *float64
	NoiseBandwidthHz *float64
	FeederLossDB     *float64
	AntennaGainDBD   *float64
	HeightLossDB     *float64
	BuildingLossDB   *float64
	SigmaMacroDB     *float64
	SigmaBuildingDB  *float64
}

// Profile is a fully resolved reception scenario. Build one with the
// named constructors (FX, POPortable, ...) rather than directly; the
// constructors pre-populate the mode-appropriate receiver, antenna and
// building tags.
type Profile struct {
	FreqMHz     float64
	Mode        Mode
	Environment Environment
	Modulation  Modulation
	CodeRate    CodeRate

	Receiver ReceiverType  // PO/PI only
	Antenna  AntennaType   // handheld only
	Building BuildingClass // PI only

	// LocationProbability is the coverage target, e.g. 0.95 for 95% of
	// locations. Valid range 0.01 to 0.99.
	LocationProbability float64

	Overrides Overrides
}

// Band returns the frequency band of the profile.
func (p Profile) Band() Band { return BandFor(p.FreqMHz) }

// FX builds a fixed rooftop reception profile.
func FX(freqMHz float64, env Environment, mod Modulation, cr CodeRate) Profile {
	return Profile{
		FreqMHz:             freqMHz,
		Mode:                ModeFX,
		Environment:         env,
		Modulation:          mod,
		CodeRate:            cr,
		LocationProbability: DefaultLocationProbability,
	}
}

// POPortable builds a portable outdoor profile with a portable
// (non-handheld) receiver.
func POPortable(freqMHz float64, env Environment, mod Modulation, cr CodeRate) Profile {
	return Profile{
		FreqMHz:             freqMHz,
		Mode:                ModePO,
		Environment:         env,
		Modulation:          mod,
		CodeRate:            cr,
		Receiver:            ReceiverPortable,
		LocationProbability: DefaultLocationProbability,
	}
}

// POHandheldIntegrated builds a portable outdoor profile with a handheld
// receiver using its integrated antenna.
func POHandheldIntegrated(freqMHz float64, env Environment, mod Modulation, cr CodeRate) Profile {
	return Profile{
		FreqMHz:             freqMHz,
		Mode:                ModePO,
		Environment:         env,
		Modulation:          mod,
		CodeRate:            cr,
		Receiver:            ReceiverHandheld,
		Antenna:             AntennaIntegrated,
		LocationProbability: DefaultLocationProbability,
	}
}

// POHandheldExternal builds a portable outdoor profile with a handheld
// receiver using an external antenna.
func POHandheldExternal(freqMHz float64, env Environment, mod Modulation, cr CodeRate) Profile {
	return Profile{
		FreqMHz:             freqMHz,
		Mode:                ModePO,
		Environment:         env,
		Modulation:          mod,
		CodeRate:            cr,
		Receiver:            ReceiverHandheld,
		Antenna:             AntennaExternal,
		LocationProbability: DefaultLocationProbability,
	}
}

// PIPortable builds a portable indoor profile with a portable receiver.
func PIPortable(freqMHz float64, env Environment, mod Modulation, cr CodeRate, bc BuildingClass) Profile {
	return Profile{
		FreqMHz:             freqMHz,
		Mode:                ModePI,
		Environment:         env,
		Modulation:          mod,
		CodeRate:            cr,
		Receiver:            ReceiverPortable,
		Building:            bc,
		LocationProbability: DefaultLocationProbability,
	}
}

// PIHandheldIntegrated builds a portable indoor profile with a handheld
// receiver using its integrated antenna.
func PIHandheldIntegrated(freqMHz float64, env Environment, mod Modulation, cr CodeRate, bc BuildingClass) Profile {
	return Profile{
		FreqMHz:             freqMHz,
		Mode:                ModePI,
		Environment:         env,
		Modulation:          mod,
		CodeRate:            cr,
		Receiver:            ReceiverHandheld,
		Antenna:             AntennaIntegrated,
		Building:            bc,
		LocationProbability: DefaultLocationProbability,
	}
}

// PIHandheldExternal builds a portable indoor profile with a handheld
// receiver using an external antenna.
func PIHandheldExternal(freqMHz float64, env Environment, mod Modulation, cr CodeRate, bc BuildingClass) Profile {
	return Profile{
		FreqMHz:             freqMHz,
		Mode:                ModePI,
		Environment:         env,
		Modulation:          mod,
		CodeRate:            cr,
		Receiver:            ReceiverHandheld,
		Antenna:             AntennaExternal,
		Building:            bc,
		LocationProbability: DefaultLocationProbability,
	}
}

// MO builds a mobile reception profile.
func MO(freqMHz float64, env Environment, mod Modulation, cr CodeRate) Profile {
	return Profile{
		FreqMHz:             freqMHz,
		Mode:                ModeMO,
		Environment:         env,
		Modulation:          mod,
		CodeRate:            cr,
		LocationProbability: DefaultLocationProbability,
	}
}

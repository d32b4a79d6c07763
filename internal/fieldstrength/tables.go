package fieldstrength

// Reference data for the calculation chain. Everything in this file is
// fixed published table material (Rec. ITU-R BT.2033-2 and the GE06
// Final Acts), loaded once and never mutated.

// Physical constants and receiver defaults.
const (
	boltzmann    = 1.38e-23    // J/K
	noiseTempK   = 290.0       // reference temperature T0
	speedOfLight = 299792458.0 // m/s

	// Effective aperture of a half-wave dipole reference:
	// Aa = G + 10 log10(1.64 * lambda^2 / 4pi).
	dipoleGainFactor = 1.64

	// Conversion from dB(W/m^2) to dB(uV/m) via the free-space impedance:
	// E = Phi + 145.8.
	pfdToFieldDB = 145.8

	// DefaultNoiseFigureDB is the receiver noise figure F assumed when no
	// override is given.
	DefaultNoiseFigureDB = 6.0

	// DefaultNoiseBandwidthHz is the noise bandwidth B of an 8 MHz
	// DVB-T2 channel.
	DefaultNoiseBandwidthHz = 7.61e6

	// DefaultSigmaMacroDB is the macro-scale log-normal standard
	// deviation sigma_m.
	DefaultSigmaMacroDB = 5.5

	// DefaultLocationProbability is the coverage target used by the
	// named profile constructors.
	DefaultLocationProbability = 0.95
)

// cnEntry holds the required C/N (dB) for one (modulation, code rate)
// pair under the three reference channel models of BT.2033-2 Table 2.
type cnEntry struct {
	Gaussian float64
	Ricean   float64
	Rayleigh float64
}

type cnKey struct {
	Mod  Modulation
	Rate CodeRate
}

// cnTable is BT.2033-2 Table 2. Lookup is exact; there is no
// interpolation across the modulation or code-rate axis.
var cnTable = map[cnKey]cnEntry{
	{ModQPSK, Rate1of2}: {2.4, 2.6, 3.4},
	{ModQPSK, Rate3of5}: {3.6, 3.8, 4.9},
	{ModQPSK, Rate2of3}: {4.5, 4.8, 6.3},
	{ModQPSK, Rate3of4}: {5.5, 5.8, 7.6},
	{ModQPSK, Rate4of5}: {6.1, 6.5, 8.5},
	{ModQPSK, Rate5of6}: {6.6, 7.0, 9.3},

	{Mod16QAM, Rate1of2}: {7.6, 7.8, 9.1},
	{Mod16QAM, Rate3of5}: {9.0, 9.2, 10.7},
	{Mod16QAM, Rate2of3}: {10.3, 10.5, 12.2},
	{Mod16QAM, Rate3of4}: {11.4, 11.8, 13.9},
	{Mod16QAM, Rate4of5}: {12.2, 12.6, 15.1},
	{Mod16QAM, Rate5of6}: {12.7, 13.1, 15.9},

	{Mod64QAM, Rate1of2}: {11.9, 12.2, 14.0},
	{Mod64QAM, Rate3of5}: {13.8, 14.1, 15.8},
	{Mod64QAM, Rate2of3}: {15.1, 15.4, 17.2},
	{Mod64QAM, Rate3of4}: {16.6, 16.9, 19.3},
	{Mod64QAM, Rate4of5}: {17.6, 18.1, 20.9},
	{Mod64QAM, Rate5of6}: {18.2, 18.7, 21.8},

	{Mod256QAM, Rate1of2}: {15.9, 16.3, 18.3},
	{Mod256QAM, Rate3of5}: {18.2, 18.4, 20.5},
	{Mod256QAM, Rate2of3}: {19.7, 20.0, 22.1},
	{Mod256QAM, Rate3of4}: {21.7, 22.0, 24.6},
	{Mod256QAM, Rate4of5}: {23.1, 23.6, 26.6},
	{Mod256QAM, Rate5of6}: {23.9, 24.4, 28.0},
}

type mmnKey struct {
	Env  Environment
	Band Band
	Cat  MMNCategory
}

// mmnTable is the man-made-noise allowance Pmmn (dB) from BT.2033-2
// Tables 31-32, keyed by environment, band group and antenna category.
var mmnTable = map[mmnKey]float64{
	{EnvUrban, BandIII, MMNIntegrated}: 0.0,
	{EnvUrban, BandIII, MMNExternal}:   1.0,
	{EnvUrban, BandIII, MMNRooftop}:    2.0,
	{EnvUrban, BandIII, MMNAdapted}:    8.0,

	{EnvUrban, BandIVV, MMNIntegrated}: 0.0,
	{EnvUrban, BandIVV, MMNExternal}:   0.0,
	{EnvUrban, BandIVV, MMNRooftop}:    0.0,
	{EnvUrban, BandIVV, MMNAdapted}:    1.0,

	{EnvRural, BandIII, MMNIntegrated}: 0.0,
	{EnvRural, BandIII, MMNExternal}:   0.0,
	{EnvRural, BandIII, MMNRooftop}:    2.0,
	{EnvRural, BandIII, MMNAdapted}:    5.0,

	{EnvRural, BandIVV, MMNIntegrated}: 0.0,
	{EnvRural, BandIVV, MMNExternal}:   0.0,
	{EnvRural, BandIVV, MMNRooftop}:    0.0,
	{EnvRural, BandIVV, MMNAdapted}:    0.0,
}

// buildingEntry pairs the mean building entry loss Lb with its standard
// deviation sigma_b, per BT.2033-2 Table 27 (UHF).
type buildingEntry struct {
	LossDB  float64
	SigmaDB float64
}

var buildingTable = map[BuildingClass]buildingEntry{
	BuildingHigh:   {7.0, 5.0},
	BuildingMedium: {11.0, 6.0},
	BuildingLow:    {15.0, 7.0},
}

// Antenna gain defaults (dBd, relative to a half-wave dipole).
//
// Fixed rooftop follows BT.2036-5; portable and mobile follow BT.2033-2
// Tables 28/30. Handheld UHF gain is the only frequency-dependent entry:
// the BT.2033-2 Table 29 anchors are interpolated with the GE06
// log-frequency rule and clamped outside 474-858 MHz.
var (
	fixedGain    = map[Band]float64{BandIII: 7.0, BandIVV: 11.0}
	portableGain = map[Band]float64{BandIII: -2.2, BandIVV: 0.0}
	mobileGain   = map[Band]float64{BandIII: -5.0, BandIVV: -2.0}

	handheldGainVHF = -4.0
	handheldGainUHF = []Point{
		{474.0, -12.0},
		{698.0, -9.0},
		{858.0, -7.0},
	}
)

// fixedFeederLoss is the rooftop feeder loss Lf (dB); portable, indoor
// and mobile chains have no feeder.
var fixedFeederLoss = map[Band]float64{BandIII: 2.0, BandIVV: 4.0}

// heightLossUHF holds the 10 m -> 1.5 m receive height loss anchors (dB)
// for Bands IV/V per environment, interpolated with the log-frequency
// rule. Band III reception carries no height-loss allowance.
var heightLossUHF = map[Environment][]Point{
	EnvUrban: {{500.0, 23.0}, {800.0, 25.0}},
	EnvRural: {{500.0, 16.0}, {800.0, 18.0}},
}

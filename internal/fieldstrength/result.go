package fieldstrength

// Result is the full line-item breakdown of one evaluation, ordered the
// way BT.2033-2 Tables 12 and 13 print their rows. The struct field
// order is the canonical output order for every renderer; add or move
// fields here and the text, JSON and CSV outputs all follow.
type Result struct {
	FreqMHz         float64 `json:"freq_mhz"`
	Band            string  `json:"band"`
	ReceptionMode   string  `json:"reception_mode"`
	ReceiverType    string  `json:"receiver_type"`
	HandheldAntenna string  `json:"handheld_antenna_type"`
	Environment     string  `json:"environment"`
	Modulation      string  `json:"modulation"`
	CodeRate        string  `json:"code_rate"`

	CNRequiredDB        float64 `json:"cn_required_db"`
	NoisePowerDBW       float64 `json:"pn_dbw"`
	MinReceiverPowerDBW float64 `json:"ps_min_dbw"`
	AntennaGainDBD      float64 `json:"g_dbd"`
	FeederLossDB        float64 `json:"lf_db"`
	ApertureDBM2        float64 `json:"aa_dbm2"`
	MinPFDDBWPerM2      float64 `json:"phi_min_dbw_per_m2"`
	EminDBuVPerM        float64 `json:"emin_dbuv_per_m"`

	ManMadeNoiseDB float64 `json:"pmmn_db"`
	HeightLossDB   float64 `json:"lh_db"`
	BuildingLossDB float64 `json:"lb_db"`

	SigmaTotalDB float64 `json:"sigma_total_db"`
	Mu           float64 `json:"mu"`
	CorrectionDB float64 `json:"cl_db"`

	EmedDBuVPerM float64 `json:"emed_dbuv_per_m"`
}

// Field is one (key, value) pair of a Result in output order. Keys are
// the JSON tag names.
type Field struct {
	Key   string
	Value any
}

// Fields flattens the result into its ordered key/value rows.
func (r *Result) Fields() []Field {
	return []Field{
		{"freq_mhz", r.FreqMHz},
		{"band", r.Band},
		{"reception_mode", r.ReceptionMode},
		{"receiver_type", r.ReceiverType},
		{"handheld_antenna_type", r.HandheldAntenna},
		{"environment", r.Environment},
		{"modulation", r.Modulation},
		{"code_rate", r.CodeRate},
		{"cn_required_db", r.CNRequiredDB},
		{"pn_dbw", r.NoisePowerDBW},
		{"ps_min_dbw", r.MinReceiverPowerDBW},
		{"g_dbd", r.AntennaGainDBD},
		{"lf_db", r.FeederLossDB},
		{"aa_dbm2", r.ApertureDBM2},
		{"phi_min_dbw_per_m2", r.MinPFDDBWPerM2},
		{"emin_dbuv_per_m", r.EminDBuVPerM},
		{"pmmn_db", r.ManMadeNoiseDB},
		{"lh_db", r.HeightLossDB},
		{"lb_db", r.BuildingLossDB},
		{"sigma_total_db", r.SigmaTotalDB},
		{"mu", r.Mu},
		{"cl_db", r.CorrectionDB},
		{"emed_dbuv_per_m", r.EmedDBuVPerM},
	}
}

// Diagnostics exposes the intermediate selections a Result does not
// carry: which table categories fired and which operand values actually
// entered the chain. Intended for the debug renderer and for tests.
type Diagnostics struct {
	Fading FadingModel
	Gain   GainCategory
	MMN    MMNCategory

	NoiseFigureDB       float64
	NoiseBandwidthHz    float64
	SigmaBuildingDB     float64
	SigmaMacroDB        float64
	LocationProbability float64

	HeightLossApplies   bool
	BuildingLossApplies bool

	// Anchor tables actually interpolated for this profile; nil when the
	// corresponding quantity came from a constant or an override.
	GainAnchors       []Point
	HeightLossAnchors []Point
}

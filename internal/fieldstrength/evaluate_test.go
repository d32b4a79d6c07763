package fieldstrength

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func checkFields(t *testing.T, checks []struct {
	name     string
	got      float64
	expected float64
}) {
	t.Helper()
	for _, c := range checks {
		if math.Abs(c.got-c.expected) > 1e-3 {
			t.Errorf("%s = %v, want %v", c.name, c.got, c.expected)
		}
	}
}

func TestEvaluate_FixedVHF(t *testing.T) {
	// Rooftop Band III with a narrowed noise bandwidth. The 2 dB urban
	// VHF man-made-noise allowance is the only addition to Emin besides
	// the location correction.
	p := FX(200, EnvUrban, Mod256QAM, Rate2of3)
	p.Overrides.NoiseBandwidthHz = floatPtr(6.66e6)

	r, err := Evaluate(p)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	if r.Band != "III" || r.ReceptionMode != "FX" || r.ReceiverType != "-" {
		t.Errorf("header fields = %q/%q/%q", r.Band, r.ReceptionMode, r.ReceiverType)
	}

	checkFields(t, []struct {
		name     string
		got      float64
		expected float64
	}{
		{"cn_required_db", r.CNRequiredDB, 20.0},
		{"pn_dbw", r.NoisePowerDBW, -129.742487},
		{"ps_min_dbw", r.MinReceiverPowerDBW, -109.742487},
		{"g_dbd", r.AntennaGainDBD, 7},
		{"lf_db", r.FeederLossDB, 2},
		{"aa_dbm2", r.ApertureDBM2, 1.672154},
		{"phi_min_dbw_per_m2", r.MinPFDDBWPerM2, -109.414641},
		{"emin_dbuv_per_m", r.EminDBuVPerM, 36.385359},
		{"pmmn_db", r.ManMadeNoiseDB, 2},
		{"lh_db", r.HeightLossDB, 0},
		{"lb_db", r.BuildingLossDB, 0},
		{"sigma_total_db", r.SigmaTotalDB, 5.5},
		{"mu", r.Mu, 1.645211},
		{"cl_db", r.CorrectionDB, 9.048663},
		{"emed_dbuv_per_m", r.EmedDBuVPerM, 47.434022},
	})
}

func TestEvaluate_FixedUHFDefaults(t *testing.T) {
	r, err := Evaluate(FX(650, EnvUrban, Mod64QAM, Rate3of5))
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	checkFields(t, []struct {
		name     string
		got      float64
		expected float64
	}{
		{"cn_required_db", r.CNRequiredDB, 14.1},
		{"pn_dbw", r.NoisePowerDBW, -129.163383},
		{"emin_dbuv_per_m", r.EminDBuVPerM, 39.302131},
		{"pmmn_db", r.ManMadeNoiseDB, 0},
		{"emed_dbuv_per_m", r.EmedDBuVPerM, 48.350794},
	})
}

func TestEvaluate_IndoorHandheldUHF(t *testing.T) {
	// The heaviest scenario: interpolated handheld gain, height loss,
	// building loss and the combined sigma all participate.
	p := PIHandheldIntegrated(650, EnvUrban, Mod16QAM, Rate1of2, BuildingMedium)

	r, err := Evaluate(p)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	checkFields(t, []struct {
		name     string
		got      float64
		expected float64
	}{
		{"cn_required_db", r.CNRequiredDB, 9.1},
		{"g_dbd", r.AntennaGainDBD, -9.552283},
		{"aa_dbm2", r.ApertureDBM2, -25.117797},
		{"phi_min_dbw_per_m2", r.MinPFDDBWPerM2, -94.945586},
		{"emin_dbuv_per_m", r.EminDBuVPerM, 50.854414},
		{"pmmn_db", r.ManMadeNoiseDB, 0},
		{"lh_db", r.HeightLossDB, 24.116435},
		{"lb_db", r.BuildingLossDB, 11},
		{"sigma_total_db", r.SigmaTotalDB, 8.139410},
		{"cl_db", r.CorrectionDB, 13.391051},
		{"emed_dbuv_per_m", r.EmedDBuVPerM, 99.361900},
	})
}

func TestEvaluate_PortableOutdoorVHF(t *testing.T) {
	p := POPortable(200, EnvUrban, Mod64QAM, Rate2of3)
	p.Overrides.NoiseBandwidthHz = floatPtr(6.66e6)

	r, err := Evaluate(p)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}

	checkFields(t, []struct {
		name     string
		got      float64
		expected float64
	}{
		{"cn_required_db", r.CNRequiredDB, 17.2},
		{"g_dbd", r.AntennaGainDBD, -2.2},
		{"aa_dbm2", r.ApertureDBM2, -7.527846},
		{"emin_dbuv_per_m", r.EminDBuVPerM, 40.785359},
		{"lh_db", r.HeightLossDB, 0},
		{"emed_dbuv_per_m", r.EmedDBuVPerM, 49.834022},
	})
}

func TestEvaluate_LocationProbabilityShiftsEmedOnly(t *testing.T) {
	base := FX(200, EnvUrban, Mod256QAM, Rate2of3)
	base.Overrides.NoiseBandwidthHz = floatPtr(6.66e6)

	relaxed := base
	relaxed.LocationProbability = 0.70

	r95, err := Evaluate(base)
	if err != nil {
		t.Fatal(err)
	}
	r70, err := Evaluate(relaxed)
	if err != nil {
		t.Fatal(err)
	}

	if r95.EminDBuVPerM != r70.EminDBuVPerM {
		t.Errorf("Emin moved with probability: %v vs %v", r95.EminDBuVPerM, r70.EminDBuVPerM)
	}
	if math.Abs(r70.Mu-0.524002) > 1e-4 {
		t.Errorf("mu(0.70) = %v, want 0.524002", r70.Mu)
	}
	if math.Abs(r70.EmedDBuVPerM-41.267369) > 1e-3 {
		t.Errorf("Emed(0.70) = %v, want 41.267369", r70.EmedDBuVPerM)
	}
	if r70.EmedDBuVPerM >= r95.EmedDBuVPerM {
		t.Error("relaxing the coverage target must lower Emed")
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	p := PIHandheldExternal(700, EnvRural, Mod256QAM, Rate3of4, BuildingLow)

	a, err := Evaluate(p)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Evaluate(p)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("repeated evaluation differs:\n%+v\n%+v", a, b)
	}
}

func TestEvaluate_OverrideIsolation(t *testing.T) {
	// An antenna gain override moves G, Aa, Phi, Emin and Emed by the
	// same amount and leaves the noise side untouched.
	base := FX(650, EnvUrban, Mod64QAM, Rate3of5)
	bumped := base
	bumped.Overrides.AntennaGainDBD = floatPtr(14) // default is 11

	r0, err := Evaluate(base)
	if err != nil {
		t.Fatal(err)
	}
	r1, err := Evaluate(bumped)
	if err != nil {
		t.Fatal(err)
	}

	if r1.NoisePowerDBW != r0.NoisePowerDBW || r1.MinReceiverPowerDBW != r0.MinReceiverPowerDBW {
		t.Error("gain override must not move the noise chain")
	}
	if math.Abs((r0.EminDBuVPerM-r1.EminDBuVPerM)-3) > 1e-9 {
		t.Errorf("Emin shift = %v, want 3 dB", r0.EminDBuVPerM-r1.EminDBuVPerM)
	}
	if math.Abs((r0.EmedDBuVPerM-r1.EmedDBuVPerM)-3) > 1e-9 {
		t.Errorf("Emed shift = %v, want 3 dB", r0.EmedDBuVPerM-r1.EmedDBuVPerM)
	}
}

func TestEvaluate_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func() Profile
		wantErr error
	}{
		{
			name: "portable mode without receiver type",
			mutate: func() Profile {
				p := POPortable(650, EnvUrban, Mod16QAM, Rate1of2)
				p.Receiver = ReceiverNone
				return p
			},
			wantErr: ErrInvalidCombination,
		},
		{
			name: "receiver type on fixed mode",
			mutate: func() Profile {
				p := FX(650, EnvUrban, Mod64QAM, Rate3of5)
				p.Receiver = ReceiverHandheld
				p.Antenna = AntennaIntegrated
				return p
			},
			wantErr: ErrInvalidCombination,
		},
		{
			name: "handheld without antenna type",
			mutate: func() Profile {
				p := POHandheldIntegrated(650, EnvUrban, Mod16QAM, Rate1of2)
				p.Antenna = AntennaNone
				return p
			},
			wantErr: ErrInvalidCombination,
		},
		{
			name: "antenna type on portable receiver",
			mutate: func() Profile {
				p := POPortable(650, EnvUrban, Mod16QAM, Rate1of2)
				p.Antenna = AntennaExternal
				return p
			},
			wantErr: ErrInvalidCombination,
		},
		{
			name: "indoor mode without building class",
			mutate: func() Profile {
				p := PIPortable(650, EnvUrban, Mod16QAM, Rate1of2, BuildingMedium)
				p.Building = BuildingNone
				return p
			},
			wantErr: ErrInvalidCombination,
		},
		{
			name: "building class on outdoor mode",
			mutate: func() Profile {
				p := POPortable(650, EnvUrban, Mod16QAM, Rate1of2)
				p.Building = BuildingLow
				return p
			},
			wantErr: ErrInvalidCombination,
		},
		{
			name: "building loss override outside indoor mode",
			mutate: func() Profile {
				p := FX(650, EnvUrban, Mod64QAM, Rate3of5)
				p.Overrides.BuildingLossDB = floatPtr(11)
				return p
			},
			wantErr: ErrInvalidCombination,
		},
		{
			name: "probability below domain",
			mutate: func() Profile {
				p := FX(650, EnvUrban, Mod64QAM, Rate3of5)
				p.LocationProbability = 0.005
				return p
			},
			wantErr: ErrOutOfRangeProbability,
		},
		{
			name: "probability above domain",
			mutate: func() Profile {
				p := FX(650, EnvUrban, Mod64QAM, Rate3of5)
				p.LocationProbability = 0.995
				return p
			},
			wantErr: ErrOutOfRangeProbability,
		},
		{
			name: "non-positive frequency",
			mutate: func() Profile {
				p := FX(650, EnvUrban, Mod64QAM, Rate3of5)
				p.FreqMHz = 0
				return p
			},
			wantErr: ErrInvalidCombination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Evaluate(tt.mutate())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Evaluate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestEvaluateDetailed_Diagnostics(t *testing.T) {
	p := PIHandheldExternal(650, EnvUrban, Mod16QAM, Rate1of2, BuildingHigh)

	_, diag, err := EvaluateDetailed(p)
	if err != nil {
		t.Fatal(err)
	}

	if diag.Fading != FadingRayleigh || diag.Gain != GainHandheld || diag.MMN != MMNExternal {
		t.Errorf("categories = %v/%v/%v", diag.Fading, diag.Gain, diag.MMN)
	}
	if diag.NoiseFigureDB != DefaultNoiseFigureDB || diag.NoiseBandwidthHz != DefaultNoiseBandwidthHz {
		t.Errorf("operands = %v/%v, want defaults", diag.NoiseFigureDB, diag.NoiseBandwidthHz)
	}
	if diag.SigmaBuildingDB != 5 {
		t.Errorf("sigma_b = %v, want 5 for high-loss buildings", diag.SigmaBuildingDB)
	}
	if !diag.HeightLossApplies || !diag.BuildingLossApplies {
		t.Error("indoor scenario must carry both allowances")
	}
	if len(diag.GainAnchors) != 3 {
		t.Errorf("handheld UHF gain anchors = %v, want the three table points", diag.GainAnchors)
	}
	if len(diag.HeightLossAnchors) != 2 {
		t.Errorf("height loss anchors = %v, want two table points", diag.HeightLossAnchors)
	}
}

func TestEvaluateDetailed_NoAnchorsForConstants(t *testing.T) {
	_, diag, err := EvaluateDetailed(FX(650, EnvUrban, Mod64QAM, Rate3of5))
	if err != nil {
		t.Fatal(err)
	}
	if diag.GainAnchors != nil || diag.HeightLossAnchors != nil {
		t.Errorf("rooftop scenario interpolates nothing, got %v / %v",
			diag.GainAnchors, diag.HeightLossAnchors)
	}
}

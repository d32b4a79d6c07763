package fieldstrength

import (
	"math"
	"testing"
)

func TestQi(t *testing.T) {
	tests := []struct {
		name     string
		p        float64 // location probability; qi argument is 1-p
		expected float64
		tol      float64
	}{
		{"70 percent", 0.70, 0.524002, 1e-4},
		{"90 percent", 0.90, 1.281729, 1e-4},
		{"95 percent", 0.95, 1.645211, 1e-4},
		{"99 percent", 0.99, 2.326785, 1e-4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := qi(1 - tt.p)
			if math.Abs(got-tt.expected) > tt.tol {
				t.Errorf("qi(%v) = %v, want %v (±%v)", 1-tt.p, got, tt.expected, tt.tol)
			}
		})
	}
}

func TestQi_Symmetry(t *testing.T) {
	// Qi(x) = -Qi(1-x) and Qi(0.5) = 0 up to the approximation error of
	// the rational fit.
	if got := qi(0.5); math.Abs(got) > 1e-3 {
		t.Errorf("qi(0.5) = %v, want ~0", got)
	}
	for _, x := range []float64{0.01, 0.05, 0.1, 0.3} {
		a, b := qi(x), qi(1-x)
		if math.Abs(a+b) > 1e-9 {
			t.Errorf("qi(%v)=%v and qi(%v)=%v are not antisymmetric", x, a, 1-x, b)
		}
	}
}

func TestComputeLocationCorrection_OutdoorUsesMacroOnly(t *testing.T) {
	p := FX(650, EnvUrban, Mod64QAM, Rate3of5)
	cats, _ := SelectCategories(p)

	lc := computeLocationCorrection(p, cats)
	if lc.SigmaBuildingDB != 0 {
		t.Errorf("sigma_b = %v, want 0 for outdoor reception", lc.SigmaBuildingDB)
	}
	if lc.SigmaTotalDB != DefaultSigmaMacroDB {
		t.Errorf("sigma_total = %v, want %v", lc.SigmaTotalDB, DefaultSigmaMacroDB)
	}
	if math.Abs(lc.CorrectionDB-9.048663) > 1e-3 {
		t.Errorf("Cl = %v, want 9.048663", lc.CorrectionDB)
	}
}

func TestComputeLocationCorrection_IndoorCombinesSigmas(t *testing.T) {
	p := PIHandheldIntegrated(650, EnvUrban, Mod16QAM, Rate1of2, BuildingMedium)
	cats, _ := SelectCategories(p)

	lc := computeLocationCorrection(p, cats)
	if lc.SigmaBuildingDB != 6 {
		t.Errorf("sigma_b = %v, want 6 for medium buildings", lc.SigmaBuildingDB)
	}
	want := math.Sqrt(6*6 + 5.5*5.5)
	if math.Abs(lc.SigmaTotalDB-want) > 1e-9 {
		t.Errorf("sigma_total = %v, want %v", lc.SigmaTotalDB, want)
	}
	if math.Abs(lc.CorrectionDB-13.391051) > 1e-3 {
		t.Errorf("Cl = %v, want 13.391051", lc.CorrectionDB)
	}
}

func TestComputeLocationCorrection_IndoorVHFHasNoBuildingSigma(t *testing.T) {
	// Table 27 is UHF-only; indoor VHF reception keeps sigma_b at zero.
	p := PIHandheldIntegrated(200, EnvUrban, Mod16QAM, Rate1of2, BuildingMedium)
	cats, _ := SelectCategories(p)

	lc := computeLocationCorrection(p, cats)
	if lc.SigmaBuildingDB != 0 {
		t.Errorf("sigma_b = %v, want 0 in Band III", lc.SigmaBuildingDB)
	}
}

func TestComputeLocationCorrection_Overrides(t *testing.T) {
	p := FX(650, EnvUrban, Mod64QAM, Rate3of5)
	sb, sm := 3.0, 4.0
	p.Overrides.SigmaBuildingDB = &sb
	p.Overrides.SigmaMacroDB = &sm
	cats, _ := SelectCategories(p)

	lc := computeLocationCorrection(p, cats)
	if lc.SigmaTotalDB != 5 {
		t.Errorf("sigma_total = %v, want 5 (3-4-5 triangle)", lc.SigmaTotalDB)
	}
	if math.Abs(lc.CorrectionDB-lc.Mu*5) > 1e-12 {
		t.Errorf("Cl = %v, want mu*sigma_total = %v", lc.CorrectionDB, lc.Mu*5)
	}
}

package fieldstrength

// Band is the DVB-T2 frequency band. The planning tables distinguish
// only VHF Band III from the combined UHF Bands IV/V.
type Band int

const (
	// BandIII is VHF Band III (nominally 174-230 MHz).
	BandIII Band = iota
	// BandIVV is the combined UHF Bands IV and V (nominally 470-862 MHz).
	BandIVV
)

func (b Band) String() string {
	if b == BandIII {
		return "III"
	}
	return "IV/V"
}

// BandFor maps a frequency to its band. The mapping is total: anything
// below 300 MHz is treated as Band III, everything else as Bands IV/V.
// Frequencies outside the nominal broadcast ranges are not rejected;
// table lookups clamp to their nearest defined breakpoint instead.
func BandFor(freqMHz float64) Band {
	if freqMHz < 300.0 {
		return BandIII
	}
	return BandIVV
}

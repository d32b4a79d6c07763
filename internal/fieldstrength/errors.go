package fieldstrength

import "errors"

// Error kinds returned by profile validation and table selection. Wrap
// sites add the offending field and value; match with errors.Is.
var (
	// ErrInvalidCombination reports a mode/receiver/antenna/building
	// mismatch, or an override supplied for a field that does not apply
	// to the current mode.
	ErrInvalidCombination = errors.New("invalid combination")

	// ErrUnsupportedModulationCodeRate reports a (modulation, code rate)
	// pair with no exact entry in the C/N table.
	ErrUnsupportedModulationCodeRate = errors.New("unsupported modulation/code-rate")

	// ErrUnknownCategory reports an internal table-selection
	// inconsistency. Seeing it means a bug, not bad input.
	ErrUnknownCategory = errors.New("unknown table category")

	// ErrOutOfRangeProbability reports a location probability outside
	// the 0.01..0.99 domain of the GE06 Eq. 26 approximation.
	ErrOutOfRangeProbability = errors.New("location probability out of range")
)

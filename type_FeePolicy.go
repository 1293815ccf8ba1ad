package plusvalia

import "fmt"

// FeePolicy defines how platform fees enter the gain/loss computation.
//
// Both policies are valid under the domain guidance; what matters is that the
// chosen one is applied consistently to acquisitions and disposals.
type FeePolicy int

const (
	// FeeFromProceeds subtracts the disposal fee from the proceeds and leaves
	// the acquisition fee out of the cost basis. This is the default.
	FeeFromProceeds FeePolicy = iota
	// FeeToCostBasis adds the acquisition fee to the lot's cost basis and
	// leaves the disposal proceeds untouched.
	FeeToCostBasis
)

func (p FeePolicy) String() string {
	switch p {
	case FeeFromProceeds:
		return "proceeds"
	case FeeToCostBasis:
		return "basis"
	default:
		return "unknown"
	}
}

// ParseFeePolicy parses a string into a FeePolicy.
func ParseFeePolicy(s string) (FeePolicy, error) {
	switch s {
	case "proceeds":
		return FeeFromProceeds, nil
	case "basis":
		return FeeToCostBasis, nil
	default:
		return 0, fmt.Errorf("unknown fee policy: %q", s)
	}
}

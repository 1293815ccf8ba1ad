package plusvalia

import "fmt"

type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

// String formats the fraction as percentage points: 0.19 renders as "19.00%".
func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p)*100)
}

package ebay

import "fmt"

// PricePolicy turns the extracted price into the price filter sent to the
// Browse API. The window math varied between deployments, so it is kept as
// a named, swappable policy rather than a constant.
type PricePolicy interface {
	// Window returns the inclusive [min, max] bounds for the price filter.
	Window(price float64) (min, max float64)
	Name() string
}

// RangeWindow searches within a fixed margin around the extracted price.
// This is the default policy.
type RangeWindow struct {
	// Margin on each side of the price, in dollars.
	Margin float64
}

func (p RangeWindow) Window(price float64) (float64, float64) {
	margin := p.Margin
	if margin == 0 {
		margin = 100
	}
	min := price - margin
	if min < 1 {
		min = 1
	}
	return min, price + margin
}

func (p RangeWindow) Name() string { return "range" }

// PinnedWindow pins both bounds to the extracted price, matching only
// items listed at exactly that amount.
type PinnedWindow struct{}

func (p PinnedWindow) Window(price float64) (float64, float64) {
	return price, price
}

func (p PinnedWindow) Name() string { return "pinned" }

// PolicyFromName resolves a policy by its configured name. Unknown names
// fall back to the default range policy.
func PolicyFromName(name string) PricePolicy {
	switch name {
	case "pinned":
		return PinnedWindow{}
	default:
		return RangeWindow{}
	}
}

func formatBound(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

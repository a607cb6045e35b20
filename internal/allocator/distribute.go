package allocator

import "github.com/shopspring/decimal"

// distribute turns weights into integer targets summing to exactly total.
//
// Each of the first n-1 days gets the rounded cumulative share minus what has
// already been handed out, and the last day takes the residual. Rounding error
// never accumulates past one unit and no target goes negative. When every
// weight is zero the total is split evenly over the eligible days.
func distribute(total int, weights []float64, eligible []bool) []int {
	n := len(weights)
	out := make([]int, n)
	if n == 0 || total == 0 {
		return out
	}

	dw := make([]decimal.Decimal, n)
	sum := decimal.Zero
	for i, w := range weights {
		dw[i] = decimal.NewFromFloat(w)
		sum = sum.Add(dw[i])
	}
	if !sum.IsPositive() {
		return evenSplit(total, eligible)
	}

	totalDec := decimal.NewFromInt(int64(total))
	cum := decimal.Zero
	assigned := 0
	for i := 0; i < n-1; i++ {
		cum = cum.Add(dw[i])
		upTo := int(totalDec.Mul(cum).Div(sum).Round(0).IntPart())
		if upTo < assigned {
			upTo = assigned
		}
		if upTo > total {
			upTo = total
		}
		out[i] = upTo - assigned
		assigned = upTo
	}
	out[n-1] = total - assigned
	return out
}

// evenSplit divides total over the eligible days, the remainder going to the
// last eligible day. With no eligible days every day is used.
func evenSplit(total int, eligible []bool) []int {
	out := make([]int, len(eligible))
	var idx []int
	for i, ok := range eligible {
		if ok {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		for i := range eligible {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return out
	}

	base := total / len(idx)
	for _, i := range idx {
		out[i] = base
	}
	out[idx[len(idx)-1]] += total % len(idx)
	return out
}

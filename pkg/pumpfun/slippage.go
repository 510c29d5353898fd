// =============================
// File: pkg/pumpfun/slippage.go
// =============================
package pumpfun

import "math/bits"

// SellSlippageMode selects how the sell floor reacts to slippage.
type SellSlippageMode int

const (
	// SellSlippageInflate applies the same formula as buy and raises the
	// minimum SOL output. This is the historical behavior of the SDK.
	SellSlippageInflate SellSlippageMode = iota
	// SellSlippageDeflate lowers the minimum SOL output by the tolerance.
	SellSlippageDeflate
)

// slippageScale and slippageDivisor turn the tolerance into a multiplier:
// each unit of slippage adjusts the amount by 1%, so 5 adds 5% and 500 adds 500%.
const (
	slippageScale   = 10
	slippageDivisor = 1000
)

// uint128 is a 128-bit unsigned integer split into two 64-bit halves.
type uint128 struct {
	Lo uint64
	Hi uint64
}

// mul64 multiplies by a 64-bit factor, reporting whether the product overflowed 128 bits.
func (u uint128) mul64(v uint64) (uint128, bool) {
	hiHi, hiLo := bits.Mul64(u.Hi, v)
	loHi, loLo := bits.Mul64(u.Lo, v)
	hi, carry := bits.Add64(hiLo, loHi, 0)
	if hiHi != 0 || carry != 0 {
		return uint128{}, false
	}
	return uint128{Lo: loLo, Hi: hi}, true
}

// div64 divides by a non-zero 64-bit divisor.
func (u uint128) div64(v uint64) uint128 {
	qHi, r := u.Hi/v, u.Hi%v
	qLo, _ := bits.Div64(r, u.Lo, v)
	return uint128{Lo: qLo, Hi: qHi}
}

// slippageAmount computes amount*slippage*10/1000 with 128-bit intermediates.
func slippageAmount(amount uint64, slippage int64) (uint128, error) {
	if slippage < 0 {
		return uint128{}, &SlippageError{Amount: amount, Slippage: slippage, Err: ErrInvalidSlippage}
	}

	hi, lo := bits.Mul64(amount, uint64(slippage))
	scaled, ok := uint128{Lo: lo, Hi: hi}.mul64(slippageScale)
	if !ok {
		return uint128{}, &SlippageError{Amount: amount, Slippage: slippage, Err: ErrOverflow}
	}
	return scaled.div64(slippageDivisor), nil
}

// AdjustForSlippage returns amount + amount*slippage*10/1000.
//
// It is used for the buy cost ceiling and, by default, for the sell output
// floor. The result must fit in a uint64, otherwise ErrOverflow is returned.
func AdjustForSlippage(amount uint64, slippage int64) (uint64, error) {
	delta, err := slippageAmount(amount, slippage)
	if err != nil {
		return 0, err
	}

	sum, carry := bits.Add64(delta.Lo, amount, 0)
	if delta.Hi != 0 || carry != 0 {
		return 0, &SlippageError{Amount: amount, Slippage: slippage, Err: ErrOverflow}
	}
	return sum, nil
}

// ReduceForSlippage returns amount - amount*slippage*10/1000, floored at zero.
func ReduceForSlippage(amount uint64, slippage int64) (uint64, error) {
	delta, err := slippageAmount(amount, slippage)
	if err != nil {
		return 0, err
	}

	if delta.Hi != 0 || delta.Lo >= amount {
		return 0, nil
	}
	return amount - delta.Lo, nil
}

// Package ntt implements the EIP-4844 evaluation-point domain and the
// recursive radix-2 inverse number-theoretic transform that recovers
// polynomial coefficients from blob evaluations.
package ntt

import (
	"math/big"
	"sync"

	"github.com/vocdoni/blobdiff/field"
)

// domainBits is log2(field.BlobLen); BlobLen must be a power of two.
const domainBits = 12

var (
	evalPointsOnce sync.Once
	evalPoints     []field.Element
)

// EvaluationPoints returns xs[0..BlobLen) where xs[i] = G^rev12(i) mod P,
// the EIP-4844 reverse-bit-ordered roots of unity. The table is built
// once and memoized process-wide.
func EvaluationPoints() []field.Element {
	evalPointsOnce.Do(func() {
		evalPoints = make([]field.Element, field.BlobLen)
		g := field.FromBigInt(field.G)
		for i := range evalPoints {
			exp := bitReverse(i, domainBits)
			evalPoints[i] = g.ModPow(big.NewInt(int64(exp)))
		}
	})
	return evalPoints
}

// bitReverse reverses the low log2n bits of n.
func bitReverse(n, log2n int) int {
	rev := 0
	for i := range log2n {
		if (n>>i)&1 == 1 {
			rev |= 1 << (log2n - 1 - i)
		}
	}
	return rev
}

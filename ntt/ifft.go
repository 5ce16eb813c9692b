package ntt

import (
	"github.com/vocdoni/blobdiff/apperr"
	"github.com/vocdoni/blobdiff/field"
)

// Coefficients is the output of the inverse NTT: a polynomial in
// coefficient form, same length as the blob it was recovered from.
type Coefficients []field.Element

// Recover runs the inverse NTT over a full blob using the EIP-4844
// evaluation-point domain, returning field.BlobLen coefficients.
func Recover(blob []field.Element) (Coefficients, error) {
	return ifft(blob, EvaluationPoints())
}

// ifft is the recursive decimation-in-frequency radix-2 inverse NTT.
// |arr| == |xs| == n, n a power of two.
func ifft(arr, xs []field.Element) ([]field.Element, error) {
	n := len(arr)
	if n == 1 {
		return []field.Element{arr[0]}, nil
	}

	m := n / 2
	even := make([]field.Element, m)
	odd := make([]field.Element, m)
	nextXs := make([]field.Element, m)

	two := field.FromUint64(2)

	for k := 0; k < m; k++ {
		a := arr[2*k]
		b := arr[2*k+1]
		x := xs[2*k]

		sum := a.Add(b)
		evenK, err := sum.Div(two)
		if err != nil {
			return nil, apperr.New(apperr.KindDivisionByZero, err)
		}
		even[k] = evenK

		diff := a.Sub(b)
		denom := two.Mul(x)
		oddK, err := diff.Div(denom)
		if err != nil {
			return nil, apperr.New(apperr.KindDivisionByZero, err)
		}
		odd[k] = oddK

		nextXs[k] = x.Mul(x)
	}

	evenOut, err := ifft(even, nextXs)
	if err != nil {
		return nil, err
	}
	oddOut, err := ifft(odd, nextXs)
	if err != nil {
		return nil, err
	}

	out := make([]field.Element, n)
	for k := 0; k < m; k++ {
		out[2*k] = evenOut[k]
		out[2*k+1] = oddOut[k]
	}
	return out, nil
}

// Forward computes the forward NTT over evaluation points xs, the
// inverse of ifft. It exists only to exercise the ifft/Forward
// round-trip property in tests: it is not part of the production
// decode pipeline, which only ever runs the inverse direction.
func Forward(coeffs []field.Element, xs []field.Element) []field.Element {
	n := len(coeffs)
	out := make([]field.Element, n)
	for i, x := range xs {
		acc := field.Zero()
		power := field.One()
		for _, c := range coeffs {
			acc = acc.Add(c.Mul(power))
			power = power.Mul(x)
		}
		out[i] = acc
	}
	return out
}

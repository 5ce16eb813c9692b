// Package field implements arbitrary-precision modular arithmetic over
// the BLS12-381 scalar field, the field EIP-4844 blobs are evaluated
// over.
package field

import (
	"fmt"
	"math/big"

	gethparams "github.com/ethereum/go-ethereum/params"

	"github.com/vocdoni/blobdiff/apperr"
)

// BlobLen is the number of field elements carried by one EIP-4844 blob,
// taken from go-ethereum's own blob-transaction constant rather than
// restated as a bare literal.
const BlobLen = gethparams.BlobTxFieldElementsPerBlob

var (
	// P is the BLS12-381 scalar-field modulus.
	P = mustBig("52435875175126190479447740508185965837690552500527637822603658699938581184513")
	// G is the EIP-4844 generator used to build the evaluation-point domain.
	G = mustBig("39033254847818212395286706435128746857159659164139250548781411570340225835782")
	// Two is the constant 2, used to form the Fermat exponent P-2 in Inverse.
	Two = big.NewInt(2)
)

func mustBig(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic(fmt.Sprintf("field: invalid constant %q", s))
	}
	return v
}

// Element is a non-negative integer in [0, P). It wraps a *big.Int for
// JSON purposes and adds the modular-arithmetic operations the inverse
// NTT and the state-diff decoder need.
type Element struct {
	v *big.Int
}

// Zero returns the additive identity. The zero value of Element
// (as produced by e.g. make([]Element, n)) already behaves as Zero;
// this constructor exists for readability at call sites.
func Zero() Element { return Element{} }

// val returns the underlying big.Int, treating a nil v (the Element
// zero value) as zero so a bare var or a freshly make()'d slice element
// is usable without explicit initialisation.
func (e Element) val() *big.Int {
	if e.v == nil {
		return new(big.Int)
	}
	return e.v
}

// One returns the multiplicative identity.
func One() Element { return Element{v: big.NewInt(1)} }

// FromUint64 builds an Element from a native unsigned integer.
func FromUint64(x uint64) Element {
	return Element{v: new(big.Int).SetUint64(x)}
}

// FromBigInt reduces x modulo P and wraps the result. It never mutates x.
func FromBigInt(x *big.Int) Element {
	v := new(big.Int).Mod(x, P)
	return Element{v: v}
}

// FromBytes interprets buf as a big-endian unsigned integer and reduces
// it modulo P. Callers that must preserve raw, unreduced chunk values
// should use FromBytesUnchecked instead.
func FromBytes(buf []byte) Element {
	return FromBigInt(new(big.Int).SetBytes(buf))
}

// FromBytesUnchecked interprets buf as a big-endian unsigned integer
// without reducing modulo P. Used by the blob parser, which performs no
// range check against P at parse time.
func FromBytesUnchecked(buf []byte) Element {
	return Element{v: new(big.Int).SetBytes(buf)}
}

// Big returns a copy of the underlying big.Int.
func (e Element) Big() *big.Int {
	return new(big.Int).Set(e.val())
}

// IsZero reports whether e is the additive identity.
func (e Element) IsZero() bool {
	return e.val().Sign() == 0
}

// Equal reports whether e and o hold the same value.
func (e Element) Equal(o Element) bool {
	return e.val().Cmp(o.val()) == 0
}

// Cmp compares the underlying integers, as big.Int.Cmp does.
func (e Element) Cmp(o Element) int {
	return e.val().Cmp(o.val())
}

// BitLen returns the number of bits required to represent e, as
// big.Int.BitLen does.
func (e Element) BitLen() int {
	return e.val().BitLen()
}

// Add returns (e + o) mod P.
func (e Element) Add(o Element) Element {
	sum := new(big.Int).Add(e.val(), o.val())
	sum.Mod(sum, P)
	return Element{v: sum}
}

// Sub returns (e - o) mod P, staying within unsigned semantics: when
// o > e the difference is computed as P - (o - e) rather than allowing
// a negative intermediate value.
func (e Element) Sub(o Element) Element {
	ev, ov := e.val(), o.val()
	if ov.Cmp(ev) > 0 {
		diff := new(big.Int).Sub(ov, ev)
		diff.Sub(P, diff)
		return Element{v: diff}
	}
	diff := new(big.Int).Sub(ev, ov)
	return Element{v: diff}
}

// Mul returns (e * o) mod P.
func (e Element) Mul(o Element) Element {
	prod := new(big.Int).Mul(e.val(), o.val())
	prod.Mod(prod, P)
	return Element{v: prod}
}

// ModPow returns (e ^ exp) mod P via square-and-multiply, delegated to
// math/big's Exp (which is not constant-time).
func (e Element) ModPow(exp *big.Int) Element {
	return Element{v: new(big.Int).Exp(e.val(), exp, P)}
}

// Inverse returns the Fermat inverse e^(P-2) mod P. Calling it on the
// zero element is a correctness alarm upstream (it can only arise from
// malformed input reaching the NTT) and returns apperr.KindDivisionByZero
// rather than silently returning zero.
func (e Element) Inverse() (Element, error) {
	if e.IsZero() {
		return Element{}, apperr.Errorf(apperr.KindDivisionByZero, "modular inverse of zero")
	}
	exp := new(big.Int).Sub(P, Two)
	return e.ModPow(exp), nil
}

// Div returns (e * o^-1) mod P.
func (e Element) Div(o Element) (Element, error) {
	inv, err := o.Inverse()
	if err != nil {
		return Element{}, err
	}
	return e.Mul(inv), nil
}

// String returns the base-10 representation of the element.
func (e Element) String() string {
	return e.val().String()
}

// MarshalText implements encoding.TextMarshaler, emitting the decimal
// string representation used for every field-element value in the JSON
// output.
func (e Element) MarshalText() ([]byte, error) {
	return e.val().MarshalText()
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Element) UnmarshalText(data []byte) error {
	v := new(big.Int)
	if err := v.UnmarshalText(data); err != nil {
		return err
	}
	e.v = v
	return nil
}

// MarshalCBOR encodes the element as a CBOR text string, so the document
// can be cached or shipped over a binary channel without losing the
// decimal-string shape of the JSON wire format.
func (e Element) MarshalCBOR() ([]byte, error) {
	txt, err := e.MarshalText()
	if err != nil {
		return nil, err
	}
	return cborMarshalText(string(txt))
}

// UnmarshalCBOR decodes a CBOR text string into the element.
func (e *Element) UnmarshalCBOR(data []byte) error {
	s, err := cborUnmarshalText(data)
	if err != nil {
		return err
	}
	return e.UnmarshalText([]byte(s))
}

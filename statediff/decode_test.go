package statediff

import (
	"errors"
	"testing"

	qt "github.com/frankban/quicktest"
	"github.com/vocdoni/blobdiff/apperr"
	"github.com/vocdoni/blobdiff/field"
)

// coeffsFromUint64 builds a full BlobLen-length coefficient stream with
// vals as the leading prefix and the remainder zero; decoders that
// terminate early never look past their own sentinel, so the trailing
// zeroes are irrelevant to the assertions below.
func coeffsFromUint64(vals ...uint64) []field.Element {
	out := make([]field.Element, field.BlobLen)
	for i, v := range vals {
		out[i] = field.FromUint64(v)
	}
	return out
}

// S4.
func TestDecodeS4(t *testing.T) {
	c := qt.New(t)
	coeffs := coeffsFromUint64(2, 1, 1, 1, 1, 1234, 1, 12, 34, 1, 56, 78)

	doc, err := Decode(coeffs)
	c.Assert(err, qt.IsNil)

	qt.Assert(c, doc.StateUpdateSize, qt.Equals, uint64(1))
	qt.Assert(c, len(doc.StateUpdate), qt.Equals, 1)
	got := doc.StateUpdate[0]
	qt.Assert(c, got.Address.String(), qt.Equals, "1234")
	qt.Assert(c, got.Nonce, qt.Equals, uint64(0))
	qt.Assert(c, got.NumberOfStorageUpdates, qt.Equals, uint64(1))
	c.Assert(got.NewClassHash, qt.IsNil)
	qt.Assert(c, len(got.StorageUpdates), qt.Equals, 1)
	qt.Assert(c, got.StorageUpdates[0].Key.String(), qt.Equals, "12")
	qt.Assert(c, got.StorageUpdates[0].Value.String(), qt.Equals, "34")

	qt.Assert(c, doc.ClassDeclarationSize, qt.Equals, uint64(1))
	qt.Assert(c, len(doc.ClassDeclaration), qt.Equals, 1)
	qt.Assert(c, doc.ClassDeclaration[0].ClassHash.String(), qt.Equals, "56")
	qt.Assert(c, doc.ClassDeclaration[0].CompiledClassHash.String(), qt.Equals, "78")
}

// S5.
func TestDecodeS5(t *testing.T) {
	c := qt.New(t)
	coeffs := coeffsFromUint64(2, 1, 1, 1, 1, 1234, 0, 5432, 12, 34, 56, 78, 0)
	infoWordVal := mustElement(c, "340282366920938568203987457954602287106")
	coeffs[6] = infoWordVal

	doc, err := Decode(coeffs)
	c.Assert(err, qt.IsNil)

	qt.Assert(c, doc.StateUpdateSize, qt.Equals, uint64(1))
	qt.Assert(c, len(doc.StateUpdate), qt.Equals, 1)
	got := doc.StateUpdate[0]
	qt.Assert(c, got.Address.String(), qt.Equals, "1234")
	qt.Assert(c, got.Nonce, qt.Equals, uint64(5678))
	qt.Assert(c, got.NumberOfStorageUpdates, qt.Equals, uint64(2))
	c.Assert(got.NewClassHash, qt.Not(qt.IsNil))
	qt.Assert(c, got.NewClassHash.String(), qt.Equals, "5432")
	qt.Assert(c, len(got.StorageUpdates), qt.Equals, 2)
	qt.Assert(c, got.StorageUpdates[0].Key.String(), qt.Equals, "12")
	qt.Assert(c, got.StorageUpdates[0].Value.String(), qt.Equals, "34")
	qt.Assert(c, got.StorageUpdates[1].Key.String(), qt.Equals, "56")
	qt.Assert(c, got.StorageUpdates[1].Value.String(), qt.Equals, "78")

	qt.Assert(c, doc.ClassDeclarationSize, qt.Equals, uint64(0))
	qt.Assert(c, len(doc.ClassDeclaration), qt.Equals, 0)
}

func TestDecodeZeroHeaderIsFatal(t *testing.T) {
	c := qt.New(t)
	coeffs := coeffsFromUint64(0)
	_, err := Decode(coeffs)
	c.Assert(err, qt.Not(qt.IsNil))
	var appErr *apperr.Error
	c.Assert(errors.As(err, &appErr), qt.IsTrue)
	qt.Assert(c, appErr.Kind, qt.Equals, apperr.KindMalformedHeader)
}

func TestDecodeHeaderCountOverflowIsMalformedHeader(t *testing.T) {
	c := qt.New(t)
	coeffs := make([]field.Element, field.BlobLen)
	coeffs[0] = mustElement(c, "340282366920938463463374607431768211456") // 2^128, does not fit in 64 bits
	_, err := Decode(coeffs)
	c.Assert(err, qt.Not(qt.IsNil))
	var appErr *apperr.Error
	c.Assert(errors.As(err, &appErr), qt.IsTrue)
	qt.Assert(c, appErr.Kind, qt.Equals, apperr.KindMalformedHeader,
		qt.Commentf("a header count that overflows 64 bits is a malformed header, not a generic integer overflow"))
}

func TestDecodeAddressSentinelTerminatesLoop(t *testing.T) {
	c := qt.New(t)
	// rawCount asserts 3 contract updates but the first address is the
	// zero sentinel, so the loop stops after zero updates.
	coeffs := coeffsFromUint64(4, 1, 1, 1, 1, 0)
	doc, err := Decode(coeffs)
	c.Assert(err, qt.IsNil)
	qt.Assert(c, doc.StateUpdateSize, qt.Equals, uint64(3))
	qt.Assert(c, len(doc.StateUpdate), qt.Equals, 0)
}

func TestDecodeStorageSentinelTerminatesInnerLoop(t *testing.T) {
	c := qt.New(t)
	// number_of_storage_updates asserts 5 updates but a {0,0} pair
	// appears first, so only zero updates are recorded for this contract.
	coeffs := coeffsFromUint64(2, 1, 1, 1, 1, 1234, 5, 0, 0)
	doc, err := Decode(coeffs)
	c.Assert(err, qt.IsNil)
	qt.Assert(c, len(doc.StateUpdate), qt.Equals, 1)
	qt.Assert(c, doc.StateUpdate[0].NumberOfStorageUpdates, qt.Equals, uint64(5))
	qt.Assert(c, len(doc.StateUpdate[0].StorageUpdates), qt.Equals, 0)
}

func TestDecodeUnexpectedZeroClassHashIsFatal(t *testing.T) {
	c := qt.New(t)
	// Zero contract updates, then a class-declaration count of 1 whose
	// single class hash is the zero sentinel: an inconsistency.
	coeffs := coeffsFromUint64(1, 1, 1, 1, 1, 1, 0)
	_, err := Decode(coeffs)
	c.Assert(err, qt.Not(qt.IsNil))
	var appErr *apperr.Error
	c.Assert(errors.As(err, &appErr), qt.IsTrue)
	qt.Assert(c, appErr.Kind, qt.Equals, apperr.KindUnexpectedZeroClassHash)
}

func TestDecodeClassDeclarationSizeIsRawCountEvenWhenTruncated(t *testing.T) {
	c := qt.New(t)
	coeffs := make([]field.Element, field.BlobLen)

	// A raw count large enough that the contract-update loop runs until
	// the blob-end guard stops it, not until the count is exhausted:
	// fill every address/info-word pair from index 5 onward with a
	// nonzero address and a zero info word (no class hash, no storage
	// updates), leaving the last slot for the class-declaration count.
	coeffs[0] = field.FromUint64(2047)
	for i := 5; i < field.BlobLen-1; i += 2 {
		coeffs[i] = field.FromUint64(1)
		coeffs[i+1] = field.Zero()
	}
	coeffs[field.BlobLen-1] = field.FromUint64(7)

	doc, err := Decode(coeffs)
	c.Assert(err, qt.IsNil)
	qt.Assert(c, doc.ClassDeclarationSize, qt.Equals, uint64(7))
	qt.Assert(c, len(doc.ClassDeclaration), qt.Equals, 0)
}

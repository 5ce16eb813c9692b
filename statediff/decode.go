package statediff

import (
	"github.com/vocdoni/blobdiff/apperr"
	"github.com/vocdoni/blobdiff/field"
)

// toUint64 narrows e to a native uint64, failing with IntegerOverflow if
// the value does not fit.
func toUint64(e field.Element) (uint64, error) {
	return toUint64Kind(e, apperr.KindIntegerOverflow)
}

// toUint64Kind narrows e to a native uint64, reporting kind if the value
// does not fit in 64 bits. Used where an overflowing count has a more
// specific error kind than the generic IntegerOverflow case, such as
// the header's contract-update count.
func toUint64Kind(e field.Element, kind apperr.Kind) (uint64, error) {
	v := e.Big()
	if v.BitLen() > 64 {
		return 0, apperr.Errorf(kind, "value %s does not fit in 64 bits", v.String())
	}
	return v.Uint64(), nil
}

// headerSkipSlots is the number of header words between the raw count
// and the first contract update that are intentionally not decoded.
const headerSkipSlots = 4

// Decode walks the coefficient stream c (the output of ntt.Recover) and
// parses it into a Document, following the cursor-advancement rules and
// sentinel terminators of the contract-update and class-declaration
// loops.
func Decode(c []field.Element) (*Document, error) {
	if len(c) != field.BlobLen {
		return nil, apperr.Errorf(apperr.KindMalformedHeader,
			"coefficient stream has length %d, want %d", len(c), field.BlobLen)
	}

	rawCount, err := toUint64Kind(c[0], apperr.KindMalformedHeader)
	if err != nil {
		return nil, err
	}
	if rawCount == 0 {
		return nil, apperr.Errorf(apperr.KindMalformedHeader,
			"raw contract-update count is zero")
	}
	effectiveCount := rawCount - 1

	doc := &Document{
		StateUpdateSize: effectiveCount,
	}

	i := 1 + headerSkipSlots

	for n := uint64(0); n < effectiveCount; n++ {
		if i >= field.BlobLen-1 {
			break
		}

		address := c[i]
		i++
		if address.IsZero() {
			break
		}

		if i >= field.BlobLen-1 {
			break
		}

		word, err := decodeInfoWord(c[i])
		if err != nil {
			return nil, err
		}
		i++

		update := ContractUpdate{
			Address:                address,
			Nonce:                  word.nonce,
			NumberOfStorageUpdates: word.numberOfStorageUpdates,
			StorageUpdates:         []StorageUpdate{},
		}

		if word.classFlag {
			classHash := c[i]
			i++
			update.NewClassHash = &classHash
		}

		for s := uint64(0); s < word.numberOfStorageUpdates; s++ {
			if i >= field.BlobLen-1 {
				break
			}
			key := c[i]
			i++
			value := c[i]
			i++
			if key.IsZero() && value.IsZero() {
				break
			}
			update.StorageUpdates = append(update.StorageUpdates, StorageUpdate{Key: key, Value: value})
		}

		doc.StateUpdate = append(doc.StateUpdate, update)
	}

	// The contract-update loop's guards keep i within [0, BlobLen-1] at
	// every read, but its last iteration can still advance i to exactly
	// BlobLen (e.g. a storage-update pair landing on the final two
	// slots). There is no slot left to hold a class-declaration count in
	// that case; treat it as zero declarations rather than reading past
	// the end of c.
	if i >= field.BlobLen {
		return doc, nil
	}

	classCount, err := toUint64(c[i])
	i++
	if err != nil {
		return nil, err
	}
	doc.ClassDeclarationSize = classCount

	for n := uint64(0); n < classCount; n++ {
		if i >= field.BlobLen {
			break
		}
		classHash := c[i]
		i++
		if classHash.IsZero() {
			return nil, apperr.Errorf(apperr.KindUnexpectedZeroClassHash,
				"class-declaration sentinel at index %d with %d of %d declarations read",
				i-1, n, classCount)
		}
		if i >= field.BlobLen-1 {
			break
		}
		compiled := c[i]
		i++
		doc.ClassDeclaration = append(doc.ClassDeclaration, ClassDeclaration{
			ClassHash:         classHash,
			CompiledClassHash: compiled,
		})
	}

	return doc, nil
}

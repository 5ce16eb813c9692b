// Package blob parses a hex-encoded EIP-4844 blob into an ordered
// sequence of field elements.
package blob

import (
	"encoding/hex"
	"strings"

	gethparams "github.com/ethereum/go-ethereum/params"

	"github.com/vocdoni/blobdiff/apperr"
	"github.com/vocdoni/blobdiff/field"
)

// BytesPerFieldElement is the size in bytes of one 256-bit big-endian
// blob chunk.
const BytesPerFieldElement = gethparams.BlobTxBytesPerFieldElement

// hexCharsPerFieldElement is the number of hex digits in one chunk.
const hexCharsPerFieldElement = BytesPerFieldElement * 2

// Blob is an ordered sequence of field.BlobLen field elements in
// evaluation form.
type Blob []field.Element

// Parse trims surrounding whitespace from s, requires the result to be
// exactly field.BlobLen*64 hex characters, and partitions it into
// field.BlobLen big-endian 256-bit chunks.
//
// No range check against P is performed: a chunk value greater than or
// equal to P is accepted as-is and produces defined but meaningless
// downstream results.
func Parse(s string) (Blob, error) {
	trimmed := strings.TrimSpace(s)
	wantLen := field.BlobLen * hexCharsPerFieldElement
	if len(trimmed) != wantLen {
		return nil, apperr.Errorf(apperr.KindMalformedBlobLength,
			"expected %d hex characters after trimming, got %d", wantLen, len(trimmed))
	}

	out := make(Blob, field.BlobLen)
	for i := 0; i < field.BlobLen; i++ {
		chunk := trimmed[i*hexCharsPerFieldElement : (i+1)*hexCharsPerFieldElement]
		raw, err := hex.DecodeString(chunk)
		if err != nil {
			return nil, apperr.Errorf(apperr.KindMalformedBlobHex,
				"chunk %d (%q): %v", i, chunk, err)
		}
		out[i] = field.FromBytesUnchecked(raw)
	}
	return out, nil
}

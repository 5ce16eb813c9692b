package statediff

import (
	"math/big"

	"github.com/vocdoni/blobdiff/apperr"
	"github.com/vocdoni/blobdiff/field"
)

// mask64 isolates the low 64 bits of a big.Int.
var mask64 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(1))

// infoWord is the decoded content of one contract's packed info word:
// class flag at bit 127 (0-indexed from the most significant end of a
// 256-bit representation), nonce at bits 128..191, number of storage
// updates at bits 192..255.
type infoWord struct {
	classFlag              bool
	nonce                  uint64
	numberOfStorageUpdates uint64
}

// decodeInfoWord extracts the three packed fields from e using native
// shift-and-mask on its big-endian integer value.
func decodeInfoWord(e field.Element) (infoWord, error) {
	v := e.Big()
	if v.BitLen() > 256 {
		return infoWord{}, apperr.Errorf(apperr.KindMalformedInfoWord,
			"info word occupies %d bits, want at most 256", v.BitLen())
	}

	// Bit 127 from the most significant end of a 256-bit value is bit
	// index 255-127 = 128 from the least significant end.
	classFlag := v.Bit(128) == 1

	nonce := new(big.Int).Rsh(v, 64)
	nonce.And(nonce, mask64)

	numUpdates := new(big.Int).And(v, mask64)

	return infoWord{
		classFlag:              classFlag,
		nonce:                  nonce.Uint64(),
		numberOfStorageUpdates: numUpdates.Uint64(),
	}, nil
}

package field

import "github.com/fxamacker/cbor/v2"

func cborMarshalText(s string) ([]byte, error) {
	return cbor.Marshal(s)
}

func cborUnmarshalText(data []byte) (string, error) {
	var s string
	if err := cbor.Unmarshal(data, &s); err != nil {
		return "", err
	}
	return s, nil
}

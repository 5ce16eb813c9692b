// Package statediff decodes the coefficient stream recovered by the
// ntt package into a structured rollup state-diff record, and
// serializes that record to JSON.
package statediff

import (
	"encoding/json"
	"io"

	"github.com/vocdoni/blobdiff/field"
)

// StorageUpdate is one contract storage write.
type StorageUpdate struct {
	Key   field.Element `json:"key"`
	Value field.Element `json:"value"`
}

// ContractUpdate carries all changes to one contract in this batch.
type ContractUpdate struct {
	Address                field.Element   `json:"address"`
	Nonce                  uint64          `json:"nonce"`
	NumberOfStorageUpdates uint64          `json:"number_of_storage_updates"`
	NewClassHash           *field.Element  `json:"new_class_hash"`
	StorageUpdates         []StorageUpdate `json:"storage_updates"`
}

// ClassDeclaration is the declaration of a new contract class.
type ClassDeclaration struct {
	ClassHash         field.Element `json:"class_hash"`
	CompiledClassHash field.Element `json:"compiled_class_hash"`
}

// Document is the full decoded payload of one blob.
type Document struct {
	StateUpdateSize      uint64             `json:"state_update_size"`
	StateUpdate          []ContractUpdate   `json:"state_update"`
	ClassDeclarationSize uint64             `json:"class_declaration_size"`
	ClassDeclaration     []ClassDeclaration `json:"class_declaration"`
}

// WriteIndent writes the document as pretty-printed JSON with two-space
// indentation.
func (d *Document) WriteIndent(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

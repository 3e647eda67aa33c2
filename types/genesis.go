package types

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/creachadair/atomicfile"

	"github.com/spvbridge/spvbridge/crypto"
)

const (
	// MaxChainIDLen is a maximum length of the chain ID.
	MaxChainIDLen = 50
)

//------------------------------------------------------------
// core types for a genesis definition

// GenesisDoc defines the initial conditions for a bridge instance: the
// trusted checkpoint header of the source chain, the fixed parameters, and
// the account credited with verification fees against the checkpoint.
type GenesisDoc struct {
	ChainID       string         `json:"chain_id"`
	GenesisHeader *Header        `json:"genesis_header"`
	Params        *Params        `json:"params,omitempty"`
	FeeRecipient  crypto.Address `json:"fee_recipient"`
}

// SaveAs is a utility method for saving GenensisDoc as a JSON file.
func (genDoc *GenesisDoc) SaveAs(file string) error {
	genDocBytes, err := json.MarshalIndent(genDoc, "", "  ")
	if err != nil {
		return err
	}
	_, err = atomicfile.WriteAll(file, bytes.NewReader(genDocBytes), 0644)
	return err
}

// ValidateAndComplete checks that all necessary fields are present
// and fills in defaults for optional fields left empty.
func (genDoc *GenesisDoc) ValidateAndComplete() error {
	if genDoc.ChainID == "" {
		return errors.New("genesis doc must include non-empty chain_id")
	}
	if len(genDoc.ChainID) > MaxChainIDLen {
		return fmt.Errorf("chain_id in genesis doc is too long (max: %d)", MaxChainIDLen)
	}

	if genDoc.GenesisHeader == nil {
		return errors.New("genesis doc must include a genesis header")
	}

	// The checkpoint is trusted by fiat and has no admitted parent, so an
	// omitted parent fingerprint defaults to the zero digest.
	if len(genDoc.GenesisHeader.ParentFingerprint) == 0 {
		genDoc.GenesisHeader.ParentFingerprint = make([]byte, crypto.HashSize)
	}
	if err := genDoc.GenesisHeader.ValidateBasic(); err != nil {
		return fmt.Errorf("invalid genesis header: %w", err)
	}

	if genDoc.Params == nil {
		genDoc.Params = DefaultParams()
	} else if err := genDoc.Params.Validate(); err != nil {
		return err
	}

	if len(genDoc.FeeRecipient) != crypto.AddressSize {
		return fmt.Errorf("fee_recipient must be %d bytes, got %d",
			crypto.AddressSize,
			len(genDoc.FeeRecipient),
		)
	}

	return nil
}

//------------------------------------------------------------
// Make genesis state from file

// GenesisDocFromJSON unmarshalls JSON data into a GenesisDoc.
func GenesisDocFromJSON(jsonBlob []byte) (*GenesisDoc, error) {
	genDoc := GenesisDoc{}
	err := json.Unmarshal(jsonBlob, &genDoc)
	if err != nil {
		return nil, err
	}

	if err := genDoc.ValidateAndComplete(); err != nil {
		return nil, err
	}

	return &genDoc, err
}

// GenesisDocFromFile reads JSON data from a file and unmarshalls it into a GenesisDoc.
func GenesisDocFromFile(genDocFile string) (*GenesisDoc, error) {
	jsonBlob, err := os.ReadFile(genDocFile)
	if err != nil {
		return nil, fmt.Errorf("couldn't read GenesisDoc file: %w", err)
	}
	genDoc, err := GenesisDocFromJSON(jsonBlob)
	if err != nil {
		return nil, fmt.Errorf("error reading GenesisDoc at %v: %w", genDocFile, err)
	}
	return genDoc, nil
}

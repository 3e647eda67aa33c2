package merkle

import (
	"fmt"

	"github.com/pkg/errors"
)

// ProofOp defines a single step of a Merkle proof. The semantics of Type,
// Key and Data are fixed by whichever proof system produced the proof on the
// source chain; this module never looks inside them.
type ProofOp struct {
	Type string `json:"type"`
	Key  []byte `json:"key,omitempty"`
	Data []byte `json:"data,omitempty"`
}

// Proof is an opaque Merkle proof: an ordered list of proof operations
// produced on the source chain. Proofs are carried through verification
// calls untouched and handed to the configured Oracle.
type Proof struct {
	Ops []ProofOp `json:"ops"`
}

// ValidateBasic performs stateless validation on the proof container. It
// does not verify the proof against anything.
func (p *Proof) ValidateBasic() error {
	if len(p.Ops) == 0 {
		return errors.New("proof has no operations")
	}
	for i, op := range p.Ops {
		if op.Type == "" {
			return fmt.Errorf("proof operation #%d has an empty type", i)
		}
	}
	return nil
}

func (p *Proof) String() string {
	if p == nil {
		return "Proof{nil}"
	}
	return fmt.Sprintf("Proof{%d ops}", len(p.Ops))
}

// Oracle verifies opaque Merkle proofs. VerifyValue returns nil iff the
// proof demonstrates that the Merkle tree committed to by root contains
// value. Implementations carry the proof-system knowledge this module
// deliberately does not.
type Oracle interface {
	VerifyValue(root []byte, value []byte, proof *Proof) error
}

// OracleFunc adapts a plain function to the Oracle interface.
type OracleFunc func(root []byte, value []byte, proof *Proof) error

func (f OracleFunc) VerifyValue(root []byte, value []byte, proof *Proof) error {
	return f(root, value, proof)
}

var _ Oracle = (OracleFunc)(nil)

package spv_test

import (
	"bytes"
	"context"
	"fmt"
	stdlog "log"

	dbm "github.com/tendermint/tm-db"

	"github.com/spvbridge/spvbridge/crypto"
	"github.com/spvbridge/spvbridge/crypto/merkle"
	"github.com/spvbridge/spvbridge/libs/log"
	"github.com/spvbridge/spvbridge/spv"
	dbs "github.com/spvbridge/spvbridge/store/db"
	"github.com/spvbridge/spvbridge/types"
)

// exampleBank burns and pays without keeping accounts; a real integration
// settles against the host chain's ledger.
type exampleBank struct{}

func (exampleBank) Burn(context.Context, crypto.Address, int64) error { return nil }

func (exampleBank) Pay(context.Context, crypto.Address, crypto.Address, int64) error { return nil }

// Relaying a header and verifying a transaction against it.
func ExampleBridge() {
	ctx := context.Background()

	// The genesis header and network parameters come from the source chain's
	// operators, out of band.
	genesis := &types.Header{
		Height:            100,
		ParentFingerprint: bytes.Repeat([]byte{0x00}, crypto.HashSize),
		StorageRoot:       bytes.Repeat([]byte{0xaa}, crypto.HashSize),
		TxRoot:            bytes.Repeat([]byte{0xbb}, crypto.HashSize),
		PowNonce:          0,
	}
	genDoc := &types.GenesisDoc{
		ChainID:       "example-chain",
		GenesisHeader: genesis,
		FeeRecipient:  bytes.Repeat([]byte{0x01}, crypto.AddressSize),
		Params: &types.Params{
			DifficultyThreshold: bytes.Repeat([]byte{0xff}, crypto.HashSize),
			RelayFee:            10,
			VerifyFee:           4,
		},
	}

	// A real oracle checks the proof against the root with the source
	// chain's proof system.
	oracle := merkle.OracleFunc(func(root, value []byte, proof *merkle.Proof) error {
		return nil
	})

	b, err := spv.NewBridge(genDoc, dbs.New(dbm.NewMemDB(), genDoc.ChainID), exampleBank{}, oracle,
		spv.Logger(log.NewNopLogger()))
	if err != nil {
		stdlog.Fatal(err)
	}

	// Relay the next header. The relay fee is burned from the submitter.
	next := &types.Header{
		Height:            101,
		ParentFingerprint: genesis.Fingerprint(),
		StorageRoot:       bytes.Repeat([]byte{0xcc}, crypto.HashSize),
		TxRoot:            bytes.Repeat([]byte{0xdd}, crypto.HashSize),
		PowNonce:          7,
	}
	submitter := bytes.Repeat([]byte{0x02}, crypto.AddressSize)
	res, err := b.SubmitHeader(ctx, next, submitter, 10)
	if err != nil {
		stdlog.Fatal(err)
	}
	fmt.Println("admitted at height:", res.Height)
	fmt.Println("best height:", b.BestHeight())

	// Ask whether a transaction is included in the new header, demanding no
	// confirmations on top of it. The verify fee goes to whoever relayed the
	// header.
	txHash := bytes.Repeat([]byte{0xe1}, crypto.HashSize)
	proof := &merkle.Proof{Ops: []merkle.ProofOp{{Type: "example:inclusion", Data: []byte{0x01}}}}
	caller := bytes.Repeat([]byte{0x03}, crypto.AddressSize)

	included, err := b.VerifyTransaction(ctx, txHash, next.Fingerprint(), 0, proof, caller, 4)
	if err != nil {
		stdlog.Fatal(err)
	}
	fmt.Println("included:", included)

	// Output:
	// admitted at height: 101
	// best height: 101
	// included: true
}

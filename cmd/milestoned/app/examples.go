package app

import (
	"bytes"

	"github.com/iov-one/milestone/coin"
	"github.com/iov-one/milestone/commands"
	"github.com/iov-one/milestone/crypto"
	"github.com/iov-one/milestone/x/cash"
	"github.com/iov-one/milestone/x/multisig"
	"github.com/iov-one/milestone/x/project"
	"github.com/iov-one/milestone/x/sigs"
)

// Examples generates some example structs to dump out with testgen
func Examples() []commands.Example {
	client := crypto.PrivKeyEd25519FromSeed(bytes.Repeat([]byte{1}, 32))
	freelancer := crypto.PrivKeyEd25519FromSeed(bytes.Repeat([]byte{2}, 32))
	observer := crypto.PrivKeyEd25519FromSeed(bytes.Repeat([]byte{3}, 32))
	projectID := []byte{0, 0, 0, 0, 0, 0, 0, 1}

	funds := coin.NewCoinp(1000, defaultTicker)

	initMsg := &project.InitializeProjectMsg{
		Freelancer: freelancer.PublicKey().Address(),
		Observer:   observer.PublicKey().Address(),
		Funds:      funds,
		Milestones: 4,
	}
	start := &project.StartProjectMsg{ProjectID: projectID}
	action, err := project.EncodeAction(start)
	if err != nil {
		panic(err)
	}
	createTx := &multisig.CreateTransactionMsg{ProjectID: projectID, Action: action}

	tx := &Tx{Msg: initMsg}
	sig, err := sigs.SignTx(client, tx, "test-123", 0)
	if err != nil {
		panic(err)
	}
	tx.Signatures = []*sigs.StdSignature{sig}

	return []commands.Example{
		{Filename: "pub_key", Obj: client.PublicKey()},
		{Filename: "coin", Obj: funds},
		{Filename: "send_msg", Obj: &cash.SendMsg{
			Source:      client.PublicKey().Address(),
			Destination: freelancer.PublicKey().Address(),
			Amount:      funds,
			Memo:        "advance",
		}},
		{Filename: "initialize_project_msg", Obj: initMsg},
		{Filename: "create_transaction_msg", Obj: createTx},
		{Filename: "approve_msg", Obj: &multisig.ApproveMsg{TransactionID: []byte{0, 0, 0, 0, 0, 0, 0, 1}}},
		{Filename: "withdraw_msg", Obj: &project.WithdrawMsg{ProjectID: projectID}},
		{Filename: "signed_tx", Obj: tx},
	}
}

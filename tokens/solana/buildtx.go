package solana

import (
	"errors"
	"fmt"

	"github.com/anyswap/solana-txcore/log"
	"github.com/anyswap/solana-txcore/programs/system"
	"github.com/anyswap/solana-txcore/programs/token"
	"github.com/anyswap/solana-txcore/tokens"
	"github.com/anyswap/solana-txcore/types"
)

type transferKeys struct {
	from     types.PublicKey
	to       types.PublicKey
	feePayer types.PublicKey
	mint     types.PublicKey
	owner    types.PublicKey
}

func parseKey(name, address string) (types.PublicKey, error) {
	key, err := types.PublicKeyFromBase58(address)
	if err != nil {
		return key, fmt.Errorf("%w: %v address '%v': %v", tokens.ErrWrongExtraArgs, name, address, err)
	}
	return key, nil
}

// resolveKeys parses the args keys, the fee payer falls back to the configured
// one and then to the sender.
func (b *Bridge) resolveKeys(args *tokens.TransferArgs) (keys transferKeys, err error) {
	if args.From == "" {
		return keys, errors.New("no sender specified")
	}
	if keys.from, err = parseKey("from", args.From); err != nil {
		return keys, err
	}
	if keys.to, err = parseKey("to", args.To); err != nil {
		return keys, err
	}
	switch {
	case args.FeePayer != "":
		if keys.feePayer, err = parseKey("fee payer", args.FeePayer); err != nil {
			return keys, err
		}
	default:
		var ok bool
		if keys.feePayer, ok = b.GetFeePayer(); !ok {
			keys.feePayer = keys.from
		}
	}
	if !args.IsTokenTransfer() {
		return keys, nil
	}
	if keys.mint, err = parseKey("mint", args.Mint); err != nil {
		return keys, err
	}
	keys.owner = keys.feePayer
	if args.Owner != "" {
		if keys.owner, err = parseKey("owner", args.Owner); err != nil {
			return keys, err
		}
	}
	return keys, nil
}

// BuildTransferTransaction build an unsigned transfer tx, a token transfer
// when args.Mint is set and a lamports transfer otherwise
func (b *Bridge) BuildTransferTransaction(args *tokens.TransferArgs) (*types.Transaction, error) {
	keys, err := b.resolveKeys(args)
	if err != nil {
		return nil, err
	}
	if args.RecentBlockhash == "" {
		return nil, types.ErrMissingBlockhash
	}
	blockhash, err := types.HashFromBase58(args.RecentBlockhash)
	if err != nil {
		return nil, fmt.Errorf("%w: recent blockhash: %v", tokens.ErrWrongExtraArgs, err)
	}

	var ins types.Instruction
	if args.IsTokenTransfer() {
		ins = token.NewTransferCheckedInstruction(token.TransferCheckedParams{
			Source:      keys.from,
			Mint:        keys.mint,
			Destination: keys.to,
			Owner:       keys.owner,
			Amount:      args.Amount,
			Decimals:    args.Decimals,
		})
	} else {
		ins = system.NewTransferInstruction(keys.from, keys.to, args.Amount)
	}

	tx := types.NewTransaction().
		SetFeePayer(keys.feePayer).
		SetRecentBlockhash(blockhash).
		AddInstruction(ins)
	if err = b.CheckTransactionSize(tx); err != nil {
		return nil, err
	}
	log.Info("build solana transfer tx success", "from", args.From, "to", args.To, "amount", args.Amount, "mint", args.Mint, "feePayer", keys.feePayer)
	return tx, nil
}

// CheckTransactionSize checks the wire size of tx with all signature slots filled
func (b *Bridge) CheckTransactionSize(tx *types.Transaction) error {
	raw, err := tx.MarshalBinary()
	if err != nil {
		return err
	}
	if maxSize := b.GetMaxRawTxSize(); len(raw) > maxSize {
		return fmt.Errorf("%w: %v bytes exceeds %v", tokens.ErrTransactionTooLarge, len(raw), maxSize)
	}
	return nil
}

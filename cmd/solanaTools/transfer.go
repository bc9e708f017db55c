package main

import (
	"fmt"
	"io/ioutil"

	"github.com/anyswap/solana-txcore/log"
	"github.com/anyswap/solana-txcore/tokens"
	"github.com/anyswap/solana-txcore/tokens/solana"
	"github.com/urfave/cli/v2"
)

var (
	// nolint:lll // allow long line of example
	transferCommand = &cli.Command{
		Action:    transfer,
		Name:      "transfer",
		Usage:     "build and sign transfer tx",
		ArgsUsage: " ",
		Description: `
build lamports transfer tx, or token transfer tx if '--mint' is specified,
sign it with the keystore files, and print the base64 tx.

Example:

./solanaTools transfer --from 7R9zUfmcXPUFGEtWtjuFUjhW5WD2i4G6ZL4TFbDJSozu --to KqhC7vpe7D9Sa1UMv9VLKj6xMovgL8QHd1mjW3Aws3t --amount 10000 --blockhash EtWTRABZaYq6iMfeYKouRu166VU2xqa1wcaWoxPkrZBG --sign ./keystore/UTC--2021-01-01T00-00-00.000000000Z--7R9zUfmc.json --password ./password.txt
`,
		Flags: []cli.Flag{
			senderFlag,
			receiverFlag,
			amountFlag,
			feePayerFlag,
			blockhashFlag,
			mintFlag,
			ownerFlag,
			decimalsFlag,
			keystoreFileSliceFlag,
			passwordFileFlag,
			outputFlag,
		},
	}
)

func transfer(ctx *cli.Context) error {
	bridge := solana.NewBridge(loadTxConfig(ctx))
	args := &tokens.TransferArgs{
		From:            ctx.String(senderFlag.Name),
		To:              ctx.String(receiverFlag.Name),
		Amount:          ctx.Uint64(amountFlag.Name),
		FeePayer:        ctx.String(feePayerFlag.Name),
		Mint:            ctx.String(mintFlag.Name),
		Owner:           ctx.String(ownerFlag.Name),
		Decimals:        uint8(ctx.Uint(decimalsFlag.Name)),
		RecentBlockhash: ctx.String(blockhashFlag.Name),
	}
	tx, err := bridge.BuildTransferTransaction(args)
	if err != nil {
		return err
	}
	if err = bridge.VerifyTransactionWithArgs(tx, args); err != nil {
		return err
	}

	signers, err := loadSigners(ctx)
	if err != nil {
		return err
	}
	if len(signers) > 0 {
		txHash, errs := bridge.SignTransaction(tx, signers...)
		if errs != nil {
			return errs
		}
		log.Info("sign transfer tx success", "txhash", txHash)
	}

	msgHash, err := bridge.GetMsgHash(tx)
	if err != nil {
		return err
	}
	b64, err := tx.ToBase64()
	if err != nil {
		return err
	}
	if output := ctx.String(outputFlag.Name); output != "" {
		if err = ioutil.WriteFile(output, []byte(b64+"\n"), 0600); err != nil {
			return err
		}
		log.Info("write transfer tx success", "output", output)
	}
	fmt.Println("MsgHash:", msgHash)
	fmt.Println("Transaction:", b64)
	return nil
}

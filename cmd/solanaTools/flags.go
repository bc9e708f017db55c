package main

import (
	"errors"

	"github.com/anyswap/solana-txcore/cmd/utils"
	"github.com/anyswap/solana-txcore/params"
	"github.com/anyswap/solana-txcore/tools"
	"github.com/anyswap/solana-txcore/types"
	"github.com/urfave/cli/v2"
)

var (
	passwordFileFlag = &cli.StringFlag{
		Name:  "password",
		Usage: "password file",
	}
	keystoreFileSliceFlag = &cli.StringSliceFlag{
		Name:  "sign",
		Usage: "keystore files to sign with (repeatable)",
	}
	senderFlag = &cli.StringFlag{
		Name:  "from",
		Usage: "from address (token account for token transfer)",
	}
	receiverFlag = &cli.StringFlag{
		Name:  "to",
		Usage: "to address (token account for token transfer)",
	}
	amountFlag = &cli.Uint64Flag{
		Name:  "amount",
		Usage: "amount in lamports or token base unit",
	}
	feePayerFlag = &cli.StringFlag{
		Name:  "feepayer",
		Usage: "fee payer address, default to config or sender",
	}
	blockhashFlag = &cli.StringFlag{
		Name:  "blockhash",
		Usage: "recent blockhash in base58",
	}
	mintFlag = &cli.StringFlag{
		Name:  "mint",
		Usage: "token mint address, transfer token if specified",
	}
	ownerFlag = &cli.StringFlag{
		Name:  "owner",
		Usage: "owner of the sender token account, default to fee payer",
	}
	decimalsFlag = &cli.UintFlag{
		Name:  "decimals",
		Usage: "token decimals",
	}
	outputFlag = &cli.StringFlag{
		Name:  "output",
		Usage: "write base64 transaction into file",
	}
	inputFileFlag = &cli.StringFlag{
		Name:  "file",
		Usage: "read base64 transaction from file",
	}
)

func readPasswordFile(ctx *cli.Context) (string, error) {
	passfile := ctx.String(passwordFileFlag.Name)
	if passfile == "" {
		return "", errors.New("must specify '--password' file")
	}
	return tools.ReadPassword(passfile)
}

func loadSigners(ctx *cli.Context) ([]types.Signer, error) {
	keyfiles := ctx.StringSlice(keystoreFileSliceFlag.Name)
	if len(keyfiles) == 0 {
		return nil, nil
	}
	passfile := ctx.String(passwordFileFlag.Name)
	if passfile == "" {
		return nil, errors.New("must specify '--password' file to sign")
	}
	return tools.LoadSigners(keyfiles, passfile)
}

// loadTxConfig returns the transaction section of the config if specified
func loadTxConfig(ctx *cli.Context) *params.TransactionConfig {
	configFile := utils.GetConfigFilePath(ctx)
	if configFile == "" {
		return nil
	}
	return params.LoadConfig(configFile).Transaction
}

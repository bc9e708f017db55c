package main

import (
	"errors"
	"fmt"

	"github.com/anyswap/solana-txcore/admin"
	"github.com/anyswap/solana-txcore/log"
	"github.com/anyswap/solana-txcore/rpc/client"
	"github.com/urfave/cli/v2"
)

var (
	adminKeystoreFlag = &cli.StringFlag{
		Name:  "keystore",
		Usage: "admin keystore file",
	}
	serverFlag = &cli.StringFlag{
		Name:  "server",
		Usage: "api server url, eg. http://127.0.0.1:11556/rpc",
	}

	adminCommand = &cli.Command{
		Name:  "admin",
		Usage: "call admin methods of the api server",
		Subcommands: []*cli.Command{
			deleteTxCommand,
		},
	}

	deleteTxCommand = &cli.Command{
		Action:    deleteTx,
		Name:      "deletetx",
		Usage:     "delete signed transactions from the tx store",
		ArgsUsage: "<txid>...",
		Description: `
Example:

./solanaTools admin deletetx --keystore admin.json --password pass.txt --server http://127.0.0.1:11556/rpc <txid>
`,
		Flags: []cli.Flag{
			adminKeystoreFlag,
			passwordFileFlag,
			serverFlag,
		},
	}
)

func deleteTx(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return errors.New("must specify txids to delete")
	}
	result, err := adminCall(ctx, "deletetx", ctx.Args().Slice())
	if err != nil {
		return err
	}
	log.Info("delete tx finished", "result", result)
	return nil
}

func adminCall(ctx *cli.Context, method string, params []string) (result string, err error) {
	apiServer := ctx.String(serverFlag.Name)
	if apiServer == "" {
		return "", fmt.Errorf("must specify '--%v'", serverFlag.Name)
	}
	keyfile := ctx.String(adminKeystoreFlag.Name)
	passfile := ctx.String(passwordFileFlag.Name)
	if keyfile == "" || passfile == "" {
		return "", errors.New("must specify admin '--keystore' and '--password'")
	}
	if err = admin.LoadKeyStore(keyfile, passfile); err != nil {
		return "", err
	}
	rawTx, err := admin.Sign(method, params)
	if err != nil {
		return "", err
	}
	client.InitHTTPClient()
	err = client.RPCPost(&result, apiServer, "solana.AdminCall", rawTx)
	return result, err
}

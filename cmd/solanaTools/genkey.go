package main

import (
	"fmt"

	"github.com/anyswap/solana-txcore/tools/keystore"
	"github.com/urfave/cli/v2"
)

var (
	genkeyCommand = &cli.Command{
		Action:    genkey,
		Name:      "genkey",
		Usage:     "generate ed25519 key into keystore file",
		ArgsUsage: " ",
		Description: `
generate a new key and store it encrypted with the password in password file.

Example:

./solanaTools genkey --keystore ./keystore --password ./password.txt
`,
		Flags: []cli.Flag{
			keystoreDirFlag,
			passwordFileFlag,
			lightKdfFlag,
		},
	}

	keystoreDirFlag = &cli.StringFlag{
		Name:  "keystore",
		Usage: "keystore directory",
		Value: "keystore",
	}
	lightKdfFlag = &cli.BoolFlag{
		Name:  "lightkdf",
		Usage: "use less memory and CPU time in key derivation",
	}
)

func genkey(ctx *cli.Context) error {
	password, err := readPasswordFile(ctx)
	if err != nil {
		return err
	}
	scryptN, scryptP := keystore.StandardScryptN, keystore.StandardScryptP
	if ctx.Bool(lightKdfFlag.Name) {
		scryptN, scryptP = keystore.LightScryptN, keystore.LightScryptP
	}
	key, err := keystore.NewKey()
	if err != nil {
		return err
	}
	keyFile, err := keystore.StoreKey(ctx.String(keystoreDirFlag.Name), key, password, scryptN, scryptP)
	if err != nil {
		return err
	}
	fmt.Println("Address:", key.Address())
	fmt.Println("Keystore:", keyFile)
	return nil
}

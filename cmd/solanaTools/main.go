package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/anyswap/solana-txcore/cmd/utils"
	"github.com/anyswap/solana-txcore/log"
	"github.com/urfave/cli/v2"
)

var (
	clientIdentifier = "solanaTools"
	// Git SHA1 commit hash of the release (set via linker flags)
	gitCommit = ""
	gitDate   = ""
	// The app that holds all commands and flags.
	app = utils.NewApp(clientIdentifier, gitCommit, gitDate, "the solana transaction tools command line interface")
)

func initApp() {
	// Initialize the CLI app and start action
	app.Action = solanaTools
	app.HideVersion = true // we have a command to print the version
	app.Copyright = "Copyright 2021 The solana-txcore Authors"
	app.Commands = []*cli.Command{
		genkeyCommand,
		transferCommand,
		decodeCommand,
		watchCommand,
		serveCommand,
		adminCommand,
		utils.VersionCommand,
	}
	app.Flags = append([]cli.Flag{utils.ConfigFileFlag}, utils.CommonLogFlags...)
	app.Before = func(ctx *cli.Context) error {
		utils.SetLogger(ctx)
		return nil
	}
	sort.Sort(cli.CommandsByName(app.Commands))
}

func main() {
	initApp()
	if err := app.Run(os.Args); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func solanaTools(ctx *cli.Context) error {
	if ctx.NArg() > 0 {
		return fmt.Errorf("invalid command: %q", ctx.Args().Get(0))
	}
	return cli.ShowAppHelp(ctx)
}

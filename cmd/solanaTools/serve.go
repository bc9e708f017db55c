package main

import (
	"errors"
	"fmt"

	"github.com/anyswap/solana-txcore/cmd/utils"
	"github.com/anyswap/solana-txcore/internal/signapi"
	"github.com/anyswap/solana-txcore/leveldb"
	"github.com/anyswap/solana-txcore/log"
	"github.com/anyswap/solana-txcore/params"
	"github.com/anyswap/solana-txcore/rpc/server"
	"github.com/anyswap/solana-txcore/tokens/solana"
	"github.com/anyswap/solana-txcore/tools"
	"github.com/anyswap/solana-txcore/worker"
	"github.com/urfave/cli/v2"
)

var (
	serveCommand = &cli.Command{
		Action:    serve,
		Name:      "serve",
		Usage:     "serve json rpc and rest api of the signer",
		ArgsUsage: " ",
		Description: `
serve the api of '[APIServer]' in config. when '[Watch]' is also configured
the sign watcher runs alongside and shares the same tx store.

Example:

./solanaTools --config ./config.toml serve --datadir ./data
`,
		Flags: []cli.Flag{
			utils.DataDirFlag,
		},
	}
)

func serve(ctx *cli.Context) error {
	configFile := utils.GetConfigFilePath(ctx)
	if configFile == "" {
		return fmt.Errorf("must specify '--%v' to serve", utils.ConfigFileFlag.Name)
	}
	config := params.LoadConfig(configFile)
	if config.APIServer == nil {
		return errors.New("must config 'APIServer' to serve")
	}
	utils.InitDataDir(ctx)

	signers, err := tools.LoadSigners(config.Signer.KeystoreFiles, config.Signer.PasswordFile)
	if err != nil {
		return err
	}
	db, err := worker.OpenTxStore()
	if err != nil {
		return err
	}
	store := leveldb.NewTxStore(db)
	bridge := solana.NewBridge(config.Transaction)
	signapi.Init(bridge, signers, store)

	if config.Watch != nil {
		w := worker.NewSignWorker(bridge, signers, store, config.Watch)
		if err = w.StartSignWatcher(config.Watch.Dir); err != nil {
			_ = db.Close()
			return err
		}
	}
	server.StartAPIServer(config.APIServer)

	utils.WaitAndCleanup(func() {
		if errc := db.Close(); errc != nil {
			log.Warn("close tx store failed", "err", errc)
		}
		log.CloseLogFile()
	})
	return nil
}

package main

import (
	"fmt"

	"github.com/anyswap/solana-txcore/cmd/utils"
	"github.com/anyswap/solana-txcore/log"
	"github.com/anyswap/solana-txcore/params"
	"github.com/anyswap/solana-txcore/worker"
	"github.com/urfave/cli/v2"
)

var (
	watchCommand = &cli.Command{
		Action:    watch,
		Name:      "watch",
		Usage:     "watch directory and sign pending tx files",
		ArgsUsage: " ",
		Description: `
watch the '[Watch] Dir' of config, sign every '*.tx' file containing a base64 tx
with the configured keystores, write the result into '*.signed' file and keep
the fully signed tx in the store under data dir.

Example:

./solanaTools --config ./config.toml watch --datadir ./data
`,
		Flags: []cli.Flag{
			utils.DataDirFlag,
		},
	}
)

func watch(ctx *cli.Context) error {
	configFile := utils.GetConfigFilePath(ctx)
	if configFile == "" {
		return fmt.Errorf("must specify '--%v' to watch", utils.ConfigFileFlag.Name)
	}
	params.LoadConfig(configFile)
	utils.InitDataDir(ctx)

	db, err := worker.StartWork()
	if err != nil {
		return err
	}
	utils.WaitAndCleanup(func() {
		if errc := db.Close(); errc != nil {
			log.Warn("close tx store failed", "err", errc)
		}
		log.CloseLogFile()
	})
	return nil
}

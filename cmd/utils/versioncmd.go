package utils

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/anyswap/solana-txcore/log"
	"github.com/anyswap/solana-txcore/params"
	"github.com/urfave/cli/v2"
)

var (
	// VersionCommand version subcommand
	VersionCommand = &cli.Command{
		Action:    version,
		Name:      "version",
		Usage:     "Print version numbers",
		ArgsUsage: " ",
		Description: `
Print the version, build and wire format limits, as json when '--json' is set.
`,
	}
)

type versionItem struct {
	Name  string
	Value interface{}
}

func versionItems() []versionItem {
	items := []versionItem{
		{"Name", clientIdentifier},
		{"Version", params.VersionWithMeta},
	}
	if gitCommit != "" {
		items = append(items, versionItem{"Git Commit", gitCommit})
	}
	if gitDate != "" {
		items = append(items, versionItem{"Git Commit Date", gitDate})
	}
	return append(items,
		versionItem{"Go Version", runtime.Version()},
		versionItem{"Platform", runtime.GOOS + "/" + runtime.GOARCH},
		versionItem{"Message Format", "legacy"},
		versionItem{"Max Raw Tx Size", params.DefaultMaxRawTxSize},
	)
}

func version(ctx *cli.Context) error {
	items := versionItems()
	if !log.JSONFormat {
		for _, item := range items {
			fmt.Printf("%v: %v\n", item.Name, item.Value)
		}
		return nil
	}
	fields := make(map[string]interface{}, len(items))
	for _, item := range items {
		fields[item.Name] = item.Value
	}
	bs, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	fmt.Println(string(bs))
	return nil
}

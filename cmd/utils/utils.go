package utils

import (
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/anyswap/solana-txcore/log"
	"github.com/anyswap/solana-txcore/params"
	"github.com/urfave/cli/v2"
)

var (
	clientIdentifier string
	gitCommit        string
	gitDate          string

	// TopWaitGroup tracks the long running goroutines
	TopWaitGroup = new(sync.WaitGroup)
	// CleanupChan is closed when the program is exiting
	CleanupChan = make(chan struct{})

	cleanupOnce sync.Once
)

// NewApp creates an app with sane defaults.
func NewApp(identifier, gitcommit, gitdate, usage string) *cli.App {
	clientIdentifier = identifier
	gitCommit = gitcommit
	gitDate = gitdate
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Version = params.VersionWithCommit(gitCommit, gitDate)
	app.Usage = usage
	return app
}

// Cleanup closes CleanupChan and waits for the goroutines in TopWaitGroup
func Cleanup() {
	cleanupOnce.Do(func() {
		close(CleanupChan)
	})
	TopWaitGroup.Wait()
}

// WaitAndCleanup blocks until an interrupt signal, then cleans up
func WaitAndCleanup(doCleanup func()) {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalChan)

	sig := <-signalChan
	log.Info("receive signal to exit", "signal", sig)
	Cleanup()
	if doCleanup != nil {
		doCleanup()
	}
	log.Info("cleanup finished")
}

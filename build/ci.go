// Package build provide customized methods to build project.
// It can add external infos (eg. gitCommit, gitDate) to the version sub command.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/anyswap/solana-txcore/internal/build"
)

var gobin, _ = filepath.Abs(filepath.Join("build", "bin"))

func main() {
	log.SetFlags(log.Lshortfile)

	if _, err := os.Stat(filepath.Join("build", "ci.go")); os.IsNotExist(err) {
		log.Fatal("this script must be run from the root of the repository")
	}
	if len(os.Args) < 2 {
		log.Fatal("need subcommand as first argument")
	}
	switch os.Args[1] {
	case "install":
		doInstall(os.Args[2:])
	case "test":
		doTest(os.Args[2:])
	default:
		log.Fatal("unknown command ", os.Args[1])
	}
}

// Compiling

func doInstall(cmdline []string) {
	_ = flag.CommandLine.Parse(cmdline)
	env := build.Env()

	checkGoVersion()
	log.Println("build environment:", env)

	// the command line tools are installed unless packages are given
	packages := []string{"./cmd/solanaTools"}
	if flag.NArg() > 0 {
		packages = flag.Args()
	}

	goinstall := goTool("install", buildFlags(env)...)
	if runtime.GOARCH == "arm64" {
		goinstall.Args = append(goinstall.Args, "-p", "1")
	}
	goinstall.Args = append(goinstall.Args, "-v")
	goinstall.Args = append(goinstall.Args, packages...)
	build.MustRun(goinstall)
}

// Testing

func doTest(cmdline []string) {
	coverage := flag.Bool("coverage", false, "whether to record code coverage")
	_ = flag.CommandLine.Parse(cmdline)
	checkGoVersion()

	packages := []string{"./..."}
	if flag.NArg() > 0 {
		packages = flag.Args()
	}
	gotest := goTool("test")
	gotest.Args = append(gotest.Args, "-p", "1")
	if *coverage {
		gotest.Args = append(gotest.Args, "-covermode=atomic", "-cover")
	}
	gotest.Args = append(gotest.Args, packages...)
	build.MustRun(gotest)
}

// checkGoVersion exits when the host go is older than go.mod requires
func checkGoVersion() {
	if strings.Contains(runtime.Version(), "devel") {
		return
	}
	var minor int
	_, _ = fmt.Sscanf(strings.TrimPrefix(runtime.Version(), "go1."), "%d", &minor)
	if minor < 18 {
		log.Println("You have Go version", runtime.Version())
		log.Println("requires at least Go version 1.18, please upgrade your Go installation.")
		os.Exit(1)
	}
}

func buildFlags(env build.Environment) (flags []string) {
	var ld []string
	if env.Commit != "" {
		ld = append(ld,
			"-X", "main.gitCommit="+env.Commit,
			"-X", "main.gitDate="+env.Date,
		)
	}
	if runtime.GOOS == "darwin" {
		ld = append(ld, "-s")
	}

	if len(ld) > 0 {
		flags = append(flags, "-ldflags", strings.Join(ld, " "))
	}
	return flags
}

func goTool(subcmd string, args ...string) *exec.Cmd {
	return goToolArch(runtime.GOARCH, os.Getenv("CC"), subcmd, args...)
}

func goToolArch(arch, cc, subcmd string, args ...string) *exec.Cmd {
	cmd := build.GoTool(subcmd, args...)
	if arch == "" || arch == runtime.GOARCH {
		cmd.Env = append(cmd.Env, "GOBIN="+gobin)
	} else {
		cmd.Env = append(cmd.Env, "CGO_ENABLED=1", "GOARCH="+arch)
	}
	if cc != "" {
		cmd.Env = append(cmd.Env, "CC="+cc)
	}
	for _, e := range os.Environ() {
		if strings.HasPrefix(e, "GOBIN=") {
			continue
		}
		cmd.Env = append(cmd.Env, e)
	}
	return cmd
}

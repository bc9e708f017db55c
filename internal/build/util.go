// Package build contains the helpers of the build/ci.go script.
package build

import (
	"flag"
	"fmt"
	"io/ioutil"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// DryRunFlag prints commands without running them
var DryRunFlag = flag.Bool("n", false, "dry run, don't execute commands")

// MustRun runs cmd with the output attached, exits on failure.
func MustRun(cmd *exec.Cmd) {
	fmt.Println(">>>", strings.Join(cmd.Args, " "))
	if *DryRunFlag {
		return
	}
	cmd.Stdout, cmd.Stderr = os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		log.Fatal(err)
	}
}

// RunGit returns the trimmed output of a git command, or an empty string when
// git is not installed or the command fails.
func RunGit(args ...string) string {
	out, err := exec.Command("git", args...).Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// readGitFile returns the trimmed content of a file under .git
func readGitFile(file string) string {
	content, err := ioutil.ReadFile(filepath.Join(".git", file))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(content))
}

// GoTool runs the go binary of the running toolchain's GOROOT.
func GoTool(tool string, args ...string) *exec.Cmd {
	return exec.Command(filepath.Join(runtime.GOROOT(), "bin", "go"), append([]string{tool}, args...)...) //nolint:gosec // build script
}

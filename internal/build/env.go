package build

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
)

var (
	// GitCommitFlag overrides the commit detected from the local checkout
	GitCommitFlag = flag.String("git-commit", "", `overrides git commit hash embedded into executables`)
)

// Environment contains metadata provided by the build environment.
type Environment struct {
	Commit string
	Date   string
}

func (env Environment) String() string {
	return fmt.Sprintf("commit=%s date=%s", env.Commit, env.Date)
}

// Env returns metadata about the current build environment.
func Env() Environment {
	commit := *GitCommitFlag
	if commit == "" {
		commit = getenvOrGit("SOLANA_GIT_COMMIT", "rev-parse", "HEAD")
	}
	if commit == "" {
		commit = readGitHead()
	}
	env := Environment{Commit: commit}
	if commit != "" {
		env.Date = getDate(commit)
	}
	return env
}

// readGitHead resolves HEAD without the git binary
func readGitHead() string {
	head := readGitFile("HEAD")
	if !strings.HasPrefix(head, "ref: ") {
		return head
	}
	return readGitFile(strings.TrimPrefix(head, "ref: "))
}

func getDate(commit string) string {
	date := RunGit("show", "-s", "--format=%ct", commit)
	var unix int64
	if _, err := fmt.Sscanf(date, "%d", &unix); err != nil {
		return ""
	}
	return time.Unix(unix, 0).UTC().Format("20060102")
}

func getenvOrGit(envvar string, gitArgs ...string) string {
	if v := os.Getenv(envvar); v != "" {
		return v
	}
	return RunGit(gitArgs...)
}

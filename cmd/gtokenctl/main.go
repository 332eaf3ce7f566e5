package main

import (
	"os"

	gtokenctlcmd "github.com/telekom/gtokenctl/pkg/gtokenctl/cmd"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	root := gtokenctlcmd.NewRootCommand(gtokenctlcmd.DefaultConfig())
	root.SetArgs(args)
	return gtokenctlcmd.ExitCode(root.Execute(), os.Stderr)
}

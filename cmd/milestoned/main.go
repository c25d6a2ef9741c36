package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/cmd/milestoned/app"
	"github.com/iov-one/milestone/commands"
	"github.com/iov-one/milestone/commands/server"
	"github.com/tendermint/tendermint/libs/log"
)

var (
	home     = flag.String("home", filepath.Join(os.ExpandEnv("$HOME"), ".milestone"), "directory to store files under")
	logLevel = flag.String("log_level", "info", "lowest level of logged messages: debug, info, error or none")
)

type command struct {
	help string
	run  func(logger log.Logger, args []string) error
}

var cmds = map[string]command{
	"init": {"write the app state into the genesis file", func(l log.Logger, args []string) error {
		return server.InitCmd(app.GenInitOptions, l, *home, args)
	}},
	"start": {"run the abci server", func(l log.Logger, args []string) error {
		return server.StartCmd(app.GenerateApp, l, *home, args)
	}},
	"validate": {"check the app state of given genesis files", func(_ log.Logger, args []string) error {
		return server.ValidateGenesis(app.Initializers(), args)
	}},
	"testgen": {"write example objects into given directory", func(_ log.Logger, args []string) error {
		return commands.TestGenCmd(app.Examples(), args)
	}},
	"keys": {"derive a key from a hex seed and a path, or a random seed", func(_ log.Logger, args []string) error {
		return commands.KeysCmd(os.Stdout, args)
	}},
	"version": {"print the application version", func(log.Logger, []string) error {
		fmt.Println(milestone.Version())
		return nil
	}},
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: milestoned [flags] <command> [args]\n\nCommands:\n")
	names := make([]string, 0, len(cmds))
	for name := range cmds {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(os.Stderr, "  %-10s %s\n", name, cmds[name].help)
	}
	fmt.Fprintf(os.Stderr, "\nFlags:\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	cmd, ok := cmds[flag.Arg(0)]
	if !ok {
		usage()
		os.Exit(2)
	}

	level, err := log.AllowLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(2)
	}
	logger := log.NewFilter(log.NewTMLogger(log.NewSyncWriter(os.Stdout)), level).
		With("module", "milestone")

	if err := cmd.run(logger, flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

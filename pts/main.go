package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path"

	"github.com/etnz/papertrade/cmd"
	"github.com/google/subcommands"
)

func main() {
	name := path.Base(os.Args[0])
	// Answers shell completion requests, and exits, when the shell asks for them.
	cmd.Completion().Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	if err := cmd.LoadEnv(flag.CommandLine); err != nil {
		log.Fatal(err)
	}
	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

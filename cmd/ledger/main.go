// Command ledger is a terminal client for the ledger service.
//
//	ledger signup -name Alice -email alice@example.com
//	ledger add -amount 12.50 -category Food -desc Lunch
//	ledger list -category Food -from 2024-03-01
//	ledger export -o march.csv -from 2024-03-01 -to 2024-03-31
//
// The server is taken from LEDGER_URL (or -url) and the session is kept in
// LEDGER_CREDENTIALS, by default under the user config directory.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

var commands = []subcommands.Command{
	&signupCmd{},
	&loginCmd{},
	&logoutCmd{},
	&addCmd{},
	&listCmd{},
	&editCmd{},
	&deleteCmd{},
	&exportCmd{},
	&summaryCmd{},
}

func main() {
	_ = godotenv.Load()

	baseURL := flag.String("url", envOr("LEDGER_URL", "http://localhost:8080"), "ledger service URL")
	credsPath := flag.String("credentials", os.Getenv("LEDGER_CREDENTIALS"), "session file (default: user config dir)")

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range commands {
		commander.Register(c, "ledger")
	}

	flag.Parse()

	env, err := newEnv(*baseURL, *credsPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(subcommands.ExitFailure))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	os.Exit(int(commander.Execute(ctx, env)))
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
)

type signupCmd struct {
	name  string
	email string
}

func (*signupCmd) Name() string     { return "signup" }
func (*signupCmd) Synopsis() string { return "create an account and log in" }
func (*signupCmd) Usage() string {
	return `ledger signup -name <name> -email <email>

  Creates an account. The password (at least 6 characters) is prompted for.
`
}

func (c *signupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "display name")
	f.StringVar(&c.email, "email", "", "email address")
}

func (c *signupCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	e := envFrom(args)
	if c.name == "" || c.email == "" {
		fmt.Fprint(e.errOut, c.Usage())
		return subcommands.ExitUsageError
	}

	password, err := e.readPassword("Password: ")
	if err != nil {
		return e.fail(err)
	}

	resp, err := e.client.Signup(ctx, ledgersdk.SignupRequest{
		Name:     c.name,
		Email:    c.email,
		Password: password,
	})
	if err != nil {
		return e.fail(err)
	}

	fmt.Fprintf(e.out, "Welcome %s, you are logged in as %s\n", resp.User.Name, resp.User.Email)
	return subcommands.ExitSuccess
}

type loginCmd struct {
	email string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "log in and remember the session" }
func (*loginCmd) Usage() string {
	return `ledger login -email <email>

  Logs in. The password is prompted for. The session lasts seven days.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "email address")
}

func (c *loginCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	e := envFrom(args)
	if c.email == "" {
		fmt.Fprint(e.errOut, c.Usage())
		return subcommands.ExitUsageError
	}

	password, err := e.readPassword("Password: ")
	if err != nil {
		return e.fail(err)
	}

	resp, err := e.client.Login(ctx, c.email, password)
	if err != nil {
		return e.fail(err)
	}

	fmt.Fprintf(e.out, "Logged in as %s\n", resp.User.Email)
	return subcommands.ExitSuccess
}

type logoutCmd struct{}

func (*logoutCmd) Name() string           { return "logout" }
func (*logoutCmd) Synopsis() string       { return "forget the stored session" }
func (*logoutCmd) Usage() string          { return "ledger logout\n" }
func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (*logoutCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	e := envFrom(args)
	if err := e.client.Logout(); err != nil {
		return e.fail(err)
	}
	fmt.Fprintln(e.out, "Logged out")
	return subcommands.ExitSuccess
}

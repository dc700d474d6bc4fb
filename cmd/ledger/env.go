package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"
	"golang.org/x/term"

	"github.com/aussiebroadwan/ledger/pkg/ledgersdk"
)

// env is handed to every command through subcommands' Execute args.
type env struct {
	client *ledgersdk.Client
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func newEnv(baseURL, credsPath string) (*env, error) {
	if credsPath == "" {
		p, err := ledgersdk.DefaultCredentialsPath()
		if err != nil {
			return nil, fmt.Errorf("locate credentials file: %w", err)
		}
		credsPath = p
	}

	client := ledgersdk.NewClient(baseURL)
	client.Credentials = &ledgersdk.FileCredentials{Path: credsPath}

	return &env{
		client: client,
		in:     os.Stdin,
		out:    os.Stdout,
		errOut: os.Stderr,
	}, nil
}

// envFrom recovers the env passed to commander.Execute.
func envFrom(args []interface{}) *env {
	for _, a := range args {
		if e, ok := a.(*env); ok {
			return e
		}
	}
	panic("ledger: command executed without env")
}

// fail prints err in a form a person can act on and returns ExitFailure.
func (e *env) fail(err error) subcommands.ExitStatus {
	var apiErr *ledgersdk.APIError
	switch {
	case errors.Is(err, ledgersdk.ErrUnauthenticated):
		fmt.Fprintln(e.errOut, "not logged in (or the session expired), run: ledger login")
	case errors.As(err, &apiErr) && len(apiErr.Details) > 0:
		fmt.Fprintln(e.errOut, apiErr.Description+":")
		for field, msg := range apiErr.Details {
			fmt.Fprintf(e.errOut, "  %s: %s\n", field, msg)
		}
	case errors.As(err, &apiErr):
		fmt.Fprintln(e.errOut, apiErr.Description)
	default:
		fmt.Fprintln(e.errOut, err)
	}
	return subcommands.ExitFailure
}

// readPassword reads without echo from a terminal, or a line from anything
// else (pipes, tests).
func (e *env) readPassword(prompt string) (string, error) {
	fmt.Fprint(e.errOut, prompt)

	if f, ok := e.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(e.errOut)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}

	scanner := bufio.NewScanner(e.in)
	if scanner.Scan() {
		return strings.TrimRight(scanner.Text(), "\r"), nil
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

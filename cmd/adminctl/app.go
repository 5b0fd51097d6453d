package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"

	"github.com/dmitrymomot/marketadmin"
	"github.com/dmitrymomot/marketadmin/pkg/apiclient"
	"github.com/dmitrymomot/marketadmin/pkg/logger"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

type command struct {
	usage string
	// admin commands pass the console's admin gate before running.
	admin bool
	run   func(ctx context.Context, a *app, args []string) error
}

var commands = map[string]command{
	"login":          {usage: "login -email EMAIL [-password PASSWORD]", run: cmdLogin},
	"logout":         {usage: "logout", run: cmdLogout},
	"whoami":         {usage: "whoami", run: cmdWhoami},
	"products":       {usage: "products [-page N -limit N -search S -category C -status S -sort S -categories]", admin: true, run: cmdProducts},
	"toggle-product": {usage: "toggle-product ID", admin: true, run: cmdToggleProduct},
	"delete-product": {usage: "delete-product ID", admin: true, run: cmdDeleteProduct},
	"flag-product":   {usage: "flag-product -title T -reason R ID", admin: true, run: cmdFlagProduct},
	"sellers":        {usage: "sellers [-search S -sort newest|oldest|name]", admin: true, run: cmdSellers},
	"approve-seller": {usage: "approve-seller ID", admin: true, run: cmdApproveSeller},
	"reject-seller":  {usage: "reject-seller [-reason R] ID", admin: true, run: cmdRejectSeller},
	"users":          {usage: "users [-page N -limit N -search S -role R -status S]", admin: true, run: cmdUsers},
	"report":         {usage: "report sales [-timeframe week|month|year] | report products", admin: true, run: cmdReport},
	"dashboard":      {usage: "dashboard", admin: true, run: cmdDashboard},
}

type app struct {
	console *marketadmin.Console
	out     *output
	stdin   io.Reader
	stderr  io.Writer
	logger  *slog.Logger
}

func run(ctx context.Context, cfg marketadmin.Config, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("adminctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("o", formatTable, "output format: table, yaml or json")
	fs.Usage = func() { printUsage(stderr) }
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}
	out, err := newOutput(stdout, *format)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return exitUsage
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", rest[0])
		printUsage(stderr)
		return exitUsage
	}

	log := marketadmin.NewLogger(cfg, "adminctl")
	console, err := marketadmin.New(ctx, cfg,
		marketadmin.WithLogger(log),
		marketadmin.WithNavigator(func(context.Context, string) {
			fmt.Fprintln(stderr, "session ended, run `adminctl login`")
		}),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitError
	}
	defer console.Close()

	a := &app{console: console, out: out, stdin: stdin, stderr: stderr, logger: log}
	if err := a.exec(ctx, cmd, rest[1:]); err != nil {
		if errors.Is(err, errUsage) || errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(stderr, "usage: adminctl", cmd.usage)
			return exitUsage
		}
		log.DebugContext(ctx, "command failed", logger.Event(rest[0]), logger.Error(err))
		fmt.Fprintln(stderr, "error:", apiclient.MessageOf(err))
		return exitError
	}
	return exitOK
}

func (a *app) exec(ctx context.Context, cmd command, args []string) error {
	if _, err := a.console.Start(ctx); err != nil {
		return err
	}
	if cmd.admin {
		if err := a.console.RequireAdmin(ctx); err != nil {
			return err
		}
	}
	return cmd.run(ctx, a, args)
}

func printUsage(w io.Writer) {
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("usage: adminctl [-o table|yaml|json] COMMAND [ARGS]\n\ncommands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s\n", commands[name].usage)
	}
	fmt.Fprint(w, b.String())
}

// newFlags returns a subcommand flag set that reports errors instead of
// exiting.
func (a *app) newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

// oneID parses fs and returns its single positional argument.
func oneID(fs *flag.FlagSet, args []string) (string, error) {
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	if fs.NArg() != 1 {
		return "", errUsage
	}
	return fs.Arg(0), nil
}

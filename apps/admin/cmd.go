package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/JithuMorrison/OneStop-Web-sub001/core"
)

var (
	isTerminalFunc = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) } // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf   *core.Config
	out    io.Writer
	openDB func() (*sql.DB, error)
}

func (cli *commandLine) printUsage() {
	_, _ = fmt.Fprintln(cli.out, "Usage:")
	_, _ = fmt.Fprintln(cli.out, "  hashtag encode -category CATEGORY -title TITLE [-name NAME] -start DD-MM-YYYY -end DD-MM-YYYY")
	_, _ = fmt.Fprintln(cli.out, "  hashtag decode HASHTAG")
	_, _ = fmt.Fprintln(cli.out, "  cgpa -file ROWS.json [-lenient] - compute the GPA of course rows (- reads stdin)")
	_, _ = fmt.Fprintln(cli.out, "  migrate [up|down|status|version|...] - run database migrations (default: up)")
	_, _ = fmt.Fprintln(cli.out, "  token -id ID [-username USERNAME] [-email EMAIL] [-roles ROLE,...] - issue a dev API token")
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parse maps -h to errHelp.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	switch args[1] {
	case "hashtag":
		return cli.hashtag(args[2:])
	case "cgpa":
		return cli.cgpa(args[2:])
	case "migrate":
		return cli.migrate(args[2:])
	case "token":
		return cli.token(args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

// printJSON writes `v` indented on a terminal, compact otherwise.
func (cli *commandLine) printJSON(v interface{}) error {
	enc := json.NewEncoder(cli.out)
	if isTerminalFunc() {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// Command hexconv converts values between raw bytes, hex text and the
// serialization formats of the format package.
//
//	hexconv [-config FILE] encode [-in FILE]
//	hexconv [-config FILE] decode [-len N] HEX
//	hexconv [-config FILE] convert [-from F] [-to G] [-len N] [-name NAME]
//	hexconv [-config FILE] inspect [-from F] [-len N] [-name NAME]
//	hexconv formats
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "hexconv: %v\n", err)
		os.Exit(1)
	}
}

type env struct {
	cfg    config
	log    *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

type command func(e *env, args []string) error

var commands = map[string]command{
	"encode":  runEncode,
	"decode":  runDecode,
	"convert": runConvert,
	"inspect": runInspect,
	"formats": runFormats,
}

func commandNames() string {
	names := lo.Keys(commands)
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hexconv", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML `file` with default settings")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg := defaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = loadConfig(*configPath); err != nil {
			return err
		}
	}

	rest := fs.Args()
	if len(rest) == 0 {
		return errors.Newf("missing command (one of %s)", commandNames())
	}
	cmd, ok := commands[rest[0]]
	if !ok {
		return errors.Newf("unknown command %q (one of %s)", rest[0], commandNames())
	}

	lg, closeLog, err := newLogger(cfg, stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	e := &env{cfg: cfg, log: lg, stdin: stdin, stdout: stdout, stderr: stderr}
	lg.Debug("run", zap.String("command", rest[0]), zap.String("config", *configPath))
	if err := cmd(e, rest[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		lg.Debug("command failed", zap.String("command", rest[0]), zap.Error(err))
		return errors.Wrap(err, rest[0])
	}
	return nil
}

// flags returns a flag set for a subcommand reporting to e's stderr.
func (e *env) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("hexconv "+name, flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	return fs
}

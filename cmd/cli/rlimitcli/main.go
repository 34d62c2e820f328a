package main

import (
	"fmt"
	"os"

	"github.com/core-tools/hsu-rlimit/pkg/errors"

	flags "github.com/jessevdk/go-flags"
)

type globalOptions struct {
	Port       int    `long:"port" description:"talk to the rlimitsrv listening on this port instead of this process"`
	ServerPath string `long:"server" description:"start this rlimitsrv executable and talk to it"`
	Attach     string `long:"attach" description:"talk to the rlimitsrv instance that published this name"`
	RunDir     string `long:"run-dir" description:"directory holding the instance port files"`
	System     bool   `long:"system" description:"look for instance port files in the system-wide directory"`
	Format     string `long:"format" default:"auto" choice:"auto" choice:"table" choice:"json" description:"output format; auto picks table on a terminal"`
	LogLevel   string `long:"log-level" default:"warn" choice:"debug" choice:"info" choice:"warn" choice:"error" description:"log level"`

	Get   getCommand   `command:"get" description:"print the soft and hard limit of a resource"`
	Set   setCommand   `command:"set" description:"change the soft and/or hard limit of a resource"`
	List  listCommand  `command:"list" description:"print the limits of every known resource"`
	Apply applyCommand `command:"apply" description:"apply a YAML limits profile"`
	Run   runCommand   `command:"run" description:"apply limits to this process, then replace it with a command"`
}

var opts globalOptions

func logPrefix(module string) string {
	return fmt.Sprintf("module: %s-client , ", module)
}

func main() {
	var parser = flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	_, err := parser.ParseArgs(os.Args[1:])
	if err == nil {
		return
	}
	if flagsErr, ok := err.(*flags.Error); ok {
		if flagsErr.Type == flags.ErrHelp {
			fmt.Println(flagsErr.Message)
			return
		}
		fmt.Fprintf(os.Stderr, "Command line flags parsing failed: %v\n", err)
		os.Exit(2)
	}
	fmt.Fprintf(os.Stderr, "rlimitcli: %v\n", err)
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case errors.IsInvalidArgumentError(err), errors.IsUnknownResourceError(err), errors.IsValidationError(err):
		return 2
	case errors.IsSystemError(err):
		return 3
	default:
		return 1
	}
}

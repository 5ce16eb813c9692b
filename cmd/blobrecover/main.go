// Command blobrecover is the CLI adapter for the blob-recovery pipeline:
// a single subcommand that reads a hex-encoded blob file, runs it
// through the field/ntt/blob/statediff pipeline, and prints the
// resulting JSON document to standard output.
package main

import (
	"errors"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/vocdoni/blobdiff/apperr"
	"github.com/vocdoni/blobdiff/blob"
	"github.com/vocdoni/blobdiff/log"
	"github.com/vocdoni/blobdiff/ntt"
	"github.com/vocdoni/blobdiff/statediff"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	fs := flag.NewFlagSet("blobrecover", flag.ContinueOnError)
	fs.SetOutput(stderr)

	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	switch args[0] {
	case "recover":
		return runRecover(fs, args[1:], stdout, stderr)
	case "-h", "--help":
		printUsage(stderr)
		return 0
	default:
		fmt.Fprintf(stderr, "blobrecover: unknown subcommand %q\n", args[0])
		printUsage(stderr)
		return 1
	}
}

func runRecover(fs *flag.FlagSet, args []string, stdout, stderr *os.File) int {
	blobFile := fs.String("blob-file", "", "path to a file containing the hex-encoded blob")
	logLevel := fs.String("log-level", "error", "log level (debug, info, warn, error)")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "blobrecover: %v\n", err)
		return 1
	}
	log.Init(*logLevel, "stderr", nil)

	if *blobFile == "" {
		fmt.Fprintln(stderr, "blobrecover: --blob-file is required")
		return 1
	}

	raw, err := os.ReadFile(*blobFile)
	if err != nil {
		fmt.Fprintf(stderr, "blobrecover: %v\n", err)
		return 1
	}

	doc, stage, err := recoverBlob(string(raw))
	if err != nil {
		log.WithStage(stage).Error().Err(err).Msg("blob recovery failed")
		fmt.Fprintf(stderr, "blobrecover: %s\n", errMessage(err))
		return exitCode(err)
	}

	if err := doc.WriteIndent(stdout); err != nil {
		fmt.Fprintf(stderr, "blobrecover: failed to write output: %v\n", err)
		return 1
	}
	return 0
}

func recoverBlob(hexBlob string) (*statediff.Document, log.Stage, error) {
	b, err := blob.Parse(hexBlob)
	if err != nil {
		return nil, log.StageParse, err
	}
	coeffs, err := ntt.Recover(b)
	if err != nil {
		return nil, log.StageNTT, err
	}
	doc, err := statediff.Decode(coeffs)
	if err != nil {
		return nil, log.StageDecode, err
	}
	return doc, "", nil
}

func errMessage(err error) string {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Error()
	}
	return err.Error()
}

func exitCode(err error) int {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.ExitCode()
	}
	return 1
}

func printUsage(stderr *os.File) {
	fmt.Fprintln(stderr, "Usage: blobrecover recover --blob-file FILE")
}

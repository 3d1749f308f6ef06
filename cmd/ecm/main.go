// Command ecm encodes a raw CD-ROM sector image into its ECM encoding.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-cdimage/ecm/encoder"
	"github.com/go-cdimage/ecm/source"
)

var verbose = flag.Bool("v", false, "print progress to stderr")

func main() {
	flag.BoolVar(verbose, "verbose", false, "print progress to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-v] <infile|-> [<outfile|->]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Encodes a raw CD-ROM sector image into its ECM encoding.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s game.bin\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s game.bin game.bin.ecm\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  cat game.bin | %s - - > game.bin.ecm\n", os.Args[0])
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Error: input file required\n")
		flag.Usage()
		os.Exit(1)
	}

	inPath := args[0]
	outPath := ""
	if len(args) >= 2 {
		outPath = args[1]
	}

	if err := run(inPath, outPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string) error {
	in, err := source.Open(inPath)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer func() { _ = in.Close() }()

	if outPath == "" {
		if inPath == source.Stdin {
			outPath = source.Stdin
		} else {
			outPath = inPath + ".ecm"
		}
	}

	var out io.Writer
	if outPath == source.Stdin {
		out = os.Stdout
	} else {
		f, err := os.Create(outPath) //nolint:gosec // path comes from CLI argument
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	// source.Open always hands back an io.ReadSeekCloser, even for stdin
	// (*os.File satisfies io.Seeker at the method-set level regardless of
	// whether the underlying fd is actually seekable), so the encoder
	// choice can't be made by type-asserting in: it has to come from
	// source.CanSeek(inPath), which knows stdin is a pipe.
	batch := source.CanSeek(inPath)

	if *verbose {
		mode := "streaming"
		if batch {
			mode = "batch"
		}
		fmt.Fprintf(os.Stderr, "encoding %s -> %s (%s)\n", describe(inPath), describe(outPath), mode)
	}

	var encodeErr error
	if batch {
		encodeErr = encoder.Batch(out, in)
	} else {
		encodeErr = encoder.Stream(out, in)
	}
	if encodeErr != nil {
		return fmt.Errorf("encode: %w", encodeErr)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "done\n")
	}
	return nil
}

func describe(path string) string {
	if path == source.Stdin {
		return "<stdin/stdout>"
	}
	return strings.TrimSpace(path)
}

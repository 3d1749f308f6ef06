// Command unecm reconstructs a raw CD-ROM sector image from its ECM encoding.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-cdimage/ecm"
	"github.com/go-cdimage/ecm/cue"
)

var (
	verbose = flag.Bool("v", false, "print progress to stderr")
	cueFlag = flag.Bool("cue", false, "write a .cue sheet alongside a named output file")
)

func main() {
	flag.BoolVar(verbose, "verbose", false, "print progress to stderr")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-v] [--cue] <infile.ecm|-> [<outfile|->]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Reconstructs a raw CD-ROM sector image from its ECM encoding.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s game.bin.ecm\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --cue game.bin.ecm game.bin\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  cat game.bin.ecm | %s - - > game.bin\n", os.Args[0])
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

const stdinArg = "-"

func run(inPath, outPath string) error {
	if inPath != stdinArg && !strings.EqualFold(filepath.Ext(inPath), ".ecm") {
		return fmt.Errorf("input %q must end in .ecm", inPath)
	}

	var in io.Reader
	if inPath == stdinArg {
		in = os.Stdin
	} else {
		f, err := os.Open(inPath) //nolint:gosec // path comes from CLI argument
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	if outPath == "" {
		if inPath == stdinArg {
			outPath = stdinArg
		} else {
			outPath = stripECMSuffix(inPath)
		}
	}

	var out io.Writer
	if outPath == stdinArg {
		out = os.Stdout
	} else {
		f, err := os.Create(outPath) //nolint:gosec // path comes from CLI argument
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "decoding %s -> %s\n", describe(inPath), describe(outPath))
	}

	res, err := ecm.Decode(out, in)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	if *verbose {
		fmt.Fprintf(os.Stderr, "done (%d sectors)\n", res.Sectors)
	}

	if *cueFlag {
		if outPath == stdinArg {
			return fmt.Errorf("--cue requires a named output file, not stdout")
		}
		if err := writeCue(outPath, res); err != nil {
			return fmt.Errorf("write cue sheet: %w", err)
		}
	}

	return nil
}

// stripECMSuffix removes a case-insensitive ".ecm" suffix, falling back
// to appending ".unecm" when the input has no such suffix.
func stripECMSuffix(path string) string {
	const suffix = ".ecm"
	if len(path) > len(suffix) && strings.EqualFold(path[len(path)-len(suffix):], suffix) {
		return path[:len(path)-len(suffix)]
	}
	return path + ".unecm"
}

func writeCue(binPath string, res ecm.Result) error {
	ext := filepath.Ext(binPath)
	cuePath := strings.TrimSuffix(binPath, ext) + ".cue"

	f, err := os.Create(cuePath) //nolint:gosec // path derived from CLI argument
	if err != nil {
		return fmt.Errorf("create cue file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return cue.Write(f, binPath, cue.ModeFor(res))
}

func describe(path string) string {
	if path == stdinArg {
		return "<stdin/stdout>"
	}
	return path
}

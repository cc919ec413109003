package main

import (
	"fmt"
	"io"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v1.1.0"

// options holds the parsed command-line flags.
type options struct {
	quiet   bool
	verbose bool
	help    bool
	version bool
}

func main() {
	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n", err)
		printUsage(os.Stderr)
		os.Exit(2)
	}

	if opts.help {
		printUsage(os.Stdout)
		return
	}
	if opts.version {
		fmt.Printf("squelch-installer %s\n", Version)
		return
	}

	os.Exit(run(opts))
}

// parseArgs parses the recognized flags. Anything unrecognized is a usage
// error.
func parseArgs(args []string) (options, error) {
	var opts options

	for _, arg := range args {
		switch arg {
		case "-q", "--quiet":
			opts.quiet = true
		case "-v", "--verbose":
			opts.verbose = true
		case "-h", "--help":
			opts.help = true
		case "--version":
			opts.version = true
		default:
			return options{}, fmt.Errorf("unrecognized flag: %s", arg)
		}
	}

	if opts.quiet && opts.verbose {
		return options{}, fmt.Errorf("-q and -v are mutually exclusive")
	}

	return opts, nil
}

// printUsage writes the usage text.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "squelch-installer - install the latest Squelch release")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Downloads the newest Linux release of the Squelch audio plugin and")
	fmt.Fprintln(w, "installs the VST3 and CLAP files into your plugin directory.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  squelch-installer [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -q, --quiet     no prompts, no progress output; requires SQUELCH_INSTALL_DIR")
	fmt.Fprintln(w, "  -v, --verbose   show per-step detail and tool output")
	fmt.Fprintln(w, "  -h, --help      show this help")
	fmt.Fprintln(w, "      --version   show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  SQUELCH_INSTALL_DIR   target plugin directory")
	fmt.Fprintln(w, "  GITHUB_TOKEN          optional API token (rate limits)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Optional config: ~/.config/squelch-installer/config.lua")
}

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/spicery/strtok/pkg/strtok"
)

// Version is injected at build time via ldflags.
var Version = "dev"

const usage = `strtok - split strings on delimiter characters

Each line of input is loaded into a tokenization session, split in place on
any of the delimiter characters, and the resulting tokens are printed.

Usage:
  strtok [options] < input.txt

Options:
`

// demoPasses reproduces the scripted session of the original test program.
var demoPasses = []struct {
	text    string
	delims  string
	indexed bool
}{
	{"hello world; akjhsfgas,asjhgfdtgpppppp", "; ,", false},
	{"kakakaka|lalalala-yayayayaya", "|-", true},
}

func main() {
	var showHelp, showVersion, debug, echo, demo bool
	var inputFile, outputFile, configFile, delims, format string
	var trim int

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n", usage)
		flag.PrintDefaults()
	}

	flag.BoolVarP(&showHelp, "help", "h", false, "Show help")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&debug, "debug", false, "Enable debug output to stderr")
	flag.BoolVar(&echo, "echo", false, "Print each string before splitting it")
	flag.BoolVar(&demo, "demo", false, "Run the built-in demonstration instead of reading input")
	flag.StringVarP(&inputFile, "input", "i", "", "Input file (defaults to stdin)")
	flag.StringVarP(&outputFile, "output", "o", "", "Output file (defaults to stdout)")
	flag.StringVarP(&configFile, "config", "c", "", "YAML file containing settings (optional)")
	flag.StringVarP(&delims, "delims", "d", strtok.DefaultDelimiters, "Delimiter characters")
	flag.StringVarP(&format, "format", "f", strtok.DefaultFormat, "Output format (TEXT, INDEXED, JSON, YAML, ASCIITREE)")
	flag.IntVar(&trim, "trim", 0, "Trim tokens for display purposes")

	flag.Parse()

	if showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if showVersion {
		fmt.Printf("strtok version %s\n", Version)
		os.Exit(0)
	}

	// Reject any positional arguments.
	if len(flag.Args()) > 0 {
		fmt.Fprintf(os.Stderr, "Error: Unexpected positional arguments. Use --input and --output flags instead.\n\n")
		flag.Usage()
		os.Exit(1)
	}

	config := strtok.DefaultConfig()
	if configFile != "" {
		var err error
		config, err = strtok.LoadConfigFile(configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config file '%s': %v\n", configFile, err)
			os.Exit(1)
		}
	}

	// Flags given on the command line override the config file.
	if flag.CommandLine.Changed("delims") {
		config.Delimiters = delims
	}
	if flag.CommandLine.Changed("format") {
		config.Format = format
	}
	if flag.CommandLine.Changed("trim") {
		config.TrimTokenOnOutput = trim
	}
	if flag.CommandLine.Changed("echo") {
		config.Echo = echo
	}
	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	printFunc, err := strtok.PickPrintFunc(config.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Determine output destination.
	var output io.Writer = os.Stdout
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		output = file
	}

	session, err := strtok.New(config.SessionOptions()...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating session: %v\n", err)
		os.Exit(1)
	}
	defer session.Close()

	if demo {
		if err := runDemo(session, output); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Determine input source.
	var input io.Reader = os.Stdin
	if inputFile != "" {
		file, err := os.Open(inputFile) // #nosec G304 - CLI tool reads user-specified input files
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		input = file
	}

	options := config.PrintOptions()
	scanner := bufio.NewScanner(input)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := session.SetString(scanner.Text()); err != nil {
			fmt.Fprintf(os.Stderr, "Error on line %d: %v\n", lineNo, err)
			os.Exit(1)
		}
		if config.Echo {
			if err := strtok.PrintString(session, output); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
				os.Exit(1)
			}
		}
		if err := session.Split(config.Delimiters); err != nil {
			fmt.Fprintf(os.Stderr, "Error splitting line %d: %v\n", lineNo, err)
			os.Exit(1)
		}
		if debug {
			fmt.Fprintf(os.Stderr, "line %d: %d tokens, %d released so far\n", lineNo, session.Count(), session.Released())
		}
		if err := printFunc(session, output, options); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			os.Exit(1)
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func runDemo(session *strtok.Session, output io.Writer) error {
	for _, pass := range demoPasses {
		if err := session.SetString(pass.text); err != nil {
			return err
		}
		if err := strtok.PrintString(session, output); err != nil {
			return err
		}
		if err := session.Split(pass.delims); err != nil {
			return err
		}
		printFunc := strtok.PrintTokensText
		if pass.indexed {
			printFunc = strtok.PrintTokensIndexed
		}
		if err := printFunc(session, output, nil); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
)

const invalidDocumentMessage = "Invalid JSON file"

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

// run executes one conversion and returns the process exit code. Failures
// other than a malformed input document panic.
func run(args []string, stdout io.Writer) int {
	logOutput = stdout

	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(stdout)

	configPath := flags.String("config", "", "Optional YAML file overriding author, stylesheet and other book settings.")
	outputDir := flags.String("out", ".", "Directory the .epub file is written to.")

	flags.Usage = func() {
		fmt.Fprintf(stdout, "Usage: %s <input.json>\n", args[0])
		flags.PrintDefaults()
	}

	if err := flags.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if flags.NArg() < 1 {
		fmt.Fprintf(stdout, "Usage: %s <input.json>\n", args[0])
		return 0
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		panic(err)
	}

	if err := process(flags.Arg(0), *outputDir, cfg); err != nil {
		if errors.Is(err, errInvalidSyntax) || errors.Is(err, errInvalidSchema) {
			logError(invalidDocumentMessage)
			return 1
		}

		panic(err)
	}

	logInfo("Done!")

	return 0
}

func process(inputFile, outputDir string, cfg config) (err error) {
	logInfo(`Processing file "%s"...`, inputFile)

	doc, err := loadDocument(inputFile)
	if err != nil {
		return
	}

	fragments := newRenderer(cfg).renderFragments(doc)

	if _, err = generate(newBook(doc, fragments, cfg), outputDir); err != nil {
		return
	}

	return
}

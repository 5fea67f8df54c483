package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"huffman-engine/config"
	"huffman-engine/engine"
	"huffman-engine/pkg/logger"

	"github.com/pkg/errors"
)

const usage = `usage: huffman-engine [-config file] [-v] <encode|decode> [path]

  encode notes.txt   writes notes.huf
  decode notes.huf   writes notes.decoded.txt
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stderr))
}

func run(args []string, stdin io.Reader, stderr io.Writer) int {
	flags := flag.NewFlagSet("huffman-engine", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := flags.String("config", "config/sys_config.yaml", "YAML configuration file")
	verbose := flags.Bool("v", false, "log frequencies, prefix codes and debug output")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	conf, err := config.LoadConfiguration(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "[ERROR]: %v\n", err)
		return 1
	}
	if *verbose {
		conf.Level = "debug"
		conf.PrintFrequencies = true
		conf.PrintCodes = true
	}
	log := logger.New(stderr, conf.Level)
	e := engine.NewEngine(conf, log)

	if flags.NArg() < 1 {
		flags.Usage()
		return 2
	}
	command := flags.Arg(0)
	if command != "encode" && command != "decode" {
		flags.Usage()
		return 2
	}

	// Ask for the file name if it was not given on the command line
	path := flags.Arg(1)
	if path == "" {
		path, err = promptPath(bufio.NewReader(stdin), stderr, fmt.Sprintf("Which file would you like to %s?", command))
		if err != nil {
			log.Errorf("%v", err)
			return 1
		}
	}

	if command == "encode" {
		_, _, err = e.Encode(path)
	} else {
		_, _, err = e.Decode(path)
	}
	if err != nil {
		log.Errorf("%v", err)
		return 1
	}
	return 0
}

func promptPath(reader *bufio.Reader, out io.Writer, message string) (string, error) {
	for {
		fmt.Fprintf(out, "%s ", message)
		input, err := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" {
			return input, nil
		}
		if err != nil {
			return "", errors.Wrap(err, "no file name given")
		}
		fmt.Fprintf(out, "\nEnter something!\n\n")
	}
}

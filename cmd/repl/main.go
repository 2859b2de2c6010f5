// Command repl is the REPL collaborator spec.md §1 and §6 describe: it
// owns the prompt, line reading, the textual command parser, and process
// exit codes, and feeds already-parsed Statements to the engine package.
// None of that parsing logic lives in the storage engine itself.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"pagedb/internal/engine"
	"pagedb/internal/storage/pager"
)

var (
	flagFormat = flag.String("format", "text", "Diagnostic output format for .constants: text or yaml")
	flagConfig = flag.String("config", "", "Optional YAML config file (default_format)")
)

// Config is the optional YAML config file this REPL accepts — a small,
// genuinely exercised use of gopkg.in/yaml.v3 beyond .constants
// (SPEC_FULL.md §4 "Configuration").
type Config struct {
	DefaultFormat string `yaml:"default_format"`
}

func loadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: repl <database-file>")
		os.Exit(1)
	}
	dbPath := flag.Arg(0)

	format := *flagFormat
	if *flagConfig != "" {
		cfg, err := loadConfig(*flagConfig)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		if cfg.DefaultFormat != "" && !isFlagSet("format") {
			format = cfg.DefaultFormat
		}
	}

	table, err := engine.DBOpen(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "db open error: %v\n", err)
		os.Exit(1)
	}

	session := uuid.New()
	fmt.Fprintf(os.Stderr, "session %s: opened %s\n", session, dbPath)

	runREPL(os.Stdin, os.Stdout, table, format)

	if err := engine.DBClose(table); err != nil {
		fmt.Fprintf(os.Stderr, "db close error: %v\n", err)
		os.Exit(1)
	}
}

func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// runREPL drives the read-parse-execute loop described in spec.md §6. It
// prints the "db > " prompt with no trailing newline before every line.
func runREPL(in io.Reader, out io.Writer, table *engine.Table, format string) {
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "db > ")
		if !sc.Scan() {
			return
		}
		line := sc.Text()

		if strings.HasPrefix(line, ".") {
			switch doMetaCommand(line, table, out, format) {
			case metaExit:
				return
			case metaUnrecognized:
				fmt.Fprintf(out, "Unrecognized command '%s'.\n", line)
			}
			continue
		}

		stmt, result := prepareStatement(line)
		switch result {
		case prepareSyntaxError:
			fmt.Fprintln(out, "Syntax error. Could not parse statement.")
			continue
		case prepareNegativeID:
			fmt.Fprintln(out, "ID must be positive.")
			continue
		case prepareStringTooLong:
			fmt.Fprintln(out, "String is too long.")
			continue
		case prepareUnrecognized:
			fmt.Fprintf(out, "Unrecognized keyword at start of '%s'.\n", line)
			continue
		}

		execResult, err := execute(stmt, table, out)
		if err != nil {
			fmt.Fprintf(out, "fatal: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintln(out, execResult.String())
	}
}

func execute(stmt engine.Statement, table *engine.Table, out io.Writer) (engine.ExecuteResult, error) {
	switch stmt.Kind {
	case engine.StatementInsert:
		return engine.ExecuteInsert(stmt, table)
	case engine.StatementSelect:
		return engine.ExecuteSelect(table, out)
	default:
		return engine.ExecuteSuccess, fmt.Errorf("unreachable statement kind %v", stmt.Kind)
	}
}

type prepareResult int

const (
	prepareSuccess prepareResult = iota
	prepareSyntaxError
	prepareNegativeID
	prepareStringTooLong
	prepareUnrecognized
)

// prepareStatement parses one REPL input line into a Statement
// (spec.md §6 "REPL text contract"). It never touches the engine.
func prepareStatement(line string) (engine.Statement, prepareResult) {
	switch {
	case line == "select":
		return engine.Statement{Kind: engine.StatementSelect}, prepareSuccess
	case strings.HasPrefix(line, "insert"):
		return prepareInsert(line)
	default:
		return engine.Statement{}, prepareUnrecognized
	}
}

func prepareInsert(line string) (engine.Statement, prepareResult) {
	parts := strings.SplitN(line, " ", 4)
	if len(parts) != 4 {
		return engine.Statement{}, prepareSyntaxError
	}
	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return engine.Statement{}, prepareSyntaxError
	}
	if id < 0 {
		return engine.Statement{}, prepareNegativeID
	}
	if id > math.MaxUint32 {
		return engine.Statement{}, prepareSyntaxError
	}

	row, err := pager.NewRow(uint32(id), parts[2], parts[3])
	if err != nil {
		return engine.Statement{}, prepareStringTooLong
	}
	return engine.Statement{Kind: engine.StatementInsert, RowToInsert: row}, prepareSuccess
}

type metaResult int

const (
	metaSuccess metaResult = iota
	metaExit
	metaUnrecognized
)

func doMetaCommand(line string, table *engine.Table, out io.Writer, format string) metaResult {
	switch line {
	case ".exit":
		return metaExit
	case ".btree":
		if err := engine.PrintTree(table, out); err != nil {
			fmt.Fprintf(out, "fatal: %v\n", err)
			os.Exit(1)
		}
		return metaSuccess
	case ".constants":
		if err := engine.PrintConstants(out, format == "yaml"); err != nil {
			fmt.Fprintf(out, "fatal: %v\n", err)
			os.Exit(1)
		}
		return metaSuccess
	default:
		return metaUnrecognized
	}
}

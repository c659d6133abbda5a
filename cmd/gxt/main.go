// gxt - GXT string table codec CLI tool
//
// Usage:
//
//	gxt [options] [file]
//
// Without -d or -c the direction is sniffed from the input: a recognized
// binary layout decompiles to TOML text, anything else compiles text to
// binary. If no file is given, reads from stdin.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gxt-tools/gxt/gxt"
	"github.com/gxt-tools/gxt/pretty"
)

const version = "0.3.0"

func main() {
	var (
		decompile  bool
		compile    bool
		keySort    bool
		offsetSort bool
		prettyOut  bool
		verbose    bool
		tablePath  string
		namesPath  string
		outPath    string
		fileArg    string
	)

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "-d" || arg == "--decompile":
			decompile = true
		case arg == "-c" || arg == "--compile":
			compile = true
		case arg == "-K" || arg == "--key-sort":
			keySort = true
		case arg == "-O" || arg == "--offset-sort":
			offsetSort = true
		case arg == "-p" || arg == "--pretty":
			prettyOut = true
		case arg == "-v" || arg == "--verbose":
			verbose = true
		case arg == "-t" || arg == "--char-table":
			i++
			tablePath = flagValue(args, i, arg)
		case arg == "-n" || arg == "--names":
			i++
			namesPath = flagValue(args, i, arg)
		case arg == "-o" || arg == "--output":
			i++
			outPath = flagValue(args, i, arg)
		case arg == "--version":
			fmt.Println("gxt " + version)
			return
		case arg == "-h" || arg == "--help":
			printUsage()
			return
		case strings.HasPrefix(arg, "-") && arg != "-":
			fmt.Fprintf(os.Stderr, "gxt: unknown option: %s\n", arg)
			printUsage()
			os.Exit(1)
		default:
			fileArg = arg
		}
	}
	if decompile && compile {
		fatal("-d and -c are mutually exclusive")
	}
	if keySort && offsetSort {
		fatal("-K and -O are mutually exclusive")
	}

	logger := zap.NewNop()
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		l, err := cfg.Build()
		if err != nil {
			fatal("logger: %v", err)
		}
		logger = l
	}
	defer logger.Sync()

	input, err := readInput(fileArg)
	if err != nil {
		fatal("read input: %v", err)
	}
	logger.Debug("read input", zap.String("file", fileArg), zap.Int("bytes", len(input)))

	var charTable *gxt.CharTable
	if tablePath != "" {
		data, err := os.ReadFile(tablePath)
		if err != nil {
			fatal("read character table: %v", err)
		}
		if charTable, err = gxt.LoadCharTable(data); err != nil {
			fatal("%v", err)
		}
	}
	var nameList *gxt.NameList
	if namesPath != "" {
		data, err := os.ReadFile(namesPath)
		if err != nil {
			fatal("read name list: %v", err)
		}
		if nameList, err = gxt.LoadNameList(data); err != nil {
			fatal("%v", err)
		}
		logger.Debug("loaded name list", zap.Int("names", len(nameList.Names())))
	}

	toText := decompile
	if !decompile && !compile {
		_, err := gxt.DetectFormat(input)
		toText = err == nil
		logger.Debug("sniffed direction", zap.Bool("decompile", toText))
	}

	var doc *gxt.Document
	if toText {
		doc, err = gxt.Parse(input, charTable)
	} else {
		doc, err = gxt.DecodeText(input)
	}
	if err != nil {
		fatal("%v", err)
	}
	logger.Info("loaded document",
		zap.Stringer("format", doc.Format),
		zap.Int("main_entries", doc.Main.Len()),
		zap.Int("aux_tables", len(doc.AuxNames())))

	switch {
	case keySort:
		doc = reorderDocument(doc, keyOrder)
	case offsetSort:
		doc = reorderDocument(doc, offsetOrder)
	}

	var output []byte
	switch {
	case toText && prettyOut:
		prettyPrint(os.Stdout, doc, nameList)
		return
	case toText:
		output = gxt.EncodeText(doc, nameList)
	default:
		if output, err = gxt.Emit(doc, charTable); err != nil {
			fatal("%v", err)
		}
		// Binary on a terminal is rarely wanted; default to a file named
		// after the input when there is one.
		if outPath == "" && fileArg != "" && fileArg != "-" {
			outPath = fileArg + ".gxt"
		}
	}

	if outPath != "" && outPath != "-" {
		if err := os.WriteFile(outPath, output, 0o644); err != nil {
			fatal("write output: %v", err)
		}
		logger.Debug("wrote output", zap.String("file", outPath), zap.Int("bytes", len(output)))
		return
	}
	if _, err := os.Stdout.Write(output); err != nil {
		fatal("write output: %v", err)
	}
}

func flagValue(args []string, i int, flag string) string {
	if i >= len(args) {
		fatal("%s needs an argument", flag)
	}
	return args[i]
}

func readInput(fileArg string) ([]byte, error) {
	if fileArg == "" || fileArg == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(fileArg)
}

type sortMode int

const (
	keyOrder sortMode = iota
	offsetOrder
)

// reorderDocument rebuilds the document with entries (and aux tables) in
// key or offset order, so the text form diffs cleanly across dumps of the
// same file.
func reorderDocument(doc *gxt.Document, mode sortMode) *gxt.Document {
	out := gxt.NewDocument(doc.Format)
	reorderTable(doc.Main, out.Main, mode)

	var names []string
	if mode == keyOrder {
		names = doc.AuxNamesByKeyOrder()
	} else {
		names = doc.AuxNamesByOffsetOrder()
	}
	for _, name := range names {
		dst, err := out.AddAux(name)
		if err != nil {
			fatal("%v", err)
		}
		reorderTable(doc.Aux(name), dst, mode)
	}
	return out
}

func reorderTable(src, dst *gxt.StringTable, mode sortMode) {
	keys := src.KeysByKeyOrder()
	if mode == offsetOrder {
		keys = src.KeysByOffsetOrder()
	}
	for _, k := range keys {
		v, _ := src.Get(k)
		if err := dst.Insert(k, v); err != nil {
			fatal("%v", err)
		}
	}
}

// prettyPrint writes a human-readable dump with tilde markup expanded.
func prettyPrint(w io.Writer, doc *gxt.Document, names *gxt.NameList) {
	color := pretty.SupportsColor()
	printTable := func(header string, t *gxt.StringTable) {
		fmt.Fprintf(w, "%s\n", header)
		for _, e := range t.Entries() {
			fmt.Fprintf(w, "%s = %s\n", gxt.DisplayKey(e.Key, names), pretty.Render(e.Value, doc.Format, color))
		}
	}
	printTable("[main_table]", doc.Main)
	for _, name := range doc.AuxNames() {
		fmt.Fprintln(w)
		printTable("[aux_tables."+name+"]", doc.Aux(name))
	}
}

func printUsage() {
	fmt.Fprint(os.Stderr, `gxt - GXT string table codec tool (v`+version+`)

Usage:
  gxt [options] [file]

Options:
  -d, --decompile        Binary GXT in, TOML text out
  -c, --compile          TOML text in, binary GXT out
  -o, --output FILE      Output path (default: stdout for text, INPUT.gxt for binary)
  -K, --key-sort         Reorder entries and tables by key
  -O, --offset-sort      Reorder entries and tables by data offset
  -t, --char-table FILE  Apply a custom character table (TOML)
  -n, --names FILE       Resolve hash keys through a name list (TOML)
  -p, --pretty           Decompile to a colored dump with markup expanded
  -v, --verbose          Log processing details to stderr
      --version          Print version info

Without -d or -c the direction is sniffed from the input bytes.
If no file is given (or the file is -), reads from stdin.
`)
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "gxt: "+format+"\n", args...)
	os.Exit(1)
}

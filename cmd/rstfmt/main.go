package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/spf13/pflag"
	"golang.org/x/term"
	"pkt.systems/rstfmt"
	"pkt.systems/version"
)

func init() {
	version.SetDefaultModule("pkt.systems/rstfmt")
}

func main() {
	var (
		widthFlag   int
		configPath  string
		outPath     string
		indentChar  string
		showVersion bool
	)

	flags := pflag.NewFlagSet("rstfmt", pflag.ExitOnError)
	flags.IntVarP(&widthFlag, "width", "w", 0, "Wrap width override (0 uses terminal width if available)")
	flags.StringVarP(&configPath, "config", "c", "", "TOML options file")
	flags.StringVarP(&outPath, "output", "o", "", "Output file instead of stdout")
	flags.StringVar(&indentChar, "indent-char", "", "Indentation character override")
	flags.BoolVarP(&showVersion, "version", "V", false, "Print version and exit")
	flags.SetInterspersed(true)
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, version.Module(), version.Current())
		fmt.Fprintf(os.Stderr, "Usage: rstfmt [flags] [inputs...]\n")
		fmt.Fprintln(os.Stderr, "\nInputs are JSON-encoded document trees; stdin is read when no input is given.")
		fmt.Fprintln(os.Stderr, "\nFlags:")
		flags.PrintDefaults()
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		os.Exit(2)
	}

	if showVersion {
		fmt.Println(version.Module(), version.Current())
		return
	}

	opts := rstfmt.DefaultOptions()
	if configPath != "" {
		loaded, err := rstfmt.LoadOptions(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		opts = loaded
	}
	if width := resolveWidth(widthFlag); width > 0 {
		opts.WrapLength = width
	}
	if indentChar != "" {
		r, size := utf8.DecodeRuneInString(indentChar)
		if size != len(indentChar) {
			fmt.Fprintf(os.Stderr, "invalid --indent-char %q: want a single character\n", indentChar)
			os.Exit(2)
		}
		opts.IndentChar = r
	}

	out, closeOut, err := resolveOutput(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open output: %v\n", err)
		os.Exit(1)
	}
	if closeOut != nil {
		defer func() { _ = closeOut.Close() }()
	}

	args := flags.Args()
	if len(args) == 0 {
		args = []string{"-"}
	}
	for _, arg := range args {
		if err := renderInput(arg, out, opts); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", inputName(arg), err)
			os.Exit(1)
		}
	}
}

func renderInput(arg string, out io.Writer, opts rstfmt.Options) error {
	var r io.Reader = os.Stdin
	if arg != "-" {
		f, err := os.Open(arg)
		if err != nil {
			return err
		}
		defer func() { _ = f.Close() }()
		r = f
	}
	doc, err := rstfmt.DecodeDocument(r)
	if err != nil {
		return err
	}
	if err := rstfmt.ValidateDocument(doc); err != nil {
		return err
	}
	text, err := rstfmt.Render(doc, rstfmt.WithOptions(opts))
	if err != nil {
		return err
	}
	_, err = io.WriteString(out, text)
	return err
}

func inputName(arg string) string {
	if arg == "-" {
		return "stdin"
	}
	return arg
}

func resolveOutput(path string) (io.Writer, io.Closer, error) {
	if path == "" || path == "-" {
		return os.Stdout, nil, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f, nil
}

func resolveWidth(width int) int {
	if width > 0 {
		return width
	}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			return w
		}
	}
	if value := os.Getenv("COLUMNS"); value != "" {
		if w, err := strconv.Atoi(value); err == nil && w > 0 {
			return w
		}
	}
	return 0
}

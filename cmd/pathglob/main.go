//nolint:forbidigo
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/dmtrKovalenko/zlob"
)

const appName = "pathglob"

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s <command> [command arguments]\n\n", appName)
		fmt.Fprint(os.Stderr, "Commands:\n")
		fmt.Fprint(os.Stderr, "  glob     Resolve a pattern against a directory tree\n")
		fmt.Fprint(os.Stderr, "  filter   Filter stdin path list by a pattern\n")
		fmt.Fprintf(os.Stderr, "\nRun '%s <command> --help' for more information on a command.\n", appName)
	}
	flag.Parse()
	if flag.NArg() < 1 {
		printErr("missing command")
		flag.Usage()
		os.Exit(1)
	}
	argv := flag.Args()[1:]
	cmd := flag.Arg(0)
	var err error
	switch cmd {
	case "glob":
		err = globCmd(argv)
	case "filter":
		err = filterCmd(argv)
	default:
		printErr("%s is not a valid command. See '%s --help'.", cmd, appName)
		os.Exit(1)
	}
	if err != nil {
		printErrValue(err)
		os.Exit(1)
	}
}

func globCmd(argv []string) error { //nolint:funlen
	args := struct {
		Base       string
		Brace      bool
		Tilde      bool
		ExtGlob    bool
		Period     bool
		OnlyDir    bool
		Mark       bool
		NoSort     bool
		NoCheck    bool
		Ignore     string
		IgnoreImpl string
		Recurse    bool
	}{} //nolint:exhaustruct
	flags := flag.NewFlagSet("glob", flag.ExitOnError)
	flags.StringVar(&args.Base, "base", ".", "Directory the pattern is resolved relative to")
	flags.BoolVar(&args.Brace, "brace", true, "Enable {a,b,c} expansion")
	flags.BoolVar(&args.Tilde, "tilde", true, "Enable ~ and ~user expansion")
	flags.BoolVar(&args.ExtGlob, "extglob", false, "Enable ?(…)|*(…)|+(…)|@(…)|!(…) groups")
	flags.BoolVar(&args.Period, "period", false, "Let wildcards match a leading dot")
	flags.BoolVar(&args.OnlyDir, "only-dir", false, "Restrict matches to directories")
	flags.BoolVar(&args.Mark, "mark", false, "Append / to directory matches")
	flags.BoolVar(&args.NoSort, "no-sort", false, "Emit matches in traversal order")
	flags.BoolVar(&args.NoCheck, "no-check", false, "Return the pattern itself when nothing matched")
	flags.BoolVar(&args.Recurse, "recurse", true, "Treat a standalone ** as a recursive segment")
	flags.StringVar(&args.Ignore, "ignore-file", "", "Apply a gitignore-style filter loaded from this file")
	flags.StringVar(&args.IgnoreImpl, "ignore-impl", "gitstyle",
		"Ignore-predicate implementation to use with -ignore-file: \"gitstyle\" (this engine's own matcher) or \"sabhiram\" (github.com/sabhiram/go-gitignore)")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s glob [flags] <pattern>\n\nFlags:\n", appName)
		flags.PrintDefaults()
	}
	if err := flags.Parse(argv); err != nil {
		return err //nolint:wrapcheck
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return zlob.Errorf("exactly one positional argument is required: <pattern>")
	}

	f := zlob.Period*boolFlag(args.Period) | zlob.OnlyDir*boolFlag(args.OnlyDir) |
		zlob.Mark*boolFlag(args.Mark) | zlob.NoSort*boolFlag(args.NoSort) |
		zlob.NoCheck*boolFlag(args.NoCheck) | zlob.Brace*boolFlag(args.Brace) |
		zlob.Tilde*boolFlag(args.Tilde) | zlob.ExtGlob*boolFlag(args.ExtGlob) |
		zlob.RecursiveDoubleStar*boolFlag(args.Recurse)

	opts := zlob.Options{Flags: f, Base: args.Base} //nolint:exhaustruct
	if args.Ignore != "" {
		lines, err := readLines(args.Ignore)
		if err != nil {
			return zlob.WrapErrorf(err, "failed to read ignore file %s", args.Ignore)
		}
		predicate, err := ignorePredicate(args.IgnoreImpl, args.Base, lines)
		if err != nil {
			return err
		}
		opts.Ignore = predicate
		opts.Flags |= zlob.GitignoreFilter
	}

	res, status, err := zlob.Glob(flags.Arg(0), opts)
	if err != nil {
		return err
	}
	defer res.Release()
	return printResult(res, status)
}

func filterCmd(argv []string) error {
	args := struct {
		Base  string
		Brace bool
		Tilde bool
	}{} //nolint:exhaustruct
	flags := flag.NewFlagSet("filter", flag.ExitOnError)
	flags.StringVar(&args.Base, "base", "", "Prefix to strip from every candidate path")
	flags.BoolVar(&args.Brace, "brace", true, "Enable {a,b,c} expansion")
	flags.BoolVar(&args.Tilde, "tilde", true, "Enable ~ and ~user expansion")
	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s filter [flags] <pattern>\n\n", appName)
		fmt.Fprint(os.Stderr, "Reads candidate paths from stdin, one per line.\n\nFlags:\n")
		flags.PrintDefaults()
	}
	if err := flags.Parse(argv); err != nil {
		return err //nolint:wrapcheck
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return zlob.Errorf("exactly one positional argument is required: <pattern>")
	}

	paths, err := readLines("-")
	if err != nil {
		return zlob.WrapErrorf(err, "failed to read paths from stdin")
	}

	f := zlob.Brace*boolFlag(args.Brace) | zlob.Tilde*boolFlag(args.Tilde)
	res, status, err := zlob.FilterPaths(flags.Arg(0), paths, zlob.Options{Flags: f, Base: args.Base}) //nolint:exhaustruct
	if err != nil {
		return err
	}
	defer res.Release()
	return printResult(res, status)
}

// ignorePredicate selects between the two IgnorePredicate implementations
// ignore.go provides: this engine's own GitStyleIgnore, or the SabhiramIgnore
// adapter around github.com/sabhiram/go-gitignore.
func ignorePredicate(impl, base string, lines []string) (zlob.IgnorePredicate, error) {
	switch impl {
	case "", "gitstyle":
		return zlob.ParseIgnoreLines(base, lines), nil
	case "sabhiram":
		return zlob.NewSabhiramIgnore(lines), nil
	default:
		return nil, zlob.Errorf("unknown -ignore-impl %q: want \"gitstyle\" or \"sabhiram\"", impl)
	}
}

func printResult(res *zlob.Result, status zlob.Status) error {
	if status == zlob.StatusAborted {
		return zlob.Errorf("aborted")
	}
	for _, m := range res.Matches {
		if m.Name == "" {
			continue
		}
		fmt.Println(m.Name)
	}
	if status == zlob.StatusNoMatch {
		os.Exit(1)
	}
	return nil
}

func readLines(path string) ([]string, error) {
	var f *os.File
	if path == "-" {
		f = os.Stdin
	} else {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		defer f.Close()
	}
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err() //nolint:wrapcheck
}

func boolFlag(b bool) zlob.Flags {
	if b {
		return 1
	}
	return 0
}

func printErr(msg string, a ...any) {
	s := "\nError: "
	if term.IsTerminal(int(os.Stdout.Fd())) {
		s = fmt.Sprintf("\x1b[31m%s\x1b[0m", s)
	}
	fmt.Fprintf(os.Stderr, s+msg+"\n", a...)
}

// printErrValue reports a command error, unwrapping a *zlob.WrappedError to
// also surface the Status code and call-site location it carries
// (errors.go) instead of just its flattened message text.
func printErrValue(err error) {
	var wrapped *zlob.WrappedError
	if errors.As(err, &wrapped) {
		printErr("%s (status: %s, at %s)", wrapped.Msg, wrapped.Status, wrapped.Location())
		return
	}
	printErr("%s", err.Error())
}

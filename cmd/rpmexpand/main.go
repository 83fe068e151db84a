// Command rpmexpand expands macro expressions against a macro context built
// from command-line defines and loaded macro files, exercising the public
// API in github.com/flosch/rpmmacro.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/flosch/rpmmacro"
)

type defineList []string

func (d *defineList) String() string     { return strings.Join(*d, ",") }
func (d *defineList) Set(v string) error { *d = append(*d, v); return nil }

func main() {
	var (
		defines     defineList
		macroFiles  = flag.String("macrofiles", "", "colon-separated macro file globs to load via Init")
		verbose     = flag.Bool("verbose", false, "enable %verbose built-in")
		showVersion = flag.Bool("version", false, "print the package version and exit")
	)
	flag.Var(&defines, "D", "define NAME[(opts)] BODY at the command line level (repeatable)")
	flag.Parse()

	if *showVersion {
		fmt.Println(rpmmacro.Version)
		return
	}

	ctx := rpmmacro.NewMacroContext()
	ctx.Verbose = *verbose

	for _, d := range defines {
		if err := rpmmacro.Define(ctx, d, rpmmacro.LevelCmdline); err != nil {
			fmt.Fprintf(os.Stderr, "rpmexpand: -D %q: %v\n", d, err)
			os.Exit(1)
		}
	}

	if *macroFiles != "" {
		if err := rpmmacro.Init(ctx, *macroFiles); err != nil {
			fmt.Fprintf(os.Stderr, "rpmexpand: %v\n", err)
			os.Exit(1)
		}
	}

	args := flag.Args()
	var src string
	if len(args) > 0 {
		src = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(bufio.NewReader(os.Stdin))
		if err != nil {
			fmt.Fprintf(os.Stderr, "rpmexpand: %v\n", err)
			os.Exit(1)
		}
		src = string(data)
	}

	out, err := rpmmacro.Expand(ctx, src)
	if err != nil {
		fmt.Fprintln(os.Stderr, out)
		fmt.Fprintf(os.Stderr, "rpmexpand: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(out)
}

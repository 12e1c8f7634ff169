// Package cli implements the illustrative command-line shell around the
// interpreter packages (spec.md §6: a CLI surface is illustrative, excluded
// from the core interpreter).
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/emicklei/dot"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/hvml/purc-go/dvobj"
	"github.com/hvml/purc-go/errors"
	"github.com/hvml/purc-go/hvml"
	"github.com/hvml/purc-go/run/dag"
	"github.com/hvml/purc-go/scheduler"
)

// Version is the interpreter's own version, reported by `purc version`
// and by the `system.version` DVObj property.
const Version = "0.1.0"

type cliSpec struct {
	LogLevel string `optional:"true" default:"info" enum:"trace,debug,info,warn,error,fatal" help:"Log level to use."`

	Version struct{} `cmd:"" help:"Print the interpreter version."`

	Tokenize struct {
		File string `arg:"" help:"HVML source file to tokenize."`
	} `cmd:"" help:"Tokenize an HVML document and print its tokens."`

	Graph struct {
		Dep     []string `short:"d" help:"a dependency edge 'child:parent', repeatable."`
		Outfile string   `short:"o" optional:"true" help:"output .dot file; stdout if empty."`
	} `cmd:"" help:"Render a <load>/<include> dependency graph as Graphviz dot."`
}

// Exec parses args and runs the selected subcommand, writing to stdout/stderr.
func Exec(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		args = []string{"--help"}
	}

	var spec cliSpec
	exitStatus := 0
	kongExit := false

	parser, err := kong.New(&spec,
		kong.Name("purc"),
		kong.Description("An HVML interpreter shell"),
		kong.UsageOnError(),
		kong.Exit(func(status int) {
			kongExit = true
			exitStatus = status
		}),
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	ctx, err := parser.Parse(args)
	if kongExit {
		return exitStatus
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	configureLogging(spec.LogLevel, stderr)

	switch ctx.Command() {
	case "version":
		return runVersion(stdout)
	case "tokenize <file>":
		return runTokenize(spec.Tokenize.File, stdout, stderr)
	case "graph":
		return runGraph(spec.Graph.Dep, spec.Graph.Outfile, stdout, stderr)
	default:
		fmt.Fprintf(stderr, "unknown command %q\n", ctx.Command())
		return 1
	}
}

func configureLogging(level string, out io.Writer) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339})
}

func runVersion(stdout io.Writer) int {
	sys := dvobj.NewSystem(Version)
	dyn, _ := sys.AsObject().Get("version")
	v, err := dyn.Call(nil)
	if err != nil {
		fmt.Fprintln(stdout, err)
		return 1
	}
	s, _ := v.AsString()
	fmt.Fprintln(stdout, color.GreenString("purc")+" "+s)
	return 0
}

func runTokenize(path string, stdout, stderr io.Writer) int {
	text, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	slot := errors.NewSlot()
	t := hvml.New(string(text), slot)

	for {
		tok, err := t.Next()
		if err != nil {
			fmt.Fprintln(stderr, color.RedString("error:")+" "+err.Error())
			return 1
		}
		fmt.Fprintln(stdout, formatToken(tok))
		if tok.Kind == hvml.TokenEOF {
			break
		}
	}
	return 0
}

func formatToken(tok *hvml.Token) string {
	switch tok.Kind {
	case hvml.TokenStartTag:
		return color.CyanString("<%s>", tok.TagName)
	case hvml.TokenEndTag:
		return color.CyanString("</%s>", tok.TagName)
	case hvml.TokenText:
		return fmt.Sprintf("text %q", tok.Text)
	case hvml.TokenComment:
		return fmt.Sprintf("comment %q", tok.Comment)
	case hvml.TokenDoctype:
		return fmt.Sprintf("doctype %q", tok.DoctypeName)
	case hvml.TokenCharacterReference:
		return fmt.Sprintf("charref %q", string(tok.CodePoint))
	case hvml.TokenEOF:
		return color.YellowString("eof")
	default:
		return "unknown token"
	}
}

// runGraph mirrors the teacher's own run-order graph command, generified
// from *config.Stack nodes to plain document-id strings: each -d
// child:parent flag declares that child depends on (loads after) parent.
func runGraph(deps []string, outfile string, stdout, stderr io.Writer) int {
	g := dag.New[string]()
	added := map[string]bool{}

	ancestorsOf := map[string][]string{}
	for _, d := range deps {
		parts := strings.SplitN(d, ":", 2)
		if len(parts) != 2 {
			fmt.Fprintf(stderr, "bad dependency %q, want child:parent\n", d)
			return 1
		}
		child, parent := parts[0], parts[1]
		ancestorsOf[child] = append(ancestorsOf[child], parent)
		if _, ok := ancestorsOf[parent]; !ok {
			ancestorsOf[parent] = nil
		}
	}

	for id, ancestors := range ancestorsOf {
		if added[id] {
			continue
		}
		if err := g.AddNode(dag.ID(id), id, nil, toIDs(ancestors)); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		added[id] = true
	}

	if _, err := g.Validate(); err != nil {
		fmt.Fprintln(stderr, color.RedString("error:")+" "+err.Error())
		return 1
	}

	var loadOrder []string
	err := scheduler.LoadDAG(g, func(id string) error {
		loadOrder = append(loadOrder, id)
		return nil
	}, false)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	dotGraph := dot.NewGraph(dot.Directed)
	for _, id := range g.IDs() {
		val, err := g.Node(id)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		descendant := dotGraph.Node(val)
		for _, ancestorID := range g.AncestorsOf(id) {
			ancestorVal, err := g.Node(ancestorID)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return 1
			}
			dotGraph.Edge(dotGraph.Node(ancestorVal), descendant)
		}
	}

	var out io.Writer = stdout
	if outfile != "" {
		f, err := os.Create(outfile)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		defer f.Close()
		out = f
	}

	fmt.Fprintf(out, "// load order: %s\n", strings.Join(loadOrder, ", "))
	fmt.Fprint(out, dotGraph.String())
	return 0
}

func toIDs(names []string) []dag.ID {
	ids := make([]dag.ID, len(names))
	for i, n := range names {
		ids[i] = dag.ID(n)
	}
	return ids
}

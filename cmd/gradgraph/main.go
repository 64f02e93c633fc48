// Package main provides the gradgraph CLI: it runs small worked examples
// through the autodiff engine and prints values, gradients and graph sizes.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/exceptions"
	"github.com/muesli/termenv"
	"k8s.io/klog/v2"

	"github.com/born-ml/gradgraph/autodiff"
)

const version = "v0.1.0-dev"

var (
	flagExample    = flag.String("example", "all", "Example to run: all, "+strings.Join(exampleNames(), ", "))
	flagRetainGrad = flag.Bool("retain-grad", false, "Keep gradients of intermediate nodes after backward")
	flagNoColor    = flag.Bool("no-color", false, "Disable colored output")
	flagVersion    = flag.Bool("version", false, "Print version and exit")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	nameStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Width(6)
	dimStyle   = lipgloss.NewStyle().Faint(true)
	errStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	code := run()
	klog.Flush()
	os.Exit(code)
}

// run executes the selected examples and returns the process exit code: 0 on
// success, 1 if an example failed, 2 for an unknown example name.
func run() int {
	if *flagVersion {
		fmt.Printf("gradgraph %s\n", version)
		return 0
	}
	if *flagNoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	names := []string{*flagExample}
	if *flagExample == "all" {
		names = exampleNames()
	}

	code := 0
	for _, name := range names {
		ex, ok := examples[name]
		if !ok {
			klog.Errorf("unknown example %q, want one of: all, %s", name, strings.Join(exampleNames(), ", "))
			return 2
		}
		fmt.Println(titleStyle.Render("== " + name + ": " + ex.title))
		err := exceptions.TryCatch[error](func() {
			ex.run(*flagRetainGrad)
		})
		if err != nil {
			fmt.Println(errStyle.Render("error: ") + err.Error())
			code = 1
		}
		fmt.Println()
	}
	return code
}

func exampleNames() []string {
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func printNodes(nodes ...*autodiff.Node) {
	for _, n := range nodes {
		grad := dimStyle.Render("<nil>")
		if n.Grad() != nil {
			grad = n.Grad().String()
		}
		fmt.Printf("  %s value=%s grad=%s generation=%d\n", nameStyle.Render(n.Name()), n.Value(), grad, n.Generation())
	}
}

func printStats(root *autodiff.Node) {
	fmt.Println(dimStyle.Render("  graph: " + autodiff.Stats(root).String()))
}

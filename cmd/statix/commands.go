// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/pkg/browser"

	"github.com/go-statix/statix/internal/formatutil"
	"github.com/go-statix/statix/internal/funcutil"
	"github.com/go-statix/statix/internal/graphutil"
	"github.com/go-statix/statix/statix/callgraph"
	"github.com/go-statix/statix/statix/deadcode"
	"github.com/go-statix/statix/statix/hierarchy"
	"github.com/go-statix/statix/statix/icfg"
	"github.com/go-statix/statix/statix/interproc"
	"github.com/go-statix/statix/statix/pointer"
	"github.com/go-statix/statix/statix/pointer/cs"
	"github.com/go-statix/statix/statix/program"
	"github.com/go-statix/statix/statix/render"
)

// loadEntry loads the program at jsonPath and returns its hierarchy and
// entry method, failing if the program declares no entry method.
func loadEntry(jsonPath string) (*hierarchy.Hierarchy, *program.Method, error) {
	classes, entry, err := program.Load(jsonPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading %s: %w", jsonPath, err)
	}
	if entry == nil {
		return nil, nil, fmt.Errorf("%s declares no entryMethod", jsonPath)
	}
	return hierarchy.New(classes), entry, nil
}

func runCHA(args []string) error {
	fs := flag.NewFlagSet("cha", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: statix cha <program.json>")
	}
	h, entry, err := loadEntry(fs.Arg(0))
	if err != nil {
		return err
	}
	cg := callgraph.BuildCHA(entry, h)
	fmt.Printf("%s %d reachable methods, %d edges\n", formatutil.Bold("cha:"), len(cg.ReachableMethods()), len(cg.Edges()))
	lines := funcutil.Map(cg.Edges(), func(e callgraph.Edge) string {
		return methodName(e.Caller) + " -> " + methodName(e.Callee)
	})
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Printf("  %s\n", l)
	}
	return nil
}

func runPointer(args []string) error {
	fs := flag.NewFlagSet("pointer", flag.ExitOnError)
	contextSensitive := fs.Bool("cs", false, "run the context-sensitive analysis instead of context-insensitive")
	depth := fs.Int("depth", 1, "call-site sensitivity depth when -cs is set")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: statix pointer [-cs] [-depth=N] <program.json>")
	}
	h, entry, err := loadEntry(fs.Arg(0))
	if err != nil {
		return err
	}

	if *contextSensitive {
		sel := cs.NewCallSiteSensitiveSelector(*depth)
		res := cs.Solve(entry, h, sel)
		fmt.Printf("%s %d (context, method) pairs reachable\n", formatutil.Bold("pointer -cs:"), len(res.CallGraph.ReachableMethods()))
		return nil
	}

	res := pointer.Solve(entry, h)
	fmt.Printf("%s %d methods reachable, %d call edges\n", formatutil.Bold("pointer:"), len(res.CallGraph.ReachableMethods()), len(res.CallGraph.Edges()))
	return nil
}

func runIPCP(args []string) error {
	fs := flag.NewFlagSet("ipcp", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: statix ipcp <program.json>")
	}
	h, entry, err := loadEntry(fs.Arg(0))
	if err != nil {
		return err
	}
	cg := callgraph.BuildCHA(entry, h)
	g := icfg.Build(cg)
	res := interproc.Analyze(g)
	fmt.Printf("%s %d statements with a computed fact\n", formatutil.Bold("ipcp:"), len(res.Out))
	return nil
}

func runDeadCode(args []string) error {
	fs := flag.NewFlagSet("deadcode", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: statix deadcode <program.json>")
	}
	_, entry, err := loadEntry(fs.Arg(0))
	if err != nil {
		return err
	}
	result := deadcode.Detect(entry)
	if len(result.Stmts) == 0 {
		fmt.Println(formatutil.Green("deadcode: no dead code found"))
		return nil
	}
	fmt.Printf("%s %d dead statement(s)\n", formatutil.Yellow("deadcode:"), len(result.Stmts))
	for _, s := range result.Stmts {
		fmt.Printf("  #%d %T\n", s.Index(), s)
	}
	return nil
}

func runRender(args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	graphKind := fs.String("graph", "cha", "which graph to render: cha|pfg")
	out := fs.String("out", "out.dot", "output DOT file path")
	png := fs.String("png", "", "also render a PNG at this path")
	open := fs.Bool("open", false, "open the PNG in a browser after rendering")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: statix render [-graph=cha|pfg] [-out=path] [-png=path] [-open] <program.json>")
	}
	h, entry, err := loadEntry(fs.Arg(0))
	if err != nil {
		return err
	}

	var write func(io.Writer) error
	switch *graphKind {
	case "cha":
		cg := callgraph.BuildCHA(entry, h)
		write = func(w io.Writer) error { return render.WriteCallGraph(cg, w) }
	case "pfg":
		res := pointer.Solve(entry, h)
		write = func(w io.Writer) error { return render.WritePointerFlowGraph(res.PFG, w) }
	default:
		return fmt.Errorf("unknown graph kind %q", *graphKind)
	}

	if err := render.ToFile(*out, write); err != nil {
		return err
	}
	fmt.Printf("%s wrote %s\n", formatutil.Bold("render:"), *out)

	if *png != "" {
		dot, err := os.ReadFile(*out)
		if err != nil {
			return err
		}
		if err := render.RenderPNG(dot, *png); err != nil {
			return err
		}
		if err := render.AnnotateLegend(*png, fmt.Sprintf("%s (%s)", *graphKind, fs.Arg(0))); err != nil {
			return err
		}
		fmt.Printf("%s wrote %s\n", formatutil.Bold("render:"), *png)
		if *open {
			if err := browser.OpenFile(*png); err != nil {
				return fmt.Errorf("could not open %s: %w", *png, err)
			}
		}
	}
	return nil
}

func runCycles(args []string) error {
	fs := flag.NewFlagSet("cycles", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("usage: statix cycles <program.json>")
	}
	h, entry, err := loadEntry(fs.Arg(0))
	if err != nil {
		return err
	}
	cg := callgraph.BuildCHA(entry, h)
	it := graphutil.NewCallgraphIterator(cg)

	cycles := graphutil.FindAllElementaryCycles(it)
	if len(cycles) == 0 {
		fmt.Println(formatutil.Green("cycles: none found"))
	} else {
		fmt.Printf("%s %d elementary cycle(s)\n", formatutil.Yellow("cycles:"), len(cycles))
		for _, cycle := range cycles {
			for i, id := range cycle {
				if i > 0 {
					fmt.Print(" -> ")
				}
				fmt.Print(it.IDMap[id].String())
			}
			fmt.Println()
		}
	}

	recursive := graphutil.RecursiveComponents(it)
	if len(recursive) == 0 {
		fmt.Println(formatutil.Green("recursion: no recursive components found"))
		return nil
	}
	fmt.Printf("%s %d recursive component(s)\n", formatutil.Yellow("recursion:"), len(recursive))
	for _, comp := range recursive {
		for i, n := range comp {
			if i > 0 {
				fmt.Print(", ")
			}
			fmt.Print(n.String())
		}
		fmt.Println()
	}
	return nil
}

func methodName(m *program.Method) string {
	if m.DeclaringClass == nil {
		return m.Name
	}
	return m.DeclaringClass.Name + "." + m.Name
}

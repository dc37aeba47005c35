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

// Package render emits GraphViz DOT for the graphs the analyses build
// (call graph, ICFG, pointer flow graph) and rasterizes them to PNG, the
// way the teacher's analysis/rendering and cmd/render do for their own
// call graph and SSA views.
package render

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fogleman/gg"
	"github.com/goccy/go-graphviz"

	"github.com/go-statix/statix/statix/callgraph"
	"github.com/go-statix/statix/statix/icfg"
	"github.com/go-statix/statix/statix/pointer"
	"github.com/go-statix/statix/statix/program"
)

// legendHeight is the height in pixels of the title strip AnnotateLegend
// adds above a rendered graph image.
const legendHeight = 32

// WriteCallGraph writes cg as a DOT digraph to w, one edge per resolved
// call-graph edge, labeled with the call kind.
func WriteCallGraph(cg *callgraph.CallGraph, w io.Writer) error {
	if _, err := fmt.Fprint(w, "digraph callgraph {\n  rankdir=LR;\n"); err != nil {
		return err
	}
	for _, e := range cg.Edges() {
		if _, err := fmt.Fprintf(w, "  %q -> %q [label=%q];\n",
			methodLabel(e.Caller), methodLabel(e.Callee), kindLabel(e.Kind)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(w, "}\n")
	return err
}

// WriteICFG writes g as a DOT digraph, one node per statement and one
// edge per ICFG edge, colored by edge kind: call edges blue, return edges
// green, everything else default.
func WriteICFG(g *icfg.ICFG, w io.Writer) error {
	if _, err := fmt.Fprint(w, "digraph icfg {\n"); err != nil {
		return err
	}
	for _, n := range g.Nodes() {
		for _, e := range g.OutEdges(n) {
			if _, err := fmt.Fprintf(w, "  %q -> %q %s;\n", stmtLabel(n), stmtLabel(e.To), icfgEdgeAttrs(e.Kind)); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprint(w, "}\n")
	return err
}

// WritePointerFlowGraph writes the PFG as a DOT digraph per the pointer-
// flow rendering convention: object nodes are diamonds, pointer nodes are
// ellipses.
func WritePointerFlowGraph(pfg *pointer.PointerFlowGraph, w io.Writer) error {
	if _, err := fmt.Fprint(w, "digraph pfg {\n"); err != nil {
		return err
	}
	seen := map[string]bool{}
	for _, p := range pfg.Pointers() {
		pLabel := pointerLabel(p)
		if !seen[pLabel] {
			seen[pLabel] = true
			if _, err := fmt.Fprintf(w, "  %q [shape=ellipse];\n", pLabel); err != nil {
				return err
			}
		}
		for _, obj := range pfg.PointsTo(p).Elements() {
			oLabel := obj.String()
			if !seen[oLabel] {
				seen[oLabel] = true
				if _, err := fmt.Fprintf(w, "  %q [shape=diamond];\n", oLabel); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintf(w, "  %q -> %q [style=dashed];\n", pLabel, oLabel); err != nil {
				return err
			}
		}
		for _, succ := range pfg.SuccsOf(p) {
			if _, err := fmt.Fprintf(w, "  %q -> %q;\n", pLabel, pointerLabel(succ)); err != nil {
				return err
			}
		}
	}
	_, err := fmt.Fprint(w, "}\n")
	return err
}

func methodLabel(m *program.Method) string {
	if m.DeclaringClass == nil {
		return m.Name
	}
	return m.DeclaringClass.Name + "." + m.Name
}

func stmtLabel(s program.Stmt) string {
	return fmt.Sprintf("#%d %T", s.Index(), s)
}

func kindLabel(k program.CallKind) string {
	switch k {
	case program.Static:
		return "static"
	case program.Special:
		return "special"
	case program.Virtual:
		return "virtual"
	case program.Interface:
		return "interface"
	case program.Dynamic:
		return "dynamic"
	default:
		return "unknown"
	}
}

func icfgEdgeAttrs(k icfg.EdgeKind) string {
	switch k {
	case icfg.Call:
		return "[color=blue]"
	case icfg.Return:
		return "[color=green]"
	case icfg.CallToReturn:
		return "[style=dashed]"
	default:
		return ""
	}
}

func pointerLabel(p pointer.Pointer) string {
	switch pt := p.(type) {
	case pointer.VarPtr:
		return pt.Var.String()
	case pointer.InstanceFieldPtr:
		return pt.Base.String() + "." + pt.Field
	case pointer.StaticFieldPtr:
		return pt.Class + "." + pt.Field
	case pointer.ArrayIndexPtr:
		return pt.Base.String() + "[*]"
	default:
		return fmt.Sprintf("%v", p)
	}
}

// ToFile writes dot (a function producing DOT text) to filename, then
// opens it.
func ToFile(filename string, write func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	defer w.Flush()
	if err := write(w); err != nil {
		return fmt.Errorf("error while writing dot file: %w", err)
	}
	return nil
}

// RenderPNG rasterizes dot (DOT source) to a PNG file at pngPath, via
// GraphViz's layout engine.
func RenderPNG(dot []byte, pngPath string) error {
	g := graphviz.New()
	defer g.Close()

	graph, err := graphviz.ParseBytes(dot)
	if err != nil {
		return fmt.Errorf("could not parse dot source: %w", err)
	}
	defer graph.Close()

	if err := g.RenderFilename(graph, graphviz.PNG, pngPath); err != nil {
		return fmt.Errorf("could not render png: %w", err)
	}
	return nil
}

// AnnotateLegend stamps a title bar above a PNG that RenderPNG already
// produced, since go-graphviz has no notion of an out-of-band legend.
func AnnotateLegend(pngPath, title string) error {
	im, err := gg.LoadPNG(pngPath)
	if err != nil {
		return fmt.Errorf("could not load png: %w", err)
	}
	b := im.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy()+legendHeight)
	dc.SetRGB(1, 1, 1)
	dc.Clear()
	dc.SetRGB(0, 0, 0)
	dc.DrawStringAnchored(title, float64(b.Dx())/2, float64(legendHeight)/2, 0.5, 0.5)
	dc.DrawImage(im, 0, legendHeight)
	if err := dc.SavePNG(pngPath); err != nil {
		return fmt.Errorf("could not save annotated png: %w", err)
	}
	return nil
}

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

// Command statix drives the analyses in statix/* against a JSON program
// description, the way cmd/argot drives the teacher's analyses against Go
// source.
package main

import (
	"fmt"
	"os"
)

const usage = `statix: whole-program static analysis core
Usage:
  statix [tool] [options] <program.json>
Tools:
  - cha:       build a call graph by class hierarchy analysis and print its edges
  - pointer:   run the context-insensitive (or, with -cs, context-sensitive) pointer analysis
  - ipcp:      run interprocedural constant propagation over the ICFG
  - deadcode:  run the dead-code detector over the entry method
  - render:    render the CHA call graph or the pointer flow graph to DOT/PNG
  - cycles:    report elementary cycles and recursive SCCs in the built call graph
Examples:
  statix cha program.json
  statix pointer -cs -depth=1 program.json
  statix deadcode program.json`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "error: expected subcommand\n%s\n", usage)
		os.Exit(2)
	}
	if os.Args[1] == "-help" || os.Args[1] == "--help" {
		fmt.Println(usage)
		return
	}

	args := os.Args[2:]
	var err error
	switch cmd := os.Args[1]; cmd {
	case "cha":
		err = runCHA(args)
	case "pointer":
		err = runPointer(args)
	case "ipcp":
		err = runIPCP(args)
	case "deadcode":
		err = runDeadCode(args)
	case "render":
		err = runRender(args)
	case "cycles":
		err = runCycles(args)
	default:
		fmt.Fprintf(os.Stderr, "error: unknown subcommand %q\n%s\n", cmd, usage)
		os.Exit(2)
	}
	if err != nil {
		errExit(err)
	}
}

func errExit(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}

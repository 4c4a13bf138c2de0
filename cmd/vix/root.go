// Copyright 2024 The Vix Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vix-lang/vix/internal/core/compile"
	"github.com/vix-lang/vix/internal/core/ir"
	"github.com/vix-lang/vix/internal/core/resolve"
	"github.com/vix-lang/vix/internal/core/toposort"
	"github.com/vix-lang/vix/internal/core/types"
	"github.com/vix-lang/vix/internal/qbe"
	"github.com/vix-lang/vix/vix/ast"
	"github.com/vix-lang/vix/vix/errors"
	"github.com/vix-lang/vix/vix/parser"
	"github.com/vix-lang/vix/vix/token"
)

// driver holds the per-invocation state newRootCmd's RunE closure needs:
// the exit code it computed, since cobra's Execute only hands the caller
// an error value, not a code, and spec §6 distinguishes six of them.
type driver struct {
	color    string
	exitCode int
}

// Main runs the vix command and returns the value to pass to os.Exit, the
// same split cuelang.org/go/cmd/cue/cmd.Main uses so tests can drive the
// whole CLI without calling os.Exit themselves.
func Main(args []string) int {
	d := &driver{}
	root := d.newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil && d.exitCode == 0 {
		// A cobra usage error (wrong arg count, unknown flag): RunE never
		// set an exit code, and SilenceErrors keeps cobra from printing it.
		fmt.Fprintf(root.ErrOrStderr(), "vix: %v\n", err)
		return 1
	}
	return d.exitCode
}

func (d *driver) newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "vix <file>",
		Short:         "compile a vix source file to QBE-shaped IR",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return d.run(cmd, args[0])
		},
	}
	cmd.Flags().StringVar(&d.color, "color", "auto", "diagnostic color: auto, on, off")
	return cmd
}

func (d *driver) run(cmd *cobra.Command, filename string) error {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "vix: %v\n", err)
		d.exitCode = 1
		return err
	}

	prog, diagErr := compileFile(filename, src)
	if diagErr != nil {
		errors.Print(cmd.ErrOrStderr(), diagErr, src, errors.ParseColor(d.color))
		d.exitCode = errors.KindOf(diagErr).ExitCode()
		return diagErr
	}

	if err := qbe.Emit(cmd.OutOrStdout(), *prog); err != nil {
		d.exitCode = 255
		return err
	}
	d.exitCode = 0
	return nil
}

// compileFile runs the full pipeline of spec §4: scan+parse, resolve
// names into the object graph, order definitions by SCC, infer types
// group by group, lower the whole file as one root record, and
// synthesize the IR types the lowered program referenced. Only the first
// fatal error is ever returned (spec §7: no local recovery).
func compileFile(filename string, src []byte) (*qbe.Program, errors.Error) {
	topLevel, perrs := parser.ParseFile(filename, src)
	if len(perrs) > 0 {
		return nil, perrs.Sanitize()[0]
	}

	res, rerrs := resolve.Unit(topLevel)
	if len(rerrs) > 0 {
		return nil, rerrs.Sanitize()[0]
	}

	groups := toposort.Order(res.Graph)
	topLevelIDs := make(map[uint64]bool, len(topLevel))
	for _, p := range topLevel {
		topLevelIDs[p.ID] = true
	}

	ctx := types.NewContext()
	inf := types.NewInferencer(ctx, res.PropsByID)
	rootEnv := types.NewEnv()
	for _, g := range groups {
		members := onlyTopLevel(g.SortedMembers(), topLevelIDs)
		if len(members) == 0 {
			// A group made up entirely of nested fields: those are typed
			// by their enclosing record's elaborateRecord, not scheduled
			// as a standalone inference unit (see
			// internal/core/types.elaborateRecord).
			continue
		}
		if err := inf.InferGroup(rootEnv, members); err != nil {
			return nil, err
		}
	}

	// The whole file is compiled as one root record, matching
	// original_source's single `ast_object_t* root` (main.c): the file's
	// top-level properties are its fields, so lowering ends in the
	// root-level Pack spec §8 scenarios 1 and 2 show.
	root := ast.NewProperties(token.NoPos, nil, topLevel)
	instrs := compile.Compile(compile.Root, root, nil)

	table := ir.NewTable(ctx)
	for _, p := range topLevel {
		if t, ok := inf.Result().PropType[p.ID]; ok {
			table.Lookup(t)
		}
	}

	return &qbe.Program{Types: table.Defs(), Datas: dataFor(instrs)}, nil
}

// onlyTopLevel filters ids down to the ones present in topLevelIDs,
// preserving order.
func onlyTopLevel(ids []uint64, topLevelIDs map[uint64]bool) []uint64 {
	var out []uint64
	for _, id := range ids {
		if topLevelIDs[id] {
			out = append(out, id)
		}
	}
	return out
}

// dataFor collects one data section per string literal the whole file's
// lowering produced, named "str.<n>" in instruction order so output
// stays deterministic regardless of which property a literal originated
// from.
func dataFor(instrs []compile.Instruction) []qbe.Data {
	var out []qbe.Data
	n := 0
	for _, instr := range instrs {
		push, ok := instr.(compile.PushStr)
		if !ok {
			continue
		}
		out = append(out, qbe.Data{
			Name:  fmt.Sprintf("str.%d", n),
			Items: []qbe.DataItem{{Strings: push.Value}},
		})
		n++
	}
	return out
}

package sandbox

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dop251/goja"
	"github.com/dop251/goja/ast"
	"github.com/dop251/goja/parser"
)

// entryPoint is the function every agent program must declare at top level.
const entryPoint = "run"

// tickFn is the hidden binding the instrumentation pass injects calls to.
// The leading underscores keep it out of the way of program identifiers;
// programs that shadow it only hurt themselves.
const tickFn = "__tick"

// Gates are the process-wide switches read at instrumentation time and
// frozen into the produced definition. They are set from configuration
// before a match starts and never change during one.
type Gates struct {
	// DebugMethods enables the developer-only action surface. When false,
	// calling a debug action raises a RestrictedCallError that terminates
	// the calling instance.
	DebugMethods bool
	// TestingTerminate forces an instance to terminate at the first yield
	// point it reaches, regardless of program logic. Testing aid for
	// shutdown paths.
	TestingTerminate bool
}

// Definition is the instrumented, compiled form of one agent program. It is
// immutable and shared read-only by every instance created from it.
type Definition struct {
	Identity string
	// Instrumented is the rewritten source, kept for diagnostics.
	Instrumented string

	prog  *goja.Program
	gates Gates
}

// Instrument rewrites and compiles one agent program. Checkpoint calls are
// spliced into the source at every loop-body and function-body entry: loop
// iterations carry a weight of one unit, function entries a weight of zero
// (a pure budget/termination check). Action costs are charged separately by
// the instance's bindings at call time.
func Instrument(identity, src string, gates Gates) (*Definition, error) {
	prog, err := parser.ParseFile(nil, identity+".js", src, 0)
	if err != nil {
		return nil, &LoadError{Identity: identity, Err: fmt.Errorf("parse: %w", err)}
	}

	in := &instrumenter{src: src}
	for _, stmt := range prog.Body {
		in.stmt(stmt)
	}
	if in.err != nil {
		return nil, &LoadError{Identity: identity, Err: in.err}
	}
	if !in.sawEntry {
		return nil, &LoadError{Identity: identity, Err: fmt.Errorf("program does not declare a top-level function %q", entryPoint)}
	}

	instrumented := in.apply()
	compiled, err := goja.Compile(identity+".js", instrumented, false)
	if err != nil {
		return nil, &LoadError{Identity: identity, Err: fmt.Errorf("compile: %w", err)}
	}

	return &Definition{
		Identity:     identity,
		Instrumented: instrumented,
		prog:         compiled,
		gates:        gates,
	}, nil
}

// instrumenter walks a parsed program collecting source offsets at which to
// splice checkpoint calls, and rejects constructs the pass cannot meter.
type instrumenter struct {
	src      string
	splices  []splice
	sawEntry bool
	err      error
}

type splice struct {
	at   int
	text string
}

func (in *instrumenter) fail(format string, args ...any) {
	if in.err == nil {
		in.err = fmt.Errorf(format, args...)
	}
}

// checkpoint records a __tick(weight) insertion immediately after the
// opening brace of a block. Offsets are zero-based; ast indexes are
// one-based.
func (in *instrumenter) checkpoint(brace int, weight int) {
	in.splices = append(in.splices, splice{
		at:   brace,
		text: fmt.Sprintf(" %s(%d);", tickFn, weight),
	})
}

// apply splices the collected checkpoint calls into the source, back to
// front so earlier offsets stay valid.
func (in *instrumenter) apply() string {
	sort.Slice(in.splices, func(i, j int) bool { return in.splices[i].at > in.splices[j].at })
	var b strings.Builder
	out := in.src
	for _, s := range in.splices {
		b.Reset()
		b.WriteString(out[:s.at])
		b.WriteString(s.text)
		b.WriteString(out[s.at:])
		out = b.String()
	}
	return out
}

func (in *instrumenter) stmt(s ast.Statement) {
	switch n := s.(type) {
	case *ast.BlockStatement:
		for _, st := range n.List {
			in.stmt(st)
		}
	case *ast.ExpressionStatement:
		in.expr(n.Expression)
	case *ast.IfStatement:
		in.expr(n.Test)
		in.stmt(n.Consequent)
		if n.Alternate != nil {
			in.stmt(n.Alternate)
		}
	case *ast.ForStatement:
		if n.Initializer != nil {
			in.forInit(n.Initializer)
		}
		if n.Test != nil {
			in.expr(n.Test)
		}
		if n.Update != nil {
			in.expr(n.Update)
		}
		in.loopBody(n.Body)
	case *ast.WhileStatement:
		in.expr(n.Test)
		in.loopBody(n.Body)
	case *ast.DoWhileStatement:
		in.expr(n.Test)
		in.loopBody(n.Body)
	case *ast.ForInStatement:
		in.expr(n.Source)
		in.loopBody(n.Body)
	case *ast.ForOfStatement:
		in.expr(n.Source)
		in.loopBody(n.Body)
	case *ast.SwitchStatement:
		in.expr(n.Discriminant)
		for _, c := range n.Body {
			if c.Test != nil {
				in.expr(c.Test)
			}
			for _, st := range c.Consequent {
				in.stmt(st)
			}
		}
	case *ast.TryStatement:
		in.stmt(n.Body)
		if n.Catch != nil {
			in.stmt(n.Catch.Body)
		}
		if n.Finally != nil {
			in.stmt(n.Finally)
		}
	case *ast.LabelledStatement:
		in.stmt(n.Statement)
	case *ast.ReturnStatement:
		if n.Argument != nil {
			in.expr(n.Argument)
		}
	case *ast.ThrowStatement:
		in.expr(n.Argument)
	case *ast.VariableStatement:
		for _, b := range n.List {
			if b.Initializer != nil {
				in.expr(b.Initializer)
			}
		}
	case *ast.LexicalDeclaration:
		for _, b := range n.List {
			if b.Initializer != nil {
				in.expr(b.Initializer)
			}
		}
	case *ast.FunctionDeclaration:
		if n.Function.Name != nil && string(n.Function.Name.Name) == entryPoint {
			in.sawEntry = true
		}
		in.function(n.Function)
	case *ast.ClassDeclaration:
		in.fail("class declarations are not allowed in agent programs")
	case *ast.WithStatement:
		in.fail("with statements are not allowed in agent programs")
	default:
		// Empty, break, continue, debugger: nothing to meter.
	}
}

func (in *instrumenter) expr(e ast.Expression) {
	switch n := e.(type) {
	case *ast.CallExpression:
		in.expr(n.Callee)
		for _, a := range n.ArgumentList {
			in.expr(a)
		}
	case *ast.NewExpression:
		in.expr(n.Callee)
		for _, a := range n.ArgumentList {
			in.expr(a)
		}
	case *ast.AssignExpression:
		in.expr(n.Left)
		in.expr(n.Right)
	case *ast.BinaryExpression:
		in.expr(n.Left)
		in.expr(n.Right)
	case *ast.UnaryExpression:
		in.expr(n.Operand)
	case *ast.ConditionalExpression:
		in.expr(n.Test)
		in.expr(n.Consequent)
		in.expr(n.Alternate)
	case *ast.SequenceExpression:
		for _, s := range n.Sequence {
			in.expr(s)
		}
	case *ast.ArrayLiteral:
		for _, v := range n.Value {
			if v != nil {
				in.expr(v)
			}
		}
	case *ast.ObjectLiteral:
		for _, p := range n.Value {
			in.property(p)
		}
	case *ast.DotExpression:
		in.expr(n.Left)
	case *ast.BracketExpression:
		in.expr(n.Left)
		in.expr(n.Member)
	case *ast.TemplateLiteral:
		for _, x := range n.Expressions {
			in.expr(x)
		}
	case *ast.FunctionLiteral:
		in.function(n)
	case *ast.ArrowFunctionLiteral:
		in.arrow(n)
	case *ast.ClassLiteral:
		in.fail("class expressions are not allowed in agent programs")
	default:
		// Literals and identifiers: nothing to meter.
	}
}

func (in *instrumenter) forInit(init ast.ForLoopInitializer) {
	switch n := init.(type) {
	case *ast.ForLoopInitializerExpression:
		in.expr(n.Expression)
	case *ast.ForLoopInitializerVarDeclList:
		for _, b := range n.List {
			if b.Initializer != nil {
				in.expr(b.Initializer)
			}
		}
	case *ast.ForLoopInitializerLexicalDecl:
		for _, b := range n.LexicalDeclaration.List {
			if b.Initializer != nil {
				in.expr(b.Initializer)
			}
		}
	}
}

func (in *instrumenter) property(p ast.Property) {
	switch n := p.(type) {
	case *ast.PropertyKeyed:
		in.expr(n.Value)
	case *ast.PropertyShort:
		if n.Initializer != nil {
			in.expr(n.Initializer)
		}
	case *ast.SpreadElement:
		in.expr(n.Expression)
	}
}

func (in *instrumenter) function(fl *ast.FunctionLiteral) {
	in.checkpoint(int(fl.Body.LeftBrace), 0)
	for _, st := range fl.Body.List {
		in.stmt(st)
	}
}

func (in *instrumenter) arrow(fl *ast.ArrowFunctionLiteral) {
	switch body := fl.Body.(type) {
	case *ast.BlockStatement:
		in.checkpoint(int(body.LeftBrace), 0)
		for _, st := range body.List {
			in.stmt(st)
		}
	case *ast.ExpressionBody:
		// No block to splice into; the call-stack limit bounds recursion
		// through these.
		in.expr(body.Expression)
	}
}

func (in *instrumenter) loopBody(s ast.Statement) {
	blk, ok := s.(*ast.BlockStatement)
	if !ok {
		in.fail("loop bodies must be braced blocks")
		return
	}
	in.checkpoint(int(blk.LeftBrace), 1)
	for _, st := range blk.List {
		in.stmt(st)
	}
}

// Package sandbox executes untrusted agent programs under deterministic
// instruction metering.
//
// Agent programs are JavaScript sources. A program must declare a top-level
// entry point
//
//	function run(rc) { ... }
//
// Top-level statements outside run are the program's static initialization:
// they execute first, under the same metering and yield protocol as run
// itself. The rc global (also passed to run) exposes the robot's action
// surface plus rc.yield(), which ends the robot's turn until the next round.
//
// The instrumentation pass rewrites a program before compilation so that
// every loop iteration and action call passes through a budget checkpoint.
// Programs are restricted to a metered subset of the language: loop bodies
// must be braced blocks, and class and with statements are rejected at load.
// Runaway recursion through uncheckpointed code (such as expression-bodied
// arrow functions) is bounded by the VM call-stack limit and terminates the
// offending instance only.
//
// Each instance runs on its own long-lived goroutine. Step is a
// resume/suspend handshake with that goroutine; Terminate may be called from
// any goroutine at any time, including from inside an action callback during
// an in-flight Step, and never deadlocks against it.
package sandbox

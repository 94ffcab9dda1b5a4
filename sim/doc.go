// Package sim provides the simulation engine for automata-sim.
//
// # Reading Guide
//
// Start with these files to understand the engine:
//   - config.go: MachineConfig, the decoded machine definition (JSON or YAML)
//   - machine.go: the Machine interface and NewMachine, which validates a
//     definition once and returns the variant its mode selects
//   - result.go: Result, the verdict of one run plus its step trace
//
// # Variants
//
// Each mode has its own stepper:
//   - dfa.go: deterministic walk over the input with wildcard fallback (AFD)
//   - pda.go, stack.go: stack machine with epsilon moves and a fixed lookup
//     priority (AP); accepts by final state with the input consumed
//   - tm.go, tape.go: single-tape Turing machine on a tape that grows in both
//     directions (MT)
//   - grammar.go, derivation.go: left-most derivation search for regular and
//     context-free grammars (GRAMATICA_REGULAR, GLC), breadth-first with a
//     depth-first fallback
//
// Rule keys such as "(q0, '(', 'Z')" are parsed into typed keys when a machine
// is built; runs never format or parse keys. Runs are bounded by a step
// budget (see options.go); a run cut short by it is reported through
// Result.BudgetExceeded rather than as an error.
//
// Sub-packages:
//   - sim/trace/: step and verdict records produced by every run
//   - sim/history/: SQLite store of past runs
package sim

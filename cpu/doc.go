// Package cpu implements the R4300I execution engine and its system
// control coprocessor.
//
// The Engine interprets one instruction per Step, following the MIPS
// branch-delay-slot rules: a branch or jump takes effect after the
// instruction that follows it, and a "likely" branch that is not taken
// nullifies that instruction instead. Handlers are selected from a table
// indexed by the decoded opcode's Op.
//
// The Controller is the exception and interrupt arbiter. Every Step begins
// with a Controller tick that advances the Count/Compare timer, samples the
// external interrupt line and, when an exception or enabled interrupt is
// pending, picks the single highest priority one and returns the vector the
// Engine must redirect to.
//
// Guest-visible exceptions (overflow, reserved instruction, coprocessor
// unusable, traps, bus errors) never escape Step as Go errors; they are
// recorded in the Controller and dispatched on the next Step. Errors
// returned from Step are host-internal and end the run.
package cpu

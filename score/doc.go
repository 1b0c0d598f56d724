// Package score implements the behavioral bot-likelihood heuristic.
//
// Evaluation starts at 100 and subtracts a fixed penalty for every triggered
// signal check; the final score is clamped to [0, 100]. A score below 50
// classifies the submission as a bot. The 50 boundary is shared between the
// bot classification and the verification pass decision — there is deliberately
// no separate pass threshold.
//
// # What this package must NOT do
//
//   - Hold state between calls — evaluation is a pure function of its input.
//   - Import any other goCaptcha package.
package score

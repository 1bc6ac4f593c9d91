// Package orchestrator wires the manifest → component → transformer →
// renderer pipeline behind a single Generate call.
package orchestrator

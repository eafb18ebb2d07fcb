// Package probe provides condition expressions over external systems and
// turns wait plan targets into runnable checks.
//
// Transient failures such as refused connections, missing files or objects
// not yet created are reported as *condition.EvaluationError and retried.
// Problems that waiting cannot fix, such as an unknown Kubernetes kind, end
// the wait at once.
package probe

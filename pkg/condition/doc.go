// Package condition waits for values that become available eventually.
//
// A Condition wraps an Expression and polls it until the produced value is
// accepted, or until the time budget taken from a shared timeout.Provider is
// spent. Evaluations that fail with an *EvaluationError are retried; any other
// error ends polling at once and is returned unchanged.
//
// A typical use in a test:
//
//	factory := condition.NewFactory(timeout.NewProvider())
//	pods := condition.ForFunc(factory, "ready pods", countReadyPods)
//	if err := pods.WithMessage("deployment did not scale").AssertEquals(ctx, 3); err != nil {
//		t.Fatal(err)
//	}
//
// Failures carry the expected and last observed values, the number of
// attempts and the last evaluation failure. AssertThat and friends return an
// *AssertionError; AssumeThat and AssumeEquals return an *AssumptionViolation,
// which package conditiontest turns into a skipped test.
//
// Configuration mistakes, such as setting a message twice or passing a
// negative timeout factor, are programming errors and panic.
package condition

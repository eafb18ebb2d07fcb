// Package logging provides the structured, subsystem-tagged logger used across joala.
//
// The package wraps Go's log/slog with a process-wide logger that is configured
// once by the CLI. Until InitForCLI is called every log call is discarded, so
// the condition engine can log each polling attempt without producing output in
// test binaries that never asked for it.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelDebug, os.Stderr)
//
//	logging.Debug("Condition", "attempt %d failed: %v", n, err)
//	logging.Info("Runner", "waiting for %d targets", len(targets))
//	logging.Error("ConfigLoader", err, "cannot read %s", path)
//
// # Subsystems
//
//   - Condition: polling attempts, deadlines and finally-callbacks
//   - Runner: target scheduling and outcomes
//   - ConfigLoader: wait plan loading
//   - Probe: probe specific diagnostics
//
// # Controller-Runtime Integration
//
// InitForCLI also installs the same handler as the controller-runtime logger,
// so the Kubernetes client used by the object probe does not complain about an
// uninitialised logger.
package logging

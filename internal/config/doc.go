// Package config loads and validates wait plans.
//
// A wait plan is a YAML document listing the targets joala waits for, together
// with the timing that applies to all of them:
//
//	timeout: 30s
//	pollInterval: 200ms
//	parallel: 2
//	targets:
//	  - name: api
//	    http: {url: http://localhost:8080/healthz, status: 200}
//	  - name: db
//	    tcp: {address: localhost:5432}
//
// # Targets
//
// Every target names exactly one check:
//   - http: a URL answering with a status code and, optionally, a body containing a text
//   - tcp: an address accepting connections
//   - file: a file that exists and, optionally, contains a text
//   - kubernetes: an object whose status condition has a given status
//
// A target may scale the plan timeout with its own timeoutFactor, carry a
// message added to its failure, and be marked as an assumption, in which case
// a timeout counts as skipped rather than failed.
//
// The timeout may also be written as an amount and a unit ("2 minutes",
// "1 day").
//
// # Templates
//
// A plan containing "{{" is rendered as a text/template with the sprig
// functions before it is parsed, so values can come from the environment:
//
//	url: {{ env "API_URL" | default "http://localhost:8080" }}/healthz
//
// # Defaults
//
// Missing values are filled in by ApplyDefaults before validation. See
// defaults.go for the values.
//
// # Errors
//
// LoadPlan reports unreadable, malformed and invalid files as
// ConfigurationError. Validation problems are collected into ValidationErrors,
// available through errors.As on the returned error.
package config

package config

import (
	"fmt"
	"math"
	"net"
	"net/url"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

var (
	httpMethods       = []string{"GET", "HEAD", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	conditionStatuses = []string{"True", "False", "Unknown"}
)

// Validate checks a plan after ApplyDefaults and returns all problems found.
func Validate(p Plan) ValidationErrors {
	var errs ValidationErrors

	if p.Timeout < 0 {
		errs.Add("timeout", "must not be negative", p.Timeout)
	}
	if p.PollInterval < 0 {
		errs.Add("pollInterval", "must not be negative", p.PollInterval)
	}
	if p.Parallel < 0 {
		errs.Add("parallel", "must not be negative", p.Parallel)
	}
	validateFactor(&errs, "timeoutFactor", p.TimeoutFactor)

	if len(p.Targets) == 0 {
		errs.Add("targets", "must have at least one item")
	}

	seen := make(map[string]bool, len(p.Targets))
	for i, t := range p.Targets {
		field := fmt.Sprintf("targets[%d]", i)
		if strings.TrimSpace(t.Name) == "" {
			errs.Add(field+".name", "is required")
		} else if seen[t.Name] {
			errs.Add(field+".name", "must be unique", t.Name)
		}
		seen[t.Name] = true

		validateFactor(&errs, field+".timeoutFactor", t.TimeoutFactor)
		validateTarget(&errs, field, t)
	}

	return errs
}

func validateFactor(errs *ValidationErrors, field string, factor *float64) {
	if factor != nil && (*factor < 0 || math.IsNaN(*factor) || math.IsInf(*factor, 0)) {
		errs.Add(field, "must be a non-negative number", *factor)
	}
}

func validateTarget(errs *ValidationErrors, field string, t Target) {
	kinds := t.Kinds()
	switch len(kinds) {
	case 0:
		errs.Add(field, "must define one of http, tcp, file, kubernetes")
		return
	case 1:
	default:
		errs.Add(field, fmt.Sprintf("must define only one check, found %v", kinds))
		return
	}

	switch kinds[0] {
	case CheckHTTP:
		validateHTTP(errs, field+".http", t.HTTP)
	case CheckTCP:
		if _, _, err := net.SplitHostPort(t.TCP.Address); err != nil {
			errs.Add(field+".tcp.address", "must be host:port", t.TCP.Address)
		}
	case CheckFile:
		if strings.TrimSpace(t.File.Path) == "" {
			errs.Add(field+".file.path", "is required")
		}
	case CheckKubernetes:
		validateKubernetes(errs, field+".kubernetes", t.Kubernetes)
	}
}

func validateHTTP(errs *ValidationErrors, field string, c *HTTPCheck) {
	u, err := url.Parse(c.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		errs.Add(field+".url", "must be an absolute http or https URL", c.URL)
	}
	if err := validateOneOf(field+".method", strings.ToUpper(c.Method), httpMethods); err != nil {
		*errs = append(*errs, *err)
	}
	if c.Status < 100 || c.Status > 599 {
		errs.Add(field+".status", "must be between 100 and 599", c.Status)
	}
}

func validateKubernetes(errs *ValidationErrors, field string, c *KubernetesCheck) {
	if c.APIVersion == "" {
		errs.Add(field+".apiVersion", "is required")
	}
	if c.Kind == "" {
		errs.Add(field+".kind", "is required")
	}
	if c.Name == "" {
		errs.Add(field+".name", "is required")
	}
	if err := validateOneOf(field+".status", c.Status, conditionStatuses); err != nil {
		*errs = append(*errs, *err)
	}
}

// validateOneOf checks if a value is in a list of allowed values
func validateOneOf(field, value string, allowed []string) *ValidationError {
	for _, allowedValue := range allowed {
		if value == allowedValue {
			return nil
		}
	}
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: fmt.Sprintf("must be one of: %s", strings.Join(allowed, ", ")),
	}
}

package config

import (
	"net/http"
	"time"
)

const (
	// DefaultTimeout matches the default of timeout.Provider.
	DefaultTimeout = 10 * time.Second

	// DefaultPollInterval matches condition.DefaultPollInterval.
	DefaultPollInterval = 100 * time.Millisecond

	DefaultParallel        = 1
	DefaultHTTPMethod      = http.MethodGet
	DefaultHTTPStatus      = http.StatusOK
	DefaultNamespace       = "default"
	DefaultCondition       = "Ready"
	DefaultConditionStatus = "True"
)

// ApplyDefaults fills unset values of p in place.
func ApplyDefaults(p *Plan) {
	if p.Timeout == 0 {
		p.Timeout = Duration(DefaultTimeout)
	}
	if p.PollInterval == 0 {
		p.PollInterval = DefaultPollInterval
	}
	if p.Parallel == 0 {
		p.Parallel = DefaultParallel
	}

	for i := range p.Targets {
		t := &p.Targets[i]
		if t.HTTP != nil {
			if t.HTTP.Method == "" {
				t.HTTP.Method = DefaultHTTPMethod
			}
			if t.HTTP.Status == 0 {
				t.HTTP.Status = DefaultHTTPStatus
			}
		}
		if k := t.Kubernetes; k != nil {
			if k.Namespace == "" {
				k.Namespace = DefaultNamespace
			}
			if k.Condition == "" {
				k.Condition = DefaultCondition
			}
			if k.Status == "" {
				k.Status = DefaultConditionStatus
			}
		}
	}
}

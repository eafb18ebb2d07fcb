package config

import "time"

// Plan is a wait plan: the targets to wait for and the timing shared by them.
type Plan struct {
	Timeout       Duration      `yaml:"timeout,omitempty" json:"timeout,omitempty"`             // Base timeout of every target, e.g. "90s" or "2 minutes" (default: 10s)
	TimeoutFactor *float64      `yaml:"timeoutFactor,omitempty" json:"timeoutFactor,omitempty"` // Scales the base timeout (default: 1)
	PollInterval  time.Duration `yaml:"pollInterval,omitempty" json:"pollInterval,omitempty"`   // Pause between attempts (default: 100ms)
	Parallel      int           `yaml:"parallel,omitempty" json:"parallel,omitempty"`           // Targets waited for concurrently (default: 1)
	FailFast      bool          `yaml:"failFast,omitempty" json:"failFast,omitempty"`           // Stop after the first failed target
	Targets       []Target      `yaml:"targets" json:"targets"`
}

// CheckKind names the check a Target performs.
type CheckKind string

const (
	CheckHTTP       CheckKind = "http"
	CheckTCP        CheckKind = "tcp"
	CheckFile       CheckKind = "file"
	CheckKubernetes CheckKind = "kubernetes"
)

// Target is a single thing to wait for.
type Target struct {
	Name          string   `yaml:"name" json:"name"`
	Message       string   `yaml:"message,omitempty" json:"message,omitempty"`
	Assume        bool     `yaml:"assume,omitempty" json:"assume,omitempty"`
	TimeoutFactor *float64 `yaml:"timeoutFactor,omitempty" json:"timeoutFactor,omitempty"`

	HTTP       *HTTPCheck       `yaml:"http,omitempty" json:"http,omitempty"`
	TCP        *TCPCheck        `yaml:"tcp,omitempty" json:"tcp,omitempty"`
	File       *FileCheck       `yaml:"file,omitempty" json:"file,omitempty"`
	Kubernetes *KubernetesCheck `yaml:"kubernetes,omitempty" json:"kubernetes,omitempty"`
}

// Kinds returns the kinds of all checks configured on t.
// A valid target has exactly one.
func (t Target) Kinds() []CheckKind {
	var kinds []CheckKind
	if t.HTTP != nil {
		kinds = append(kinds, CheckHTTP)
	}
	if t.TCP != nil {
		kinds = append(kinds, CheckTCP)
	}
	if t.File != nil {
		kinds = append(kinds, CheckFile)
	}
	if t.Kubernetes != nil {
		kinds = append(kinds, CheckKubernetes)
	}
	return kinds
}

// Kind returns the single check kind of t, or "" if t has none or several.
func (t Target) Kind() CheckKind {
	if kinds := t.Kinds(); len(kinds) == 1 {
		return kinds[0]
	}
	return ""
}

// EffectiveTimeoutFactor combines the plan and target factors.
func (p Plan) EffectiveTimeoutFactor(t Target) float64 {
	factor := 1.0
	if p.TimeoutFactor != nil {
		factor = *p.TimeoutFactor
	}
	if t.TimeoutFactor != nil {
		factor *= *t.TimeoutFactor
	}
	return factor
}

// HTTPCheck waits for a URL to answer with an expected status.
type HTTPCheck struct {
	URL          string            `yaml:"url" json:"url"`
	Method       string            `yaml:"method,omitempty" json:"method,omitempty"`             // default: GET
	Status       int               `yaml:"status,omitempty" json:"status,omitempty"`             // default: 200
	BodyContains string            `yaml:"bodyContains,omitempty" json:"bodyContains,omitempty"` // optional body text
	Headers      map[string]string `yaml:"headers,omitempty" json:"headers,omitempty"`
}

// TCPCheck waits for an address to accept connections.
type TCPCheck struct {
	Address string `yaml:"address" json:"address"`
}

// FileCheck waits for a file to exist and optionally contain a text.
type FileCheck struct {
	Path     string `yaml:"path" json:"path"`
	Contains string `yaml:"contains,omitempty" json:"contains,omitempty"`
}

// KubernetesCheck waits for a status condition of a Kubernetes object.
type KubernetesCheck struct {
	APIVersion string `yaml:"apiVersion" json:"apiVersion"`
	Kind       string `yaml:"kind" json:"kind"`
	Namespace  string `yaml:"namespace,omitempty" json:"namespace,omitempty"` // default: "default"
	Name       string `yaml:"name" json:"name"`
	Condition  string `yaml:"condition,omitempty" json:"condition,omitempty"` // default: Ready
	Status     string `yaml:"status,omitempty" json:"status,omitempty"`       // default: "True"
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/CoreMedia/joala-sub001/pkg/logging"
)

const subsystem = "ConfigLoader"

// LoadPlan reads the wait plan at path from the OS file system.
func LoadPlan(path string) (Plan, error) {
	return LoadPlanFS(afero.NewOsFs(), path)
}

// LoadPlanFS reads, defaults and validates the wait plan at path in fsys.
func LoadPlanFS(fsys afero.Fs, path string) (Plan, error) {
	fileName := filepath.Base(path)

	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		logging.Info(subsystem, "Error loading wait plan from %s: %s", path, err)
		cerr := ConfigurationError{
			FilePath:  path,
			FileName:  fileName,
			ErrorType: ErrorTypeIO,
			Message:   err.Error(),
			Cause:     err,
		}
		if errors.Is(err, os.ErrNotExist) {
			cerr.Message = "file not found"
			cerr.Suggestions = []string{"Check the path passed with --config"}
		}
		return Plan{}, cerr
	}

	rendered, err := RenderTemplate(fileName, data)
	if err != nil {
		return Plan{}, ConfigurationError{
			FilePath:    path,
			FileName:    fileName,
			ErrorType:   ErrorTypeTemplate,
			Message:     "invalid template",
			Details:     err.Error(),
			Suggestions: []string{`Quote literal braces, e.g. {{ "{{" }}`},
			Cause:       err,
		}
	}

	plan, err := ParsePlan(rendered)
	if err != nil {
		return Plan{}, ConfigurationError{
			FilePath:  path,
			FileName:  fileName,
			ErrorType: ErrorTypeParse,
			Message:   "invalid YAML",
			Details:   err.Error(),
			Cause:     err,
		}
	}

	ApplyDefaults(&plan)
	if errs := Validate(plan); errs.HasErrors() {
		return Plan{}, ConfigurationError{
			FilePath:  path,
			FileName:  fileName,
			ErrorType: ErrorTypeValidation,
			Message:   fmt.Sprintf("%d invalid field(s)", len(errs)),
			Details:   errs.Error(),
			Cause:     errs,
		}
	}

	logging.Info(subsystem, "Loaded wait plan with %d target(s) from %s", len(plan.Targets), path)
	return plan, nil
}

// RenderTemplate expands a plan file as a text/template with the sprig
// functions, so that plans can read the environment:
//
//	url: {{ env "API_URL" | default "http://localhost:8080" }}/healthz
func RenderTemplate(name string, data []byte) ([]byte, error) {
	if !bytes.Contains(data, []byte("{{")) {
		return data, nil
	}
	tmpl, err := template.New(name).
		Option("missingkey=error").
		Funcs(sprig.TxtFuncMap()).
		Parse(string(data))
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParsePlan decodes a wait plan without applying defaults. Unknown fields are rejected.
func ParsePlan(data []byte) (Plan, error) {
	var plan Plan
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&plan); err != nil && !errors.Is(err, io.EOF) {
		return Plan{}, err
	}
	return plan, nil
}

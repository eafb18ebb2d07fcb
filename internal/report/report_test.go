package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sigs.k8s.io/yaml"

	"github.com/CoreMedia/joala-sub001/internal/config"
	"github.com/CoreMedia/joala-sub001/internal/runner"
)

func sampleSuite() *runner.SuiteResult {
	return &runner.SuiteResult{
		RunID:    "7d1c2a4e-0000-4000-8000-000000000000",
		Duration: 1500 * time.Millisecond,
		Total:    3,
		Passed:   1,
		Failed:   1,
		Skipped:  1,
		Results: []runner.TargetResult{
			{Name: "db", Kind: config.CheckTCP, Description: "tcp://db:5432", Result: runner.ResultPassed, Duration: 12 * time.Millisecond},
			{
				Name:     "api",
				Kind:     config.CheckHTTP,
				Result:   runner.ResultFailed,
				Duration: time.Second,
				Attempts: 11,
				Error:    "API must answer\nCondition on GET http://api/healthz not satisfied within 1s",
			},
			{Name: "marker", Kind: config.CheckFile, Result: runner.ResultSkipped, Error: "not run: cancelled after an earlier failure"},
		},
	}
}

func TestParseFormat(t *testing.T) {
	for _, f := range []string{"table", "JSON", "yaml"} {
		_, err := ParseFormat(f)
		assert.NoError(t, err, f)
	}
	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleSuite(), Options{Format: FormatTable}))
	out := buf.String()

	assert.Contains(t, out, "TARGET")
	assert.Contains(t, out, "tcp://db:5432")
	assert.Contains(t, out, "API must answer Condition on GET http://api/healthz not s...")
	assert.Contains(t, out, "11")
	assert.Contains(t, out, "1 passed, 1 failed, 1 skipped, 0 errors in 1.5s (run 7d1c2a4e-0000-4000-8000-000000000000)")
	assert.Contains(t, out, "\nFAILED api\n  API must answer\n  Condition on GET http://api/healthz not satisfied within 1s\n")
	assert.Contains(t, out, "\nSKIPPED marker\n")
	assert.NotContains(t, out, "\x1b[", "no colors unless enabled")
}

func TestWrite_TableColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleSuite(), Options{Format: FormatTable, Color: true}))
	assert.Contains(t, buf.String(), "PASSED")
	assert.Contains(t, buf.String(), "FAILED")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleSuite(), Options{Format: FormatJSON}))

	var decoded runner.SuiteResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, 3, decoded.Total)
	assert.Equal(t, runner.ResultFailed, decoded.Results[1].Result)
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleSuite(), Options{Format: FormatYAML}))

	assert.Contains(t, buf.String(), "run_id: 7d1c2a4e-0000-4000-8000-000000000000")
	assert.Contains(t, buf.String(), "result: SKIPPED")

	var decoded map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Len(t, decoded["results"], 3)
}

func TestWrite_UnknownFormat(t *testing.T) {
	assert.Error(t, Write(&bytes.Buffer{}, sampleSuite(), Options{Format: "xml"}))
}

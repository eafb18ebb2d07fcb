package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"sigs.k8s.io/controller-runtime/pkg/client"
	"sigs.k8s.io/controller-runtime/pkg/client/fake"

	"github.com/CoreMedia/joala-sub001/internal/config"
	"github.com/CoreMedia/joala-sub001/internal/probe"
	"github.com/CoreMedia/joala-sub001/internal/runner"
)

func executeWait(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newWaitCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestWait_ExitCodes(t *testing.T) {
	ready := writeFile(t, "ready", "done")
	missing := filepath.Join(t.TempDir(), "missing")

	tests := []struct {
		name     string
		args     []string
		expected int
	}{
		{"ready file", []string{"--file", ready, "--contains", "done"}, ExitCodeSuccess},
		{"missing file", []string{"--file", missing, "--timeout", "30ms", "--interval", "5ms"}, ExitCodeFailed},
		{"missing file assumed", []string{"--file", missing, "--assume", "--timeout", "30ms", "--interval", "5ms"}, ExitCodeSkipped},
		{"no targets", []string{}, ExitCodeError},
		{"bad output", []string{"--file", ready, "--output", "xml"}, ExitCodeError},
		{"bad log level", []string{"--file", ready, "--log-level", "loud"}, ExitCodeError},
		{"unexpected argument", []string{"extra"}, ExitCodeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeWait(t, append(tt.args, "--quiet")...)
			assert.Equal(t, tt.expected, getExitCode(err), "error: %v", err)
		})
	}
}

func TestWait_JSONOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	out, err := executeWait(t, "--http", server.URL, "--http-status", "202", "--output", "json")
	require.NoError(t, err)

	var suite runner.SuiteResult
	require.NoError(t, json.Unmarshal([]byte(out), &suite))
	require.Len(t, suite.Results, 1)
	assert.Equal(t, server.URL, suite.Results[0].Name)
	assert.Equal(t, config.CheckHTTP, suite.Results[0].Kind)
	assert.Equal(t, runner.ResultPassed, suite.Results[0].Result)
}

func TestWait_TableOutputShowsFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")

	out, err := executeWait(t, "--file", missing, "--message", "marker not written", "--timeout", "20ms", "--interval", "5ms")

	var failed *runner.FailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, []string{missing}, failed.Targets)
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "marker not written")
	assert.Contains(t, out, "0 passed, 1 failed")
}

func TestWait_TemplatedPlan(t *testing.T) {
	ready := writeFile(t, "ready", "done")
	t.Setenv("JOALA_TEST_MARKER", ready)
	plan := writeFile(t, "plan.yaml", `
targets:
  - name: marker
    file: {path: '{{ env "JOALA_TEST_MARKER" }}', contains: done}
`)

	out, err := executeWait(t, "--config", plan, "--output", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "name: marker")
	assert.Contains(t, out, "result: PASSED")
}

func TestWait_KubernetesPlan(t *testing.T) {
	original := newKubernetesClient
	defer func() { newKubernetesClient = original }()
	newKubernetesClient = func() (client.Client, error) {
		return fake.NewClientBuilder().
			WithScheme(probe.NewScheme()).
			WithObjects(&appsv1.Deployment{
				ObjectMeta: metav1.ObjectMeta{Name: "web", Namespace: "shop"},
				Status: appsv1.DeploymentStatus{Conditions: []appsv1.DeploymentCondition{
					{Type: appsv1.DeploymentAvailable, Status: corev1.ConditionTrue},
				}},
			}).
			Build(), nil
	}

	plan := writeFile(t, "plan.yaml", `
timeout: 1s
targets:
  - name: web
    kubernetes: {apiVersion: apps/v1, kind: Deployment, namespace: shop, name: web, condition: Available}
`)

	out, err := executeWait(t, "--config", plan, "--output", "yaml")

	require.NoError(t, err)
	assert.Contains(t, out, "result: PASSED")
}

func TestWait_KubernetesClientError(t *testing.T) {
	original := newKubernetesClient
	defer func() { newKubernetesClient = original }()
	newKubernetesClient = func() (client.Client, error) {
		return nil, errors.New("no kubeconfig")
	}

	plan := writeFile(t, "plan.yaml", "targets:\n  - name: pod\n    kubernetes: {apiVersion: v1, kind: Pod, name: web-0}\n")

	_, err := executeWait(t, "--config", plan, "--quiet")

	assert.ErrorContains(t, err, "no kubeconfig")
	assert.Equal(t, ExitCodeError, getExitCode(err))
}

func TestBuildPlan_FlagOverrides(t *testing.T) {
	planPath := writeFile(t, "plan.yaml", `
timeout: 30s
pollInterval: 1s
parallel: 2
targets:
  - name: db
    tcp: {address: "localhost:5432"}
`)

	opts := &waitOptions{}
	cmd := newWaitCmdWithOptions(opts)
	require.NoError(t, cmd.ParseFlags([]string{
		"--config", planPath,
		"--parallel", "4",
		"--factor", "2.5",
		"--tcp", "localhost:6379",
		"--assume",
		"--message", "cache down",
	}))

	plan, err := buildPlan(cmd, opts)
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, plan.Timeout.Duration(), "plan value kept")
	assert.Equal(t, time.Second, plan.PollInterval, "plan value kept")
	assert.Equal(t, 4, plan.Parallel, "flag overrides plan")
	require.NotNil(t, plan.TimeoutFactor)
	assert.InDelta(t, 2.5, *plan.TimeoutFactor, 1e-9)

	require.Len(t, plan.Targets, 2)
	assert.False(t, plan.Targets[0].Assume, "plan targets keep their settings")
	assert.Equal(t, "localhost:6379", plan.Targets[1].Name)
	assert.True(t, plan.Targets[1].Assume)
	assert.Equal(t, "cache down", plan.Targets[1].Message)
}

func TestIsTerminal(t *testing.T) {
	file, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer file.Close()

	assert.False(t, isTerminal(&bytes.Buffer{}), "buffer")
	assert.False(t, isTerminal(file), "regular file")
}

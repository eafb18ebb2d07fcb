package probe

import (
	"context"
	"fmt"
	"sort"
	"strings"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	utilruntime "k8s.io/apimachinery/pkg/util/runtime"
	clientgoscheme "k8s.io/client-go/kubernetes/scheme"
	"k8s.io/client-go/rest"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/CoreMedia/joala-sub001/pkg/condition"
	"github.com/CoreMedia/joala-sub001/pkg/description"
	"github.com/CoreMedia/joala-sub001/pkg/matcher"
)

// NewScheme returns a scheme with the built-in Kubernetes types registered.
func NewScheme() *runtime.Scheme {
	scheme := runtime.NewScheme()
	utilruntime.Must(clientgoscheme.AddToScheme(scheme))
	return scheme
}

// NewKubernetesClient creates the controller-runtime client used by Kubernetes probes.
func NewKubernetesClient(config *rest.Config) (client.Client, error) {
	k8sClient, err := client.New(config, client.Options{
		Scheme: NewScheme(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Kubernetes client: %w", err)
	}
	return k8sClient, nil
}

// getObject reads key into obj, sorting API errors into recoverable and fatal ones.
func getObject(ctx context.Context, reader client.Reader, key client.ObjectKey, obj client.Object, what string) error {
	err := reader.Get(ctx, key, obj)
	switch {
	case err == nil:
		return nil
	case ctx.Err() != nil:
		return ctx.Err()
	case meta.IsNoMatchError(err), apierrors.IsForbidden(err), apierrors.IsUnauthorized(err):
		return fmt.Errorf("get %s: %w", what, err)
	default:
		// Not found yet, or the API server is unavailable.
		return condition.WrapEvaluationError(err, "get %s", what)
	}
}

func objectName(kind string, key client.ObjectKey) string {
	if key.Namespace == "" {
		return kind + " " + key.Name
	}
	return kind + " " + key.Namespace + "/" + key.Name
}

type objectExpression struct {
	reader client.Reader
	gvk    schema.GroupVersionKind
	key    client.ObjectKey
}

// Object creates an expression reading an arbitrary object as unstructured data.
func Object(reader client.Reader, gvk schema.GroupVersionKind, key client.ObjectKey) condition.Expression[*unstructured.Unstructured] {
	return &objectExpression{reader: reader, gvk: gvk, key: key}
}

func (e *objectExpression) Get(ctx context.Context) (*unstructured.Unstructured, error) {
	u := &unstructured.Unstructured{}
	u.SetGroupVersionKind(e.gvk)
	if err := getObject(ctx, e.reader, e.key, u, objectName(e.gvk.Kind, e.key)); err != nil {
		return nil, err
	}
	return u, nil
}

func (e *objectExpression) DescribeTo(d description.Description) {
	d.AppendText(objectName(e.gvk.Kind, e.key))
}

// conditionsOf returns status.conditions of u as type -> status.
func conditionsOf(u *unstructured.Unstructured) map[string]string {
	result := map[string]string{}
	if u == nil {
		return result
	}
	items, found, err := unstructured.NestedSlice(u.Object, "status", "conditions")
	if err != nil || !found {
		return result
	}
	for _, item := range items {
		c, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		condType, _ := c["type"].(string)
		status, _ := c["status"].(string)
		if condType != "" {
			result[condType] = status
		}
	}
	return result
}

func formatConditions(conditions map[string]string) string {
	if len(conditions) == 0 {
		return "no conditions"
	}
	parts := make([]string, 0, len(conditions))
	for condType, status := range conditions {
		parts = append(parts, condType+"="+status)
	}
	sort.Strings(parts)
	return "conditions " + strings.Join(parts, ", ")
}

type hasCondition struct {
	condType string
	status   string
}

// HasCondition matches objects whose status.conditions contain condType with status.
func HasCondition(condType, status string) matcher.Matcher[*unstructured.Unstructured] {
	return hasCondition{condType: condType, status: status}
}

func (m hasCondition) Matches(u *unstructured.Unstructured) bool {
	status, ok := conditionsOf(u)[m.condType]
	return ok && status == m.status
}

func (m hasCondition) DescribeTo(d description.Description) {
	d.AppendText(fmt.Sprintf("condition %s=%s", m.condType, m.status))
}

func (m hasCondition) DescribeMismatch(u *unstructured.Unstructured, d description.Description) {
	d.AppendText("had " + formatConditions(conditionsOf(u)))
}

type podExpression struct {
	reader client.Reader
	key    client.ObjectKey
}

// Pod creates an expression reading a typed Pod.
func Pod(reader client.Reader, key client.ObjectKey) condition.Expression[*corev1.Pod] {
	return &podExpression{reader: reader, key: key}
}

func (e *podExpression) Get(ctx context.Context) (*corev1.Pod, error) {
	pod := &corev1.Pod{}
	if err := getObject(ctx, e.reader, e.key, pod, objectName("Pod", e.key)); err != nil {
		return nil, err
	}
	return pod, nil
}

func (e *podExpression) DescribeTo(d description.Description) {
	d.AppendText(objectName("Pod", e.key))
}

type podReady struct{}

// PodReady matches pods whose Ready condition is True.
func PodReady() matcher.Matcher[*corev1.Pod] {
	return podReady{}
}

func (podReady) Matches(pod *corev1.Pod) bool {
	if pod == nil {
		return false
	}
	for _, c := range pod.Status.Conditions {
		if c.Type == corev1.PodReady {
			return c.Status == corev1.ConditionTrue
		}
	}
	return false
}

func (podReady) DescribeTo(d description.Description) {
	d.AppendText("a ready pod")
}

func (podReady) DescribeMismatch(pod *corev1.Pod, d description.Description) {
	if pod == nil {
		d.AppendText("was nil")
		return
	}
	conditions := make(map[string]string, len(pod.Status.Conditions))
	for _, c := range pod.Status.Conditions {
		conditions[string(c.Type)] = string(c.Status)
	}
	d.AppendText(fmt.Sprintf("was %s with %s", pod.Status.Phase, formatConditions(conditions)))
}

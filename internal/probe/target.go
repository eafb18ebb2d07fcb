package probe

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/go-resty/resty/v2"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/client"

	"github.com/CoreMedia/joala-sub001/internal/config"
	"github.com/CoreMedia/joala-sub001/pkg/condition"
	"github.com/CoreMedia/joala-sub001/pkg/description"
	"github.com/CoreMedia/joala-sub001/pkg/logging"
	"github.com/CoreMedia/joala-sub001/pkg/matcher"
)

const subsystem = "Probe"

// ErrNoKubernetesClient is returned when a plan has a kubernetes target but no cluster connection was configured.
var ErrNoKubernetesClient = errors.New("kubernetes target requires a cluster connection")

// Check is a wait plan target ready to run.
type Check struct {
	Name        string
	Kind        config.CheckKind
	Description string
	Assume      bool

	// Run waits for the target. It returns nil, a *condition.AssertionError,
	// a *condition.AssumptionViolation or any other error ending the wait.
	Run func(ctx context.Context) error
}

// Builder turns targets into Checks. Conditions are created through Factory,
// so they share its timeout.Provider, clock and poll interval.
type Builder struct {
	Factory    *condition.Factory
	HTTP       *resty.Client
	Dialer     *net.Dialer
	FS         afero.Fs
	Kubernetes client.Reader
}

// NewBuilder creates a Builder using real network and file system access.
// Kubernetes stays unset until a plan needs it.
func NewBuilder(factory *condition.Factory) *Builder {
	return &Builder{
		Factory: factory,
		HTTP:    NewHTTPClient(),
		Dialer:  &net.Dialer{},
		FS:      afero.NewOsFs(),
	}
}

// RequiresKubernetes reports whether any target of plan reads from a cluster.
func RequiresKubernetes(plan config.Plan) bool {
	return lo.ContainsBy(plan.Targets, func(t config.Target) bool {
		return t.Kubernetes != nil
	})
}

// BuildAll builds a Check for every target of plan, in order.
func (b *Builder) BuildAll(plan config.Plan) ([]Check, error) {
	checks := make([]Check, 0, len(plan.Targets))
	for _, t := range plan.Targets {
		c, err := b.Build(plan, t)
		if err != nil {
			return nil, err
		}
		checks = append(checks, c)
	}
	return checks, nil
}

// Build creates the Check for target t of plan.
func (b *Builder) Build(plan config.Plan, t config.Target) (Check, error) {
	factor := plan.EffectiveTimeoutFactor(t)

	switch t.Kind() {
	case config.CheckHTTP:
		expr := HTTP(b.HTTP, t.HTTP.Method, t.HTTP.URL, t.HTTP.Headers)
		m := HTTPStatus(t.HTTP.Status)
		if t.HTTP.BodyContains != "" {
			m = matcher.AllOf(m, BodyContains(t.HTTP.BodyContains))
		}
		return newCheck(b.Factory, t, factor, expr, m), nil

	case config.CheckTCP:
		return newCheck[string](b.Factory, t, factor, TCP(b.Dialer, t.TCP.Address), nil), nil

	case config.CheckFile:
		var m matcher.Matcher[string]
		if t.File.Contains != "" {
			m = matcher.ContainsString(t.File.Contains)
		}
		return newCheck(b.Factory, t, factor, File(b.FS, t.File.Path), m), nil

	case config.CheckKubernetes:
		if b.Kubernetes == nil {
			return Check{}, fmt.Errorf("target %q: %w", t.Name, ErrNoKubernetesClient)
		}
		k := t.Kubernetes
		key := client.ObjectKey{Namespace: k.Namespace, Name: k.Name}
		if isPodReadiness(k) {
			return newCheck(b.Factory, t, factor, Pod(b.Kubernetes, key), PodReady()), nil
		}
		gvk := schema.FromAPIVersionAndKind(k.APIVersion, k.Kind)
		return newCheck(b.Factory, t, factor, Object(b.Kubernetes, gvk, key), HasCondition(k.Condition, k.Status)), nil
	}

	return Check{}, fmt.Errorf("target %q: must define exactly one check, found %v", t.Name, t.Kinds())
}

func isPodReadiness(k *config.KubernetesCheck) bool {
	return k.APIVersion == "v1" && k.Kind == "Pod" && k.Condition == "Ready" && k.Status == "True"
}

// newCheck wraps expr and m into a Check. A nil m waits for any value
// that can be evaluated.
func newCheck[T any](factory *condition.Factory, t config.Target, factor float64, expr condition.Expression[T], m matcher.Matcher[T]) Check {
	return Check{
		Name:        t.Name,
		Kind:        t.Kind(),
		Description: description.ToString(expr),
		Assume:      t.Assume,
		Run: func(ctx context.Context) error {
			c := condition.For(factory, expr).WithTimeoutFactor(factor)
			if t.Message != "" {
				c.WithMessage(t.Message)
			}
			logging.Debug(subsystem, "Waiting for %s (%s)", t.Name, description.ToString(expr))

			switch {
			case t.Assume && m == nil:
				return c.AssumeThat(ctx, matcher.Anything[T]())
			case t.Assume:
				return c.AssumeThat(ctx, m)
			case m == nil:
				_, err := c.Await(ctx)
				return err
			default:
				return c.AssertThat(ctx, m)
			}
		},
	}
}

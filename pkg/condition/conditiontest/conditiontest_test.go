package conditiontest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CoreMedia/joala-sub001/pkg/condition"
	"github.com/CoreMedia/joala-sub001/pkg/timeout"
)

// recordingTB captures Skip and Fatal instead of stopping the goroutine.
type recordingTB struct {
	testing.TB
	skipped string
	fatal   string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Skip(args ...any) {
	r.skipped = args[0].(string)
}

func (r *recordingTB) Fatal(args ...any) {
	r.fatal = args[0].(string)
}

func TestRequire(t *testing.T) {
	provider := timeout.NewProvider()
	provider.SetTimeout(timeout.MustNew(0, timeout.Milliseconds))
	ctx := context.Background()

	tests := []struct {
		name        string
		err         error
		wantSkipped bool
		wantFatal   bool
	}{
		{name: "nil"},
		{
			name:        "assumption violated",
			err:         condition.New(condition.Value(1), provider).AssumeEquals(ctx, 2),
			wantSkipped: true,
		},
		{
			name:      "assertion failed",
			err:       condition.New(condition.Value(1), provider).AssertEquals(ctx, 2),
			wantFatal: true,
		},
		{
			name:      "other error",
			err:       errors.New("broken"),
			wantFatal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recordingTB{TB: t}
			Require(rec, tt.err)

			assert.Equal(t, tt.wantSkipped, rec.skipped != "")
			assert.Equal(t, tt.wantFatal, rec.fatal != "")
			if tt.err != nil {
				assert.Equal(t, tt.err.Error(), rec.skipped+rec.fatal)
			}
		})
	}
}

func TestRequireValue(t *testing.T) {
	c := condition.New(condition.Value("ready"), timeout.NewProvider())

	value, err := c.Await(context.Background())
	got := RequireValue(t, value, err)

	assert.Equal(t, "ready", got)
}

package timeout

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvider_Default(t *testing.T) {
	assert.Equal(t, DefaultTimeout, NewProvider().Get())

	var zero Provider
	assert.Equal(t, int64(10000), zero.Get().In(Milliseconds))
}

func TestProvider_Set(t *testing.T) {
	p := NewProvider()

	require.NoError(t, p.Set(3, Minutes))
	assert.Equal(t, MustNew(3, Minutes), p.Get())

	require.NoError(t, p.SetMilliseconds(250))
	assert.Equal(t, MustNew(250, Milliseconds), p.Get())

	err := p.Set(-1, Seconds)
	assert.ErrorIs(t, err, ErrNegativeAmount)
	assert.Equal(t, MustNew(250, Milliseconds), p.Get(), "failed set keeps the previous value")

	err = p.Set(1, 0)
	assert.ErrorIs(t, err, ErrInvalidUnit)

	p.SetTimeout(MustNew(1, Hours))
	assert.Equal(t, MustNew(1, Hours), p.Get())
}

func TestNewProviderWith(t *testing.T) {
	p := NewProviderWith(MustNew(5, Seconds))
	assert.Equal(t, int64(5000), p.Get().In(Milliseconds))
}

func TestProvider_ConcurrentAccess(t *testing.T) {
	p := NewProvider()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(ms int64) {
			defer wg.Done()
			_ = p.SetMilliseconds(ms)
		}(int64(i))
		go func() {
			defer wg.Done()
			got := p.Get()
			assert.True(t, got.Unit().Valid())
		}()
	}
	wg.Wait()

	assert.Equal(t, Milliseconds, p.Get().Unit())
}

// internal/common/camunda/client_test.go
package camunda

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetryWithBackoff(t *testing.T) {
	t.Run("succeeds after transient failures", func(t *testing.T) {
		calls := 0
		err := retryWithBackoff(context.Background(), 3, time.Millisecond, func(int) error {
			calls++
			if calls < 3 {
				return errors.New("unavailable")
			}
			return nil
		})
		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the last attempt", func(t *testing.T) {
		calls := 0
		err := retryWithBackoff(context.Background(), 2, time.Millisecond, func(int) error {
			calls++
			return errors.New("unavailable")
		})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed after 2 attempts")
		assert.Equal(t, 2, calls)
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := retryWithBackoff(ctx, 5, time.Hour, func(int) error {
			return errors.New("unavailable")
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

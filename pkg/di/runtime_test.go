package di_test

import (
	"errors"
	"testing"

	"github.com/chuistack/certstack/pkg/di"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	errHandler = errors.New("handler error")
	errModule  = errors.New("module error")
)

func TestRuntime_Invoke(t *testing.T) {
	t.Parallel()

	t.Run("handler error is returned as is", func(t *testing.T) {
		t.Parallel()

		err := di.New().Invoke(func(di.Injector) error { return errHandler })

		require.ErrorIs(t, err, errHandler)
	})

	t.Run("module error skips handler", func(t *testing.T) {
		t.Parallel()

		err := di.New(func(di.Injector) error { return errModule }).Invoke(func(di.Injector) error {
			t.Fatal("handler must not run")

			return nil
		})

		require.ErrorIs(t, err, errModule)
	})

	t.Run("modules run in order and nil modules are skipped", func(t *testing.T) {
		t.Parallel()

		var order []int

		step := func(n int) di.Module {
			return func(di.Injector) error {
				order = append(order, n)

				return nil
			}
		}

		err := di.New(step(1), nil).Invoke(func(di.Injector) error {
			order = append(order, 4)

			return nil
		}, step(2), nil, step(3))

		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3, 4}, order)
	})

	t.Run("each invocation gets a fresh injector", func(t *testing.T) {
		t.Parallel()

		builds := 0
		runtime := di.New(func(i di.Injector) error {
			do.Provide(i, func(di.Injector) (*int, error) {
				builds++

				return &builds, nil
			})

			return nil
		})

		for range 2 {
			require.NoError(t, runtime.Invoke(func(i di.Injector) error {
				_, err := do.Invoke[*int](i)

				return err
			}))
		}

		assert.Equal(t, 2, builds)
	})
}

func TestRunEWithRuntime(t *testing.T) {
	t.Parallel()

	var received *cobra.Command

	cmd := &cobra.Command{Use: "install"}
	runE := di.RunEWithRuntime(di.New(), func(c *cobra.Command, _ di.Injector) error {
		received = c

		return errHandler
	})

	require.ErrorIs(t, runE(cmd, nil), errHandler)
	assert.Same(t, cmd, received)
}

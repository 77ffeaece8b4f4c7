package v1alpha1_test

import (
	"testing"

	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDNSSolver_Default(t *testing.T) {
	t.Parallel()

	var solver v1alpha1.DNSSolver
	assert.Equal(t, v1alpha1.DNSSolverNone, solver.Default())
}

func TestDNSSolver_ValidValues(t *testing.T) {
	t.Parallel()

	var solver v1alpha1.DNSSolver

	values := solver.ValidValues()
	assert.Contains(t, values, "None")
	assert.Contains(t, values, "CloudFlare")
	assert.Len(t, values, 2)
}

func TestDNSSolver_Set(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected v1alpha1.DNSSolver
		wantErr  bool
	}{
		{name: "exact cloudflare", input: "CloudFlare", expected: v1alpha1.DNSSolverCloudFlare},
		{name: "lowercase cloudflare", input: "cloudflare", expected: v1alpha1.DNSSolverCloudFlare},
		{name: "none", input: "none", expected: v1alpha1.DNSSolverNone},
		{name: "unknown", input: "route53", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var solver v1alpha1.DNSSolver

			err := solver.Set(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, v1alpha1.ErrInvalidDNSSolver)
				assert.Contains(t, err.Error(), "valid options: None, CloudFlare")

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, solver)
		})
	}
}

func TestDNSSolver_StringAndType(t *testing.T) {
	t.Parallel()

	solver := v1alpha1.DNSSolverCloudFlare

	assert.Equal(t, "CloudFlare", solver.String())
	assert.Equal(t, "DNSSolver", solver.Type())
}

func TestDNSSolver_CloudFlareEnabled(t *testing.T) {
	t.Parallel()

	assert.True(t, v1alpha1.DNSSolverCloudFlare.CloudFlareEnabled())
	assert.False(t, v1alpha1.DNSSolverNone.CloudFlareEnabled())
	assert.False(t, v1alpha1.DNSSolver("").CloudFlareEnabled())
}

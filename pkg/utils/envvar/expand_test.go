package envvar_test

import (
	"testing"

	"github.com/chuistack/certstack/pkg/utils/envvar"
	"github.com/stretchr/testify/assert"
)

func TestExpandWith(t *testing.T) {
	t.Parallel()

	env := map[string]string{
		"HOME_DIR": "/home/certstack",
		"EMPTY":    "",
	}
	lookup := func(name string) (string, bool) {
		value, ok := env[name]

		return value, ok
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "empty string", input: "", expected: ""},
		{name: "no placeholders", input: "~/.kube/config", expected: "~/.kube/config"},
		{name: "set variable", input: "${HOME_DIR}/.kube/config", expected: "/home/certstack/.kube/config"},
		{name: "unset variable", input: "${MISSING}/config", expected: "/config"},
		{name: "fallback used", input: "${MISSING:-/etc}/config", expected: "/etc/config"},
		{name: "fallback ignored when set", input: "${HOME_DIR:-/etc}", expected: "/home/certstack"},
		{name: "set but empty wins over fallback", input: "${EMPTY:-x}", expected: ""},
		{name: "bare dollar untouched", input: "$HOME_DIR", expected: "$HOME_DIR"},
		{name: "multiple placeholders", input: "${HOME_DIR}/${MISSING:-secrets}.yaml", expected: "/home/certstack/secrets.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, envvar.ExpandWith(tt.input, lookup))
		})
	}
}

func TestExpand_ReadsEnvironment(t *testing.T) {
	t.Setenv("CERTSTACK_TEST_KUBECONFIG", "/tmp/kubeconfig")

	assert.Equal(t, "/tmp/kubeconfig", envvar.Expand("${CERTSTACK_TEST_KUBECONFIG}"))
}

package issuer

import (
	"github.com/chuistack/certstack/pkg/apis/certstack/v1alpha1"
	"github.com/chuistack/certstack/pkg/svc/graph"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// DNSSolverSecret returns the Secret holding the CloudFlare global API key,
// or nil when no DNS solver is enabled. Scoped API tokens are not supported
// by the pinned cert-manager release.
func DNSSolverSecret(stack *v1alpha1.Stack, creds v1alpha1.Credentials) *corev1.Secret {
	if !stack.Spec.DNSSolver.CloudFlareEnabled() {
		return nil
	}

	return &corev1.Secret{
		TypeMeta: metav1.TypeMeta{APIVersion: "v1", Kind: "Secret"},
		ObjectMeta: metav1.ObjectMeta{
			Name:      v1alpha1.CloudFlareSecretName,
			Namespace: v1alpha1.CertManagerNamespace,
		},
		Type: corev1.SecretTypeOpaque,
		StringData: map[string]string{
			v1alpha1.CloudFlareSecretDataKey: creds.CloudFlareAPIKey,
		},
	}
}

// DNSSolverSecretNode wraps DNSSolverSecret in a graph node that depends on
// dependsOn. It returns nil when no secret is needed.
func DNSSolverSecretNode(
	stack *v1alpha1.Stack,
	creds v1alpha1.Credentials,
	dependsOn ...*graph.Node,
) *graph.Node {
	secret := DNSSolverSecret(stack, creds)
	if secret == nil {
		return nil
	}

	return &graph.Node{
		ID:        graph.NodeID(graph.KindSecret, secret.Namespace, secret.Name),
		Kind:      graph.KindSecret,
		Object:    secret,
		DependsOn: graph.DependsOnNodes(dependsOn...),
	}
}

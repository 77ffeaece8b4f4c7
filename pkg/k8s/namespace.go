package k8s

import (
	"context"
	"fmt"
	"maps"

	corev1 "k8s.io/api/core/v1"
	apierrors "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
)

// EnsureNamespace creates the namespace, or adds any of its labels that are
// missing or different on an existing one. Other labels are left alone.
func EnsureNamespace(
	ctx context.Context,
	clientset kubernetes.Interface,
	desired *corev1.Namespace,
) error {
	namespaces := clientset.CoreV1().Namespaces()

	existing, err := namespaces.Get(ctx, desired.Name, metav1.GetOptions{})
	if err != nil {
		if !apierrors.IsNotFound(err) {
			return fmt.Errorf("get namespace %s: %w", desired.Name, err)
		}

		_, err = namespaces.Create(ctx, desired.DeepCopy(), metav1.CreateOptions{})
		if err == nil {
			return nil
		}

		if !apierrors.IsAlreadyExists(err) {
			return fmt.Errorf("create namespace %s: %w", desired.Name, err)
		}

		// Lost a race with another writer; fall through to reconcile labels.
		existing, err = namespaces.Get(ctx, desired.Name, metav1.GetOptions{})
		if err != nil {
			return fmt.Errorf("get namespace %s: %w", desired.Name, err)
		}
	}

	if hasLabels(existing.Labels, desired.Labels) {
		return nil
	}

	updated := existing.DeepCopy()
	if updated.Labels == nil {
		updated.Labels = make(map[string]string, len(desired.Labels))
	}

	maps.Copy(updated.Labels, desired.Labels)

	_, err = namespaces.Update(ctx, updated, metav1.UpdateOptions{})
	if err != nil {
		return fmt.Errorf("update namespace %s labels: %w", desired.Name, err)
	}

	return nil
}

func hasLabels(actual, want map[string]string) bool {
	for key, value := range want {
		if actual[key] != value {
			return false
		}
	}

	return true
}

package readiness

import (
	"context"
	"fmt"
	"time"

	apiextensionsv1 "k8s.io/apiextensions-apiserver/pkg/apis/apiextensions/v1"
	apiextensionsclient "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

// WaitForCRDEstablished waits until the named CRD exists and reports
// Established=True. A CRD that has not been created yet is polled for, since
// the manifest that creates it may still be propagating.
func WaitForCRDEstablished(
	ctx context.Context,
	client apiextensionsclient.Interface,
	name string,
	deadline time.Duration,
) error {
	err := PollForReadiness(ctx, deadline, crdEstablished(client, name))
	if err != nil {
		return fmt.Errorf("wait for CRD %s: %w", name, err)
	}

	return nil
}

func crdEstablished(
	client apiextensionsclient.Interface,
	name string,
) func(ctx context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		crd, err := client.ApiextensionsV1().CustomResourceDefinitions().Get(ctx, name, metav1.GetOptions{})
		if err != nil {
			// NotFound and transient errors both mean "not yet".
			return false, nil //nolint:nilerr // returning nil to continue polling
		}

		for _, cond := range crd.Status.Conditions {
			if cond.Type == apiextensionsv1.Established && cond.Status == apiextensionsv1.ConditionTrue {
				return true, nil
			}

			if cond.Type == apiextensionsv1.NamesAccepted && cond.Status == apiextensionsv1.ConditionFalse {
				return false, fmt.Errorf("%w: %s", ErrCRDNotEstablished, cond.Message)
			}
		}

		return false, nil
	}
}

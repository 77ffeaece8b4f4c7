package k8s

import (
	"context"
	"encoding/json"
	"fmt"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/client-go/dynamic"
)

// FieldManager is the server-side apply field manager used for every object.
const FieldManager = "certstack"

// ToUnstructured converts a typed object to unstructured form through its
// JSON encoding, so custom MarshalJSON implementations are honoured.
func ToUnstructured(obj any) (*unstructured.Unstructured, error) {
	if u, ok := obj.(*unstructured.Unstructured); ok {
		return u.DeepCopy(), nil
	}

	data, err := json.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("marshal object: %w", err)
	}

	u := &unstructured.Unstructured{}

	err = u.UnmarshalJSON(data)
	if err != nil {
		return nil, fmt.Errorf("unmarshal object: %w", err)
	}

	return u, nil
}

// ServerSideApply applies obj with force, taking ownership of every field it
// sets. Status and managed-fields metadata are stripped before sending.
func ServerSideApply(
	ctx context.Context,
	client dynamic.Interface,
	mapper meta.RESTMapper,
	obj *unstructured.Unstructured,
	fieldManager string,
) (*unstructured.Unstructured, error) {
	gvk := obj.GroupVersionKind()
	if gvk.Kind == "" || gvk.Version == "" || obj.GetName() == "" {
		return nil, fmt.Errorf("%w: %s %q", ErrObjectIncomplete, gvk, obj.GetName())
	}

	mapping, err := mapper.RESTMapping(gvk.GroupKind(), gvk.Version)
	if err != nil {
		return nil, fmt.Errorf("map %s: %w", gvk, err)
	}

	payload := obj.DeepCopy()
	unstructured.RemoveNestedField(payload.Object, "status")
	unstructured.RemoveNestedField(payload.Object, "metadata", "creationTimestamp")
	payload.SetManagedFields(nil)
	payload.SetResourceVersion("")

	var resource dynamic.ResourceInterface = client.Resource(mapping.Resource)
	if mapping.Scope.Name() == meta.RESTScopeNameNamespace {
		namespace := payload.GetNamespace()
		if namespace == "" {
			namespace = metav1.NamespaceDefault
			payload.SetNamespace(namespace)
		}

		resource = client.Resource(mapping.Resource).Namespace(namespace)
	} else {
		payload.SetNamespace("")
	}

	applied, err := resource.Apply(ctx, payload.GetName(), payload, metav1.ApplyOptions{
		FieldManager: fieldManager,
		Force:        true,
	})
	if err != nil {
		return nil, fmt.Errorf("apply %s %s: %w", gvk.Kind, payload.GetName(), err)
	}

	return applied, nil
}

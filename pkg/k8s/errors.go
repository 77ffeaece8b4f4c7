package k8s

import "errors"

// ErrKubeconfigPathEmpty is returned when kubeconfig path is empty.
var ErrKubeconfigPathEmpty = errors.New("kubeconfig path is empty")

// ErrObjectIncomplete is returned when an object to apply lacks apiVersion, kind or name.
var ErrObjectIncomplete = errors.New("object must set apiVersion, kind and metadata.name")

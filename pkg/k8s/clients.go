package k8s

import (
	"fmt"

	apiextensionsclient "k8s.io/apiextensions-apiserver/pkg/client/clientset/clientset"
	"k8s.io/apimachinery/pkg/api/meta"
	"k8s.io/client-go/discovery/cached/memory"
	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/restmapper"
)

// Clients bundles the clients needed to apply a stack.
type Clients struct {
	Kubernetes    kubernetes.Interface
	Dynamic       dynamic.Interface
	APIExtensions apiextensionsclient.Interface

	// Mapper resolves kinds to resources. It is backed by cached discovery and
	// must be reset after new CRDs are applied.
	Mapper meta.ResettableRESTMapper
}

// NewClients builds every client from one kubeconfig and context.
func NewClients(kubeconfig, context string) (*Clients, error) {
	restConfig, err := BuildRESTConfig(kubeconfig, context)
	if err != nil {
		return nil, fmt.Errorf("failed to build rest config: %w", err)
	}

	return NewClientsForConfig(restConfig)
}

// NewClientsForConfig builds every client from a REST config.
func NewClientsForConfig(restConfig *rest.Config) (*Clients, error) {
	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	apiextensions, err := apiextensionsclient.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create apiextensions client: %w", err)
	}

	cached := memory.NewMemCacheClient(clientset.Discovery())

	return &Clients{
		Kubernetes:    clientset,
		Dynamic:       dynamicClient,
		APIExtensions: apiextensions,
		Mapper:        restmapper.NewDeferredDiscoveryRESTMapper(cached),
	}, nil
}

// Package openshift is the cluster orchestration API collaborator of the QE
// suite: it reads the same services, workloads and Istio config objects
// straight from the cluster so their listings can be reconciled against what
// the console UI and the Kiali REST API report, and it creates and deletes
// Istio config fixtures for the CRUD scenarios.
package openshift

import (
	"fmt"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	"k8s.io/klog/v2"
)

// Client wraps the typed and dynamic cluster clients.
type Client struct {
	kube    kubernetes.Interface
	dynamic dynamic.Interface
}

// NewClient builds a Client from the given kubeconfig path, falling back to
// the ambient loading rules (KUBECONFIG, ~/.kube/config, in-cluster) when
// the path is empty.
func NewClient(kubeconfigPath string) (*Client, error) {
	restConfig, err := resolveConfig(kubeconfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve kubeconfig: %w", err)
	}
	kube, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}
	dyn, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}
	return NewClientFor(kube, dyn), nil
}

// NewClientFor builds a Client around existing clientsets. Tests use this
// with the fake implementations.
func NewClientFor(kube kubernetes.Interface, dyn dynamic.Interface) *Client {
	return &Client{kube: kube, dynamic: dyn}
}

func resolveConfig(kubeconfigPath string) (*rest.Config, error) {
	loadingRules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfigPath != "" {
		loadingRules.ExplicitPath = kubeconfigPath
	} else {
		klog.V(2).Info("no kubeconfig configured, using default loading rules")
	}
	return clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, &clientcmd.ConfigOverrides{}).ClientConfig()
}

package kiali

import "context"

// NamespaceList returns the names of all namespaces the console reports.
func (k *Kiali) NamespaceList(ctx context.Context) ([]string, error) {
	var items []namespaceItem
	if _, err := k.getJSON(ctx, NamespacesEndpoint, &items); err != nil {
		return nil, err
	}
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names, nil
}

// namespaceScope expands an empty namespace list to every discoverable
// namespace; every list query goes through this.
func (k *Kiali) namespaceScope(ctx context.Context, namespaces []string) ([]string, error) {
	if len(namespaces) > 0 {
		return namespaces, nil
	}
	return k.NamespaceList(ctx)
}

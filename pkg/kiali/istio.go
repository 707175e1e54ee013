package kiali

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/kiali/kiali-qe-go/pkg/entity"
	"github.com/kiali/kiali-qe-go/pkg/filter"
)

// IstioConfigList returns the Istio config entries matching the given
// filters. Namespace filters scope the listing; Istio Name and Istio Type
// filters narrow it with the console's AND-across-kind, OR-within-kind
// semantics. Every validated category carries the verdict of its dedicated
// validation endpoint; Rule, Adapter and Template entries stay N/A.
func (k *Kiali) IstioConfigList(ctx context.Context, filters []filter.Filter) ([]*entity.IstioConfig, error) {
	scope, err := k.namespaceScope(ctx, filter.Values(filters, filter.Namespace))
	if err != nil {
		return nil, err
	}
	var items []*entity.IstioConfig
	for _, namespace := range scope {
		var doc istioConfigDoc
		if _, err := k.getJSON(ctx, fmt.Sprintf(IstioConfigEndpoint, url.PathEscape(namespace)), &doc); err != nil {
			return nil, err
		}
		normalized, err := k.normalizeIstioConfig(ctx, namespace, doc)
		if err != nil {
			return nil, err
		}
		items = append(items, normalized...)
	}

	var narrowing []filter.Filter
	for _, f := range filters {
		if f.Name != filter.Namespace {
			narrowing = append(narrowing, f)
		}
	}
	return filter.Apply(items, narrowing, filter.MatchIstioConfig), nil
}

// normalizeIstioConfig maps one namespace's config envelope into entities.
// An empty category yields zero entities, never an error.
func (k *Kiali) normalizeIstioConfig(ctx context.Context, namespace string, doc istioConfigDoc) ([]*entity.IstioConfig, error) {
	var items []*entity.IstioConfig

	appendValidated := func(objectType entity.ObjectType, plural string, configs []configItem) error {
		for _, item := range configs {
			validation, err := k.ConfigValidation(ctx, namespace, plural, item.Metadata.Name)
			if err != nil {
				return err
			}
			items = append(items, &entity.IstioConfig{
				Namespace:  namespace,
				Name:       item.Metadata.Name,
				ObjectType: objectType,
				Validation: validation,
			})
		}
		return nil
	}

	if err := appendValidated(entity.ObjectDestinationRule, "destinationrules", doc.DestinationRules.Items); err != nil {
		return nil, err
	}
	for _, item := range doc.Rules {
		items = append(items, entity.NewRule(namespace, item.Metadata.Name, entity.ObjectRule))
	}
	for _, item := range doc.Adapters {
		items = append(items, entity.NewRule(namespace, item.Metadata.Name, entity.ObjectAdapter.WithSubKind(item.Adapter)))
	}
	for _, item := range doc.Templates {
		items = append(items, entity.NewRule(namespace, item.Metadata.Name, entity.ObjectTemplate.WithSubKind(item.Template)))
	}
	if err := appendValidated(entity.ObjectVirtualService, "virtualservices", doc.VirtualServices.Items); err != nil {
		return nil, err
	}
	if err := appendValidated(entity.ObjectQuotaSpec, "quotaspecs", doc.QuotaSpecs); err != nil {
		return nil, err
	}
	if err := appendValidated(entity.ObjectQuotaSpecBinding, "quotaspecbindings", doc.QuotaSpecBindings); err != nil {
		return nil, err
	}
	if err := appendValidated(entity.ObjectGateway, "gateways", doc.Gateways); err != nil {
		return nil, err
	}
	if err := appendValidated(entity.ObjectServiceEntry, "serviceentries", doc.ServiceEntries); err != nil {
		return nil, err
	}
	return items, nil
}

// IstioConfigDetails returns the detail view of one config object, or nil
// when the console has no such object. objectType is the plural resource
// name as the API paths use it ("virtualservices", "destinationrules", ...).
func (k *Kiali) IstioConfigDetails(ctx context.Context, namespace, objectType, name string) (*entity.IstioConfigDetails, error) {
	doc, found, err := k.configDetails(ctx, namespace, objectType, name)
	if err != nil || !found {
		return nil, err
	}
	raw := doc.configData()
	if raw == nil {
		return nil, nil
	}
	var item configItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("failed to decode config details: %w", err)
	}
	details := &entity.IstioConfigDetails{
		Name:       item.Metadata.Name,
		ObjectType: doc.ObjectType,
		Text:       string(raw),
		Validation: entity.ValidationNA,
	}
	if doc.Validation != nil {
		details.Validation = checksVerdict(doc.Validation.Checks)
		details.ErrorMessages = entity.CheckMessages(doc.Validation.Checks)
	}
	return details, nil
}

// ConfigValidation returns the validation verdict of one config object.
// No validation document means N/A; a document with no findings is Valid.
func (k *Kiali) ConfigValidation(ctx context.Context, namespace, objectType, name string) (entity.ConfigValidation, error) {
	doc, found, err := k.configDetails(ctx, namespace, objectType, name)
	if err != nil {
		return "", err
	}
	if !found || doc.Validation == nil {
		return entity.ValidationNA, nil
	}
	return checksVerdict(doc.Validation.Checks), nil
}

// ConfigValidationMessages returns the validation finding messages of one
// config object, empty when it validates cleanly.
func (k *Kiali) ConfigValidationMessages(ctx context.Context, namespace, objectType, name string) ([]string, error) {
	doc, found, err := k.configDetails(ctx, namespace, objectType, name)
	if err != nil {
		return nil, err
	}
	if !found || doc.Validation == nil {
		return nil, nil
	}
	return entity.CheckMessages(doc.Validation.Checks), nil
}

func (k *Kiali) configDetails(ctx context.Context, namespace, objectType, name string) (*istioConfigDetailsDoc, bool, error) {
	var doc istioConfigDetailsDoc
	endpoint := fmt.Sprintf(IstioConfigDetailsEndpoint,
		url.PathEscape(namespace), url.PathEscape(objectType), url.PathEscape(name)) + "?validate=true"
	found, err := k.getJSON(ctx, endpoint, &doc)
	if err != nil {
		return nil, false, err
	}
	return &doc, found, nil
}

// checksVerdict maps the checks of a present validation document to a
// verdict: no findings is Valid, otherwise the severity priority of
// entity.ValidationFromChecks applies.
func checksVerdict(checks []entity.Check) entity.ConfigValidation {
	if len(checks) == 0 {
		return entity.ValidationValid
	}
	return entity.ValidationFromChecks(checks)
}

// configData returns the populated category of the detail document.
func (doc *istioConfigDetailsDoc) configData() json.RawMessage {
	for _, raw := range []json.RawMessage{
		doc.DestinationRule,
		doc.Rule,
		doc.VirtualService,
		doc.QuotaSpec,
		doc.QuotaSpecBinding,
		doc.Gateway,
		doc.ServiceEntry,
	} {
		if len(raw) > 0 && string(raw) != "null" {
			return raw
		}
	}
	return nil
}

package entity

// IstioConfig is one row of the Istio config listing. Rule, Adapter and
// Template entries carry no validation verdict (the validation endpoint does
// not cover them), so their Validation stays N/A.
type IstioConfig struct {
	Namespace  string
	Name       string
	ObjectType ObjectType
	Validation ConfigValidation
}

// NewRule builds a Rule-family config entry. Adapter and Template sub-kinds
// are encoded into the object type via ObjectType.WithSubKind.
func NewRule(namespace, name string, objectType ObjectType) *IstioConfig {
	return &IstioConfig{
		Namespace:  namespace,
		Name:       name,
		ObjectType: objectType,
		Validation: ValidationNA,
	}
}

// Key includes the full object type string: two configs with the same name
// but different adapter sub-kinds are distinct entities.
func (c *IstioConfig) Key() string {
	return c.Namespace + "/" + string(c.ObjectType) + "/" + c.Name
}

// IsEqual compares two config entries. The basic check covers namespace,
// name and the (composite) object type; the advanced check adds the
// validation verdict.
func (c *IstioConfig) IsEqual(other *IstioConfig, advancedCheck bool) bool {
	if other == nil {
		return false
	}
	if c.Namespace != other.Namespace || c.Name != other.Name {
		return false
	}
	if c.ObjectType != other.ObjectType {
		return false
	}
	if advancedCheck && c.Validation != other.Validation {
		return false
	}
	return true
}

// IstioConfigDetails is the config detail view: the raw object document plus
// its validation verdict and the validation error messages.
type IstioConfigDetails struct {
	Name          string
	ObjectType    string
	Text          string
	Validation    ConfigValidation
	ErrorMessages []string
}

func (d *IstioConfigDetails) IsEqual(other *IstioConfigDetails, advancedCheck bool) bool {
	if other == nil {
		return false
	}
	if d.Name != other.Name || d.ObjectType != other.ObjectType {
		return false
	}
	if !advancedCheck {
		return true
	}
	return d.Validation == other.Validation &&
		stringsEqual(d.ErrorMessages, other.ErrorMessages)
}

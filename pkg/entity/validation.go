package entity

// Check is one severity-tagged finding from the validation endpoint.
type Check struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// ValidationFromChecks reduces a checks array to a single verdict. Severity
// is a strict priority: any error makes the object Not Valid regardless of
// how many other findings are present, any remaining finding makes it a
// Warning. An empty or absent array yields N/A; the Valid verdict is only
// reachable from the normalizer, which knows whether a validation document
// existed at all.
func ValidationFromChecks(checks []Check) ConfigValidation {
	if len(checks) == 0 {
		return ValidationNA
	}
	for _, check := range checks {
		if check.Severity == "error" {
			return ValidationNotValid
		}
	}
	return ValidationWarning
}

// CheckMessages returns the messages of all checks in order.
func CheckMessages(checks []Check) []string {
	messages := make([]string, 0, len(checks))
	for _, check := range checks {
		messages = append(messages, check.Message)
	}
	return messages
}

package errors

import "sort"

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Schema Errors (S001-S099)
	// ============================================

	"S001": {
		Category: CategorySchema,
		Message:  "Invalid schema description",
		Detail:   "A schema description must be nil, a rule list, a rule, a mapping of fields, or a mapping with name/schema/isArray/isDict/rules/item keys.",
	},
	"S002": {
		Category: CategorySchema,
		Message:  "Conflicting collection kinds",
		Detail:   "A schema node cannot be both an array and a dict.",
	},
	"S003": {
		Category: CategorySchema,
		Message:  "Invalid rule",
		Detail:   "Rules must be Go rule functions, schema.Rule values, or expression strings.",
	},
	"S004": {
		Category: CategorySchema,
		Message:  "Rule expression failed to compile",
		Detail:   "The expression could not be compiled. Expressions see `value` (the node's current value) and `root` (the whole document) and must evaluate to a boolean.",
	},
	"S005": {
		Category: CategorySchema,
		Message:  "Schema document could not be parsed",
		Detail:   "The schema file is not valid YAML or JSON.",
	},

	// ============================================
	// Validation Errors (S100-S199)
	// ============================================

	"S100": {
		Category: CategoryValidation,
		Message:  "Value does not satisfy schema",
		Detail:   "One or more rules rejected the current value. Use Errors() to list every failing rule.",
	},
	"S101": {
		Category: CategoryValidation,
		Message:  "Rule rejected value",
		Detail:   "A single schema rule returned false for the value at this path.",
	},
	"S102": {
		Category: CategoryValidation,
		Message:  "Rule expression failed at runtime",
		Detail:   "The rule expression raised an error while evaluating; the value is treated as invalid.",
	},

	// ============================================
	// Runtime Errors (S200-S299)
	// ============================================

	"S200": {
		Category: CategoryRuntime,
		Message:  "Unknown helper",
		Detail:   "No helper with this name was registered for the node's kind. Register helpers with shadow.WithHelper when constructing the shadow value.",
	},
	"S201": {
		Category: CategoryRuntime,
		Message:  "Flush pass limit exceeded",
		Detail:   "Computations kept invalidating each other during a flush. This usually means a computation writes a value it also reads.",
	},
	"S202": {
		Category: CategoryRuntime,
		Message:  "Decode failed",
		Detail:   "The shadow value could not be decoded into the target Go value.",
	},

	// ============================================
	// Config Errors (S300-S399)
	// ============================================

	"S300": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No shadowctl.json was found in the directory or any parent.",
	},
	"S301": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "The configuration file contains invalid JSON.",
	},
	"S302": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A configuration field holds an unsupported value.",
	},

	// ============================================
	// CLI Errors (S400-S499)
	// ============================================

	"S400": {
		Category: CategoryCLI,
		Message:  "Missing schema",
		Detail:   "A schema file is required. Pass --schema or set \"schema\" in shadowctl.json.",
	},
	"S401": {
		Category: CategoryCLI,
		Message:  "Document could not be read",
		Detail:   "The input document is not valid JSON or YAML.",
	},
	"S402": {
		Category: CategoryCLI,
		Message:  "Patch could not be applied",
		Detail:   "The patch is not a valid RFC 6902 JSON patch or JSON merge patch for this document.",
	},
}

// GetAllCodes returns all registered error codes in sorted order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}

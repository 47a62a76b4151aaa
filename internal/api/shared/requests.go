package shared

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Single validator shared by every handler. The instance caches struct
// metadata, so reuse matters.
var validate = validator.New()

// DecodeJSON decodes the request body into v. Unknown fields are rejected
// so that typos in client payloads surface as 400s instead of silently
// falling back to zero values.
func DecodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// ValidateRequest validates a decoded request struct. Types that carry
// their own Validate method take precedence over struct tags.
func ValidateRequest(v interface{}) error {
	if validator, ok := v.(interface{ Validate() error }); ok {
		return validator.Validate()
	}
	return validate.Struct(v)
}

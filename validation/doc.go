// Package validation provides input validation for request and config types.
//
// Struct tag validation uses go-playground/validator with JSON field names,
// so errors name fields the way clients spell them:
//
//	type Request struct {
//	    Language string `json:"language" validate:"required,oneof=Tamil English"`
//	}
//	err := validation.Validate(req) // *errors.AppError naming "language"
//
// Programmatic validation collects errors for checks that tags cannot express:
//
//	v := validation.New()
//	v.Required("api_key", cfg.APIKey).Min("server.port", cfg.Port, 1)
//	err := v.Err()
package validation

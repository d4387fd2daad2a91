// Package validation validates configuration structs through
// go-playground/validator struct tags.
//
//	type DivideConfig struct {
//	    Threshold int    `validate:"gte=1"`
//	    Strategy  string `validate:"oneof=equal dynamic"`
//	}
//	err := validation.Struct(cfg)
//
// Failures are returned as INVALID_CONFIG errors whose details list every
// offending field by its snake_case name.
package validation

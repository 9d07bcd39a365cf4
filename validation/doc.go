// Package validation validates config and algorithm structs against their
// `validate:"..."` struct tags, using github.com/go-playground/validator/v10.
//
//	type CreateUserCmd struct {
//	    Name  string `validate:"required,min=2"`
//	    Email string `validate:"required,email"`
//	}
//	err := validation.Validate(cmd)
package validation

// Package validation provides struct-tag validation backed by
// go-playground/validator. It is used for configuration structs and
// stage registry metadata rows.
package validation

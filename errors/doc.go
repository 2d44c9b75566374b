// Package errors provides the unified error type for pipeline
// classification, plan synthesis, and plan execution failures.
package errors

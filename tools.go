//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// - github.com/matryer/moq (mock generation, see the go:generate lines in service and transport tests)
// - github.com/pressly/goose/v3/cmd/goose (declared with the go.mod tool directive)

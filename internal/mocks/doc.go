// Package mocks contains testify mocks for the store and verifier interfaces in model.
package mocks

// Package errs define custom error types and utilities.
//
// Its purpose is to give every failure that reaches a client the same
// shape, `{ "error": { "message": "..." } }`, together with the HTTP status
// it should be sent with.
package errs

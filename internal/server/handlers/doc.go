// Package handlers provides the infrastructure HTTP handlers
// (health, debug and version).
//
// None of the handlers report credential values; /debug only says whether
// each secret is configured.
package handlers

// Package schema declares the request and response payloads of the API.
//
// Requests are decoded with Bind, which validates struct tags through a
// shared go-playground validator. Field errors are keyed by JSON name.
// Responses are plain structs built from the models with the From*
// helpers.
package schema

// Package dto holds the JSON shapes returned by the catalog providers.
//
// Only the fields this service actually reads are declared; both
// providers return far more. Nothing in here is interpreted beyond
// decoding — the selection and expansion layers consume these structs
// as-is.
package dto

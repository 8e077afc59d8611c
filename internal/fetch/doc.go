// Package fetch issues JSON requests and normalizes every outcome into a Result.
//
// Transport errors, non-2xx responses and undecodable bodies never escape as
// panics or bare errors: each becomes a failure Result whose message is meant
// to be shown to users as-is. The error behind it is an *apperr.Error, so
// callers that care can still tell the kinds apart with errors.Is.
package fetch

// Package validator implements rule-based request validation for the auth
// boundary. Rules are plain values combining a predicate with the field
// error to record when it fails; Apply runs a rule set and returns
// ValidationErrors carrying every failure at once so forms can surface all
// problems in a single response.
package validator

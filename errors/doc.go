/*
Package errors implements custom error interfaces for almoner.

The idea is to reuse as many errors from this package as possible and define
custom package errors only when necessary. Errors are categorized by a root
error. Each instance created during runtime wraps one of the registered root
errors, which allows error tests (Is) and returning errors to the client in
a safe manner, with a stable numeric code per category.

Use Wrap and Wrapf to add context to an error while preserving its category
and the stack trace of the original failure.
*/
package errors

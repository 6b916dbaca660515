/*
Package x contains interfaces shared by the extensions, so they can
interoperate without hard-coding each other's implementations.

You should not import this package directly unless you are writing an
extension.
*/
package x

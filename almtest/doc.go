/*
Package almtest provides mocks and helpers for testing handlers and
decorators without pulling in a whole application.
*/
package almtest

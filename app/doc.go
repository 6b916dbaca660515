/*
Package app glues the pieces into a runnable state machine: a router
dispatching messages to handlers, a decorator chain for the common
functionality, genesis initialization and the query dispatch. Every
transaction executes on its own cache-wrap, so a failing handler leaves
no trace in the state.
*/
package app

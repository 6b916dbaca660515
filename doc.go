/*
Package almoner defines the common interfaces that tie together the
subpackages of the almoner application: an admin registry that splits
donations equally between its members.

The root package holds only contracts and the simplest shared value types
(addresses, conditions, time). Storage implementations live in store,
error handling in errors, the contract logic in x/admins and the execution
harness in app.

We pass context through context.Context between the harness, decorators and
handlers. The root package defines keys for framework information such as
the block time. Extensions may add their own keys to enrich the context
with specific data.
*/
package almoner

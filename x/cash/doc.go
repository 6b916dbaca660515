/*
Package cash keeps track of coins owned by addresses and moves value
between them.

It stands in for the host's native value-transfer primitive: handlers
request transfers through the Controller and, because all movement happens
on the same cache-wrapped store as the rest of the call, transfers commit
or roll back atomically with it.
*/
package cash

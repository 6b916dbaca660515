/*
Package admins implements the admin registry: a set of member addresses,
each remembered with the time it joined, and a single configured donation
currency.

Members are registered during genesis initialization (or later, by an
existing member, through AddMembersMsg) and may leave at any time. Anyone
can donate: the attached payment is split equally between all current
members, in ascending address order, and whatever cannot be split evenly
remains on the registry's pool account.

Duplicate addresses in the genesis list are processed independently, the
last write wins. All of them carry the same join time anyway, as genesis
is a single initializing transaction.
*/
package admins

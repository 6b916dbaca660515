package almoner

import (
	"fmt"
)

// Tag is a single human readable attribute attached to a delivery result.
// Tags describe what a handler did, eg. action=donate.
type Tag struct {
	Key   string
	Value string
}

// NewTag is a shorthand to create a tag.
func NewTag(key, value string) Tag {
	return Tag{Key: key, Value: value}
}

// CheckResult captures any non-error result of a transaction dry-run,
// to make sure people use error for error cases.
type CheckResult struct {
	// Data is a machine-parseable return value, like id of created entity.
	Data []byte
	// Log is human-readable informational string.
	Log string
	// GasAllocated is the maximum units of work we allow this tx to perform.
	GasAllocated int64
}

// NewCheck sets the gas used and the log message, the most common info
// needed to be set by the Handler.
func NewCheck(gasAllocated int64, log string) *CheckResult {
	return &CheckResult{
		GasAllocated: gasAllocated,
		Log:          log,
	}
}

// DeliverResult captures any non-error result of a transaction execution,
// to make sure people use error for error cases.
type DeliverResult struct {
	// Data is a machine-parseable return value, like id of created entity.
	Data []byte
	// Log is human-readable informational string.
	Log string
	// Tags carry the observable attributes of the execution, used to index
	// and search the transaction history.
	Tags []Tag
	// GasUsed is the units of work performed by this transaction.
	GasUsed int64
}

// AddTag appends a single attribute to the result and returns it for
// chained construction.
func (d *DeliverResult) AddTag(key, value string) *DeliverResult {
	d.Tags = append(d.Tags, NewTag(key, value))
	return d
}

// GetTag returns the value stored under the given attribute key, or false
// when the attribute was not set.
func (d *DeliverResult) GetTag(key string) (string, bool) {
	for _, t := range d.Tags {
		if t.Key == key {
			return t.Value, true
		}
	}
	return "", false
}

func (d *DeliverResult) String() string {
	return fmt.Sprintf("DeliverResult{tags=%v, log=%q}", d.Tags, d.Log)
}

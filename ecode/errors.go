package ecode

import (
	"fmt"
)

const (
	notExistMsg = "does not exist"
	failedToMsg = "Failed to"
	invalidMsg  = "Invalid"
)

// NotExist returns not exist message, e.g. "task does not exist".
func NotExist(k ...string) string {
	if len(k) > 0 {
		return fmt.Sprintf("%s %s", k[0], notExistMsg)
	}
	return notExistMsg
}

// FailedTo returns the message sent with unexpected server errors, e.g. "Failed to create task".
func FailedTo(action string) string {
	if action == "" {
		return Text(ServerErr)
	}
	return fmt.Sprintf("%s %s", failedToMsg, action)
}

// Invalid returns invalid message, e.g. "Invalid request body".
func Invalid(k string) string {
	return fmt.Sprintf("%s %s", invalidMsg, k)
}

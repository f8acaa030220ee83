package testutil

import (
	"fmt"
	"strings"
)

// NewTestDSN generates a DSN for an in-memory SQLite database for testing purposes.
// Foreign keys are switched on for every pooled connection.
func NewTestDSN(testName string) string {
	name := strings.ReplaceAll(testName, "/", "_")
	return fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
}

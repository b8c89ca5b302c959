package utils

import (
	"os"
	"os/user"
)

// Operator identifies who ran scrub and where.
type Operator struct {
	User string
	Host string
}

// CurrentOperator returns the user and host running this process. Lookups are
// best-effort: the user falls back to $USER when there is no passwd entry, as
// in many containers, and either field may be empty.
func CurrentOperator() Operator {
	var op Operator
	if u, err := user.Current(); err == nil && u.Username != "" {
		op.User = u.Username
	} else {
		op.User = os.Getenv("USER")
	}
	if hostname, err := os.Hostname(); err == nil {
		op.Host = hostname
	}
	return op
}

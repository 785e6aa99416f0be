package deployment

import "strings"

type Action string

const (
	Update   Action = "update"
	Rollback Action = "rollback"
)

// ParseAction maps the interactive action choice to an Action. Unknown
// choices fall back to Update and report false so the caller can warn.
func ParseAction(input string) (Action, bool) {
	switch strings.TrimSpace(input) {
	case "", "0":
		return Update, true
	case "1":
		return Rollback, true
	default:
		return Update, false
	}
}

func (a Action) String() string {
	return string(a)
}

package auth

import "fmt"

// A Role determines which kind of account a user has. It is assigned at
// registration and is immutable afterwards.
type Role string

const (
	Reader     Role = "reader"
	Editor     Role = "editor"
	Journalist Role = "journalist"
)

func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case Reader:
		return Reader, nil
	case Editor:
		return Editor, nil
	case Journalist:
		return Journalist, nil
	}
	return "", fmt.Errorf("unknown role: %s", s)
}

func (r Role) String() string {
	return string(r)
}

func (r Role) Valid() bool {
	switch r {
	case Reader, Editor, Journalist:
		return true
	default:
		return false
	}
}

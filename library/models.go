package library

import "fmt"

// Status is the lending state of a book.
type Status int

const (
	StatusAvailable Status = iota
	StatusIssued
)

func (s Status) String() string {
	switch s {
	case StatusAvailable:
		return "Available"
	case StatusIssued:
		return "Issued"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ParseStatus maps the stored text form back to a Status.
func ParseStatus(s string) (Status, error) {
	switch s {
	case "Available":
		return StatusAvailable, nil
	case "Issued":
		return StatusIssued, nil
	}
	return 0, fmt.Errorf("unknown book status %q", s)
}

// Book represents a catalog entry and its current lending state.
type Book struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
	Status Status `json:"status"`
}

// Action is the kind of circulation change a Transaction records.
type Action int

const (
	ActionIssue Action = iota
	ActionReturn
)

func (a Action) String() string {
	switch a {
	case ActionIssue:
		return "issue"
	case ActionReturn:
		return "return"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Transaction records one successful issue or return so it can be undone.
type Transaction struct {
	BookID int64  `json:"book_id"`
	Action Action `json:"action"`
}

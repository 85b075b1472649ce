package publish

import "fmt"

// Status is the application's editorial workflow state.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusPending Status = "pending"
	StatusPublish Status = "publish"

	// statusPublishedAlias is a legacy spelling still sent by older clients.
	statusPublishedAlias Status = "published"
)

// UnknownStatusError reports an editorial status outside the closed set.
// Reaching it means a caller bypassed the DTO contract.
type UnknownStatusError struct {
	Status Status
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown editorial status %q", string(e.Status))
}

// MapStatus translates the editorial status into the upstream CMS's status
// vocabulary. The mapping is total over the closed set and fails loudly for
// anything else.
func MapStatus(s Status) (string, error) {
	switch s {
	case StatusDraft:
		return "draft", nil
	case StatusPending:
		return "pending", nil
	case StatusPublish, statusPublishedAlias:
		return "publish", nil
	default:
		return "", &UnknownStatusError{Status: s}
	}
}

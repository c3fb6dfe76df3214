package models

// Participant identifies one party in a split. It is either Self (the
// authenticated acting user) or the ID of a friend record. Participants
// are compared as opaque identifiers; resolving them to display names is
// a presentation concern.
type Participant string

// Self is the participant identifier for the acting user.
const Self Participant = "self"

// IsSelf reports whether the participant is the acting user.
func (p Participant) IsSelf() bool {
	return p == Self
}

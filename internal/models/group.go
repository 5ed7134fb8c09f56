package models

// Group represents a circle of users who share expenses.
//
// Membership is append-only: members can be added but never removed, because
// past expenses and payments keep referencing them. Every payer, participant,
// or payee on a record belonging to this group must appear in Members.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// Members is the ordered list of member user IDs.
	Members []string

	// CreatedBy is the user ID that created the group.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether userID is a member of the group.
func (g *Group) HasMember(userID string) bool {
	for _, m := range g.Members {
		if m == userID {
			return true
		}
	}
	return false
}

package session

// Record is the server-side snapshot of an authenticated user, stored in the
// cache keyed by the subject identifier. A record exists iff the subject has
// a live, server-acknowledged session; it is always replaced wholesale,
// never partially updated.
type Record struct {
	UserID string

	Name  string
	Email string
	Role  string

	Verified  bool
	AvatarID  string
	AvatarURL string

	CreatedAt int64
	ExpiresAt int64
}

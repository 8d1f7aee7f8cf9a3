package friend

// Friendship links two users. Rows are stored mutually: adding a friend
// inserts both directions in one transaction, so either side's listing query
// only ever filters on user_id.
type Friendship struct {
	UserID    string `json:"user_id"`
	FriendID  string `json:"friend_id"`
	CreatedAt int64  `json:"created_at"`

	// Populated from JOIN
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
}

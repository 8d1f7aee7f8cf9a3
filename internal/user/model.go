package user

// User represents a user in the system
type User struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	UPIID     *string `json:"upi_id,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	CreatedAt int64   `json:"created_at"`
}

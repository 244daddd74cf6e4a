package api

// Member roles as reported by the conversations endpoint.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// User is an identity known to the accounts endpoint.
type User struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Chat is a direct or group conversation visible to an identity.
type Chat struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	IsGroup         bool   `json:"is_group"`
	AvatarURL       string `json:"avatar_url,omitempty"`
	CreatedAt       string `json:"created_at,omitempty"`
	LastMessage     string `json:"last_message,omitempty"`
	LastMessageTime string `json:"last_message_time,omitempty"`
}

// ChatSettings holds group-wide write permission settings.
type ChatSettings struct {
	MembersCanWrite bool `json:"members_can_write"`
}

// Message belongs to exactly one conversation. Immutable once created.
type Message struct {
	ID        int64  `json:"id"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Member pairs an identity with a conversation, carrying its role and
// write permission.
type Member struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Role      string `json:"role"`
	CanWrite  bool   `json:"can_write"`
}

// AuthResult is the accounts endpoint response to login and register.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

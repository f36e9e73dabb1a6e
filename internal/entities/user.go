package entities

// Roles assigned at registration or by admin action. A user's role never
// changes after creation; the bootstrap admin is matched by telegram id.
const (
	RoleWorker     = "worker"
	RoleTeamLeader = "team_leader"
	RoleAdmin      = "admin"
)

type User struct {
	ID         int64  `json:"id"`
	TelegramID int64  `json:"telegram_id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	TeamID     *int64 `json:"team_id,omitempty"`   // nil for leads/admins without a team
	Direction  string `json:"direction,omitempty"` // empty until picked in settings
}

// IsPrivileged reports whether the user can see team-level views.
func (u *User) IsPrivileged() bool {
	return u.Role == RoleTeamLeader || u.Role == RoleAdmin
}

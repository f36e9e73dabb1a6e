package entities

type Team struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	LeaderID *int64 `json:"leader_id,omitempty"` // user id of the team_leader, nil until assigned
}

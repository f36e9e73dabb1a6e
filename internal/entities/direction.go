package entities

// Direction is a trading venue/category. The table doubles as the "bots"
// catalog shown to users and as the enumerated set of valid direction
// values for users and profit entries.
type Direction struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Link        string `json:"link,omitempty"`
}

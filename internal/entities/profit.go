package entities

// DateLayout is the storage format for profit dates. Day granularity only;
// lexical order of this layout matches chronological order, which the
// period queries rely on.
const DateLayout = "2006-01-02"

// ProfitEntry is append-only: there is no update or delete path.
type ProfitEntry struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	Direction string  `json:"direction"`
	Amount    float64 `json:"amount"` // signed; debits are negative
	Date      string  `json:"date"`   // DateLayout
	Comment   string  `json:"comment,omitempty"`
}

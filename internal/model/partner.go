package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// PartnerID accepts either a JSON string or a JSON number and normalizes it
// to its string form. Partner documents in the wild carry both.
type PartnerID string

func (id *PartnerID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("unmarshal partner id: %w", err)
		}
		*id = PartnerID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("partner id must be a string or number")
	}
	*id = PartnerID(n.String())
	return nil
}

// MarshalJSON re-renders numeric ids without quotes so a partner created
// with a number id echoes back the same way.
func (id PartnerID) MarshalJSON() ([]byte, error) {
	s := string(id)
	if s != "" && (s[0] == '-' || (s[0] >= '0' && s[0] <= '9')) && json.Valid([]byte(s)) {
		return []byte(s), nil
	}
	return json.Marshal(s)
}

func (id PartnerID) String() string {
	return string(id)
}

type Partner struct {
	ID           PartnerID       `json:"id" db:"id"`
	TradingName  string          `json:"tradingName" db:"trading_name"`
	OwnerName    string          `json:"ownerName" db:"owner_name"`
	Document     string          `json:"document" db:"document"`
	CoverageArea json.RawMessage `json:"coverageArea" db:"coverage_area"`
	Address      json.RawMessage `json:"address" db:"address"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at" db:"updated_at"`
}

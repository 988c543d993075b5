package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartnerID_UnmarshalString(t *testing.T) {
	var id PartnerID
	err := json.Unmarshal([]byte(`"adega-osasco"`), &id)
	require.NoError(t, err)
	assert.Equal(t, PartnerID("adega-osasco"), id)
}

func TestPartnerID_UnmarshalNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want PartnerID
	}{
		{"integer", `1`, "1"},
		{"large integer", `9007199254740993`, "9007199254740993"},
		{"decimal", `2.5`, "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id PartnerID
			err := json.Unmarshal([]byte(tt.in), &id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestPartnerID_UnmarshalNull(t *testing.T) {
	var id PartnerID
	err := json.Unmarshal([]byte(`null`), &id)
	require.NoError(t, err)
	assert.Equal(t, PartnerID(""), id)
}

func TestPartnerID_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		id   PartnerID
		want string
	}{
		{"string id stays quoted", "adega-osasco", `"adega-osasco"`},
		{"integer id unquoted", "1", `1`},
		{"large integer id unquoted", "9007199254740993", `9007199254740993`},
		{"decimal id unquoted", "2.5", `2.5`},
		{"negative id unquoted", "-3", `-3`},
		{"leading zero stays quoted", "007", `"007"`},
		{"empty id", "", `""`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := json.Marshal(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestPartnerID_NumberRoundTrip(t *testing.T) {
	var p Partner
	require.NoError(t, json.Unmarshal([]byte(`{"id": 1, "tradingName": "Adega"}`), &p))

	out, err := json.Marshal(p)
	require.NoError(t, err)

	var echoed map[string]any
	require.NoError(t, json.Unmarshal(out, &echoed))
	assert.Equal(t, float64(1), echoed["id"], "number ids re-render without quotes")
}

func TestPartnerID_UnmarshalInvalid(t *testing.T) {
	for _, in := range []string{`{}`, `[1]`, `true`} {
		var id PartnerID
		err := json.Unmarshal([]byte(in), &id)
		assert.Error(t, err, "input %s", in)
	}
}

func TestPartner_UnmarshalDocument(t *testing.T) {
	doc := `{
		"id": 1,
		"tradingName": "Adega da Cerveja - Pinheiros",
		"ownerName": "Zé da Silva",
		"document": "1432132123891/0001",
		"coverageArea": {"type": "MultiPolygon", "coordinates": [[[[30, 20], [45, 40], [10, 40], [30, 20]]]]},
		"address": {"type": "Point", "coordinates": [-46.57421, -21.785741]}
	}`

	var p Partner
	err := json.Unmarshal([]byte(doc), &p)
	require.NoError(t, err)
	assert.Equal(t, PartnerID("1"), p.ID)
	assert.Equal(t, "Adega da Cerveja - Pinheiros", p.TradingName)
	assert.Equal(t, "Zé da Silva", p.OwnerName)
	assert.Equal(t, "1432132123891/0001", p.Document)
	assert.JSONEq(t, `{"type": "Point", "coordinates": [-46.57421, -21.785741]}`, string(p.Address))
}

package graph

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseWeight(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want float64
	}{
		{"missing", nil, 1.0},
		{"float", 2.5, 2.5},
		{"int", 7, 7},
		{"zero kept", 0.0, 0},
		{"negative coerced", -3.0, 1.0},
		{"NaN coerced", math.NaN(), 1.0},
		{"infinity coerced", math.Inf(1), 1.0},
		{"numeric string", " 4.5 ", 4.5},
		{"garbage string", "heavy", 1.0},
		{"json number", json.Number("3"), 3},
		{"bool is not numeric", true, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseWeight(tt.raw))
		})
	}
}

func TestParseSign(t *testing.T) {
	tests := []struct {
		name   string
		sign   any
		weight any
		want   Sign
	}{
		{"default positive", nil, nil, Positive},
		{"explicit -1", -1, nil, Negative},
		{"explicit +1 overrides negative weight", 1, -5.0, Positive},
		{"string minus", "-", nil, Negative},
		{"string negative", "Negative", nil, Negative},
		{"string plus", "+1", nil, Positive},
		{"bool false", false, nil, Negative},
		{"zero sign falls back to weight", 0, -2.0, Negative},
		{"unreadable sign falls back to weight", "maybe", -2.0, Negative},
		{"weight sign positive", nil, 3.0, Positive},
		{"zero weight defaults positive", nil, 0.0, Positive},
		{"typed sign", Negative, nil, Negative},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSign(tt.sign, tt.weight))
		})
	}
}

func TestSign_Flip(t *testing.T) {
	assert.Equal(t, Negative, Positive.Flip())
	assert.Equal(t, Positive, Negative.Flip())
	assert.Equal(t, -1, Negative.Int())
	assert.Equal(t, "+", Positive.String())
}

func TestSign_JSON(t *testing.T) {
	data, err := json.Marshal(map[string]Sign{"ab": Positive, "bc": Negative})
	assert.NoError(t, err)
	assert.JSONEq(t, `{"ab":"+","bc":"-"}`, string(data))

	var signs []Sign
	assert.NoError(t, json.Unmarshal([]byte(`["-","enemy","+"]`), &signs))
	assert.Equal(t, []Sign{Negative, Negative, Positive}, signs)

	var bad Sign
	assert.Error(t, json.Unmarshal([]byte(`"maybe"`), &bad))
}

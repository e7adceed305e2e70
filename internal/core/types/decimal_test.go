package types

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name  string
		in    any
		want  string
		valid bool
	}{
		{name: "json number", in: json.Number("20.50"), want: "20.5", valid: true},
		{name: "float", in: 5.0, want: "5", valid: true},
		{name: "int", in: 12, want: "12", valid: true},
		{name: "numeric string", in: " 1000 ", want: "1000", valid: true},
		{name: "exponent string", in: "1e3", want: "1000", valid: true},
		{name: "word", in: "abc", valid: false},
		{name: "blank", in: "   ", valid: false},
		{name: "infinity string", in: "Infinity", valid: false},
		{name: "infinite float", in: math.Inf(1), valid: false},
		{name: "largest float exponent", in: json.Number("1e308"), want: "1e308", valid: true},
		{name: "small exponent", in: "2.5e-300", want: "2.5e-300", valid: true},
		{name: "beyond float range", in: json.Number("1e400"), valid: false},
		{name: "exponent past int32 on multiply", in: json.Number("1e2000000000"), valid: false},
		{name: "huge negative exponent", in: "1e-999999999", valid: false},
		{name: "long coefficient", in: strings.Repeat("9", 400), valid: false},
		{name: "bool", in: true, valid: false},
		{name: "nil", in: nil, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseMoney(tt.in)
			require.Equal(t, tt.valid, ok)
			if tt.valid {
				assert.True(t, got.Equal(MustMoney(tt.want)), "got %s", got)
			}
		})
	}
}

func TestMoneyMarshalsAsNumber(t *testing.T) {
	data, err := json.Marshal(struct {
		Total Money `json:"total"`
	}{Total: MustMoney("100")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"total":100}`, string(data))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(MustMoney("123.45")))
	assert.True(t, IsFinite(NewMoney(math.MaxFloat64)))
	assert.False(t, IsFinite(MustMoney("1e309")))
	assert.False(t, IsFinite(MustMoney("1e-401")))
}

package utils

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestLooseString_UnmarshalJSON(t *testing.T) {
	cases := []struct {
		raw      string
		value    string
		set      bool
		optional *string
	}{
		{`"Ada"`, "Ada", true, strPtr("Ada")},
		{`"  Lagos "`, "  Lagos ", true, strPtr("Lagos")},
		{`"   "`, "   ", true, strPtr("")},
		{`"\u00a0Pune\ufeff"`, "\u00a0Pune\ufeff", true, strPtr("Pune")},
		{`""`, "", true, nil},
		{`55000`, "55000", true, strPtr("55000")},
		{`55000.5`, "55000.5", true, strPtr("55000.5")},
		{`0`, "0", true, nil},
		{`true`, "true", true, strPtr("true")},
		{`false`, "false", true, nil},
		{`null`, "", false, nil},
	}

	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			var s LooseString
			require.NoError(t, json.Unmarshal([]byte(c.raw), &s))
			require.Equal(t, c.value, s.Value)
			require.Equal(t, c.set, s.Set)
			require.Equal(t, c.optional, s.Optional())
		})
	}
}

func TestLooseString_RejectsContainers(t *testing.T) {
	for _, raw := range []string{`{"a":1}`, `[1,2]`} {
		var s LooseString
		err := json.Unmarshal([]byte(raw), &s)
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrNotScalar))
	}
}

func TestLooseString_Absent(t *testing.T) {
	var payload struct {
		City LooseString `json:"city"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &payload))
	require.False(t, payload.City.Set)
	require.Nil(t, payload.City.Optional())
	require.Equal(t, "", payload.City.Trimmed())
}

func TestIsSpace(t *testing.T) {
	for _, r := range []rune{' ', '\t', '\n', '\v', '\f', '\r', '\u00a0', '\u1680', '\u2000', '\u200a', '\u2028', '\u2029', '\u202f', '\u205f', '\u3000', '\ufeff'} {
		require.True(t, IsSpace(r), "%U", r)
	}
	for _, r := range []rune{'a', '@', '.', '\u0085', '\u200b'} {
		require.False(t, IsSpace(r), "%U", r)
	}
}

func TestFormatNumber(t *testing.T) {
	cases := map[float64]string{
		0:          "0",
		55000:      "55000",
		55000.5:    "55000.5",
		-12:        "-12",
		0.000001:   "0.000001",
		1e-7:       "1e-7",
		1.5e-7:     "1.5e-7",
		1e20:       "100000000000000000000",
		1e21:       "1e+21",
		-2.5e22:    "-2.5e+22",
		123456.789: "123456.789",
	}

	for in, want := range cases {
		require.Equal(t, want, FormatNumber(in), "%v", in)
	}
}

func TestLooseString_LargeNumber(t *testing.T) {
	var s LooseString
	require.NoError(t, json.Unmarshal([]byte(`1e21`), &s))
	require.Equal(t, "1e+21", s.Value)
}

func strPtr(s string) *string { return &s }

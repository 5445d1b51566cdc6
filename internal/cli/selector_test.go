package cli

import (
	"testing"

	"github.com/gopsql/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want interface{}
	}{
		{"null", nil},
		{"true", true},
		{"false", false},
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"0", int64(0)},
		{"1.5", 1.5},
		{"01234", "01234"},
		{"0x10", "0x10"},
		{"1e3", "1e3"},
		{"99999999999999999999", "99999999999999999999"},
		{"ann", "ann"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseValue(tt.in))
		})
	}
}

func TestParseSelector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		keys       []string
		conditions []string
		want       mapper.Selector
	}{
		{name: "nothing", want: nil},
		{name: "key", keys: []string{"1"}, want: mapper.Key(int64(1))},
		{name: "string key", keys: []string{"ann"}, want: mapper.Key("ann")},
		{name: "keys", keys: []string{"1", "2"}, want: mapper.Keys(int64(1), int64(2))},
		{name: "comma separated keys", keys: []string{"1,2", "3"}, want: mapper.Keys(int64(1), int64(2), int64(3))},
		{name: "single key list", keys: []string{"1,"}, want: mapper.Keys(int64(1))},
		{name: "empty key list", keys: []string{","}, want: mapper.Keys()},
		{
			name:       "where",
			conditions: []string{"user_id=1", "title.like=%go%", "id.in=1,2", "id.nin=", "body.null=true", "name=a=b"},
			want: mapper.Where(mapper.Filter{
				"user_id":    int64(1),
				"title.like": "%go%",
				"id.in":      []interface{}{int64(1), int64(2)},
				"id.nin":     []interface{}{},
				"body.null":  true,
				"name":       "a=b",
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSelector(tt.keys, tt.conditions)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSelectorErrors(t *testing.T) {
	t.Parallel()

	_, err := parseSelector([]string{"1"}, []string{"name=ann"})
	assert.ErrorContains(t, err, "cannot be used together")

	for _, c := range []string{"name", "=1", " =1"} {
		_, err = parseSelector(nil, []string{c})
		assert.ErrorContains(t, err, "invalid condition", c)
	}

	_, err = requireSelector(nil, nil, false)
	assert.ErrorIs(t, err, errNoSelector)

	sel, err := requireSelector(nil, nil, true)
	require.NoError(t, err)
	assert.Nil(t, sel)

	_, err = requireSelector(nil, []string{"id=1"}, true)
	assert.ErrorContains(t, err, "--all cannot be used")
}

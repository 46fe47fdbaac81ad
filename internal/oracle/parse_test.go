// internal/oracle/parse_test.go
package oracle

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		reply   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			reply: `{"confidence": 0.9}`,
			want:  `{"confidence": 0.9}`,
		},
		{
			name:  "object wrapped in prose",
			reply: "Sure, here is the routing decision:\n{\"primary_datasource\": \"fred\"}\nLet me know if you need anything else.",
			want:  `{"primary_datasource": "fred"}`,
		},
		{
			name:  "markdown fence with language tag",
			reply: "```json\n{\"is_relevant\": true}\n```",
			want:  `{"is_relevant": true}`,
		},
		{
			name:  "markdown fence without language tag",
			reply: "```\n{\"is_relevant\": false}\n```",
			want:  `{"is_relevant": false}`,
		},
		{
			name:  "nested object",
			reply: `{"outer": {"inner": 1}, "x": 2}`,
			want:  `{"outer": {"inner": 1}, "x": 2}`,
		},
		{
			name:    "no object at all",
			reply:   "I am unable to comply with this request.",
			wantErr: true,
		},
		{
			name:    "empty reply",
			reply:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.reply)
			if tt.wantErr {
				assert.ErrorIs(t, err, errNoJSON)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("a", 5000)

	assert.Equal(t, "short", truncate("short", 100))
	assert.Len(t, truncate(long, qualityContentLimit), qualityContentLimit)
	assert.Len(t, truncate(long, reconcileContentLimit), reconcileContentLimit)
	assert.Equal(t, long, truncate(long, 5000))
}

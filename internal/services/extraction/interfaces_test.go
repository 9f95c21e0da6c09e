package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstraints_FormatSelector(t *testing.T) {
	tests := []struct {
		name string
		c    Constraints
		want string
	}{
		{"default", DefaultConstraints(), "best[height<=480][ext=mp4]/best[height<=480]/worst"},
		{"no container", Constraints{MaxHeight: 720}, "best[height<=720]/worst"},
		{"no height", Constraints{Container: "webm"}, "best[ext=webm]/best"},
		{"unconstrained", Constraints{}, "best"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.c.FormatSelector())
		})
	}
}

package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "none"},
		{"  ", "none"},
		{"active", "active"},
		{"trialing", "trialing"},
		{"past_due", "past_due"},
		{"unpaid", "past_due"},
		{"canceled", "canceled"},
		{"incomplete_expired", "canceled"},
		{"incomplete", "incomplete"},
		{" active ", "active"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeStatus(tt.in))
		})
	}
}

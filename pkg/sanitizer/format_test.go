package sanitizer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/contexta-app/contexta/pkg/sanitizer"
)

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"Jo@X.COM", "jo@x.com"},
		{"  jo@x.com  ", "jo@x.com"},
		{"j..o@x.com", "j.o@x.com"},
		{".jo.@x.com", "jo@x.com"},
		{"not-an-email", "not-an-email"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizer.NormalizeEmail(tt.in), tt.in)
	}
}

func TestTrimName(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jo Doe", sanitizer.TrimName("  Jo   Doe "))
	assert.Equal(t, "", sanitizer.TrimName("   "))
}

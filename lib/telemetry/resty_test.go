package telemetry

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRedact(t *testing.T) {
	testCases := []struct {
		header string
		value  string
		want   string
	}{
		{header: "cookie", value: "li_at=AQED", want: "[redacted]"},
		{header: "Csrf-Token", value: "ajax:123", want: "[redacted]"},
		{header: "set-cookie", value: "JSESSIONID=x", want: "[redacted]"},
		{header: "X-Restli-Protocol-Version", value: "2.0.0", want: "2.0.0"},
	}
	for _, test := range testCases {
		require.Equal(t, test.want, Redact(test.header, test.value), test.header)
	}
}

func TestTruncateBody(t *testing.T) {
	require.Equal(t, "{}", truncateBody("{}"))
	long := strings.Repeat("a", maxBodyAttribute+10)
	require.Len(t, truncateBody(long), maxBodyAttribute+3)
}

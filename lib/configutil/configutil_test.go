package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type sessionConfig struct {
	LiAt       string `json:"li_at"`
	JSessionID string `json:"jsessionid"`
	Region     string `json:"region"`
	Rate       int    `json:"rate"`
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("VOYAGER_TEST_COOKIE", "AQEDAR")

	testCases := []struct {
		in  string
		out string
	}{
		{in: `li_at: "${VOYAGER_TEST_COOKIE}"`, out: `li_at: "AQEDAR"`},
		{in: `li_at: "${VOYAGER_TEST_UNSET}"`, out: `li_at: ""`},
		{in: `li_at: "$VOYAGER_TEST_COOKIE"`, out: `li_at: "$VOYAGER_TEST_COOKIE"`},
		{in: `a: "${VOYAGER_TEST_COOKIE}-${VOYAGER_TEST_COOKIE}"`, out: `a: "AQEDAR-AQEDAR"`},
	}
	for _, test := range testCases {
		require.Equal(t, test.out, string(ExpandEnv([]byte(test.in))), test.in)
	}
}

func TestReadConfig(t *testing.T) {
	t.Setenv("VOYAGER_TEST_JSESSIONID", "ajax:123")

	dir := t.TempDir()
	base := `{
  // comments are allowed
  li_at: "base",
  jsessionid: "${VOYAGER_TEST_JSESSIONID}",
  region: "US",
  rate: 2,
}`
	local := `{ li_at: "override", rate: 5 }`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "linkedin.json5"), []byte(base), 0600))

	cfg, err := ReadConfig[sessionConfig](filepath.Join(dir, "linkedin.json5"))
	require.NoError(t, err)
	require.Equal(t, sessionConfig{LiAt: "base", JSessionID: "ajax:123", Region: "US", Rate: 2}, cfg)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "linkedin.local.json5"), []byte(local), 0600))
	cfg, err = ReadConfig[sessionConfig](filepath.Join(dir, "linkedin.json5"))
	require.NoError(t, err)
	require.Equal(t, sessionConfig{LiAt: "override", JSessionID: "ajax:123", Region: "US", Rate: 5}, cfg)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[sessionConfig](filepath.Join(t.TempDir(), "linkedin.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

package linkedin

import (
	"context"
	devenv "linkedin-voyager/dev/env"
	"linkedin-voyager/lib/telemetry"
	"linkedin-voyager/lib/urn"
	"testing"

	"github.com/stretchr/testify/require"
)

func getLiveConfig(t testing.TB) devenv.LinkedinTestConfig {
	if testing.Short() {
		t.Skip("live tests are skipped in short mode")
	}
	config, err := devenv.GetStateConfig[devenv.LinkedinTestConfig](devenv.LinkedinTestConfigFile)
	if err != nil {
		t.Skipf("no live session configured: %v", err)
	}
	if config.LiAt == "" || config.JSessionID == "" {
		t.Skip("live session cookies are empty")
	}
	return config
}

func TestLive(t *testing.T) {
	config := getLiveConfig(t)
	telemetry.SetupForTesting(t, "test:platforms/linkedin")

	ctx, span := tracer.Start(context.Background(), "TestLive")
	defer span.End()

	fetcher, err := NewHTTPFetcher(FetcherOptions{
		LiAt:       config.LiAt,
		JSessionID: config.JSessionID,
	})
	require.NoError(t, err)
	client, err := NewClient(ClientOptions{Fetcher: fetcher})
	require.NoError(t, err)

	t.Run("TestProfile", func(t *testing.T) {
		if config.PublicID == "" {
			t.Skip("no public_id configured")
		}
		profile, diags, err := client.GetProfile(ctx, urn.MustParse(config.PublicID))
		require.NoError(t, err)
		require.NotEmpty(t, profile.Name.First)
		for _, d := range diags {
			t.Log("diagnostic", d.Fragment, d.Entity, d.Field, d.Code, d.Reason)
		}
	})

	t.Run("TestCompany", func(t *testing.T) {
		if config.Company == "" {
			t.Skip("no company configured")
		}
		company, _, err := client.GetCompany(ctx, urn.MustParse(config.Company))
		require.NoError(t, err)
		require.NotEmpty(t, company.Name)
	})

	t.Run("TestSchool", func(t *testing.T) {
		if config.School == "" {
			t.Skip("no school configured")
		}
		school, _, err := client.GetSchool(ctx, urn.MustParse(config.School))
		require.NoError(t, err)
		require.NotEmpty(t, school.Name)
	})
}

package telemetry

import (
	"context"
	"errors"
	"linkedin-voyager/lib/configutil"
	"os"
	"sync"
	"testing"
)

var (
	setupTestMu           sync.Mutex
	setupTestEnvironments = map[string]bool{}
)

// SetupForTesting sets up telemetry once per service name for a test binary.
// Tests run without exporters when no telemetry.json5 can be found.
func SetupForTesting(t testing.TB, serviceName string) {
	setupTestMu.Lock()
	defer setupTestMu.Unlock()
	if setupTestEnvironments[serviceName] {
		return
	}
	setupTestEnvironments[serviceName] = true

	InitSlog(testing.Verbose())
	tel, err := SetupFromEnv(context.Background(), serviceName)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := tel.Shutdown(context.Background()); err != nil {
			t.Log("telemetry shutdown:", err)
		}
	})
}

// SetupFromEnv searches up the filesystem from the cwd for a telemetry.json5
// and sets up telemetry from it.
func SetupFromEnv(ctx context.Context, serviceName string) (Telemetry, error) {
	config, err := configutil.ReadRecursively[Config]("telemetry.json5")
	if err != nil {
		return Telemetry{}, err
	}
	return Setup(ctx, serviceName, config)
}

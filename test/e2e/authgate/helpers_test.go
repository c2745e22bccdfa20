//go:build e2e

package authgate_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"testing"
	"time"

	"github.com/aussiebroadwan/authgate/pkg/authsdk"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testImageName = "authgate-test:latest"
	testSecret    = "e2e-secret-key"
)

// TestMain builds the image once for the whole package and removes it after.
func TestMain(m *testing.M) {
	fmt.Fprintf(os.Stdout, "Building authgate Docker image...")

	if err := buildDockerImage(); err != nil {
		fmt.Fprintf(os.Stderr, "\nFailed to build Docker image: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stdout, " done\n")

	exitCode := m.Run()

	fmt.Fprintf(os.Stdout, "Cleaning up authgate Docker image...")
	cleanupDockerImage()
	fmt.Fprintf(os.Stdout, " done\n")

	os.Exit(exitCode)
}

func buildDockerImage() error {
	cmd := exec.CommandContext(context.Background(), "docker", "build",
		"-t", testImageName,
		"-f", "../../../cmd/authgate/Dockerfile",
		"../../../")
	cmd.Stdout = os.Stdout
	return cmd.Run()
}

func cleanupDockerImage() {
	cmd := exec.CommandContext(context.Background(), "docker", "rmi", "-f", testImageName)
	_ = cmd.Run()
}

// setupGateway starts the gateway in a container and returns a client for it.
func setupGateway(t *testing.T, extraEnv map[string]string) *authsdk.SDKClient {
	t.Helper()
	ctx := context.Background()

	env := map[string]string{
		"SECRET_KEY": testSecret,
		"ENV":        "test",
		"LOG_LEVEL":  "info",
		"LOG_FORMAT": "json",
	}
	for k, v := range extraEnv {
		env[k] = v
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        testImageName,
			ExposedPorts: []string{"3333/tcp"},
			Env:          env,
			WaitingFor: wait.ForHTTP("/livez").
				WithPort("3333/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	mappedPort, err := container.MappedPort(ctx, "3333")
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	return authsdk.NewSDKClient(fmt.Sprintf("http://%s:%s", host, mappedPort.Port()))
}

func assertHealthy(t *testing.T, health *authsdk.HealthResponse, err error) {
	t.Helper()
	require.NoError(t, err)
	require.NotNil(t, health)
	require.Equal(t, "ok", health.Status)
}

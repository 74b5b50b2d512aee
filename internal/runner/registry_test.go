package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func probeResult(installed bool) ProbeFunc {
	return func(context.Context) bool { return installed }
}

func TestCargoRunnerCommand(t *testing.T) {
	t.Parallel()
	cmd := CargoRunner{}.Command([]string{"--lib", "adds"})

	assert.Equal(t, "cargo", cmd.Path)
	assert.Equal(t, []string{
		"test", "--no-fail-fast", "--lib", "adds",
		"--", "-Z", "unstable-options", "--format", "json", "--show-output",
	}, cmd.Args)
	assert.Empty(t, cmd.Env)
}

func TestNextestRunnerCommand(t *testing.T) {
	t.Parallel()
	cmd := NextestRunner{}.Command([]string{"-p", "calc"})

	assert.Equal(t, "cargo", cmd.Path)
	assert.Equal(t, []string{
		"nextest", "run", "--message-format", "libtest-json", "--no-fail-fast", "-p", "calc",
	}, cmd.Args)
	assert.Equal(t, []string{"NEXTEST_EXPERIMENTAL_LIBTEST_JSON=1"}, cmd.Env)
	assert.Equal(t, "cargo nextest run --message-format libtest-json --no-fail-fast -p calc", cmd.String())
}

func TestRegistryGet(t *testing.T) {
	t.Parallel()
	r := NewRegistry(probeResult(false))

	tests := []struct {
		name string
		want string
	}{
		{"cargo", NameCargo},
		{"cargo-test", NameCargo},
		{"test", NameCargo},
		{"CARGO", NameCargo},
		{"nextest", NameNextest},
	}
	for _, tt := range tests {
		runner := r.Get(tt.name)
		require.NotNil(t, runner, tt.name)
		assert.Equal(t, tt.want, runner.Name(), tt.name)
	}
	assert.Nil(t, r.Get("bazel"))
}

func TestRegistryDetect(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		preference string
		installed  bool
		want       string
	}{
		{"explicit nextest", "nextest", false, NameNextest},
		{"explicit cargo", "cargo", true, NameCargo},
		{"alias", "cargo-test", true, NameCargo},
		{"auto with nextest", "auto", true, NameNextest},
		{"auto without nextest", "auto", false, NameCargo},
		{"auto uppercase", "AUTO", true, NameNextest},
		{"unknown", "bazel", true, NameCargo},
		{"empty", "", true, NameCargo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := NewRegistry(probeResult(tt.installed))
			assert.Equal(t, tt.want, r.Detect(context.Background(), tt.preference).Name())
		})
	}
}

func TestRegistryDetectAutoProbesOnce(t *testing.T) {
	t.Parallel()
	calls := 0
	r := NewRegistry(func(context.Context) bool { calls++; return false })

	r.Detect(context.Background(), "cargo")
	assert.Equal(t, 0, calls)
	r.Detect(context.Background(), "auto")
	assert.Equal(t, 1, calls)
}

type fakeRunner struct{}

func (fakeRunner) Name() string                  { return "fake" }
func (fakeRunner) Command(args []string) Command { return Command{Path: "fake", Args: args} }

func TestRegistryRegister(t *testing.T) {
	t.Parallel()
	r := NewRegistry(probeResult(false))
	r.Register("Fake", fakeRunner{})
	assert.Equal(t, "fake", r.Detect(context.Background(), "fake").Name())
}

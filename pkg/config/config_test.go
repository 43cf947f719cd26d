package config_test

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/jkroepke/semver-action/pkg/classifier"
	"github.com/jkroepke/semver-action/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	conf := config.New()

	err := conf.Load([]string{"semver-action", "-branch", "main"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "main", conf.Branch)
	assert.Equal(t, "v0.1.0", conf.InitialVersion)
	assert.Equal(t, "-", conf.PrereleaseGlue)
	assert.Equal(t, classifier.PolicyWarn, conf.MalformedPolicy)
}

func TestLoadRequiresBranch(t *testing.T) {
	t.Setenv("GITHUB_REF_NAME", "")

	conf := config.New()

	err := conf.Load([]string{"semver-action"}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "branch")
}

func TestLoadRejectsUnknownPolicy(t *testing.T) {
	conf := config.New()

	err := conf.Load([]string{"semver-action", "-branch", "main", "-malformed-commit-policy", "lenient"}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lenient")
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("GITHUB_REF_NAME", "develop")
	t.Setenv("MALFORMED_COMMIT_POLICY", "ignore")
	t.Setenv("PRERELEASE_GLUE", "-rc.")

	conf := config.New()

	err := conf.Load([]string{"semver-action"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "develop", conf.Branch)
	assert.Equal(t, classifier.PolicyIgnore, conf.MalformedPolicy)
	assert.Equal(t, "-rc.", conf.PrereleaseGlue)
}

func TestLoadConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), ".semver.yaml")

	err := os.WriteFile(configFile, []byte("initialVersion: v1.0.0\nmalformedCommitPolicy: error\n"), 0o600)
	require.NoError(t, err)

	t.Setenv("SEMVER_CONFIG", configFile)

	conf := config.New()

	err = conf.Load([]string{"semver-action", "-branch", "main"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "v1.0.0", conf.InitialVersion)
	assert.Equal(t, classifier.PolicyError, conf.MalformedPolicy)
}

func TestLoadFlagsOverrideConfigFile(t *testing.T) {
	configFile := filepath.Join(t.TempDir(), ".semver.yaml")

	err := os.WriteFile(configFile, []byte("initialVersion: v1.0.0\n"), 0o600)
	require.NoError(t, err)

	t.Setenv("SEMVER_CONFIG", configFile)

	conf := config.New()

	err = conf.Load([]string{"semver-action", "-branch", "main", "-initial-version", "v3.0.0"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "v3.0.0", conf.InitialVersion)
}

func TestShortSHA(t *testing.T) {
	t.Parallel()

	conf := config.New()
	conf.CommitSHA = "abcdef1234567890"
	assert.Equal(t, "abcdef1", conf.ShortSHA())

	conf.CommitSHA = "abc"
	assert.Equal(t, "abc", conf.ShortSHA())
}

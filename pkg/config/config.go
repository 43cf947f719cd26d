package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/jkroepke/semver-action/pkg/classifier"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Repository     string
	Token          string
	Branch         string
	InitialVersion string
	PrereleaseGlue string
	CommitSHA      string
	APIBaseURL     string
	ConfigFile     string

	MalformedPolicy classifier.MalformedPolicy

	malformedPolicyRaw string
}

func New() *Config {
	return &Config{
		InitialVersion:     "v0.1.0",
		PrereleaseGlue:     "-",
		APIBaseURL:         "https://api.github.com",
		ConfigFile:         ".semver.yaml",
		malformedPolicyRaw: "warn",
	}
}

// fileConfig is the optional .semver.yaml layer, applied between the
// defaults and the flags.
type fileConfig struct {
	InitialVersion        string `yaml:"initialVersion"`
	PrereleaseGlue        string `yaml:"prereleaseGlue"`
	MalformedCommitPolicy string `yaml:"malformedCommitPolicy"`
}

func (c *Config) Load(args []string, logWriter io.Writer) error {
	c.ConfigFile = lookupEnvOrString("SEMVER_CONFIG", c.ConfigFile)

	if err := c.loadFile(); err != nil {
		return err
	}

	flagSet := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flagSet.SetOutput(logWriter)
	flagSet.StringVar(&c.Repository,
		"repository",
		lookupEnvOrString("GITHUB_REPOSITORY", c.Repository),
		"Repository in owner/name form. If empty, the local checkout is used instead of the hosting API",
	)

	flagSet.StringVar(&c.Token,
		"token",
		lookupEnvOrString("GITHUB_TOKEN", c.Token),
		"Access token for the hosting API",
	)

	flagSet.StringVar(&c.Branch,
		"branch",
		lookupEnvOrString("GITHUB_REF_NAME", c.Branch),
		"Target branch reference",
	)

	flagSet.StringVar(&c.InitialVersion,
		"initial-version",
		lookupEnvOrString("INITIAL_VERSION", c.InitialVersion),
		"Version to use when no release exists yet",
	)

	flagSet.StringVar(&c.PrereleaseGlue,
		"prerelease-glue",
		lookupEnvOrString("PRERELEASE_GLUE", c.PrereleaseGlue),
		"Separator between version and pre-release build identifier",
	)

	flagSet.StringVar(&c.CommitSHA,
		"commit-sha",
		lookupEnvOrString("GITHUB_SHA", c.CommitSHA),
		"Hash of the revision that triggered the run",
	)

	flagSet.StringVar(&c.APIBaseURL,
		"api-url",
		lookupEnvOrString("GITHUB_API_URL", c.APIBaseURL),
		"Base URL of the hosting API",
	)

	flagSet.StringVar(&c.malformedPolicyRaw,
		"malformed-commit-policy",
		lookupEnvOrString("MALFORMED_COMMIT_POLICY", c.malformedPolicyRaw),
		"Reaction to commits that are not conventional commits: error, warn or ignore",
	)

	if err := flagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("error parsing cli args: %w", err)
	}

	if c.Branch == "" {
		return errors.New("branch must not be empty")
	}

	policy, err := classifier.ParseMalformedPolicy(c.malformedPolicyRaw)
	if err != nil {
		return err
	}

	c.MalformedPolicy = policy

	return nil
}

func (c *Config) loadFile() error {
	content, err := os.ReadFile(c.ConfigFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}

		return fmt.Errorf("failed to read %s: %w", c.ConfigFile, err)
	}

	var file fileConfig

	if err := yaml.Unmarshal(content, &file); err != nil {
		return fmt.Errorf("failed to YAML decode %s: %w", c.ConfigFile, err)
	}

	if file.InitialVersion != "" {
		c.InitialVersion = file.InitialVersion
	}

	if file.PrereleaseGlue != "" {
		c.PrereleaseGlue = file.PrereleaseGlue
	}

	if file.MalformedCommitPolicy != "" {
		c.malformedPolicyRaw = file.MalformedCommitPolicy
	}

	return nil
}

// ShortSHA returns the short form of the triggering revision hash.
func (c *Config) ShortSHA() string {
	if len(c.CommitSHA) <= 7 {
		return c.CommitSHA
	}

	return c.CommitSHA[:7]
}

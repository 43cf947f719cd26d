package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"github.com/jkroepke/semver-action/pkg/classifier"
	"github.com/jkroepke/semver-action/pkg/config"
	"github.com/jkroepke/semver-action/pkg/conventional"
	"github.com/jkroepke/semver-action/pkg/forge"
	"github.com/jkroepke/semver-action/pkg/output"
	"github.com/jkroepke/semver-action/pkg/resolver"
	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run(os.Args, os.Stdout))
}

func run(args []string, logWriter *os.File) int {
	consoleWriter := zerolog.ConsoleWriter{Out: logWriter, TimeFormat: time.RFC3339}
	logger := zerolog.New(consoleWriter).With().Timestamp().Logger()

	conf := config.New()
	if err := conf.Load(args, logWriter); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}

		logger.Err(err).Msg("failed to load config")

		return 1
	}

	client, err := newForgeClient(logger, conf)
	if err != nil {
		logger.Err(err).Msg("failed to initialize repository client")

		return 1
	}

	bumpClassifier := classifier.New(logger, conventional.New())
	versionResolver := resolver.New(logger, conf, client, bumpClassifier)

	outputs, err := versionResolver.Run(context.Background())
	if err != nil {
		logger.Err(err).Msg("failed to resolve version")

		return 1
	}

	outputWriter := output.New(logger, logWriter)
	for _, out := range []struct{ name, value string }{
		{"latest-release-tag", outputs.LatestReleaseTag},
		{"current-version", outputs.CurrentVersion},
		{"new-version", outputs.NewVersion},
		{"new-major-version", outputs.NewMajorVersion},
	} {
		if err := outputWriter.Emit(out.name, out.value); err != nil {
			logger.Err(err).Msg("failed to emit output")

			return 1
		}
	}

	return 0
}

// newForgeClient prefers the hosting API and falls back to the local
// checkout when no repository is configured.
func newForgeClient(logger zerolog.Logger, conf *config.Config) (forge.Client, error) {
	if conf.Repository != "" {
		return forge.NewGitHub(logger, conf.APIBaseURL, conf.Repository, conf.Token), nil
	}

	return forge.OpenGit(logger, ".")
}

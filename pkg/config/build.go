package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const (
	projectVersionFile   = "PROJECT_VERSION"
	projectBuildDateFile = "PROJECT_BUILD_DATE"
	projectCommitFile    = "PROJECT_COMMIT_HASH"
)

type BuildConfig struct {
	GitTag    string
	GitHash   string
	BuildDate uint64
}

// UnknownBuild is used when the build files are not shipped next to the
// binary, e.g. when running from source.
var UnknownBuild = BuildConfig{GitTag: "unknown", GitHash: "unknown"}

// ReadBuildVersion reads the build files written by the release pipeline
// from dir.
func ReadBuildVersion(dir string) (*BuildConfig, error) {
	projectVersion, err := readTrimmed(dir, projectVersionFile)
	if err != nil {
		return nil, err
	}

	projectCommit, err := readTrimmed(dir, projectCommitFile)
	if err != nil {
		return nil, err
	}

	projectBuildDate, err := readTrimmed(dir, projectBuildDateFile)
	if err != nil {
		return nil, err
	}

	buildDate, err := time.Parse(time.RFC3339, projectBuildDate)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", projectBuildDateFile)
	}

	return &BuildConfig{
		GitTag:    projectVersion,
		GitHash:   projectCommit,
		BuildDate: uint64(buildDate.Unix()),
	}, nil
}

func readTrimmed(dir, name string) (string, error) {
	b, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(b)), nil
}

// Package artifactcheck verifies a build artifact's SHA-256 digest before
// it is shipped.
package artifactcheck

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/greenlight-dev/greenlight/pkg/check"
)

// FileOpener abstracts file access for testability.
type FileOpener interface {
	Open(name string) (io.ReadCloser, error)
}

// RealFileOpener implements FileOpener using the real filesystem.
type RealFileOpener struct{}

// Open opens the named file for reading.
func (r *RealFileOpener) Open(name string) (io.ReadCloser, error) {
	return os.Open(name) //nolint:gosec // intentional: paths come from operator config
}

// Check verifies a file's SHA-256 checksum against an expected hex digest.
type Check struct {
	File     string     // artifact path
	Expected string     // expected hex digest
	Opener   FileOpener // injected for testing
}

// Run executes the artifact check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: fmt.Sprintf("artifact: %s", c.File),
	}

	expected := strings.ToLower(strings.TrimSpace(c.Expected))
	if len(expected) != sha256.Size*2 {
		return result.Failf("expected digest has wrong length %d (want %d hex chars)", len(expected), sha256.Size*2)
	}

	f, err := c.Opener.Open(c.File)
	if err != nil {
		if os.IsNotExist(err) {
			return result.Fail("not found", err)
		}
		return result.Failf("failed to open artifact: %v", err)
	}
	defer func() { _ = f.Close() }()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return result.Failf("failed to read artifact: %v", err)
	}

	actual := hex.EncodeToString(hasher.Sum(nil))
	if actual != expected {
		result.AddDetailf("expected: %s", expected)
		result.AddDetailf("actual:   %s", actual)
		return result.Fail("digest mismatch", fmt.Errorf("sha256 %s does not match expected %s", actual, expected))
	}

	result.AddDetailf("sha256: %s", actual)
	result.Status = check.StatusOK
	return result
}

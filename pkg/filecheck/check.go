// Package filecheck verifies that files the deployment depends on exist
// and look sane. All failures are reported as results; no filesystem error
// escapes a check.
package filecheck

import (
	"fmt"
	"os"
	"strings"

	"github.com/greenlight-dev/greenlight/pkg/check"
)

// Check verifies that a file or directory meets requirements.
type Check struct {
	Path      string     // path to check
	ExpectDir bool       // expect a directory
	NotEmpty  bool       // file must have size > 0
	Contains  string     // literal string that must appear in content
	Head      int64      // limit content read to first N bytes (0 = whole file)
	FS        FileSystem // injected for testing
}

// Run executes the file check.
func (c *Check) Run() check.Result {
	result := check.Result{
		Name: fmt.Sprintf("file: %s", c.Path),
	}

	info, err := c.FS.Stat(c.Path)
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return result.Fail("not found", err)
		case os.IsPermission(err):
			return result.Fail("permission denied", err)
		default:
			return result.Failf("stat failed: %v", err)
		}
	}

	if c.ExpectDir {
		if !info.IsDir() {
			err := fmt.Errorf("expected directory, got file")
			return result.Fail("expected directory, got file", err)
		}
		result.AddDetail("type: directory")
		result.Status = check.StatusOK
		return result
	}

	if info.IsDir() {
		err := fmt.Errorf("expected file, got directory")
		return result.Fail("expected file, got directory", err)
	}

	result.AddDetailf("size: %d", info.Size())

	if c.NotEmpty && info.Size() == 0 {
		return result.Fail("file is empty", fmt.Errorf("file is empty"))
	}

	if c.Contains != "" {
		content, err := c.FS.ReadFile(c.Path, c.Head)
		if err != nil {
			return result.Failf("failed to read file: %v", err)
		}
		if !strings.Contains(string(content), c.Contains) {
			err := fmt.Errorf("content does not contain %q", c.Contains)
			return result.Fail(fmt.Sprintf("content does not contain %q", c.Contains), err)
		}
	}

	result.Status = check.StatusOK
	return result
}

package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Credentials locate the workbook resource. Two sources are tried in order:
// a locally provisioned credential file, then a JSON blob in an environment
// variable (the deployment secret store). Which source was used is not
// observable to callers beyond success or failure.
type Credentials struct {
	// WorkbookDir is the directory holding the workbook files.
	WorkbookDir string `json:"workbook_dir"`
}

// ResolveCredentials loads credentials from credFile if it exists, otherwise
// from the JSON blob in the envVar environment variable.
func ResolveCredentials(credFile, envVar string) (*Credentials, error) {
	if data, err := os.ReadFile(credFile); err == nil {
		return parseCredentials(data, "file "+credFile)
	}

	if blob := os.Getenv(envVar); blob != "" {
		return parseCredentials([]byte(blob), "env "+envVar)
	}

	return nil, fmt.Errorf("storage: no credentials in %s or $%s: %w",
		credFile, envVar, ErrConnectionUnavailable)
}

func parseCredentials(data []byte, source string) (*Credentials, error) {
	var c Credentials
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("storage: malformed credentials (%s): %v: %w",
			source, err, ErrConnectionUnavailable)
	}
	if c.WorkbookDir == "" {
		return nil, fmt.Errorf("storage: credentials (%s) missing workbook_dir: %w",
			source, ErrConnectionUnavailable)
	}
	return &c, nil
}

// WorkbookPath returns the path of the named workbook resource.
func (c *Credentials) WorkbookPath(resource string) string {
	return filepath.Join(c.WorkbookDir, resource+".xlsx")
}

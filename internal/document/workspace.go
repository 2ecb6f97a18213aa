package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrWorkspaceNotFound indicates a missing workspace file in file-based mode.
var ErrWorkspaceNotFound = errors.New("workspace file not found")

// SaveWorkspace writes the workspace as JSON. The write goes through a temp
// file and rename so a concurrent reader never sees a partial file.
func SaveWorkspace(path string, ws *Workspace) error {
	data, err := json.Marshal(ws)
	if err != nil {
		return fmt.Errorf("marshal workspace: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write workspace: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("rename workspace: %w", err)
	}
	return nil
}

// LoadWorkspace reads a workspace JSON file.
func LoadWorkspace(path string) (*Workspace, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrWorkspaceNotFound, filepath.Clean(path))
		}
		return nil, fmt.Errorf("read workspace: %w", err)
	}
	var ws Workspace
	if err := json.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("decode workspace %s: %w", filepath.Base(path), err)
	}
	return &ws, nil
}

// Package edit implements the "toolbox edit" command.
package edit

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"toolbox/pkg/config"
)

// DefaultTemplate seeds a config file that does not exist yet.
const DefaultTemplate = `[general]
  log_level = "info"

[sysinfo]
  sample_interval = "1s"
  format          = "text"
  history_db      = "~/.local/share/toolbox/history.db"
  history_keep    = 100

[serve]
  listen          = "127.0.0.1:9273"
  sample_interval = "1s"
  max_connections = 16
  # auth_user   = "ops"
  # auth_bcrypt = "$2a$10$..."
`

// Run opens the config file in the system editor, creating it from
// DefaultTemplate when missing. An empty path edits the discovered file.
func Run(path string) error {
	if path == "" {
		path = config.DiscoverPath()
	}

	if err := Seed(path); err != nil {
		return err
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}

	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd.Run()
}

// Seed writes DefaultTemplate to path unless a file already exists there.
func Seed(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Printf("Creating new config file at %s...\n", path)
		if err := os.WriteFile(path, []byte(DefaultTemplate), 0644); err != nil {
			return fmt.Errorf("writing default config: %w", err)
		}
	}
	return nil
}

func findEditor() (string, error) {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor, nil
	}
	for _, e := range []string{"vi", "nano", "vim"} {
		if _, err := exec.LookPath(e); err == nil {
			return e, nil
		}
	}
	return "", fmt.Errorf("no editor found ($EDITOR environment variable not set, and vi/nano/vim not in PATH)")
}

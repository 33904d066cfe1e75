package utils

import (
	"os"
	"path/filepath"
)

// ExpandPath resolves environment variables and a leading ~ in a
// user-supplied path such as config.yaml's log_file or $TODOCAL_CONFIG.
//   - "~/todocal.log" -> "/home/user/todocal.log"
//   - "$XDG_CONFIG_HOME/todocal" -> "/home/user/.config/todocal"
func ExpandPath(path string) (string, error) {
	path = os.ExpandEnv(path)
	if path != "~" && !hasHomePrefix(path) {
		return path, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, path[1:]), nil
}

func hasHomePrefix(path string) bool {
	return len(path) >= 2 && path[0] == '~' && path[1] == '/'
}

// EnsureParentDir creates the directory holding path if it is missing
func EnsureParentDir(path string, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, perm)
}

package config

import (
	"path/filepath"
)

// DefaultSearchPathKey holds the directories scanned for executables. The
// reference configuration defaults it to the PATH environment variable.
const DefaultSearchPathKey = "dagr.path"

// ReadSearchPath reads the search path configured at key. An absent key
// yields an empty search path.
func ReadSearchPath(a *Accessor, key string) ([]Path, error) {
	raw, ok, err := Optional[string](a, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []Path{}, nil
	}
	return SplitSearchPath(raw), nil
}

// SplitSearchPath splits s on the platform list separator, keeping
// directory order and dropping empty entries. Directories are not checked
// for existence.
func SplitSearchPath(s string) []Path {
	dirs := make([]Path, 0)
	for _, dir := range filepath.SplitList(s) {
		if dir == "" {
			continue
		}
		dirs = append(dirs, Path(dir))
	}
	return dirs
}

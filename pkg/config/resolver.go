package config

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"
)

// Resolver locates external executables. A configured override always wins
// and is returned as is; otherwise the search path is scanned in order and
// the first existing candidate is returned.
type Resolver struct {
	accessor      *Accessor
	fs            afero.Fs
	searchPathKey string
}

type ResolverOption func(*Resolver)

// WithFs sets the filesystem search path candidates are probed on.
func WithFs(fs afero.Fs) ResolverOption {
	return func(r *Resolver) {
		if fs != nil {
			r.fs = fs
		}
	}
}

// WithSearchPathKey changes the key the search path is read from.
func WithSearchPathKey(key string) ResolverOption {
	return func(r *Resolver) {
		if key != "" {
			r.searchPathKey = key
		}
	}
}

func NewResolver(a *Accessor, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		accessor:      a,
		fs:            afero.NewOsFs(),
		searchPathKey: DefaultSearchPathKey,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Executable returns the path configured at overrideKey without checking
// it, or the first existing name on the search path.
func (r *Resolver) Executable(overrideKey, name string) (Path, error) {
	override, ok, err := Optional[Path](r.accessor, overrideKey)
	if err != nil {
		return "", err
	}
	if ok {
		recordResolution(context.Background(), sourceOverride)
		return override, nil
	}
	return r.searchFor(overrideKey, name)
}

// ExecutableInBinDir joins the directory configured at dirKey with name,
// without checking the result, or falls back to the search path.
func (r *Resolver) ExecutableInBinDir(dirKey, name string) (Path, error) {
	dir, ok, err := Optional[Path](r.accessor, dirKey)
	if err != nil {
		return "", err
	}
	if ok {
		recordResolution(context.Background(), sourceBinDir)
		return Path(filepath.Join(string(dir), name)), nil
	}
	return r.searchFor(dirKey, name)
}

// SearchPath returns the configured search path directories.
func (r *Resolver) SearchPath() ([]Path, error) {
	return ReadSearchPath(r.accessor, r.searchPathKey)
}

func (r *Resolver) searchFor(key, name string) (Path, error) {
	dirs, err := r.SearchPath()
	if err != nil {
		return "", err
	}
	for _, dir := range dirs {
		candidate := filepath.Join(string(dir), name)
		if _, err := r.fs.Stat(candidate); err == nil {
			recordResolution(context.Background(), sourceSearchPath)
			return Path(candidate), nil
		}
	}
	recordResolution(context.Background(), sourceNotFound)
	return "", &ExecutableNotFoundError{Key: key, Name: name, Searched: dirs}
}

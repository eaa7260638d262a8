package main

import (
	"path/filepath"

	"github.com/pkg/profile"
)

// profileMode maps the --profile flag's enum values to the pkg/profile
// option that starts that kind of profiling.
var profileMode = map[string]func(*profile.Profile){
	"cpu":       profile.CPUProfile,
	"mem":       profile.MemProfile,
	"heap":      profile.MemProfileHeap,
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"mutex":     profile.MutexProfile,
	"goroutine": profile.GoroutineProfile,
	"trace":     profile.TraceProfile,
}

// startProfile begins profiling in the given mode, writing output under the
// tool's cache directory. An empty mode is a no-op. The returned func must
// be deferred to flush and stop the profiler.
func startProfile(mode string) func() {
	opt, ok := profileMode[mode]
	if !ok {
		return func() {}
	}

	p := profile.Start(
		opt,
		profile.ProfilePath(filepath.Join(cacheDir(), "pprof")),
		profile.Quiet,
	)

	return p.Stop
}

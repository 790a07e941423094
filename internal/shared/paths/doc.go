// Package paths resolves user-supplied path strings into paths that can be
// handed directly to filesystem calls.
//
// The only transformation applied is home-directory expansion of a leading
// tilde. Every filesystem operation runs its input through Resolve first;
// the result is never cached.
//
// # Rules
//
//	"~"          -> $HOME
//	"~/docs/a"   -> $HOME/docs/a
//	"~user/x"    -> "~user/x"     (unchanged)
//	"/abs/path"  -> "/abs/path"   (unchanged, no existence check)
//
// # Usage
//
//	import "github.com/GriffinCanCode/AgentOS/fsops/internal/shared/paths"
//
//	resolved, err := paths.Resolve("~/projects")
//	if errors.Is(err, paths.ErrNoHome) {
//	    // HOME is not set
//	}
package paths

// Package script runs Lua scripts against a document.
//
// Scripts see a single global table, buf, whose functions map onto the
// engine's operations. Positions are 0-based, matching the engine.
//
//	buf.insert_text("-- header\n")
//	while buf.cursor() < buf.line_count() - 1 do buf.down() end
//	buf.save()
//
// Only the base, table, string and math libraries are available.
package script

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/ropepad/internal/engine"
)

// DefaultTimeout bounds the run time of a script.
const DefaultTimeout = 5 * time.Second

// ErrScript wraps every error raised while running a script.
var ErrScript = errors.New("script failed")

// Runner executes scripts against one engine.
type Runner struct {
	eng     *engine.Engine
	out     io.Writer
	timeout time.Duration
}

// Option configures a Runner.
type Option func(*Runner)

// WithOutput sets where print writes. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(r *Runner) {
		r.out = w
	}
}

// WithTimeout sets the run time limit. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.timeout = d
	}
}

// New creates a runner for eng.
func New(eng *engine.Engine, opts ...Option) *Runner {
	r := &Runner{eng: eng, out: io.Discard, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run executes src against eng with default options.
func Run(ctx context.Context, eng *engine.Engine, src string) error {
	return New(eng).Run(ctx, "<string>", src)
}

// RunFile executes the script at path against eng with default options.
func RunFile(ctx context.Context, eng *engine.Engine, path string) error {
	return New(eng).RunFile(ctx, path)
}

// RunFile executes the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScript, err)
	}
	return r.Run(ctx, path, string(src))
}

// Run executes src. name identifies the chunk in error messages.
func (r *Runner) Run(ctx context.Context, name, src string) (err error) {
	L := newState()
	defer L.Close()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}
	L.SetContext(ctx)

	r.installPrint(L)
	newBufferModule(r.eng).register(L)

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %s: lua panic: %v", ErrScript, name, p)
		}
	}()

	fn, err := L.Load(strings.NewReader(src), name)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrScript, err)
	}
	L.Push(fn)
	if err := L.PCall(0, lua.MultRet, nil); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %s: %w", ErrScript, name, ctxErr)
		}
		return fmt.Errorf("%w: %w", ErrScript, err)
	}
	return nil
}

// newState opens a Lua state with the safe standard libraries only.
func newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "module"} {
		L.SetGlobal(name, lua.LNil)
	}
	return L
}

// installPrint redirects print to the runner's output.
func (r *Runner) installPrint(L *lua.LState) {
	L.SetGlobal("print", L.NewFunction(func(L *lua.LState) int {
		n := L.GetTop()
		parts := make([]string, n)
		for i := 1; i <= n; i++ {
			parts[i-1] = L.ToStringMeta(L.Get(i)).String()
		}
		fmt.Fprintln(r.out, strings.Join(parts, "\t"))
		return 0
	}))
}

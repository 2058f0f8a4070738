package release

import (
	"context"

	"github.com/parquery/releasery/internal/execution"
)

// fakeRunner records every command and delegates behavior to a handler, so
// packaging flows can be exercised without spawning real processes.
type fakeRunner struct {
	calls   []execution.Command
	handler func(command execution.Command) (execution.Result, error)
}

func (r *fakeRunner) Run(_ context.Context, command execution.Command) (execution.Result, error) {
	r.calls = append(r.calls, command)
	if r.handler == nil {
		return execution.Result{}, nil
	}
	return r.handler(command)
}

package runner

import (
	"context"
	"sync"
)

// Call records one invocation seen by Fake.
type Call struct {
	Dir    string
	Name   string
	Args   []string
	Stream bool
}

// String returns the call's command line.
func (c Call) String() string {
	return CommandLine(c.Name, c.Args...)
}

type response struct {
	out string
	err error
}

// Fake is a scripted Runner for tests. Commands are matched on their full
// command line; unmatched commands succeed with empty output.
type Fake struct {
	mu        sync.Mutex
	calls     []Call
	responses map[string]response
}

// NewFake creates an empty Fake.
func NewFake() *Fake {
	return &Fake{responses: make(map[string]response)}
}

// On scripts the result of the command line cmd.
func (f *Fake) On(cmd, out string, err error) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmd] = response{out: out, err: err}
	return f
}

// Calls returns the recorded invocations in order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

// CommandLines returns the recorded invocations as command lines.
func (f *Fake) CommandLines() []string {
	var lines []string
	for _, c := range f.Calls() {
		lines = append(lines, c.String())
	}
	return lines
}

func (f *Fake) Output(_ context.Context, dir, name string, args ...string) (string, error) {
	return f.record(Call{Dir: dir, Name: name, Args: args})
}

func (f *Fake) Run(_ context.Context, dir, name string, args ...string) error {
	_, err := f.record(Call{Dir: dir, Name: name, Args: args, Stream: true})
	return err
}

func (f *Fake) record(c Call) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	r := f.responses[c.String()]
	if r.err != nil {
		return "", &Error{Cmd: c.String(), Dir: c.Dir, Err: r.err}
	}
	return r.out, nil
}

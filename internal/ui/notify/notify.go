// Package notify provides the transient notifications and navigation used by
// the listing UI components.
package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
	"github.com/google/uuid"
)

// Notifier shows transient messages. Loading returns an id that a later
// Success or Error replaces; an empty id shows a new message.
type Notifier interface {
	Loading(msg string) string
	Success(id, msg string)
	Error(id, msg string)
}

// Navigator moves the user to another view.
type Navigator interface {
	Push(path string)
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Loading(string) string { return "" }

func (Nop) Success(string, string) {}

func (Nop) Error(string, string) {}

// Console prints notifications to a terminal.
type Console struct {
	mu      sync.Mutex
	out     io.Writer
	loading *color.Color
	success *color.Color
	failure *color.Color
}

func NewConsole(out io.Writer) *Console {
	return &Console{
		out:     out,
		loading: color.New(color.FgYellow),
		success: color.New(color.FgGreen),
		failure: color.New(color.FgRed, color.Bold),
	}
}

func (c *Console) Loading(msg string) string {
	id := uuid.NewString()
	c.print(c.loading, "…", msg)
	return id
}

func (c *Console) Success(_ string, msg string) { c.print(c.success, "✔", msg) }

func (c *Console) Error(_ string, msg string) { c.print(c.failure, "✖", msg) }

func (c *Console) print(col *color.Color, icon, msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = col.Fprintf(c.out, "%s %s\n", icon, msg)
}

// ConsoleNavigator reports navigation on a writer.
type ConsoleNavigator struct {
	Out io.Writer
}

func (n ConsoleNavigator) Push(path string) {
	fmt.Fprintf(n.Out, "→ %s\n", path)
}

// Toast is one recorded notification.
type Toast struct {
	ID   string
	Kind string // "loading", "success" or "error"
	Msg  string
}

// Recorder keeps every notification and navigation in memory.
type Recorder struct {
	mu     sync.Mutex
	next   int
	Toasts []Toast
	Paths  []string
}

func (r *Recorder) Loading(msg string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.next++
	id := fmt.Sprintf("toast-%d", r.next)
	r.Toasts = append(r.Toasts, Toast{ID: id, Kind: "loading", Msg: msg})
	return id
}

func (r *Recorder) Success(id, msg string) { r.add(Toast{ID: id, Kind: "success", Msg: msg}) }

func (r *Recorder) Error(id, msg string) { r.add(Toast{ID: id, Kind: "error", Msg: msg}) }

func (r *Recorder) Push(path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Paths = append(r.Paths, path)
}

func (r *Recorder) add(t Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Toasts = append(r.Toasts, t)
}

// Messages returns the recorded messages of one kind, in order.
func (r *Recorder) Messages(kind string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, t := range r.Toasts {
		if t.Kind == kind {
			out = append(out, t.Msg)
		}
	}
	return out
}

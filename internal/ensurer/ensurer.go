// Package ensurer makes sure a single npm dependency can be loaded. When it
// cannot, the package manager is run once in the background and the result
// is checked again; a second miss is reported as one JSON line and nothing
// else happens.
package ensurer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/melih-ucgun/fecoding/internal/consts"
	"github.com/melih-ucgun/fecoding/internal/core"
	"github.com/melih-ucgun/fecoding/internal/platform"
	"github.com/melih-ucgun/fecoding/internal/record"
	"github.com/melih-ucgun/fecoding/internal/resolver"
)

// DefaultMessageTemplate renders the failure message. Fields: Dependency,
// Dir, Installer, Detail.
const DefaultMessageTemplate = "error: {{ .Dependency }} maybe not installed\ngoto: {{ .Dir }}\nrun \"{{ .Installer }} install {{ .Dependency }}\"\n{{ .Detail }}"

type Options struct {
	Dependency string
	Dir        string
	Platform   string

	Installer platform.Resolver
	Resolver  resolver.Resolver
	Runner    core.Runner
	Sink      record.Sink
	Logger    core.Logger

	MessageTemplate string
}

// Ensurer holds the inputs captured at construction. None of them change
// afterwards, so a Task running in the background needs no locking.
type Ensurer struct {
	dependency string
	dir        string
	installer  string

	resolver resolver.Resolver
	runner   core.Runner
	sink     record.Sink
	logger   core.Logger
	template string
}

type messageData struct {
	Dependency string
	Dir        string
	Installer  string
	Detail     string
}

func New(opts Options) (*Ensurer, error) {
	if opts.Dependency == "" {
		return nil, errors.New("dependency name is required")
	}
	if !filepath.IsAbs(opts.Dir) {
		return nil, fmt.Errorf("working directory must be absolute: %q", opts.Dir)
	}

	pick := opts.Installer
	if pick == nil {
		pick = platform.Default
	}
	installer := pick(opts.Platform)
	if installer == "" {
		return nil, fmt.Errorf("no installer for platform %q", opts.Platform)
	}

	e := &Ensurer{
		dependency: opts.Dependency,
		dir:        filepath.Clean(opts.Dir),
		installer:  installer,
		resolver:   opts.Resolver,
		runner:     opts.Runner,
		sink:       opts.Sink,
		logger:     opts.Logger,
		template:   opts.MessageTemplate,
	}
	if e.resolver == nil {
		e.resolver = resolver.NewNodeModules()
	}
	if e.runner == nil {
		e.runner = core.ExecRunner{}
	}
	if e.sink == nil {
		e.sink = record.NewWriterSink(os.Stdout)
	}
	if e.logger == nil {
		e.logger = core.NopLogger{}
	}
	if e.template == "" {
		e.template = DefaultMessageTemplate
	}
	return e, nil
}

func (e *Ensurer) Dependency() string { return e.dependency }
func (e *Ensurer) Dir() string        { return e.dir }
func (e *Ensurer) Installer() string  { return e.installer }

// InstallArgs is the argument list handed to the installer.
func (e *Ensurer) InstallArgs() []string {
	return []string{consts.InstallVerb, e.dependency}
}

// Task is the completion handle of one Ensure call.
type Task struct {
	ID string

	done      chan struct{}
	installed bool
	reported  atomic.Bool
}

func newTask() *Task {
	return &Task{
		ID:   uuid.NewString(),
		done: make(chan struct{}),
	}
}

// Done is closed once nothing more will happen for this task.
func (t *Task) Done() <-chan struct{} { return t.done }

func (t *Task) Wait() { <-t.done }

// Installed reports whether the installer was started.
func (t *Task) Installed() bool { return t.installed }

// Reported reports whether a failure record was written. Only meaningful
// after Done is closed.
func (t *Task) Reported() bool { return t.reported.Load() }

// Ensure resolves the dependency and, on a miss, starts the installer in the
// background and returns without waiting for it. It never fails: the only
// outcome of a second miss is one record written to the sink.
//
// Cancelling ctx does not stop a running installer.
func (e *Ensurer) Ensure(ctx context.Context) *Task {
	if ctx == nil {
		ctx = context.Background()
	}
	task := newTask()
	log := e.logger.With("run", task.ID, "dependency", e.dependency)

	first := e.resolve(ctx)
	if first.OK() {
		log.Debug("Dependency resolved", "handle", first.Handle)
		close(task.done)
		return task
	}

	log.Info(fmt.Sprintf("%s not found, running %s", e.dependency, core.CommandLine(e.installer, e.InstallArgs()...)),
		"dir", e.dir, "detail", first.Detail())
	task.installed = true
	go e.install(context.WithoutCancel(ctx), task, log)
	return task
}

func (e *Ensurer) install(ctx context.Context, task *Task, log core.Logger) {
	defer close(task.done)
	defer func() {
		if r := recover(); r != nil {
			log.Debug("Dependency check aborted", "panic", r)
		}
	}()

	// The installer's exit status and output say nothing reliable about the
	// dependency; only the next resolution counts.
	out, err := e.runner.Run(ctx, e.dir, e.installer, e.InstallArgs()...)
	log.Debug("Installer finished", "error", err, "output_bytes", len(out))
	if out != "" {
		log.Trace(out)
	}

	second := e.resolve(ctx)
	if second.OK() {
		log.Debug("Dependency resolved after install", "handle", second.Handle)
		return
	}

	if err := e.sink.Emit(record.NewError(e.message(second.Detail(), log))); err != nil {
		log.Debug("Failure record not written", "error", err)
		return
	}
	task.reported.Store(true)
}

func (e *Ensurer) resolve(ctx context.Context) (res resolver.Resolution) {
	defer func() {
		if r := recover(); r != nil {
			res = resolver.Unresolved(&resolver.NotFoundError{Name: e.dependency, Cause: fmt.Errorf("%v", r)})
		}
	}()
	return e.resolver.Resolve(ctx, e.dependency, e.dir)
}

// Message renders the failure message for detail.
func (e *Ensurer) Message(detail string) (string, error) {
	return core.ExecuteTemplate(e.template, messageData{
		Dependency: e.dependency,
		Dir:        e.dir,
		Installer:  e.installer,
		Detail:     detail,
	})
}

func (e *Ensurer) message(detail string, log core.Logger) string {
	msg, err := e.Message(detail)
	if err == nil {
		return msg
	}
	log.Debug("Message template failed, using default", "error", err)
	msg, err = core.ExecuteTemplate(DefaultMessageTemplate, messageData{
		Dependency: e.dependency,
		Dir:        e.dir,
		Installer:  e.installer,
		Detail:     detail,
	})
	if err != nil {
		return fmt.Sprintf("error: %s maybe not installed\n%s", e.dependency, detail)
	}
	return msg
}

// Ensure runs one check with production defaults: node_modules lookup, real
// processes, records on stdout. dir may be relative.
func Ensure(ctx context.Context, name, dir, goos string, sink record.Sink, logger core.Logger) (*Task, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	e, err := New(Options{
		Dependency: name,
		Dir:        abs,
		Platform:   goos,
		Sink:       sink,
		Logger:     logger,
	})
	if err != nil {
		return nil, err
	}
	return e.Ensure(ctx), nil
}

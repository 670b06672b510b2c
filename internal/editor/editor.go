package editor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"vctag/internal/comments"
	"vctag/internal/history"
	"vctag/internal/services"
	"vctag/internal/services/vorbiscomment"
)

const defaultLockTimeout = 10 * time.Second

// Client is the subprocess surface the editor requires. *vorbiscomment.Client
// satisfies it; tests substitute a stub.
type Client interface {
	List(ctx context.Context, file, exportPath string) ([]string, error)
	Append(ctx context.Context, file string, set comments.Set, escapes bool) error
	Write(ctx context.Context, file string, set comments.Set, escapes bool) error
	AppendFile(ctx context.Context, file, commentsPath string, escapes bool) error
	WriteFile(ctx context.Context, file, commentsPath string, escapes bool) error
	Version(ctx context.Context) (string, error)
}

var _ Client = (*vorbiscomment.Client)(nil)

// Option configures the editor.
type Option func(*Editor)

// WithClient injects the tool client.
func WithClient(client Client) Option {
	return func(e *Editor) {
		if client != nil {
			e.client = client
		}
	}
}

// WithLogger injects the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithHistory enables journaling of append and write operations.
func WithHistory(store *history.Store) Option {
	return func(e *Editor) {
		e.journal = store
	}
}

// WithLockTimeout bounds how long append and write wait for the advisory
// file lock.
func WithLockTimeout(timeout time.Duration) Option {
	return func(e *Editor) {
		if timeout > 0 {
			e.lockTimeout = timeout
		}
	}
}

// Editor is a session bound to a single Ogg Vorbis file. It is not safe
// for concurrent use: the last-result state is overwritten by each call.
// Cross-process writers on the same target are serialized with an
// advisory flock.
type Editor struct {
	path        string
	client      Client
	logger      *slog.Logger
	journal     *history.Store
	lockTimeout time.Duration

	constructErr error
	last         error
}

// New builds a session for the target path. Construction is fail-soft: an
// invalid target is recorded as the session error instead of being
// returned, and every subsequent operation reports it.
func New(path string, opts ...Option) *Editor {
	e := &Editor{
		path:        path,
		client:      vorbiscomment.New(),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		lockTimeout: defaultLockTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.constructErr = validateTarget(path)
	if e.constructErr != nil {
		e.last = e.constructErr
		e.logger.Warn("target validation failed", "target", path, "error", e.constructErr)
	}
	return e
}

// Path returns the session's target file.
func (e *Editor) Path() string {
	return e.path
}

// Append adds tags from src to the target's existing comments.
func (e *Editor) Append(ctx context.Context, src comments.Source, escapes bool) error {
	return e.apply(ctx, "append", src, escapes)
}

// Write replaces all comments on the target with tags from src.
func (e *Editor) Write(ctx context.Context, src comments.Source, escapes bool) error {
	return e.apply(ctx, "write", src, escapes)
}

// ListRaw returns the target's tags as uninterpreted name=value lines.
// When exportPath is non-empty the tool also exports the listing there.
func (e *Editor) ListRaw(ctx context.Context, exportPath string) ([]string, error) {
	if e.constructErr != nil {
		e.last = e.constructErr
		return nil, e.constructErr
	}
	lines, err := e.client.List(ctx, e.path, exportPath)
	e.last = err
	if err != nil {
		e.logger.Error("list failed", "target", e.path, "error", err)
		return nil, err
	}
	return lines, nil
}

// List returns the target's tags grouped by name with per-name value
// order preserved. A tool output line without a separator is reported as
// a malformed-line error rather than silently misparsed.
func (e *Editor) List(ctx context.Context, exportPath string) (comments.Grouped, error) {
	lines, err := e.ListRaw(ctx, exportPath)
	if err != nil {
		return nil, err
	}
	grouped, err := comments.Group(lines)
	e.last = err
	if err != nil {
		e.logger.Error("list output parse failed", "target", e.path, "error", err)
		return nil, err
	}
	return grouped, nil
}

// Version returns the external tool's version output verbatim. It is not
// tied to the session target and does not touch the session error state.
func (e *Editor) Version(ctx context.Context) (string, error) {
	return e.client.Version(ctx)
}

// HasError reports whether the most recent operation failed.
func (e *Editor) HasError() bool {
	return e.last != nil
}

// LastError returns the most recent failure message, or "" when the last
// operation succeeded.
func (e *Editor) LastError() string {
	if e.last == nil {
		return ""
	}
	return e.last.Error()
}

func (e *Editor) apply(ctx context.Context, operation string, src comments.Source, escapes bool) error {
	opID := uuid.NewString()
	logger := e.logger.With("operation", operation, "op_id", opID, "target", e.path)

	tagCount, err := e.runApply(ctx, operation, src, escapes, logger)
	e.last = err
	e.journalRecord(ctx, opID, operation, tagCount, escapes, err)
	if err != nil {
		logger.Error("tag update failed", "error", err)
		return err
	}
	logger.Info("tags updated", "tags", tagCount, "escapes", escapes)
	return nil
}

func (e *Editor) runApply(ctx context.Context, operation string, src comments.Source, escapes bool, logger *slog.Logger) (int, error) {
	if e.constructErr != nil {
		return 0, e.constructErr
	}

	if src.IsFile() {
		count, err := comments.ValidateFile(src.Path())
		if err != nil {
			return 0, err
		}
		logger.Debug("importing comments file", "comments_file", src.Path(), "tags", count)
		return count, e.withLock(ctx, func(ctx context.Context) error {
			if operation == "write" {
				return e.client.WriteFile(ctx, e.path, src.Path(), escapes)
			}
			return e.client.AppendFile(ctx, e.path, src.Path(), escapes)
		})
	}

	set, err := src.Pairs()
	if err != nil {
		return 0, err
	}
	logger.Debug("applying tag pairs", "tags", len(set))
	return len(set), e.withLock(ctx, func(ctx context.Context) error {
		if operation == "write" {
			return e.client.Write(ctx, e.path, set, escapes)
		}
		return e.client.Append(ctx, e.path, set, escapes)
	})
}

// withLock serializes mutating invocations against the target across
// processes. The lock is advisory and released before the call returns.
func (e *Editor) withLock(ctx context.Context, fn func(context.Context) error) error {
	lock := flock.New(e.path)
	lockCtx := ctx
	if e.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, e.lockTimeout)
		defer cancel()
	}
	if _, err := lock.TryLockContext(lockCtx, 100*time.Millisecond); err != nil {
		return fmt.Errorf("lock %s: %w", e.path, err)
	}
	defer func() {
		_ = lock.Unlock()
	}()
	return fn(ctx)
}

func (e *Editor) journalRecord(ctx context.Context, opID, operation string, tagCount int, escapes bool, opErr error) {
	if e.journal == nil {
		return
	}
	outcome := history.OutcomeOK
	if opErr != nil {
		outcome = opErr.Error()
	}
	entry := history.Entry{
		OpID:      opID,
		Operation: operation,
		Target:    e.path,
		TagCount:  tagCount,
		Escapes:   escapes,
		Outcome:   outcome,
	}
	if err := e.journal.Record(ctx, entry); err != nil {
		e.logger.Warn("history record failed", "op_id", opID, "error", err)
	}
}

func validateTarget(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return services.Wrap(services.ErrNotFound, "editor", "construct", fmt.Sprintf("%s is not a file", path), nil)
		}
		return services.Wrap(services.ErrNotFound, "editor", "construct", "", err)
	}
	if info.IsDir() {
		return services.Wrap(services.ErrNotFound, "editor", "construct", fmt.Sprintf("%s is not a file", path), nil)
	}
	if err := unix.Access(path, unix.R_OK); err != nil {
		return services.Wrap(services.ErrNotReadable, "editor", "construct", fmt.Sprintf("%s is not readable", path), nil)
	}
	return nil
}

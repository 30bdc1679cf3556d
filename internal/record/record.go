// Package record defines the single-line JSON record the bootstrap writes to
// stdout and the decoder the editor host uses to read it back.
package record

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/melih-ucgun/fecoding/internal/consts"
)

// FlagError marks a failure record.
const FlagError = 0

type Action string

const (
	ActionShowMessage   Action = "show_message"
	ActionStatusMessage Action = "status_message"
	ActionOpenFile      Action = "open_file"
	ActionUpdateView    Action = "update_view"
)

var (
	ErrNoFlag        = errors.New("invalid output flag")
	ErrInvalidAction = errors.New("invalid output action")
)

// Record is one line of output. Failure records only carry Msg and Flag;
// the remaining fields belong to the host protocol and are omitted when empty.
type Record struct {
	Msg     string `json:"msg"`
	Flag    int    `json:"flag"`
	Action  Action `json:"action,omitempty"`
	Content string `json:"content,omitempty"`
	Message string `json:"message,omitempty"`
}

// NewError builds a failure record.
func NewError(msg string) Record {
	return Record{Msg: msg, Flag: FlagError}
}

// Encode writes r as a single JSON line. HTML characters are left as-is so
// the output matches what JSON.stringify produces.
func Encode(w io.Writer, r Record) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(r)
}

// Sink accepts records and writes them somewhere.
type Sink interface {
	Emit(r Record) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(r Record) error

func (f SinkFunc) Emit(r Record) error { return f(r) }

// WriterSink writes one JSON line per record. Safe for concurrent use.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Emit(r Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Encode(s.w, r)
}

// Decode reads the record out of raw script output. Anything before the
// output marker is noise; without a marker the whole output is parsed.
// Empty output decodes like "{}" and therefore fails with ErrNoFlag.
func Decode(output []byte) (Record, error) {
	if idx := bytes.Index(output, []byte(consts.OutputMarker)); idx >= 0 {
		output = output[idx+len(consts.OutputMarker):]
	}
	output = bytes.TrimSpace(output)
	if len(output) == 0 {
		output = []byte("{}")
	}

	var raw struct {
		Msg     string `json:"msg"`
		Flag    *int   `json:"flag"`
		Action  Action `json:"action"`
		Content string `json:"content"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(output, &raw); err != nil {
		return Record{}, fmt.Errorf("decode output: %w", err)
	}
	if raw.Flag == nil {
		return Record{}, ErrNoFlag
	}

	return Record{
		Msg:     raw.Msg,
		Flag:    *raw.Flag,
		Action:  raw.Action,
		Content: raw.Content,
		Message: raw.Message,
	}, nil
}

// Validate checks the host-protocol part of a record. Failure records
// without an action are valid.
func (r Record) Validate() error {
	switch r.Action {
	case "":
		if r.Flag == FlagError {
			return nil
		}
		return ErrInvalidAction
	case ActionShowMessage, ActionStatusMessage, ActionOpenFile, ActionUpdateView:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidAction, r.Action)
	}
}

// Text returns what a host should display for the record.
func (r Record) Text() string {
	switch r.Action {
	case ActionOpenFile, ActionUpdateView:
		return r.Content
	case ActionShowMessage, ActionStatusMessage:
		return r.Message
	}
	return r.Msg
}

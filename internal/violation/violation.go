// Package violation implements the fatal tier of the storage contracts:
// any precondition break detected by the cells or wrappers is reported here,
// logged with its diagnostic fields, and turned into a panic carrying a
// *Violation. Nothing in this module recovers from it.
package violation

import (
	"fmt"
	"sync"

	"github.com/collectkit/optres/internal/logging"
)

type Kind int8

const (
	EmptyAccess Kind = iota
	WrongState
	UsedAfterMove
	UsedBeforeInit
	NilReference
	BadArgument
)

func (k Kind) String() string {
	switch k {
	case EmptyAccess:
		return "access to empty storage"
	case WrongState:
		return "access in wrong state"
	case UsedAfterMove:
		return "used after move"
	case UsedBeforeInit:
		return "used before construction"
	case NilReference:
		return "nil reference"
	case BadArgument:
		return "bad argument"
	default:
		return "undefined"
	}
}

func (k Kind) IsValid() bool {
	return k.String() != "undefined"
}

// Violation describes a single broken precondition. It is the panic value
// raised by Report.
type Violation struct {
	Kind  Kind
	Op    string
	State string
}

func (v *Violation) Error() string {
	return fmt.Sprintf("contract violation in %s: %s (state %s)", v.Op, v.Kind, v.State)
}

// Handler observes a violation right before the panic is raised. It cannot
// suppress the panic; it exists so tests can inspect diagnostics.
type Handler func(*Violation)

var (
	handlerMu sync.Mutex
	handler   Handler
)

func SetHandler(h Handler) Handler {
	handlerMu.Lock()
	defer handlerMu.Unlock()

	prev := handler
	handler = h
	return prev
}

func currentHandler() Handler {
	handlerMu.Lock()
	defer handlerMu.Unlock()
	return handler
}

// Report logs the diagnostic and panics with the violation. It never returns:
// silent continuation would turn a logic bug into corrupted storage.
func Report(k Kind, op, state string, fields ...logging.Field) {
	v := &Violation{
		Kind:  k,
		Op:    op,
		State: state,
	}

	log := logging.New()
	defer func() { _ = log.Sync() }()

	all := make([]logging.Field, 0, len(fields)+3)
	all = append(all,
		logging.String("op", op),
		logging.String("kind", k.String()),
		logging.String("state", state),
	)
	all = append(all, fields...)
	log.Error("contract violation", all...)

	if h := currentHandler(); h != nil {
		h(v)
	}

	panic(v)
}

package engine

import "fmt"

// Control command names understood by ExecuteControl.
const (
	CommandDelete = "delete"
	CommandReset  = "reset"
)

// Reset targets.
const (
	ResetCursor  = "cursor"
	ResetStorage = "storage"
	ResetAll     = "all"
)

// ExecuteControl runs a control command ("ctl:" in the stream grammars).
// Every invocation, success or failure, leaves exactly one audit record.
//
// "delete" delegates to Delete: a missing target is a not-found outcome and
// not an error. "reset" accepts cursor, storage, or all. Anything else fails.
func (e *Engine) ExecuteControl(cmd, target string) error {
	switch cmd {
	case CommandDelete:
		// Delete writes the audit record itself.
		_, err := e.Delete(target)
		return err

	case CommandReset:
		err := e.reset(target)
		e.record(CommandReset, target, err)
		return err

	default:
		err := &CommandError{
			Code:    ErrCodeUnknownCommand,
			Message: fmt.Sprintf("unknown control command %q", cmd),
		}
		e.record(cmd, target, err)
		return err
	}
}

func (e *Engine) reset(target string) error {
	switch target {
	case ResetCursor:
		e.cursor = defaultCursor()
	case ResetStorage:
		e.storage.Clear()
	case ResetAll:
		e.cursor = defaultCursor()
		e.storage.Clear()
	default:
		return &CommandError{
			Code:    ErrCodeUnknownTarget,
			Message: fmt.Sprintf("unknown reset target %q: want cursor, storage, or all", target),
		}
	}
	e.logger.Debug("reset executed", "target", target)
	return nil
}

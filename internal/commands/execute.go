package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	List   func(ListArgs) (Result, error)
	Add    func(AddArgs) (Result, error)
	Toggle func(ToggleArgs) (Result, error)
	Delete func(DeleteArgs) (Result, error)
	Stats  func() (Result, error)
	Check  func() (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeList:
		if handlers.List == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "list handler not configured"}
		}
		return handlers.List(*cmd.List)
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "toggle handler not configured"}
		}
		return handlers.Toggle(*cmd.Toggle)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "delete handler not configured"}
		}
		return handlers.Delete(*cmd.Delete)
	case TypeStats:
		if handlers.Stats == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "stats handler not configured"}
		}
		return handlers.Stats()
	case TypeCheck:
		if handlers.Check == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "check handler not configured"}
		}
		return handlers.Check()
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

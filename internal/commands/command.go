// Package commands parses and dispatches the one-shot CLI verbs the
// daemon accepts besides its long-running mode.
package commands

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/remindd/internal/model"
)

type Type string

const (
	TypeList   Type = "list"
	TypeAdd    Type = "add"
	TypeToggle Type = "toggle"
	TypeDelete Type = "delete"
	TypeStats  Type = "stats"
	TypeCheck  Type = "check"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type ListArgs struct {
	Filter model.Filter
	Sort   model.Sort
	Search string
}

type AddArgs struct {
	Title string
}

type ToggleArgs struct {
	TaskID string
}

type DeleteArgs struct {
	TaskID string
}

type Command struct {
	Type   Type
	Raw    string
	List   *ListArgs
	Add    *AddArgs
	Toggle *ToggleArgs
	Delete *DeleteArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeList:
		return parseList(input, args)
	case TypeAdd:
		return parseAdd(input, args)
	case TypeToggle:
		return parseToggle(input, args)
	case TypeDelete:
		return parseDelete(input, args)
	case TypeStats:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "stats takes no arguments"}
		}
		return Command{Type: TypeStats, Raw: input}, nil
	case TypeCheck:
		if len(args) > 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "check takes no arguments"}
		}
		return Command{Type: TypeCheck, Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseList(raw string, args []string) (Command, error) {
	list := &ListArgs{Filter: model.FilterAll, Sort: model.SortCreatedDesc}
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "filter:"):
			filter, err := model.ParseFilter(strings.TrimPrefix(lower, "filter:"))
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
			}
			list.Filter = filter
		case strings.HasPrefix(lower, "sort:"):
			sortBy, err := model.ParseSort(strings.TrimPrefix(lower, "sort:"))
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: err.Error()}
			}
			list.Sort = sortBy
		case strings.HasPrefix(lower, "search:"):
			list.Search = arg[len("search:"):]
		default:
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unrecognized list argument: %s", arg)}
		}
	}
	return Command{Type: TypeList, Raw: raw, List: list}, nil
}

func parseAdd(raw string, args []string) (Command, error) {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title}}, nil
}

func parseToggle(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "toggle requires a task id"}
	}
	return Command{Type: TypeToggle, Raw: raw, Toggle: &ToggleArgs{TaskID: args[0]}}, nil
}

func parseDelete(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "delete requires a task id"}
	}
	return Command{Type: TypeDelete, Raw: raw, Delete: &DeleteArgs{TaskID: args[0]}}, nil
}

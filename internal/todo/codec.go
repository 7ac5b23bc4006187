package todo

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/reflux/internal/entity"
)

// Action names used by the scenario harness and the journal.
const (
	ActionAdd        = "add"
	ActionUpdate     = "update"
	ActionRemove     = "remove"
	ActionMarkDone   = "mark_done"
	ActionChangeText = "change_text"
)

// EncodeAction flattens an action into a stable name and argument map for
// journaling. The inverse of DecodeAction.
func EncodeAction(action Action) (string, map[string]any, error) {
	switch a := action.(type) {
	case Entity:
		switch op := a.Op.(type) {
		case entity.Add[Todo]:
			return ActionAdd, todoArgs(op.Entity), nil
		case entity.Update[Todo]:
			return ActionUpdate, todoArgs(op.Entity), nil
		case entity.Remove[Todo]:
			return ActionRemove, map[string]any{"id": op.ID}, nil
		default:
			return "", nil, &entity.UnknownActionError{Action: a.Op}
		}
	case MarkDone:
		return ActionMarkDone, map[string]any{"id": a.ID, "done": a.Done}, nil
	case ChangeText:
		return ActionChangeText, map[string]any{"id": a.ID, "text": a.Text}, nil
	default:
		return "", nil, &entity.UnknownActionError{Action: action}
	}
}

// DecodeAction rebuilds an action from its name and argument map.
// Accepts the numeric representations produced by both the YAML and JSON
// decoders.
func DecodeAction(name string, args map[string]any) (Action, error) {
	switch name {
	case ActionAdd, ActionUpdate:
		t, err := todoFromArgs(args)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", name, err)
		}
		if name == ActionAdd {
			return AddTodo(t), nil
		}
		return UpdateTodo(t), nil

	case ActionRemove:
		id, err := intArg(args, "id")
		if err != nil {
			return nil, fmt.Errorf("decode remove: %w", err)
		}
		return RemoveTodo(id), nil

	case ActionMarkDone:
		id, err := intArg(args, "id")
		if err != nil {
			return nil, fmt.Errorf("decode mark_done: %w", err)
		}
		done, err := boolArg(args, "done")
		if err != nil {
			return nil, fmt.Errorf("decode mark_done: %w", err)
		}
		return MarkDone{ID: id, Done: done}, nil

	case ActionChangeText:
		id, err := intArg(args, "id")
		if err != nil {
			return nil, fmt.Errorf("decode change_text: %w", err)
		}
		text, err := stringArg(args, "text")
		if err != nil {
			return nil, fmt.Errorf("decode change_text: %w", err)
		}
		return ChangeText{ID: id, Text: text}, nil

	default:
		return nil, fmt.Errorf("decode action: unknown name %q", name)
	}
}

func todoArgs(t Todo) map[string]any {
	return map[string]any{"id": t.ID, "task": t.Task, "done": t.Done}
}

func todoFromArgs(args map[string]any) (Todo, error) {
	id, err := intArg(args, "id")
	if err != nil {
		return Todo{}, err
	}
	task, err := stringArg(args, "task")
	if err != nil {
		return Todo{}, err
	}
	// done defaults to false when omitted.
	done := false
	if _, present := args["done"]; present {
		done, err = boolArg(args, "done")
		if err != nil {
			return Todo{}, err
		}
	}
	return Todo{ID: id, Task: task, Done: done}, nil
}

func intArg(args map[string]any, key string) (int, error) {
	v, ok := args[key]
	if !ok {
		return 0, fmt.Errorf("missing arg %q", key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("arg %q: %w", key, err)
		}
		return int(i), nil
	case float64:
		i := int(n)
		if float64(i) != n {
			return 0, fmt.Errorf("arg %q: not an integer: %v", key, n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("arg %q: expected int, got %T", key, v)
	}
}

func stringArg(args map[string]any, key string) (string, error) {
	v, ok := args[key]
	if !ok {
		return "", fmt.Errorf("missing arg %q", key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("arg %q: expected string, got %T", key, v)
	}
	return s, nil
}

func boolArg(args map[string]any, key string) (bool, error) {
	v, ok := args[key]
	if !ok {
		return false, fmt.Errorf("missing arg %q", key)
	}
	b, ok := v.(bool)
	if !ok {
		return false, fmt.Errorf("arg %q: expected bool, got %T", key, v)
	}
	return b, nil
}

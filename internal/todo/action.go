package todo

import "github.com/roach88/reflux/internal/entity"

// Action is the sealed union of todo actions.
//
// Entity wraps the generic collection operations; MarkDone and ChangeText
// are domain actions targeting one field of one todo.
type Action interface {
	isTodoAction()
}

// Entity wraps a generic entity operation on the todo collection.
type Entity struct {
	Op entity.Action[Todo]
}

// MarkDone sets the done flag of the todo bound to ID.
type MarkDone struct {
	ID   int
	Done bool
}

// ChangeText replaces the task text of the todo bound to ID.
type ChangeText struct {
	ID   int
	Text string
}

func (Entity) isTodoAction()     {}
func (MarkDone) isTodoAction()   {}
func (ChangeText) isTodoAction() {}

// AddTodo is shorthand for an Entity-wrapped add.
func AddTodo(t Todo) Action {
	return Entity{Op: entity.Add[Todo]{Entity: t}}
}

// UpdateTodo is shorthand for an Entity-wrapped update.
func UpdateTodo(t Todo) Action {
	return Entity{Op: entity.Update[Todo]{Entity: t}}
}

// RemoveTodo is shorthand for an Entity-wrapped remove.
func RemoveTodo(id int) Action {
	return Entity{Op: entity.Remove[Todo]{ID: id}}
}

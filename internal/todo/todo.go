package todo

import "github.com/roach88/reflux/internal/entity"

// Todo is a single todo item.
type Todo struct {
	ID   int
	Task string
	Done bool
}

// New creates an open todo with the given id and task text.
func New(id int, task string) Todo {
	return Todo{ID: id, Task: task}
}

// EntityID implements entity.Identifiable.
func (t Todo) EntityID() int { return t.ID }

// State is the application state: a single todo collection.
//
// State is a value; reducers return a new State rather than mutating.
type State struct {
	Todos entity.Collection[Todo]
}

// NewState returns an empty State.
func NewState() State {
	return State{Todos: entity.NewCollection[Todo]()}
}

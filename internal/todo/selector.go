package todo

// DoneFlag returns a selector projecting the done flag of the todo bound to
// id, or nil when no such todo exists.
func DoneFlag(id int) func(State) *bool {
	return func(s State) *bool {
		t, ok := s.Todos.Get(id)
		if !ok {
			return nil
		}
		done := t.Done
		return &done
	}
}

// Order projects the todo ids in insertion order.
func Order(s State) []int {
	return s.Todos.IDs()
}

// Tasks projects the task texts in insertion order.
func Tasks(s State) []string {
	all := s.Todos.All()
	tasks := make([]string, len(all))
	for i, t := range all {
		tasks[i] = t.Task
	}
	return tasks
}

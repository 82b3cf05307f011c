package mdast

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(s Statement) error

// Walk performs a pre-order traversal of the statements under root.
// Tokens are not visited. If walkFunc returns a non-nil error, the walk stops
// immediately and returns that error.
func Walk(root Statement, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		return err
	}

	for _, part := range root.Parts() {
		child, ok := part.(Statement)
		if !ok {
			continue
		}
		if err := Walk(child, walkFunc); err != nil {
			return err
		}
	}

	return nil
}

// WalkWithContext performs a traversal with enter and leave callbacks.
// Enter is called before visiting children, leave is called after.
// Either callback may be nil.
func WalkWithContext(root Statement, enter, leave WalkFunc) error {
	if root == nil {
		return nil
	}

	if enter != nil {
		if err := enter(root); err != nil {
			return err
		}
	}

	for _, part := range root.Parts() {
		child, ok := part.(Statement)
		if !ok {
			continue
		}
		if err := WalkWithContext(child, enter, leave); err != nil {
			return err
		}
	}

	if leave != nil {
		if err := leave(root); err != nil {
			return err
		}
	}

	return nil
}

// FindAll returns all statements matching the predicate in pre-order.
func FindAll(root Statement, predicate func(s Statement) bool) []Statement {
	var result []Statement

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(s Statement) error {
		if predicate(s) {
			result = append(result, s)
		}
		return nil
	})

	return result
}

// FindFirst returns the first statement matching the predicate, or nil.
func FindFirst(root Statement, predicate func(s Statement) bool) Statement {
	var found Statement

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(s Statement) error {
		if predicate(s) {
			found = s
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all statements of the specified kind.
func FindByKind(root Statement, kind Kind) []Statement {
	return FindAll(root, func(s Statement) bool {
		return s.Kind() == kind
	})
}

// ParentOf finds the statement that holds child as a direct part and the
// index of that part. Statements carry no parent pointers, so the parent is
// recovered by walking from root.
func ParentOf(root, child Statement) (Statement, int, bool) {
	var parent Statement
	index := -1

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(s Statement) error {
		for i, part := range s.Parts() {
			if st, ok := part.(Statement); ok && st == child {
				parent, index = s, i
				return errStopWalk
			}
		}
		return nil
	})

	return parent, index, parent != nil
}

// Contains reports whether child is root or a descendant of root.
func Contains(root, child Statement) bool {
	return FindFirst(root, func(s Statement) bool { return s == child }) != nil
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}

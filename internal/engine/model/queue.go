package model

// Queue is the scene's ordered collection of model groups. Render
// order follows queue order, and focus navigation walks it cyclically.
type Queue struct {
	Groups []*TexturedModel
}

// Add puts a group at the front of the queue.
func (q *Queue) Add(txm *TexturedModel) {
	q.Groups = append([]*TexturedModel{txm}, q.Groups...)
}

// AddTail puts a group at the end of the queue.
func (q *Queue) AddTail(txm *TexturedModel) {
	q.Groups = append(q.Groups, txm)
}

// First returns the head group, or nil for an empty queue.
func (q *Queue) First() *TexturedModel {
	if len(q.Groups) == 0 {
		return nil
	}
	return q.Groups[0]
}

// NextNonEmpty walks the queue cyclically from cur, forward or
// backward, and returns the first group that has entities. A nil cur
// starts from the queue's edge. Returns nil when no group has entities.
func (q *Queue) NextNonEmpty(cur *TexturedModel, fwd bool) *TexturedModel {
	n := len(q.Groups)
	if n == 0 {
		return nil
	}

	start := -1
	for i, g := range q.Groups {
		if g == cur {
			start = i
			break
		}
	}
	dir := 1
	if !fwd {
		dir = -1
		if start == -1 {
			start = n
		}
	}

	for step := 1; step <= n; step++ {
		i := ((start+dir*step)%n + n) % n
		if !q.Groups[i].Empty() {
			return q.Groups[i]
		}
	}
	return nil
}

// ForEachEntity visits every entity of every group in queue order.
func (q *Queue) ForEachEntity(fn func(e *Entity)) {
	for _, g := range q.Groups {
		for _, e := range g.Entities {
			fn(e)
		}
	}
}

// Update runs one frame's behavior update over all entities.
func (q *Queue) Update() {
	for _, g := range q.Groups {
		// An entity's update may destroy it, so walk a copy.
		ents := append([]*Entity(nil), g.Entities...)
		for _, e := range ents {
			e.Update()
		}
	}
}

// Release destroys every entity and drops the queue's reference on each
// group, releasing the underlying models.
func (q *Queue) Release() {
	for _, g := range q.Groups {
		ents := append([]*Entity(nil), g.Entities...)
		for _, e := range ents {
			e.Destroy()
		}
		g.Release()
	}
	q.Groups = nil
}

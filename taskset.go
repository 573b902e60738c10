package barelymusician

import "sort"

// taskSet is an ordered set of tasks keyed by a float64 (position or end
// position) with ties broken by each task's creation sequence number, the
// idiomatic stand-in for the original's std::set<(double, Task*)>. Go has
// no ordered container in the standard library and none of the example
// repos in the retrieval pack vendor one, so this keeps the two small
// sorted slices Performer needs rather than reaching for a balanced tree.
type taskSet struct {
	tasks []*Task
	key   func(*Task) float64
}

func newTaskSet(key func(*Task) float64) taskSet {
	return taskSet{key: key}
}

func (s *taskSet) less(a, b *Task) bool {
	ka, kb := s.key(a), s.key(b)
	if ka != kb {
		return ka < kb
	}
	return a.seq < b.seq
}

// indexOf finds t's exact position. Every task has a unique (key, seq)
// pair, so the first index not-less-than t is either t itself or absent.
func (s *taskSet) indexOf(t *Task) int {
	i := sort.Search(len(s.tasks), func(i int) bool { return !s.less(s.tasks[i], t) })
	if i < len(s.tasks) && s.tasks[i] == t {
		return i
	}
	return -1
}

func (s *taskSet) insert(t *Task) {
	i := sort.Search(len(s.tasks), func(i int) bool { return s.less(t, s.tasks[i]) })
	s.tasks = append(s.tasks, nil)
	copy(s.tasks[i+1:], s.tasks[i:])
	s.tasks[i] = t
}

// remove deletes t. If t's key changed after it was inserted, the binary
// search can miss its stale slot, so t is then found by identity.
func (s *taskSet) remove(t *Task) {
	i := s.indexOf(t)
	if i < 0 {
		for j, other := range s.tasks {
			if other == t {
				i = j
				break
			}
		}
	}
	if i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
}

func (s *taskSet) first() (*Task, bool) {
	if len(s.tasks) == 0 {
		return nil, false
	}
	return s.tasks[0], true
}

// lowerBound returns the index of the first task whose key is >= target.
func (s *taskSet) lowerBound(target float64) int {
	return sort.Search(len(s.tasks), func(i int) bool { return s.key(s.tasks[i]) >= target })
}

func (s *taskSet) len() int { return len(s.tasks) }

func (s *taskSet) at(i int) *Task { return s.tasks[i] }

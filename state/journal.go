// Copyright (c) 2023 The Gavel developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

// journal maintains uncommitted writes in a stack of levels.
// Each level inherits key/value of the level below it, so it acts as
// a map with checkpoint-revert manner.
type journal struct {
	src         srcGetter
	levels      []*level
	keyRevision map[string]*revStack
}

type level struct {
	kvs     map[string][]byte
	entries []*entry
}

type entry struct {
	key   string
	value []byte
}

// srcGetter loads the value of key from the backing source.
type srcGetter func(key string) (value []byte, exist bool, err error)

func newJournal(src srcGetter) *journal {
	return &journal{
		src:         src,
		keyRevision: make(map[string]*revStack),
	}
}

// push pushes a new level and returns the depth before push.
func (j *journal) push() int {
	j.levels = append(j.levels, &level{kvs: make(map[string][]byte)})
	return len(j.levels) - 1
}

// pop reverts all put operations since the last push.
func (j *journal) pop() {
	top := j.levels[len(j.levels)-1]
	for key := range top.kvs {
		revs := j.keyRevision[key]
		revs.pop()
		if len(*revs) == 0 {
			delete(j.keyRevision, key)
		}
	}
	j.levels = j.levels[:len(j.levels)-1]
}

// popTo pops levels until depth is reached.
func (j *journal) popTo(depth int) {
	for len(j.levels) > depth {
		j.pop()
	}
}

func (j *journal) depth() int { return len(j.levels) }

// get returns the latest written value for key, falling back to src.
func (j *journal) get(key string) ([]byte, bool, error) {
	if revs, ok := j.keyRevision[key]; ok {
		lvl := j.levels[revs.top()]
		if v, ok := lvl.kvs[key]; ok {
			return v, true, nil
		}
	}
	return j.src(key)
}

// put writes key value into the top level.
// It panics if no level was pushed.
func (j *journal) put(key string, value []byte) {
	top := j.levels[len(j.levels)-1]
	top.kvs[key] = value
	top.entries = append(top.entries, &entry{key, value})

	rev := len(j.levels) - 1
	if revs, ok := j.keyRevision[key]; ok {
		if revs.top() != rev {
			revs.push(rev)
		}
	} else {
		j.keyRevision[key] = &revStack{rev}
	}
}

// journalAll iterates all put entries in order.
func (j *journal) journalAll(cb func(key string, value []byte)) {
	for _, lvl := range j.levels {
		for _, e := range lvl.entries {
			cb(e.key, e.value)
		}
	}
}

type revStack []int

func (s *revStack) push(rev int) { *s = append(*s, rev) }
func (s *revStack) pop()         { *s = (*s)[:len(*s)-1] }
func (s revStack) top() int      { return s[len(s)-1] }

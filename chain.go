package hookrelay

import "fmt"

// chain maintains the two ordered implementation lists for one hook. List
// order is execution order: the trylast block, then normal entries, then the
// tryfirst block, each in registration order. Wrappers and non-wrappers are
// ordered independently by the same rule.
type chain struct {
	wrappers    []*Impl
	nonWrappers []*Impl
}

// insert places impl into the wrapper or non-wrapper list according to its
// flags, preserving registration order within each priority block.
func (c *chain) insert(impl *Impl) {
	list := &c.nonWrappers
	if impl.IsWrapper() {
		list = &c.wrappers
	}

	switch {
	case impl.tryLast:
		// after the existing trylast run, keeping FIFO among trylast entries
		i := 0
		for i < len(*list) && (*list)[i].tryLast {
			i++
		}
		*list = insertAt(*list, i, impl)
	case impl.tryFirst:
		*list = append(*list, impl)
	default:
		// before any trailing tryfirst block
		i := len(*list)
		for i > 0 && (*list)[i-1].tryFirst {
			i--
		}
		*list = insertAt(*list, i, impl)
	}
}

// remove deletes the first entry whose owner identity matches, searching
// non-wrappers then wrappers. Removal never reorders the survivors.
func (c *chain) remove(owner any) error {
	for _, list := range []*[]*Impl{&c.nonWrappers, &c.wrappers} {
		for i, impl := range *list {
			if impl.owner == owner {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return nil
			}
		}
	}
	return fmt.Errorf("%w: owner %v", ErrImplNotFound, owner)
}

// removeEntry deletes the exact entry, matching by pointer identity. Used to
// back out an insertion that could not be completed; owner matching would be
// wrong here because several entries may share an owner.
func (c *chain) removeEntry(target *Impl) {
	for _, list := range []*[]*Impl{&c.nonWrappers, &c.wrappers} {
		for i, impl := range *list {
			if impl == target {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return
			}
		}
	}
}

// sequence returns the dispatch order: non-wrappers followed by wrappers, so
// wrappers always execute outermost.
func (c *chain) sequence() []*Impl {
	seq := make([]*Impl, 0, len(c.nonWrappers)+len(c.wrappers))
	seq = append(seq, c.nonWrappers...)
	seq = append(seq, c.wrappers...)
	return seq
}

// snapshot copies both lists so a temporary mutation can be rolled back.
func (c *chain) snapshot() (nonWrappers, wrappers []*Impl) {
	return append([]*Impl(nil), c.nonWrappers...), append([]*Impl(nil), c.wrappers...)
}

// restore replaces both lists with a previously taken snapshot.
func (c *chain) restore(nonWrappers, wrappers []*Impl) {
	c.nonWrappers = nonWrappers
	c.wrappers = wrappers
}

func insertAt(list []*Impl, i int, impl *Impl) []*Impl {
	list = append(list, nil)
	copy(list[i+1:], list[i:])
	list[i] = impl
	return list
}

package store

import (
	"bytes"

	"github.com/google/btree"
	"github.com/iov-one/milestone/errors"
)

// entriesIn returns cached entries within [start, end) in iteration order.
// A nil bound leaves the range open on that side.
func entriesIn(tree *btree.BTree, start, end []byte, reverse bool) []entry {
	var res []entry
	collect := func(item btree.Item) bool {
		res = append(res, item.(entry))
		return true
	}
	switch {
	case start == nil && end == nil:
		tree.Ascend(collect)
	case start == nil:
		tree.AscendLessThan(entry{key: end}, collect)
	case end == nil:
		tree.AscendGreaterOrEqual(entry{key: start}, collect)
	default:
		tree.AscendRange(entry{key: start}, entry{key: end}, collect)
	}
	if reverse {
		for i, j := 0, len(res)-1; i < j; i, j = i+1, j-1 {
			res[i], res[j] = res[j], res[i]
		}
	}
	return res
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

// itemIter combines the cached items with the results of the parent,
// taking into consideration overwrites and deletes.
type itemIter struct {
	items []entry
	idx   int

	// if we are iterating in a cache-wrap (and who isn't),
	// we need to combine this iterator with the parent
	parent      Iterator
	parentKey   []byte
	parentValue []byte
	peeked      bool
	parentDone  bool

	reverse bool
}

var _ Iterator = (*itemIter)(nil)

func newItemIter(items []entry, parent Iterator, reverse bool) *itemIter {
	return &itemIter{
		items:   items,
		parent:  parent,
		reverse: reverse,
	}
}

// Next returns the next item, skipping all keys deleted in this cache.
func (i *itemIter) Next() (key, value []byte, err error) {
	for {
		if err := i.peekParent(); err != nil {
			return nil, nil, err
		}

		switch i.firstKey() {
		case none:
			return nil, nil, errors.Wrap(errors.ErrIteratorDone, "cache iterator")
		case parent:
			i.peeked = false
			return i.parentKey, i.parentValue, nil
		case both:
			// cached value always overwrites the parent
			i.peeked = false
			fallthrough
		case us:
			e := i.items[i.idx]
			i.idx++
			if !e.deleted {
				return e.key, e.value, nil
			}
			// deleted in this cache, move on
		}
	}
}

// Release releases the Iterator.
func (i *itemIter) Release() {
	if i.parent != nil {
		i.parent.Release()
	}
	i.items = nil
}

// peekParent loads the next parent item if none is waiting.
func (i *itemIter) peekParent() error {
	if i.peeked || i.parentDone || i.parent == nil {
		return nil
	}
	key, value, err := i.parent.Next()
	if errors.ErrIteratorDone.Is(err) {
		i.parentDone = true
		return nil
	}
	if err != nil {
		return err
	}
	i.parentKey, i.parentValue, i.peeked = key, value, true
	return nil
}

// firstKey selects the iterator with the lowest key (highest when
// iterating in reverse) if any
func (i *itemIter) firstKey() source {
	ours := i.idx < len(i.items)
	// if only one or none is valid, it is clear which to use
	if !i.peeked {
		if !ours {
			return none
		}
		return us
	} else if !ours {
		return parent
	}

	cmp := bytes.Compare(i.parentKey, i.items[i.idx].key)
	if i.reverse {
		cmp = -cmp
	}
	switch {
	case cmp < 0:
		return parent
	case cmp > 0:
		return us
	default:
		return both
	}
}

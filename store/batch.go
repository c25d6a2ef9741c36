package store

// Op is a single recorded write.
type Op struct {
	key   []byte
	value []byte
	del   bool
}

func SetOp(key, value []byte) Op { return Op{key: key, value: value} }

func DelOp(key []byte) Op { return Op{key: key, del: true} }

// Apply runs the write against out.
func (o Op) Apply(out SetDeleter) error {
	if o.del {
		return out.Delete(o.key)
	}
	return out.Set(o.key, o.value)
}

// NonAtomicBatch records writes and replays them in order on Write. A
// failure in the middle leaves out partially written, so it must only be
// used in front of in memory stores.
type NonAtomicBatch struct {
	out SetDeleter
	ops []Op
}

var _ Batch = (*NonAtomicBatch)(nil)

func NewNonAtomicBatch(out SetDeleter) *NonAtomicBatch {
	return &NonAtomicBatch{out: out}
}

func (b *NonAtomicBatch) Set(key, value []byte) error {
	b.ops = append(b.ops, SetOp(key, value))
	return nil
}

func (b *NonAtomicBatch) Delete(key []byte) error {
	b.ops = append(b.ops, DelOp(key))
	return nil
}

func (b *NonAtomicBatch) Write() error {
	for i, op := range b.ops {
		if err := op.Apply(b.out); err != nil {
			b.ops = b.ops[i:]
			return err
		}
	}
	b.ops = nil
	return nil
}

// ShowOps returns the writes recorded so far. Tests only.
func (b *NonAtomicBatch) ShowOps() []Op {
	return b.ops
}

package app

import (
	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
)

// chainIDKey is kept outside of any bucket namespace. The "_ms:" prefix is
// reserved for application internal data.
var chainIDKey = []byte("_ms:chainID")

// blockState owns the committed store and the two cache layers sitting on
// top of it. DeliverTx writes go to deliver and are flushed on commit.
// CheckTx writes go to check and are thrown away on commit.
type blockState struct {
	committed milestone.CommitKVStore
	deliver   milestone.KVCacheWrap
	check     milestone.KVCacheWrap
}

func loadBlockState(db milestone.CommitKVStore) (*blockState, error) {
	if err := db.LoadLatestVersion(); err != nil {
		return nil, errors.Wrap(err, "load latest version")
	}
	st := &blockState{committed: db}
	st.reset()
	return st, nil
}

func (st *blockState) reset() {
	st.deliver = st.committed.CacheWrap()
	st.check = st.committed.CacheWrap()
}

func (st *blockState) latest() (milestone.CommitID, error) {
	return st.committed.LatestVersion()
}

// commit persists everything delivered since the last block.
func (st *blockState) commit() (milestone.CommitID, error) {
	if err := st.deliver.Write(); err != nil {
		return milestone.CommitID{}, errors.Wrap(err, "flush deliver cache")
	}
	st.check.Discard()
	id, err := st.committed.Commit()
	if err != nil {
		return id, errors.Wrap(err, "commit")
	}
	st.reset()
	return id, nil
}

// snapshot returns a read only view of the committed state. The caller
// must discard it.
func (st *blockState) snapshot() milestone.KVCacheWrap {
	return st.committed.CacheWrap()
}

func readChainID(db milestone.ReadOnlyKVStore) (string, error) {
	raw, err := db.Get(chainIDKey)
	if err != nil {
		return "", errors.Wrap(err, "read chain id")
	}
	return string(raw), nil
}

// writeChainID persists the chain id once. A second call always fails.
func writeChainID(db milestone.KVStore, chainID string) error {
	if !milestone.IsValidChainID(chainID) {
		return errors.Wrapf(errors.ErrInput, "chain id %q", chainID)
	}
	switch exists, err := db.Has(chainIDKey); {
	case err != nil:
		return errors.Wrap(err, "read chain id")
	case exists:
		return errors.Wrap(errors.ErrImmutable, "chain id already set")
	}
	return db.Set(chainIDKey, []byte(chainID))
}

package server

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// keyInitializer requires the "key" option to be a non empty string.
type keyInitializer struct{}

func (keyInitializer) FromGenesis(opts milestone.Options, db milestone.KVStore) error {
	var val string
	if err := opts.ReadOptions("key", &val); err != nil {
		return err
	}
	if val == "" {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	return db.Set([]byte("key"), []byte(val))
}

func TestValidateGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "milestone-validate")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
		return path
	}

	cases := map[string]struct {
		paths   []string
		wantErr *errors.Error
	}{
		"valid genesis": {
			paths: []string{write("valid.json", `{"app_state": {"key": "value"}}`)},
		},
		"initializer failure": {
			paths:   []string{write("empty-key.json", `{"app_state": {"key": ""}}`)},
			wantErr: errors.ErrEmpty,
		},
		"missing app state": {
			paths:   []string{write("no-state.json", `{"chain_id": "test"}`)},
			wantErr: errors.ErrEmpty,
		},
		"not a json file": {
			paths:   []string{write("garbage.json", `genesis`)},
			wantErr: errors.ErrInput,
		},
		"second file invalid": {
			paths: []string{
				filepath.Join(dir, "valid.json"),
				filepath.Join(dir, "garbage.json"),
			},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := ValidateGenesis(keyInitializer{}, tc.paths)
			if !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestParseStartFlags(t *testing.T) {
	flags, err := parseStartFlags([]string{"-bind", "tcp://0.0.0.0:1234", "-debug", "-metrics", ":9090"})
	require.NoError(t, err)
	assert.Equal(t, "tcp://0.0.0.0:1234", flags.bind)
	assert.True(t, flags.debug)
	assert.Equal(t, ":9090", flags.metrics)

	_, err = parseStartFlags([]string{"-unknown"})
	assert.True(t, errors.ErrInput.Is(err))
}

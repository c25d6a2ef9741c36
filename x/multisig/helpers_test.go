package multisig

import (
	"encoding/json"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/errors"
)

// testAction is a privileged action used by the tests. Executing it writes
// the project ID under the Key value unless Fail is set.
type testAction struct {
	Project []byte `json:"project"`
	Key     string `json:"key"`
	Fail    bool   `json:"fail"`
}

var _ Action = (*testAction)(nil)

func (a *testAction) GetProjectID() []byte { return a.Project }

func (testAction) Path() string { return "test/action" }

func (a *testAction) Marshal() ([]byte, error) { return json.Marshal(a) }

func (a *testAction) Unmarshal(raw []byte) error { return json.Unmarshal(raw, a) }

func (a *testAction) Validate() error {
	if a.Key == "" {
		return errors.Wrap(errors.ErrMsg, "missing key")
	}
	return nil
}

func decodeTestAction(raw []byte) (Action, error) {
	var a testAction
	if err := a.Unmarshal(raw); err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return &a, nil
}

func mustEncode(a *testAction) []byte {
	raw, err := a.Marshal()
	if err != nil {
		panic(err)
	}
	return raw
}

// recordingExecutor counts calls and requires the project authority to be
// present in the context.
type recordingExecutor struct {
	calls int
}

func (e *recordingExecutor) Execute(ctx milestone.Context, db milestone.KVStore, msg milestone.Msg) (*milestone.DeliverResult, error) {
	e.calls++
	a := msg.(*testAction)
	if !(Authenticate{}).HasAddress(ctx, AuthorityCondition(a.Project).Address()) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no project authority")
	}
	if err := db.Set([]byte(a.Key), a.Project); err != nil {
		return nil, err
	}
	if a.Fail {
		return nil, errors.Wrap(errors.ErrState, "action failed")
	}
	return &milestone.DeliverResult{Data: []byte(a.Key)}, nil
}

package project

import (
	"testing"

	"github.com/iov-one/milestone"
	"github.com/iov-one/milestone/coin"
	"github.com/iov-one/milestone/errors"
	"github.com/iov-one/milestone/weavetest"
)

func TestInitializeProjectMsgValidate(t *testing.T) {
	freelancer := weavetest.NewCondition().Address()
	observer := weavetest.NewCondition().Address()

	cases := map[string]struct {
		msg     milestone.Msg
		wantErr *errors.Error
	}{
		"valid": {
			msg: &InitializeProjectMsg{
				Freelancer: freelancer,
				Observer:   observer,
				Funds:      coin.NewCoinp(100, "IOV"),
				Milestones: 4,
			},
			wantErr: nil,
		},
		"missing freelancer": {
			msg: &InitializeProjectMsg{
				Observer:   observer,
				Funds:      coin.NewCoinp(100, "IOV"),
				Milestones: 4,
			},
			wantErr: errors.ErrInput,
		},
		"missing funds": {
			msg: &InitializeProjectMsg{
				Freelancer: freelancer,
				Observer:   observer,
				Milestones: 4,
			},
			wantErr: errors.ErrAmount,
		},
		"negative funds": {
			msg: &InitializeProjectMsg{
				Freelancer: freelancer,
				Observer:   observer,
				Funds:      coin.NewCoinp(-5, "IOV"),
				Milestones: 4,
			},
			wantErr: errors.ErrAmount,
		},
		"no milestones": {
			msg: &InitializeProjectMsg{
				Freelancer: freelancer,
				Observer:   observer,
				Funds:      coin.NewCoinp(100, "IOV"),
			},
			wantErr: errors.ErrMsg,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestProjectIDMsgValidate(t *testing.T) {
	id := weavetest.SequenceID(1)

	cases := map[string]struct {
		msg     milestone.Msg
		wantErr *errors.Error
	}{
		"start":          {msg: &StartProjectMsg{ProjectID: id}},
		"mark milestone": {msg: &MarkMilestoneMsg{ProjectID: id}},
		"stop":           {msg: &StopProjectMsg{ProjectID: id}},
		"withdraw":       {msg: &WithdrawMsg{ProjectID: id}},
		"cancel":         {msg: &CancelProjectMsg{ProjectID: id}},
		"start without id": {
			msg:     &StartProjectMsg{},
			wantErr: errors.ErrInput,
		},
		"withdraw with a short id": {
			msg:     &WithdrawMsg{ProjectID: []byte{1, 2, 3}},
			wantErr: errors.ErrInput,
		},
		"cancel with a long id": {
			msg:     &CancelProjectMsg{ProjectID: make([]byte, 20)},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

func TestUpdateConfigurationMsgValidate(t *testing.T) {
	cases := map[string]struct {
		msg     *UpdateConfigurationMsg
		wantErr *errors.Error
	}{
		"empty patch is a no-op": {
			msg: &UpdateConfigurationMsg{Patch: &Configuration{}},
		},
		"missing patch": {
			msg:     &UpdateConfigurationMsg{},
			wantErr: errors.ErrMsg,
		},
		"milestone limit": {
			msg:     &UpdateConfigurationMsg{Patch: &Configuration{MaxMilestones: 256}},
			wantErr: errors.ErrInput,
		},
		"invalid ticker": {
			msg:     &UpdateConfigurationMsg{Patch: &Configuration{Ticker: "x"}},
			wantErr: errors.ErrCurrency,
		},
		"invalid owner": {
			msg:     &UpdateConfigurationMsg{Patch: &Configuration{Owner: []byte{1}}},
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := tc.msg.Validate(); !tc.wantErr.Is(err) {
				t.Fatalf("unexpected error: %+v", err)
			}
		})
	}
}

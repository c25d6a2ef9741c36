package project

import (
	"testing"

	"github.com/iov-one/milestone/weavetest"
	"github.com/iov-one/milestone/x/multisig"
	. "github.com/smartystreets/goconvey/convey"
)

func TestProjectLifecycle(t *testing.T) {
	Convey("Given a project with 100 IOV split into 4 milestones", t, func() {
		client := weavetest.NewCondition()
		freelancer := weavetest.NewCondition()
		observer := weavetest.NewCondition()

		env := newTestEnv(t)
		env.fund(t, client, 100)
		id := env.initialize(t, client, freelancer, observer, 100, 4)
		custody := CustodyCondition(id).Address()

		So(env.project(t, id).Status, ShouldEqual, Pending)
		So(env.balance(t, custody), ShouldEqual, 100)
		So(env.balance(t, client.Address()), ShouldEqual, 0)

		Convey("A single approval does not start it", func() {
			txID := env.propose(t, client, &StartProjectMsg{ProjectID: id})
			So(env.project(t, id).Status, ShouldEqual, Pending)

			Convey("Approving again with the proposer changes nothing", func() {
				So(env.approve(client, txID), ShouldBeNil)
				So(env.project(t, id).Status, ShouldEqual, Pending)
			})

			Convey("A non owner cannot approve", func() {
				err := env.approve(weavetest.NewCondition(), txID)
				So(multisig.ErrInvalidOwner.Is(err), ShouldBeTrue)
			})
		})

		Convey("When the client proposes to start and the freelancer approves", func() {
			txID := env.propose(t, client, &StartProjectMsg{ProjectID: id})
			So(env.approve(freelancer, txID), ShouldBeNil)

			So(env.project(t, id).Status, ShouldEqual, Running)

			Convey("The executed proposal cannot be approved again", func() {
				err := env.approve(observer, txID)
				So(multisig.ErrAlreadyExecuted.Is(err), ShouldBeTrue)
			})

			Convey("Withdrawing before any milestone pays nothing", func() {
				_, err := env.deliver(freelancer, &WithdrawMsg{ProjectID: id})
				So(err, ShouldBeNil)
				So(env.balance(t, freelancer.Address()), ShouldEqual, 0)
				So(env.balance(t, custody), ShouldEqual, 100)
				So(env.project(t, id).MilestoneFundsWithdrawn, ShouldEqual, 0)
			})

			Convey("The client cannot cancel it", func() {
				_, err := env.deliver(client, &CancelProjectMsg{ProjectID: id})
				So(ErrInvalidStatus.Is(err), ShouldBeTrue)
				So(env.balance(t, custody), ShouldEqual, 100)
			})

			Convey("After two milestones are reached", func() {
				for i := 0; i < 2; i++ {
					So(env.execute(t, observer, freelancer, &MarkMilestoneMsg{ProjectID: id}), ShouldBeNil)
				}
				So(env.project(t, id).MilestonesReached, ShouldEqual, 2)

				Convey("One withdrawal pays both milestones and is counted once", func() {
					_, err := env.deliver(freelancer, &WithdrawMsg{ProjectID: id})
					So(err, ShouldBeNil)
					So(env.balance(t, freelancer.Address()), ShouldEqual, 50)
					So(env.balance(t, custody), ShouldEqual, 50)

					p := env.project(t, id)
					So(p.MilestoneFundsWithdrawn, ShouldEqual, 1)
					So(p.Status, ShouldEqual, Running)
				})

				Convey("Stopping it lets the client take the rest back", func() {
					_, err := env.deliver(freelancer, &WithdrawMsg{ProjectID: id})
					So(err, ShouldBeNil)
					So(env.execute(t, client, observer, &StopProjectMsg{ProjectID: id}), ShouldBeNil)
					So(env.project(t, id).Status, ShouldEqual, Cancelled)

					_, err = env.deliver(client, &CancelProjectMsg{ProjectID: id})
					So(err, ShouldBeNil)
					So(env.balance(t, client.Address()), ShouldEqual, 50)
					So(env.balance(t, custody), ShouldEqual, 0)
				})
			})
		})
	})
}

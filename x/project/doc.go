/*
Package project implements a milestone based escrow between a client and a
freelancer.

A client initializes a project by locking funds in the project custody and
creating a multisig owner set of client, freelancer and an observer with a
threshold of two. Starting the project, marking a milestone as reached and
stopping the project are privileged actions. They can be run only by an
executed multisig transaction of the same project, which places the project
authority condition in the context.

The freelancer withdraws an equal share of the funds for every reached
milestone. The last withdrawal drains the custody and completes the project.
Before the project is started, or after it was stopped, the client can cancel
it and get back everything that is left in custody.

Status transitions:

	Pending   -> Running    start (privileged)
	any       -> Completed  withdraw of the last milestone

Milestones can be marked as reached in any status, up to the milestone
count of the project.
	any       -> Cancelled  stop (privileged)
	Pending   -> deleted    cancel (client)
	Cancelled -> deleted    cancel (client)
*/
package project

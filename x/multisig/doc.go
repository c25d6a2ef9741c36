/*
Package multisig implements threshold authorization for project escrows.

Every project owns exactly one Contract: an ordered, immutable list of owners
and the number of distinct approvals needed to run a privileged action. Any
owner can propose a Transaction carrying an encoded action. Other owners
approve it and the approval that reaches the threshold executes the action
with the project authority condition in the context. A transaction executes
at most once.

The actions themselves are implemented by other extensions. This package only
knows how to decode them (ActionDecoder) and how to run them (Executor).
*/
package multisig

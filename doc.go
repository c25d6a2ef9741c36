/*
Package milestone defines the interfaces shared by all packages of the
milestone application: storage, transactions, handlers, conditions and the
context values passed between them.

Business logic lives in the extensions under x/. The multisig extension
collects owner approvals and dispatches approved actions with its own
authority. The project extension keeps the milestone escrow and accepts the
privileged actions only when that authority is present.
*/
package milestone

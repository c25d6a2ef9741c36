/*
Package x contains the extensions of the milestone application.

Extensions implement common functionality (Handler, Decorator, etc.) and are
combined together by the app package. Sub-packages provide value transfer
(cash), signature verification (sigs), threshold authorization (multisig) and
the milestone escrow (project).

This package holds the authentication helpers that all extensions rely on.
Handlers never inspect signatures directly. Instead they receive an
Authenticator and ask it which conditions were fulfilled by the current
transaction.
*/
package x

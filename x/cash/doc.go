/*
Package cash defines a simple implementation of wallets holding coins and the
transfer of value between them.

There is no logic in the coins, except that the balance of any coin may not go
below zero. Thus, this implementation is referred to as cash. Simple and safe.

Wallets are keyed by an address. Because an address can be derived from any
condition, a wallet can belong to a key pair as well as to an extension (for
example a project custody account).
*/
package cash

/*
Package cash implements the native value ledger.

Each address owns a single balance of the native currency. There is no
logic in the ledger, except that a balance may never go below zero.
Value is created only by the genesis file or by IssueCoins, and is moved
between addresses by MoveCoins.
*/
package cash

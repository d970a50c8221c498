/*
Package token implements fungible token contracts.

A token contract holds a balance per address and allows the owner of a
balance to transfer it. Each contract is identified by its ticker and keeps
its balances in a separate bucket. Contracts are made available to other
extensions through a Registry.
*/
package token

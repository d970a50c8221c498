/*
Package crypto provides the ed25519 keys used to sign transactions.

Keys can be generated at random, loaded from a raw seed or derived from a
master seed following a hierarchical path (SLIP-0010).
*/
package crypto

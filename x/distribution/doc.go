/*
Package distribution implements splitters: custodial units that receive
native value and fungible tokens and distribute them to a fixed set of
recipients, in proportion to their shares.

A splitter is created once, with its recipients and features, and cannot be
changed afterwards. Nobody owns it. Anyone can deposit value into it and
anyone can trigger a distribution.

Each distribution pass takes a single snapshot of the balance and computes
every portion from it, as floor(balance * share / total shares). Rounding
leaves a small amount of dust on the splitter account, that is distributed
by a later pass.

Native value can be distributed in a single pass or using the two phase
retry protocol. When distributing with retry, portions rejected by a
recipient are split again between the recipients that accepted their
portion in the first phase. Tokens are distributed in a single pass, one
token at a time.

Recipient programs are notified about each native transfer through a
Receiver hook and can reject it. Every transfer runs in its own cache wrap,
so a rejected transfer leaves no trace.
*/
package distribution

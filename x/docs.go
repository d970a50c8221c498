/*
Package x contains the standard extensions used to build a value
distribution application.

Extensions implement common functionality (Handler, Decorator,
etc.) and can be combined together to construct an application.
Each sub-package provides a self contained extension: the cash
ledger, fungible tokens, the distribution engine and the generic
decorators.

Shared helpers that are needed by more than one extension, like the
Authenticator abstraction, live in this package.
*/
package x

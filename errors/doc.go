/*
Package errors implements the error taxonomy shared by all packages.

Reuse the root errors declared here whenever possible and register custom
package errors only when absolutely necessary (see x/distribution for an
example). Use Register(code, description) to declare a new root error. Code
is what clients receive and what allows them to distinguish the failures.

There is also support for stacktraces. Create an error using
ErrXyz.New("...") or errors.Wrap(err, "...") at the point of creation to
ensure a stacktrace is attached. When wrapping multiple times, only the first
wrap records the stacktrace.

Once you have an error, you can use `fmt.Printf/Sprintf` to get more context
	%s is just the error message
	%+v is the full stack trace
*/
package errors

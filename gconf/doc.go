/*

Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Each extension keeps a single configuration object stored under its package
name. The object is created from the genesis file, under the
`conf.<package name>` path, and is validated before being written.

*/
package gconf

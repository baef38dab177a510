// Package tabr contains the core components of Tabr, an engine for transforming
// delimited (CSV-like) row streams with user-supplied code. This root package
// defines types which are employed during the regular use of the engine, as
// well as in the extension of the engine, and is an excellent overview of
// Tabr's key concepts.
package tabr

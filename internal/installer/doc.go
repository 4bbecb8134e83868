// Package installer installs and probes the optional native solver module.
// It locates bundled wheels for the current interpreter and platform,
// installs a wheel from a local path or from the package index (download
// plus sha256 verification), and probes whether the module imports. Every
// operation reports its outcome as a Result value; none of them panic or
// return raw errors past their boundary.
//
// Operations block on filesystem, network and subprocess I/O. Callers that
// must stay responsive run them on their own goroutine.
package installer

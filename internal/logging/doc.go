// Package logging is the add-on's process-wide diagnostic sink. A Subsystem
// fans every record out to a console writer and a per-process log file in
// the temp directory, behind one shared severity threshold that can be
// changed at any time without reattaching sinks.
package logging

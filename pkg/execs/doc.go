// Package execs runs external commands in two modes: captured runs that
// buffer output for local processing, and terminal runs that hand the
// caller's stdio to the child for the duration of an interactive session.
//
// Terminal runs treat the interrupt signal as part of the session protocol:
// the parent stays subscribed while the child acts on the signal, so cleanup
// registered by callers always gets a chance to run.
package execs

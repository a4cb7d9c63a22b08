// Package deps checks that the external tools the pipeline shells out to
// are actually installed.
//
// Every enabled generation target declares the executable it needs; the
// schema extraction command declares one too. Check resolves each through
// PATH and reports everything missing at once, so an operator fixes the
// environment in one pass instead of one failure at a time. Install runs a
// target's declared install command, but only when explicitly asked.
package deps

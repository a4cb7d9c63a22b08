// Package languages defines the client generation targets and the registry
// that manages them.
//
// A LanguageSpec names the external tool that turns an extracted schema into
// client code, the argv template used to invoke it, and an optional install
// command used by dependency preflight. The registry ships with TypeScript
// and Python targets enabled; project configuration can disable them, replace
// their commands, or register entirely custom targets.
package languages

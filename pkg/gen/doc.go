// Package gen runs per-language client generator tools over zone schema
// documents.
//
// A Task is one (zone, language) pair; the Orchestrator schedules tasks
// onto a bounded worker pool and guarantees exactly one Result per task,
// success or failure. Generator tools are external collaborators invoked as
// subprocesses by ExecRunner: exit 0 plus files in the task's private output
// directory means success, anything else is a captured failure that leaves
// sibling tasks untouched.
//
// Output writes are partitioned by clients/<language>/<zone>, so concurrent
// workers never touch the same path. Task ordering relative to schema
// extraction is the pipeline's responsibility: tasks handed to the
// orchestrator already reference an extracted schema document.
package gen

// Package framegraph is the scheduling core of the application. Passes
// declare which virtual resources they create, read and write; the graph
// compiles those declarations into an executable schedule, culling passes
// that contribute nothing to observable output and bracketing the lifetime
// of every transient resource between its first and last live use.
//
// A write to an existing resource renames it: the entry version advances
// and the writer receives a fresh handle, which both invalidates the old
// one and fixes the execution order of competing writers.
package framegraph

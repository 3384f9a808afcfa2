// Package repl provides the interactive triemap shell.
//
// Each line is one command against a service.MapService:
//
//	set KEY [VALUE]   get KEY   has KEY   del KEY   size
//	list   keys   values   dump   digest   load FILE   stats
//	cursor open | next ID | has ID | remove ID | close ID | list
//	help   exit | quit
//
// Arguments split on whitespace; double-quoted arguments follow Go
// string-literal rules. Cursors expose the map's fail-fast iterators, so
// a set or del between "cursor open" and "cursor next" makes the cursor
// report a concurrent modification.
package repl

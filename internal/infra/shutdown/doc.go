// Package shutdown turns termination signals into context cancellation.
//
// The first SIGINT or SIGTERM cancels the command's context so it can
// stop cleanly (the REPL saves its history, a check stops early). A
// second signal exits immediately.
//
//	ctx, stop := shutdown.NewHandler().Context(context.Background())
//	defer stop()
package shutdown

package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Upload(ctx context.Context) error
	Uploads(ctx context.Context) error
	Dismiss(ctx context.Context) error
	Edit(ctx context.Context) error
	Delete(ctx context.Context) error
	CanLeave() bool
}

// runREPL starts a read-eval-print loop over the library commands.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF, or on "exit"/"quit" once
// the upload guard allows it: while uploads are still in flight the user has
// to confirm that they really want to abandon them.
//
// Commands:
//
//	help      — show available commands
//	list (l)  — print the video library
//	refresh   — reload the library from the server
//	upload    — validate and upload a video (with optional thumbnail)
//	uploads   — show the progress of tracked uploads
//	dismiss   — drop finished (uploaded/errored) upload entries
//	edit      — edit a video's metadata
//	delete    — delete a video
//	exit|quit — leave the program
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("vid> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn("Available commands: (l)ist, refresh, upload, uploads, dismiss, edit, delete, exit")

		case "l", "list":
			_ = a.List(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "upload":
			_ = a.Upload(ctx)

		case "uploads":
			_ = a.Uploads(ctx)

		case "dismiss":
			_ = a.Dismiss(ctx)

		case "edit":
			_ = a.Edit(ctx)

		case "delete":
			_ = a.Delete(ctx)

		case "exit", "quit":
			if !a.CanLeave() {
				continue
			}
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

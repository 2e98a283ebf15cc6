// Package commandant provides a managed command execution layer for AI agent
// tool servers.
//
// Shell commands run as supervised sessions: a command either completes
// within the caller's timeout and returns its full output, or keeps running
// in the background where its output can be polled incrementally. A
// persistent command blacklist gates everything before it is spawned.
//
// End-users typically interact via the high-level Service façade exposed by
// the root package:
//
//	srv, _ := commandant.New(ctx)
//	out, _ := srv.Dispatcher().Invoke(ctx, "system/terminal", "execute",
//		map[string]interface{}{"command": "ls -l"})
//
// The server package exposes the same surface as MCP tools over stdio.
package commandant

// Package cli provides the interactive gophid command-line client.
//
// It wires configuration, the local session store, the identity API client
// and an interactive REPL. A session saved by an earlier run is restored on
// start, so "whoami" works without logging in again.
//
// Commands:
//   - register, verify <token|link>, resend [email]
//   - login, whoami, logout
//   - ping, help, exit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli

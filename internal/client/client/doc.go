// Package client contains client-side building blocks for the gophid CLI.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) for the
//     identity service: Register, VerifyEmail, ResendVerification, Login,
//     CurrentUser and Ping.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, attaches the access token via an interceptor and maps gRPC
//     status codes to sentinel errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) for the CLI
//     session store, wiring an SQLite database and applying embedded goose
//     migrations.
//
// # Error Handling
//
// Common conditions are exposed as sentinel errors that callers can match with
// errors.Is: ErrUnavailable, ErrUnauthorized, ErrEmailNotVerified,
// ErrAlreadyRegistered, ErrNotFound. Rejected input comes back as
// *FieldError values listing the offending fields.
//
// All operations accept context.Context and honor cancellation/timeouts.
package client

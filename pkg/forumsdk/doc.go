/*
Package forumsdk provides the wire types and a Go client for the forum API.

# Overview

The package is organized around two types:

  - SDKClient: public operations (health, registration, login, category reads)
  - Session: operations that need a bearer token

Create an SDKClient and log in to obtain a Session:

	client := forumsdk.NewSDKClient("http://localhost:8000")

	// Check service health
	health, err := client.GetReadiness(ctx)

	// Register and log in
	_, err = client.Register(ctx, forumsdk.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	})
	session, err := client.Login(ctx, "alice", "secret123")

Sessions carry the token returned by login. Tokens are not refreshed: once
one expires every Session call fails with ErrUnauthorized and the caller
must log in again.

	me, err := session.Me(ctx)

	// Admin only
	cat, err := session.CreateCategory(ctx, forumsdk.CreateCategoryRequest{
		Name:        "General Discussion",
		Description: "Anything that does not fit elsewhere.",
	})

# Error Handling

Every non-2xx response is returned as an *APIError carrying the HTTP status,
the error category and the human-readable description. Use errors.Is with
the predefined values to branch on them:

	_, err := client.Login(ctx, "alice", "wrong")
	if errors.Is(err, forumsdk.ErrInvalidLogin) {
		// ask again
	}

# Thread Safety

SDKClient and Session hold no mutable state after construction and are safe
for concurrent use.
*/
package forumsdk

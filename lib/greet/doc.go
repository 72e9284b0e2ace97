// Package greet provides a Go client for the greet login demo server.
//
// Basic usage:
//
//	client, err := greet.New("http://localhost:8080")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// login keeps the session cookie in the client's cookie jar
//	err = client.Login(ctx, "철수")
//
//	// greeting for the logged-in user
//	msg, err := client.Greeting(ctx) // "철수님 안녕하세요."
//
// Greeting returns ErrNotLoggedIn once the session has expired.
package greet

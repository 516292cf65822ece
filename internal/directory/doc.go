// Package directory provides an HTTP client for a remote user directory.
//
// A user directory is any REST service exposing the collection below and
// exchanging JSON user records {id, name, email, phone}:
//
//	GET    /users        list all users
//	POST   /users        create a user, returns it with an assigned id
//	PUT    /users/{id}   replace a user, returns the stored record
//	DELETE /users/{id}   remove a user
//
// The default target is the public demo at jsonplaceholder.typicode.com;
// `userdeck serve` runs a local in-memory equivalent.
//
// # Usage Example
//
//	client := directory.NewClient(directory.DefaultBaseURL)
//
//	users, err := client.List(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	created, err := client.Create(ctx, directory.NewDraft("Bo", "b@x.com", "9"))
//	if err != nil {
//	    log.Fatal(directory.ShortMessage(err))
//	}
//
// # Records
//
// IDs are opaque. Numeric ids stay numbers and string ids stay strings on
// the wire. Fields other than id/name/email/phone are carried in
// User.Extra and sent back unchanged on Update.
//
// # Error Handling
//
// Every failure is a *RemoteError. Nothing is retried.
//
// # Thread Safety
//
// Client instances are safe for concurrent use.
package directory

// Package sandbox is an in-memory user directory that speaks the same REST
// contract as the public demo API: GET/POST /users and GET/PUT/DELETE
// /users/{id} with JSON {id, name, email, phone} records.
//
// Unlike the public demo, changes are kept for the life of the process, so
// "userdeck serve" gives a local target where created users really appear
// in the next list. It can announce itself over mDNS for "userdeck scan".
//
// # Usage Example
//
//	srv := sandbox.New(sandbox.Config{Port: 8080, Advertise: true})
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
// # Behaviour
//
//   - New ids are sequential integers after the highest seeded id
//   - PUT replaces the whole record; the path id always wins over the body
//   - Unknown ids yield 404, malformed bodies 400
//   - Fields beyond id, name, email and phone are stored and returned as-is
//
// Every request gets an X-Request-ID (kept if the client sent one) and is
// logged through the shared zap logger.
package sandbox

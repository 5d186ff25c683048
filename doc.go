// Package session implements the client-side authentication core of the
// Roomify admin console: a durable token cache, a local bearer-token claim
// decoder, the login exchange against the Roomify backend, and the route
// guard that gates navigation to role-restricted destinations.
//
// Session lifecycle:
//   - A Controller is created empty with loading set, hydrated exactly once
//     via Initialize from the TokenStore, and mutated wholesale by Login and
//     Logout. A login failure leaves the previous state untouched.
//   - Expired or undecodable cached tokens are recovered locally: the store
//     is purged and the session stays logged out. Only login errors
//     propagate to callers, so the console always reaches a usable state.
//
// Claim decoding:
//   - DecodeToken reads claims without verifying the signature. The token
//     arrived over TLS at login time (or was persisted locally by us), and
//     the decoded roles gate console navigation only. The backend performs
//     its own authorization on every request; nothing here is a proof.
//
// Route guarding:
//   - Guard.Evaluate is a pure decision function re-run on every navigation.
//     Loading is checked before authentication so a navigation attempted
//     while hydration is in flight shows a wait indicator instead of
//     flash-redirecting to the login screen.
package session

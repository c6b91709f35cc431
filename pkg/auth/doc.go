// Package auth carries the verified identity of an authenticated request.
//
// Token verification itself happens upstream (API gateway, auth service, or
// a JWT middleware); this package only defines the Identity shape those
// verifiers produce, the context plumbing to hand it to downstream
// middleware and handlers, and the IdentityProvider hook the HTTP layer uses
// to attach it. The tenant isolation guard consumes the identity's tenant
// claim to verify, never to select, the tenant a request operates on.
package auth

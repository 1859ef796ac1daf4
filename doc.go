// Package auth implements the authentication token lifecycle: credential
// verification, signed access token issuance, refresh token rotation, and
// revocation on suspicious refresh activity.
//
// Token model:
//   - Access tokens are self-contained HS256 JWTs. Validity is determined by
//     signature and expiry alone, never by a server-side lookup. Every issued
//     token carries a fresh token id (jti).
//   - Refresh tokens are opaque, provider-scoped secrets with at most one
//     valid instance per (user, provider). Issuing a new one invalidates the
//     prior one before the new value exists, so rotation fails closed.
//
// Orchestration:
//   - Auther exposes Register, Login, and RefreshToken over two boundary
//     contracts, IdentityStore and TokenStore. Resolved users are threaded
//     through each call as locals; an Auther holds only read-only
//     collaborators and is safe to share across concurrent requests.
//   - A refresh request presenting an invalid refresh token is treated as
//     potential token theft: the user's security stamp is replaced, which
//     invalidates every outstanding artifact tied to the old stamp, and the
//     caller sees the same uniform authentication failure as any other
//     rejected attempt.
//
// Default Bun-backed implementations of both stores are provided; see
// NewUsersRepository and NewAuthTokensRepository.
package auth

// Package medclient is a client library for role-based health-record
// backends. It owns the pieces every frontend needs and none should
// reimplement:
//
//   - TokenStore: the single persisted credential slot, read before every
//     request and written only by the session lifecycle.
//   - Client: the authenticated request wrapper. It attaches the bearer
//     credential, parses the uniform {success,message,data} envelope, and
//     classifies unauthorized responses so a background 401 anywhere in the
//     app forces exactly one global logout.
//   - SessionManager: the session lifecycle. It restores a session on
//     startup from the stored credential, calling the role-specific profile
//     endpoint picked by locally decoding the credential's claims. When the
//     profile fetch fails for non-auth reasons it can synthesize a degraded
//     session from those claims so the app stays usable while the backend
//     is unreachable; stricter deployments disable this with
//     WithClaimsFallback(false).
//   - Guard: route protection. Given the current session and a required
//     role it decides allow, wait, or redirect, with a home path per role.
//
// Typed resource clients (patients, appointments, health metrics,
// conversations, medical records) ride on the shared Client and honor the
// same envelope and pagination shape the backend uses everywhere.
package medclient

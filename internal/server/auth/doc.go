// Package auth is the authentication core of the rentals server.
//
// It hashes and verifies passwords (bcrypt), issues HS256-signed session
// tokens for a verified identity and verifies them again on every gated
// request. Nothing here keeps per-session state: a token stays valid until
// its exp claim passes or its signature stops matching the signing key.
//
// Token wire form is the compact JWS serialisation:
//
//	base64url(header) "." base64url(claims) "." base64url(HMAC-SHA256)
//
// with header {"alg":"HS256","typ":"JWT"} and claims {iss, sub, iat, exp}.
package auth

// Package oauth implements the Google OAuth2 installed-application flows of
// gtokenctl: interactive authorization-code login producing a refresh token,
// refresh-token exchange for access tokens, and refresh-token revocation.
package oauth

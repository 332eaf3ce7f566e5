// Package credential implements the stored credential of gtokenctl: the
// comma-joined client_id,client_secret,refresh_token triple and the single
// configured source it is read from (environment variable, file or OS keychain).
package credential

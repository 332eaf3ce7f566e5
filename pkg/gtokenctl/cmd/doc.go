// Package cmd implements the cobra command tree of gtokenctl: the --login,
// --logout and --access-token operations on the root command, plus version
// and shell completion.
package cmd

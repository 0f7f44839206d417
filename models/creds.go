// Package models defines data structures used across the application.
// File: models/creds.go
package models

// Credential is one local login entry: the password field holds a
// bcrypt hash, never plaintext.
type Credential struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isadmin"`
}

// CredentialFile holds the local credential entries. It stands in for
// the hosted auth provider, which is out of scope here.
type CredentialFile struct {
	Users []Credential `json:"users"`
}

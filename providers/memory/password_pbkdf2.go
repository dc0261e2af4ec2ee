// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package memory

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// errMismatch is returned by both password policies when a passphrase does
// not match the stored hash; it deliberately carries no further detail.
var errMismatch = errors.New("oauth2/memory: passphrase does not match stored hash")

// PBKDF2Policy implements oauth2.PasswordPolicy with PBKDF2-HMAC-SHA256, an
// alternate to Argon2Policy for deployments constrained to FIPS-approved
// primitives.
type PBKDF2Policy struct {
	Iterations int
	SaltLength int
	KeyLength  int
}

// NewPBKDF2Policy builds a PBKDF2Policy with OWASP-recommended iteration
// counts for HMAC-SHA256.
func NewPBKDF2Policy() *PBKDF2Policy {
	return &PBKDF2Policy{Iterations: 600000, SaltLength: 16, KeyLength: 32}
}

// Store implements oauth2.PasswordPolicy.
func (p *PBKDF2Policy) Store(_, passphrase string) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("oauth2/memory: generating salt: %w", err)
	}

	hash := pbkdf2.Key([]byte(passphrase), salt, p.Iterations, p.KeyLength, sha256.New)

	return fmt.Sprintf("$pbkdf2-sha256$i=%d$%s$%s", p.Iterations,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

// Check implements oauth2.PasswordPolicy.
func (p *PBKDF2Policy) Check(_, passphrase, opaqueHash string) error {
	// "$pbkdf2-sha256$i=<iterations>$<salt>$<hash>"
	fields := strings.Split(opaqueHash, "$")
	if len(fields) != 5 || fields[0] != "" || fields[1] != "pbkdf2-sha256" {
		return fmt.Errorf("oauth2/memory: malformed pbkdf2 hash")
	}
	iterStr, found := strings.CutPrefix(fields[2], "i=")
	if !found {
		return fmt.Errorf("oauth2/memory: malformed pbkdf2 hash")
	}
	iterations, err := strconv.Atoi(iterStr)
	if err != nil {
		return fmt.Errorf("oauth2/memory: malformed pbkdf2 hash: %w", err)
	}
	saltB64, hashB64 := fields[3], fields[4]

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return fmt.Errorf("oauth2/memory: decoding salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil {
		return fmt.Errorf("oauth2/memory: decoding hash: %w", err)
	}

	got := pbkdf2.Key([]byte(passphrase), salt, iterations, len(want), sha256.New)
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return errMismatch
	}
	return nil
}

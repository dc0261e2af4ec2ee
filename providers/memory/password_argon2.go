// This Source Code Form is subject to the terms of the Mozilla Public
// License, version 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

package memory

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2Policy implements oauth2.PasswordPolicy with Argon2id, the memory-
// hard, side-channel-resistant KDF recommended for password hashing.
type Argon2Policy struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// NewArgon2Policy builds an Argon2Policy with reasonable interactive-login
// defaults; override the fields directly for different cost targets.
func NewArgon2Policy() *Argon2Policy {
	return &Argon2Policy{
		Memory:      64 * 1024,
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Store implements oauth2.PasswordPolicy.
func (p *Argon2Policy) Store(_, passphrase string) (string, error) {
	salt := make([]byte, p.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("oauth2/memory: generating salt: %w", err)
	}

	hash := argon2.IDKey([]byte(passphrase), salt, p.Iterations, p.Memory, p.Parallelism, p.KeyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Iterations, p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash)), nil
}

// Check implements oauth2.PasswordPolicy.
func (p *Argon2Policy) Check(_, passphrase, opaqueHash string) error {
	// "$argon2id$v=<version>$m=<memory>,t=<iterations>,p=<parallelism>$<salt>$<hash>"
	fields := strings.Split(opaqueHash, "$")
	if len(fields) != 6 || fields[0] != "" || fields[1] != "argon2id" {
		return fmt.Errorf("oauth2/memory: malformed argon2id hash")
	}

	var memory, iterations uint32
	var parallelism uint8
	if _, err := fmt.Sscanf(fields[3], "m=%d,t=%d,p=%d", &memory, &iterations, &parallelism); err != nil {
		return fmt.Errorf("oauth2/memory: malformed argon2id hash: %w", err)
	}
	saltB64, hashB64 := fields[4], fields[5]

	salt, err := base64.RawStdEncoding.DecodeString(saltB64)
	if err != nil {
		return fmt.Errorf("oauth2/memory: decoding salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(hashB64)
	if err != nil {
		return fmt.Errorf("oauth2/memory: decoding hash: %w", err)
	}

	got := argon2.IDKey([]byte(passphrase), salt, iterations, memory, parallelism, uint32(len(want)))
	if subtle.ConstantTimeCompare(got, want) != 1 {
		return errMismatch
	}
	return nil
}

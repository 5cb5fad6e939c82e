// Copyright 2026 The Promptforge Authors
// SPDX-License-Identifier: Apache-2.0

package sealed

import (
	"strings"
	"testing"

	"github.com/promptforge-foundation/promptforge/lib/secret"
)

func TestGenerateKeypair(t *testing.T) {
	t.Parallel()

	keypair, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	defer keypair.Close()

	if !strings.HasPrefix(keypair.PublicKey, "age1") {
		t.Errorf("public key = %q, want age1... prefix", keypair.PublicKey)
	}
	if !strings.HasPrefix(keypair.PrivateKey.String(), "AGE-SECRET-KEY-1") {
		t.Error("private key should have AGE-SECRET-KEY-1 prefix")
	}
	if err := ParsePublicKey(keypair.PublicKey); err != nil {
		t.Errorf("ParsePublicKey() on generated key: %v", err)
	}
	if err := ParsePrivateKey(keypair.PrivateKey); err != nil {
		t.Errorf("ParsePrivateKey() on generated key: %v", err)
	}
}

func TestEncryptDecrypt_RoundTrip(t *testing.T) {
	t.Parallel()

	keypair, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	defer keypair.Close()

	plaintext := []byte("registry-token-abc123")
	ciphertext, err := Encrypt(plaintext, keypair.PublicKey)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if strings.Contains(ciphertext, "registry-token") {
		t.Error("ciphertext contains plaintext")
	}

	decrypted, err := Decrypt(ciphertext, keypair.PrivateKey)
	if err != nil {
		t.Fatalf("Decrypt() error: %v", err)
	}
	defer decrypted.Close()

	if decrypted.String() != string(plaintext) {
		t.Errorf("Decrypt() = %q, want %q", decrypted.String(), plaintext)
	}
}

func TestDecrypt_WrongKey(t *testing.T) {
	t.Parallel()

	alice, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	defer alice.Close()
	bob, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	defer bob.Close()

	ciphertext, err := Encrypt([]byte("for alice only"), alice.PublicKey)
	if err != nil {
		t.Fatalf("Encrypt() error: %v", err)
	}
	if _, err := Decrypt(ciphertext, bob.PrivateKey); err == nil {
		t.Error("Decrypt() with the wrong key should fail")
	}
}

func TestDecrypt_GarbageInputs(t *testing.T) {
	t.Parallel()

	keypair, err := GenerateKeypair()
	if err != nil {
		t.Fatalf("GenerateKeypair() error: %v", err)
	}
	defer keypair.Close()

	if _, err := Decrypt("not base64!!!", keypair.PrivateKey); err == nil {
		t.Error("Decrypt() with invalid base64 should fail")
	}
	if _, err := Decrypt("aGVsbG8gd29ybGQ=", keypair.PrivateKey); err == nil {
		t.Error("Decrypt() with non-age ciphertext should fail")
	}
}

func TestEncrypt_InvalidRecipient(t *testing.T) {
	t.Parallel()

	if _, err := Encrypt([]byte("data"), "not-an-age-key"); err == nil {
		t.Error("Encrypt() with an invalid recipient should fail")
	}
}

func TestParsePrivateKey_Invalid(t *testing.T) {
	t.Parallel()

	buffer, err := secret.NewFromBytes([]byte("not-a-private-key"))
	if err != nil {
		t.Fatalf("NewFromBytes() error: %v", err)
	}
	defer buffer.Close()

	if err := ParsePrivateKey(buffer); err == nil {
		t.Error("ParsePrivateKey() with garbage should fail")
	}
}

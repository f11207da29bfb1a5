package snapshots

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"
)

// ageHeader is the first line of every age-encrypted file.
const ageHeader = "age-encryption.org/v1"

// writeFile encrypts when a password is set, then writes through a
// temp file and renames so readers never see a partial snapshot.
func (s *Store) writeFile(path string, data []byte) error {
	if s.password != "" {
		encrypted, err := s.encrypt(data)
		if err != nil {
			return err
		}
		data = encrypted
	}
	return atomicWrite(path, data)
}

// readFile transparently decrypts files that carry the age header.
// Plaintext files still read in an encrypted store, which lets an
// existing plaintext directory be adopted without migration.
func (s *Store) readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if !isAgeEncrypted(data) {
		return data, nil
	}
	if s.password == "" {
		return nil, fmt.Errorf("%s is encrypted and no password is set", filepath.Base(path))
	}
	return s.decrypt(data)
}

func (s *Store) encrypt(data []byte) ([]byte, error) {
	recipient, err := age.NewScryptRecipient(s.password)
	if err != nil {
		return nil, fmt.Errorf("creating recipient: %w", err)
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, recipient)
	if err != nil {
		return nil, fmt.Errorf("starting encryption: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return nil, fmt.Errorf("encrypting: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing encryption: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *Store) decrypt(data []byte) ([]byte, error) {
	identity, err := age.NewScryptIdentity(s.password)
	if err != nil {
		return nil, fmt.Errorf("creating identity: %w", err)
	}

	r, err := age.Decrypt(bytes.NewReader(data), identity)
	if err != nil {
		return nil, fmt.Errorf("decrypting (wrong password?): %w", err)
	}
	plaintext, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading decrypted data: %w", err)
	}
	return plaintext, nil
}

func isAgeEncrypted(data []byte) bool {
	return strings.HasPrefix(string(data), ageHeader)
}

// atomicWrite lands the bytes under a temp name in the same directory
// and renames into place.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}

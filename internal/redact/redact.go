package redact

import (
	"encoding/hex"
	"fmt"
	"os"
	"sort"
	"strings"

	kerrors "github.com/PolarWolf314/scrub/internal/errors"
	"golang.org/x/crypto/blake2b"
)

// Mapping maps secret literals to their replacements.
type Mapping map[string]string

// Secrets returns the configured secrets ordered longest first, then lexically.
func (m Mapping) Secrets() []string {
	secrets := make([]string, 0, len(m))
	for secret := range m {
		secrets = append(secrets, secret)
	}
	sort.Slice(secrets, func(i, j int) bool {
		if len(secrets[i]) != len(secrets[j]) {
			return len(secrets[i]) > len(secrets[j])
		}
		return secrets[i] < secrets[j]
	})
	return secrets
}

// Validate reports whether the mapping can be applied idempotently.
//
// Empty secrets are rejected, as are replacements that contain any
// configured secret, since a second pass would then change the content again.
func (m Mapping) Validate() error {
	for _, secret := range m.Secrets() {
		if secret == "" {
			return fmt.Errorf("%w: empty secret", kerrors.ErrInvalidMapping)
		}
	}
	for _, secret := range m.Secrets() {
		for other, replacement := range m {
			if strings.Contains(replacement, secret) {
				return fmt.Errorf("%w: replacement for %q contains a configured secret", kerrors.ErrInvalidMapping, Mask(other))
			}
		}
	}
	return nil
}

// Merge returns a new mapping with the entries of other layered over m.
func (m Mapping) Merge(other Mapping) Mapping {
	merged := make(Mapping, len(m)+len(other))
	for k, v := range m {
		merged[k] = v
	}
	for k, v := range other {
		merged[k] = v
	}
	return merged
}

// Apply replaces every occurrence of each secret in content.
func Apply(content string, m Mapping) string {
	if len(m) == 0 {
		return content
	}

	secrets := m.Secrets()
	pairs := make([]string, 0, len(secrets)*2)
	for _, secret := range secrets {
		pairs = append(pairs, secret, m[secret])
	}
	return strings.NewReplacer(pairs...).Replace(content)
}

// Count returns how many times each secret occurs in content. Secrets that do
// not occur are omitted.
func Count(content string, m Mapping) map[string]int {
	counts := make(map[string]int)
	for _, secret := range m.Secrets() {
		if n := strings.Count(content, secret); n > 0 {
			counts[secret] = n
		}
	}
	return counts
}

// ApplyFile rewrites the file at path with the mapping applied.
//
// A missing file is not an error: it returns false and leaves the filesystem
// untouched. The file is only written when its content changes, and keeps
// its original permissions.
func ApplyFile(path string, m Mapping) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}
	if info.IsDir() {
		return false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	original := string(data)
	cleaned := Apply(original, m)
	if cleaned == original {
		return false, nil
	}

	if err := os.WriteFile(path, []byte(cleaned), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}

// Mask hides all but the first and last two characters of a secret.
func Mask(secret string) string {
	if len(secret) <= 6 {
		return strings.Repeat("*", len(secret))
	}
	return secret[:2] + strings.Repeat("*", len(secret)-4) + secret[len(secret)-2:]
}

// Fingerprint returns a short, stable identifier for secret that does not
// reveal it.
func Fingerprint(secret string) string {
	sum := blake2b.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:6])
}

// Fingerprints returns the fingerprint of every secret, in Secrets order.
func (m Mapping) Fingerprints() []string {
	secrets := m.Secrets()
	out := make([]string, 0, len(secrets))
	for _, secret := range secrets {
		out = append(out, Fingerprint(secret))
	}
	return out
}

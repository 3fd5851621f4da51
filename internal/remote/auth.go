// SSH authentication resolution
package remote

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/crypto/ssh"

	"quickact/internal/shared"
)

// ErrPassphraseRequired reports that the identity file exists but is
// encrypted, so key auth cannot proceed without a secret the user has to
// type. Callers fall back to the password prompt.
var ErrPassphraseRequired = errors.New("identity file requires a passphrase")

// KeyAuth loads the identity file at path and returns a public-key auth
// method for it.
//
// Returns [ErrPassphraseRequired] when the key is passphrase-protected and
// a plain not-found error when the file is absent; both cases route the
// pipeline to password authentication rather than failing the run.
func KeyAuth(path string) (ssh.AuthMethod, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	signer, err := ssh.ParsePrivateKey(raw)
	if err != nil {
		var missing *ssh.PassphraseMissingError
		if errors.As(err, &missing) {
			return nil, fmt.Errorf("%w: %s", ErrPassphraseRequired, path)
		}
		return nil, fmt.Errorf("%w: unreadable identity file %s: %v", shared.ErrAuthFailed, path, err)
	}

	return ssh.PublicKeys(signer), nil
}

// PasswordAuth returns a password auth method.
func PasswordAuth(password string) ssh.AuthMethod {
	return ssh.Password(password)
}

// NeedsPassword reports whether the key-auth error means the run should
// prompt for a password instead of aborting.
func NeedsPassword(err error) bool {
	return errors.Is(err, ErrPassphraseRequired) || errors.Is(err, os.ErrNotExist)
}

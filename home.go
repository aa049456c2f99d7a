package zlob

import (
	"os"
	"os/user"
)

// HomeProvider resolves the calling user's home directory for a bare "~".
type HomeProvider interface {
	Home() (string, error)
}

// UserProvider resolves another user's home directory for "~user".
type UserProvider interface {
	HomeOf(username string) (string, error)
}

// osHomeProvider reads $HOME, falling back to os/user when unset.
type osHomeProvider struct{}

func (osHomeProvider) Home() (string, error) {
	if home := os.Getenv("HOME"); home != "" {
		return home, nil
	}
	u, err := user.Current()
	if err != nil {
		return "", WrapErrorf(err, "failed to resolve current user")
	}
	return u.HomeDir, nil
}

// osUserProvider resolves "~user" via the host user database.
type osUserProvider struct{}

func (osUserProvider) HomeOf(username string) (string, error) {
	u, err := user.Lookup(username)
	if err != nil {
		return "", WrapErrorf(err, "failed to look up user %q", username)
	}
	return u.HomeDir, nil
}

// DefaultHomeProvider is the local-OS HomeProvider used when none is injected.
func DefaultHomeProvider() HomeProvider { return osHomeProvider{} }

// DefaultUserProvider is the local-OS UserProvider used when none is injected.
func DefaultUserProvider() UserProvider { return osUserProvider{} }

package gitrepo

import (
	"fmt"
	"os"

	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
	gossh "golang.org/x/crypto/ssh"
)

// CredentialProvider resolves authentication methods for remote operations.
// Implementations should handle different URL schemes and credential sources.
type CredentialProvider interface {
	// Method returns the appropriate transport.AuthMethod for the given remote URL.
	// Returns nil if no authentication is needed/available for this URL.
	// Returns an error if authentication cannot be resolved for the URL.
	Method(remoteURL string) (transport.AuthMethod, error)
}

// SSHProvider provides SSH authentication for remote operations.
// Credentials come from the running ssh-agent by default, with an optional
// private key file fallback.
type SSHProvider struct {
	// Username for SSH authentication (defaults to "git").
	Username string

	// PrivateKeyPath is the path to an SSH private key file.
	// When empty, the ssh-agent is used.
	PrivateKeyPath string

	// Passphrase for encrypted private keys.
	Passphrase string

	// HostKeyCallback for host key verification (optional).
	HostKeyCallback gossh.HostKeyCallback
}

// NewSSHAgentProvider creates a provider backed by the running ssh-agent.
func NewSSHAgentProvider() *SSHProvider {
	return &SSHProvider{Username: "git"}
}

// NewSSHKeyProvider creates a provider using a private key file.
func NewSSHKeyProvider(keyPath, passphrase string) *SSHProvider {
	return &SSHProvider{
		Username:       "git",
		PrivateKeyPath: keyPath,
		Passphrase:     passphrase,
	}
}

// WithUsername sets the SSH username (default is "git").
func (p *SSHProvider) WithUsername(username string) *SSHProvider {
	p.Username = username
	return p
}

// Method returns the authentication method for the given remote URL.
//
//nolint:ireturn // go-git requires returning transport.AuthMethod interface
func (p *SSHProvider) Method(remoteURL string) (transport.AuthMethod, error) {
	if p.PrivateKeyPath != "" {
		return p.fileAuth()
	}
	return p.agentAuth()
}

//nolint:ireturn // go-git requires returning transport.AuthMethod interface
func (p *SSHProvider) agentAuth() (transport.AuthMethod, error) {
	auth, err := ssh.NewSSHAgentAuth(p.Username)
	if err != nil {
		return nil, WrapError(ErrAuthRequired, fmt.Sprintf("failed to create SSH agent auth: %v", err))
	}
	if p.HostKeyCallback != nil {
		auth.HostKeyCallback = p.HostKeyCallback
	}
	return auth, nil
}

//nolint:ireturn // go-git requires returning transport.AuthMethod interface
func (p *SSHProvider) fileAuth() (transport.AuthMethod, error) {
	if _, err := os.Stat(p.PrivateKeyPath); os.IsNotExist(err) {
		return nil, WrapErrorf(ErrAuthRequired, "SSH private key file does not exist: %s", p.PrivateKeyPath)
	}
	auth, err := ssh.NewPublicKeysFromFile(p.Username, p.PrivateKeyPath, p.Passphrase)
	if err != nil {
		return nil, WrapError(ErrAuthRequired, fmt.Sprintf("failed to load SSH key: %v", err))
	}
	if p.HostKeyCallback != nil {
		auth.HostKeyCallback = p.HostKeyCallback
	}
	return auth, nil
}

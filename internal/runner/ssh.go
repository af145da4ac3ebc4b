package runner

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"sync"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/agent"

	"github.com/imamik/diskplan/internal/util/retry"
)

const (
	defaultPort        = 22
	defaultDialTimeout = 10 * time.Second
	defaultMaxRetries  = 3
	defaultRetryDelay  = 2 * time.Second
	defaultMaxDelay    = 10 * time.Second
)

// SSHConfig holds the connection parameters for a remote target.
type SSHConfig struct {
	Host string
	Port int
	User string

	// KeyPath points to a PEM-encoded private key. When empty, the local
	// SSH agent (SSH_AUTH_SOCK) is used instead.
	KeyPath string

	// DialTimeout is the timeout for establishing the TCP connection.
	// If zero, defaultDialTimeout is used.
	DialTimeout time.Duration

	// MaxRetries is the maximum number of connection retry attempts.
	// If zero, defaultMaxRetries is used.
	MaxRetries int

	// HostKeyCallback handles host key verification. If nil,
	// ssh.InsecureIgnoreHostKey() is used. Skipping verification is a
	// deliberate operational trade-off: the tool targets freshly
	// provisioned hosts whose keys are not yet known. Provide a proper
	// callback for persistent infrastructure.
	HostKeyCallback ssh.HostKeyCallback
}

// SSH runs commands on a remote host over a single SSH connection.
// The connection is established lazily on the first Run call and reused
// for every subsequent command of the invocation.
type SSH struct {
	config SSHConfig
	auth   []ssh.AuthMethod

	mu     sync.Mutex
	client *ssh.Client
}

// NewSSH creates a Runner for a remote host and validates the connection
// parameters. No connection is made until the first Run call.
func NewSSH(cfg SSHConfig) (*SSH, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("ssh host cannot be empty")
	}
	if cfg.User == "" {
		return nil, fmt.Errorf("ssh user cannot be empty")
	}

	if cfg.Port == 0 {
		cfg.Port = defaultPort
	}
	if cfg.DialTimeout == 0 {
		cfg.DialTimeout = defaultDialTimeout
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = defaultMaxRetries
	}
	if cfg.HostKeyCallback == nil {
		cfg.HostKeyCallback = ssh.InsecureIgnoreHostKey() //nolint:gosec // Documented trade-off for freshly provisioned hosts
	}

	auth, err := authMethods(cfg.KeyPath)
	if err != nil {
		return nil, err
	}

	return &SSH{config: cfg, auth: auth}, nil
}

// authMethods builds the authentication chain: an explicit private key when
// configured, otherwise the local SSH agent.
func authMethods(keyPath string) ([]ssh.AuthMethod, error) {
	if keyPath != "" {
		key, err := os.ReadFile(keyPath) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("failed to read private key %s: %w", keyPath, err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key %s: %w", keyPath, err)
		}
		return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
	}

	sock := os.Getenv("SSH_AUTH_SOCK")
	if sock == "" {
		return nil, errors.New("no ssh key given and no ssh agent available (SSH_AUTH_SOCK unset)")
	}
	conn, err := net.Dial("unix", sock)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ssh agent: %w", err)
	}
	return []ssh.AuthMethod{ssh.PublicKeysCallback(agent.NewClient(conn).Signers)}, nil
}

// Run implements Runner. The remote exit code is reported like a local one;
// err is returned only when the connection or session itself fails.
func (s *SSH) Run(ctx context.Context, command string) (string, int, error) {
	client, err := s.connect(ctx)
	if err != nil {
		return "", -1, err
	}

	session, err := client.NewSession()
	if err != nil {
		return "", -1, fmt.Errorf("failed to create SSH session on %s: %w", s.config.Host, err)
	}
	defer func() { _ = session.Close() }()

	output, err := session.CombinedOutput(command)
	if err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			return string(output), exitErr.ExitStatus(), nil
		}
		return string(output), -1, fmt.Errorf("command failed on %s: %w", s.config.Host, err)
	}
	return string(output), 0, nil
}

// connect establishes the shared SSH connection with retry, or returns the
// already established one.
func (s *SSH) connect(ctx context.Context) (*ssh.Client, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client != nil {
		return s.client, nil
	}

	config := &ssh.ClientConfig{
		User:            s.config.User,
		Auth:            s.auth,
		HostKeyCallback: s.config.HostKeyCallback,
		Timeout:         s.config.DialTimeout,
	}

	addr := net.JoinHostPort(s.config.Host, fmt.Sprintf("%d", s.config.Port))
	var client *ssh.Client

	err := retry.WithExponentialBackoff(ctx, func() error {
		var dialErr error
		client, dialErr = ssh.Dial("tcp", addr, config)
		return dialErr
	},
		retry.WithMaxRetries(s.config.MaxRetries),
		retry.WithInitialDelay(defaultRetryDelay),
		retry.WithMaxDelay(defaultMaxDelay),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to establish SSH connection to %s: %w", addr, err)
	}

	s.client = client
	return s.client, nil
}

// Close tears down the shared connection, if one was established.
func (s *SSH) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	return err
}

// SSH/SFTP client used for directory listings and transfers
package remote

import (
	"context"
	"fmt"
	"net"
	"sort"
	"strings"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"

	"quickact/internal/models"
	"quickact/internal/services"
	"quickact/internal/shared"
)

// Client wraps one established SSH connection and its SFTP session.
// A Client backs both destination autocomplete and the transfer itself,
// so the connection parameters are resolved exactly once per run.
type Client struct {
	conn *ssh.Client
	sftp *sftp.Client
	home string
}

// DialOptions carries everything needed to open a connection.
type DialOptions struct {
	Entry   models.ServerEntry
	Auth    ssh.AuthMethod
	Timeout time.Duration
}

// Dial opens an SSH connection to the entry's host and starts an SFTP
// session over it. Host keys are not verified, matching the pipeline's
// StrictHostKeyChecking=no heritage.
func Dial(opts DialOptions) (*Client, error) {
	user := opts.Entry.User
	if user == "" {
		user = "root"
	}

	cfg := &ssh.ClientConfig{
		User:            user,
		Auth:            []ssh.AuthMethod{opts.Auth},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         opts.Timeout,
	}

	addr := net.JoinHostPort(opts.Entry.Addr(), "22")
	conn, err := ssh.Dial("tcp", addr, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", shared.ErrAuthFailed, addr, err)
	}

	sess, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%w: sftp session: %v", shared.ErrTransferFailed, err)
	}

	return &Client{conn: conn, sftp: sess}, nil
}

// Close tears down the SFTP session and the underlying connection.
func (c *Client) Close() error {
	if c.sftp != nil {
		c.sftp.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Home returns the remote user's home directory, cached after first use.
func (c *Client) Home() (string, error) {
	if c.home != "" {
		return c.home, nil
	}
	wd, err := c.sftp.Getwd()
	if err != nil {
		return "", err
	}
	c.home = wd
	return wd, nil
}

// Expand resolves a leading ~ against the remote home directory.
func (c *Client) Expand(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := c.Home()
		if err != nil {
			return "", err
		}
		return home + strings.TrimPrefix(path, "~"), nil
	}
	return path, nil
}

var _ services.DirLister = (*Client)(nil)

// ListDir implements [services.DirLister]: it returns the directory names
// directly under path, sorted, each with a trailing slash. Callers join
// them onto the listed directory themselves.
func (c *Client) ListDir(ctx context.Context, path string) ([]string, error) {
	expanded, err := c.Expand(path)
	if err != nil {
		return nil, err
	}
	if expanded == "" {
		expanded = "/"
	}

	infos, err := c.sftp.ReadDir(expanded)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, info := range infos {
		if !info.IsDir() {
			continue
		}
		if strings.HasPrefix(info.Name(), ".") {
			continue
		}
		dirs = append(dirs, info.Name()+"/")
	}
	sort.Strings(dirs)
	return dirs, nil
}

// FS exposes the SFTP session as the [RemoteFS] the transfer step needs.
func (c *Client) FS() RemoteFS {
	return sftpFS{c.sftp}
}

type sftpFS struct {
	c *sftp.Client
}

func (s sftpFS) MkdirAll(path string) error {
	return s.c.MkdirAll(path)
}

func (s sftpFS) Create(path string) (WriteFile, error) {
	return s.c.Create(path)
}

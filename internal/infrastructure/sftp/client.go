package sftp

import (
	"fmt"
	"io"
	"net"
	"os"
	"strconv"
	"time"

	"flightreport-ingestor/pkg/logger"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Client is the SFTP implementation of the report source. One connection is
// opened per run and closed when the run ends.
type Client struct {
	conn   *ssh.Client
	client *sftp.Client
	logger logger.Logger
}

// NewClient dials the reporting system's SFTP drop.
func NewClient(host string, port int, user, password string, timeout time.Duration, log logger.Logger) (*Client, error) {
	sshConfig := &ssh.ClientConfig{
		User: user,
		Auth: []ssh.AuthMethod{
			ssh.Password(password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         timeout,
	}

	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", addr, err)
	}

	client, err := sftp.NewClient(conn)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open sftp session: %w", err)
	}

	log.Info("Connected to report drop", "host", host, "port", port)
	return &Client{conn: conn, client: client, logger: log}, nil
}

// ListFiles returns the filenames (not paths) in the remote directory.
func (c *Client) ListFiles(remoteDir string) ([]string, error) {
	infos, err := c.client.ReadDir(remoteDir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", remoteDir, err)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		names = append(names, info.Name())
	}
	return names, nil
}

// Fetch downloads one remote file to the local staging path.
func (c *Client) Fetch(remotePath, localPath string) error {
	src, err := c.client.Open(remotePath)
	if err != nil {
		return fmt.Errorf("open remote %s: %w", remotePath, err)
	}
	defer src.Close()

	dst, err := os.Create(localPath)
	if err != nil {
		return fmt.Errorf("create local %s: %w", localPath, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(localPath)
		return fmt.Errorf("download %s: %w", remotePath, err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close local %s: %w", localPath, err)
	}

	c.logger.Debug("Fetched report file", "remote", remotePath, "local", localPath)
	return nil
}

// Close tears down the SFTP session and the underlying SSH connection.
func (c *Client) Close() error {
	sftpErr := c.client.Close()
	sshErr := c.conn.Close()
	if sftpErr != nil {
		return sftpErr
	}
	return sshErr
}

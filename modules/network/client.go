package network

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"sync"

	"github.com/vk/helix/internal/ctxlog"
)

var (
	// ErrAlreadyConnected is returned by Connect on a live client.
	ErrAlreadyConnected = errors.New("network: already connected")
	// ErrNotConnected is returned by Send without a live connection.
	ErrNotConnected = errors.New("network: not connected")
)

// Client is a line-oriented TCP client. Connect dials the game server and
// starts a receive loop that hands each incoming line to the callback;
// Send writes one line. Callers are expected to gate Connect on the network
// feature being enabled.
type Client struct {
	mu   sync.Mutex
	conn net.Conn
	wg   sync.WaitGroup
}

// NewClient creates a disconnected client.
func NewClient() *Client {
	return &Client{}
}

// Connect dials host:port and starts delivering incoming lines to onData
// from a dedicated goroutine. The context bounds the dial only; the
// connection itself lives until Disconnect or a receive error.
func (c *Client) Connect(ctx context.Context, host string, port uint16, onData func(data string)) error {
	if onData == nil {
		return errors.New("network: onData callback must not be nil")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil {
		return ErrAlreadyConnected
	}

	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("network: dial %s: %w", addr, err)
	}

	c.conn = conn
	c.wg.Add(1)
	go c.receiveLoop(ctx, conn, onData)

	ctxlog.FromContext(ctx).Debug("Connected to game server.", "address", addr)
	return nil
}

// receiveLoop reads newline-delimited messages until the connection closes.
func (c *Client) receiveLoop(ctx context.Context, conn net.Conn, onData func(string)) {
	defer c.wg.Done()

	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		onData(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		ctxlog.FromContext(ctx).Debug("Receive loop ended.", "error", err)
	}
}

// Send writes one message, newline-terminated, to the server.
func (c *Client) Send(data string) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}
	if _, err := conn.Write([]byte(data + "\n")); err != nil {
		return fmt.Errorf("network: send: %w", err)
	}
	return nil
}

// Disconnect closes the connection and waits for the receive loop to drain.
// Disconnecting a client that is not connected is a no-op.
func (c *Client) Disconnect() error {
	c.mu.Lock()
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn == nil {
		return nil
	}
	err := conn.Close()
	c.wg.Wait()
	return err
}

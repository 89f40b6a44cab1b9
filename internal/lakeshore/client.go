// internal/lakeshore/client.go
package lakeshore

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/ansel1/merry"

	"github.com/tamzrod/excitation-controller/internal/excitation"
)

const (
	terminator = "\r\n"

	// maxReply bounds one reply line.
	maxReply = 256

	defaultTimeout = 2 * time.Second
)

// Lakeshore 340 stream client (stateless, 1 exchange = 1 connection).
// Used through a serial terminal server.
type Client struct {
	endpoint string
	timeout  time.Duration
	dialer   net.Dialer
}

type Config struct {
	Endpoint string
	Timeout  time.Duration
}

func New(cfg Config) (*Client, error) {
	if cfg.Endpoint == "" {
		return nil, merry.New("lakeshore: endpoint required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	return &Client{
		endpoint: cfg.Endpoint,
		timeout:  cfg.Timeout,
	}, nil
}

func (c *Client) Close() error { return nil }

// Endpoint returns the configured address.
func (c *Client) Endpoint() string { return c.endpoint }

//
// ---- Commands ----
//

// Setpoint reads the control loop setpoint (SETP? <loop>).
func (c *Client) Setpoint(ctx context.Context, loop int) (float64, error) {
	reply, err := c.query(ctx, fmt.Sprintf("SETP? %d", loop))
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(reply), 64)
	if err != nil {
		return 0, merry.Prependf(err, "lakeshore: bad SETP? reply %q", reply)
	}
	return v, nil
}

// SetExcitation sets the excitation of a sensor input (INTYPE <input>, 1, , , , <code>).
func (c *Client) SetExcitation(ctx context.Context, input string, code int) error {
	if !excitation.InRange(code) {
		return merry.Errorf("lakeshore: excitation code %d out of range", code)
	}
	return c.send(ctx, fmt.Sprintf("INTYPE %s, 1, , , , %d", input, code))
}

// Excitation reads back the excitation of a sensor input (INTYPE? <input>).
// The excitation is the last comma-separated field of the reply.
func (c *Client) Excitation(ctx context.Context, input string) (int, error) {
	reply, err := c.query(ctx, "INTYPE? "+input)
	if err != nil {
		return 0, err
	}
	fields := strings.Split(reply, ",")
	last := strings.TrimSpace(fields[len(fields)-1])
	code, err := strconv.Atoi(last)
	if err != nil {
		return 0, merry.Prependf(err, "lakeshore: bad INTYPE? reply %q", reply)
	}
	return code, nil
}

//
// ---- Exchange ----
//

func (c *Client) send(ctx context.Context, cmd string) error {
	conn, err := c.dial(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	return c.write(conn, cmd)
}

func (c *Client) query(ctx context.Context, cmd string) (string, error) {
	conn, err := c.dial(ctx)
	if err != nil {
		return "", err
	}
	defer conn.Close()

	return c.exchange(ctx, conn, cmd)
}

// exchange writes cmd on conn and reads one reply line.
func (c *Client) exchange(ctx context.Context, conn net.Conn, cmd string) (string, error) {
	if err := c.write(conn, cmd); err != nil {
		return "", err
	}

	if err := conn.SetReadDeadline(c.deadline(ctx)); err != nil {
		return "", merry.Prependf(err, "lakeshore: set read deadline")
	}
	line, err := readLine(bufio.NewReaderSize(conn, maxReply))
	if err != nil {
		return "", merry.Prependf(err, "lakeshore: read reply to %q", cmd)
	}
	return line, nil
}

func (c *Client) dial(ctx context.Context) (net.Conn, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	conn, err := c.dialer.DialContext(ctx, "tcp", c.endpoint)
	if err != nil {
		return nil, merry.Prependf(err, "lakeshore: dial %s", c.endpoint)
	}
	return conn, nil
}

func (c *Client) write(conn net.Conn, cmd string) error {
	if err := conn.SetWriteDeadline(time.Now().Add(c.timeout)); err != nil {
		return merry.Prependf(err, "lakeshore: set write deadline")
	}
	if _, err := io.WriteString(conn, cmd+terminator); err != nil {
		return merry.Prependf(err, "lakeshore: write %q", cmd)
	}
	return nil
}

func (c *Client) deadline(ctx context.Context) time.Time {
	d := time.Now().Add(c.timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(d) {
		return dl
	}
	return d
}

//
// ---- helpers ----
//

// readLine reads one terminated reply; an unterminated reply at EOF is accepted.
func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	if len(line) > maxReply {
		return "", merry.Errorf("reply longer than %d bytes", maxReply)
	}
	return strings.TrimRight(line, terminator), nil
}

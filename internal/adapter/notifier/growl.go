package notifier

import (
	"bufio"
	"bytes"
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/strogmv/notify-mcp/internal/domain"
)

const (
	DefaultGrowlHost = "localhost"
	DefaultGrowlPort = 23053

	defaultGrowlApp          = "notify-mcp"
	defaultGrowlNotification = "notification"
	growlIOTimeout           = 10 * time.Second
)

// ErrGrowlRejected is wrapped into errors reported by the Growl server itself.
var ErrGrowlRejected = errors.New("growl rejected the request")

// Growl speaks GNTP/1.0: one REGISTER followed by one NOTIFY, each on its
// own connection.
type Growl struct {
	host     string
	port     int
	password string
	dialer   *net.Dialer
}

func NewGrowl(host string, port int, password string) *Growl {
	if host == "" {
		host = DefaultGrowlHost
	}
	if port <= 0 {
		port = DefaultGrowlPort
	}
	return &Growl{host: host, port: port, password: password, dialer: &net.Dialer{}}
}

func (g *Growl) Notify(ctx context.Context, req domain.Request) (domain.Delivery, error) {
	host, port := g.host, g.port
	if req.Host != "" {
		host = req.Host
	}
	if req.Port != nil && *req.Port > 0 {
		port = int(*req.Port)
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	app := req.Name
	if app == "" {
		app = defaultGrowlApp
	}
	kind := req.Label
	if kind == "" {
		kind = defaultGrowlNotification
	}

	if err := g.exchange(ctx, addr, registerMessage(app, kind, req.Icon)); err != nil {
		return domain.Delivery{}, fmt.Errorf("register with growl at %s: %w", addr, err)
	}
	if err := g.exchange(ctx, addr, notifyMessage(app, kind, req)); err != nil {
		return domain.Delivery{}, fmt.Errorf("notify growl at %s: %w", addr, err)
	}
	return domain.Delivery{}, nil
}

func (g *Growl) exchange(ctx context.Context, addr string, m gntpMessage) error {
	conn, err := g.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return err
	}
	defer conn.Close()

	deadline := time.Now().Add(growlIOTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return err
	}

	payload, err := m.encode(g.password)
	if err != nil {
		return err
	}
	if _, err := conn.Write(payload); err != nil {
		return err
	}
	return readGNTPResponse(bufio.NewReader(conn))
}

type gntpHeader struct {
	Name  string
	Value string
}

type gntpMessage struct {
	Directive string
	Headers   []gntpHeader
	Sections  [][]gntpHeader
}

func registerMessage(app, kind, icon string) gntpMessage {
	m := gntpMessage{
		Directive: "REGISTER",
		Headers:   []gntpHeader{{"Application-Name", app}},
	}
	if icon != "" {
		m.Headers = append(m.Headers, gntpHeader{"Application-Icon", growlIcon(icon)})
	}
	m.Headers = append(m.Headers, gntpHeader{"Notifications-Count", "1"})
	m.Sections = [][]gntpHeader{{
		{"Notification-Name", kind},
		{"Notification-Display-Name", kind},
		{"Notification-Enabled", "True"},
	}}
	return m
}

func notifyMessage(app, kind string, req domain.Request) gntpMessage {
	m := gntpMessage{
		Directive: "NOTIFY",
		Headers: []gntpHeader{
			{"Application-Name", app},
			{"Notification-Name", kind},
			{"Notification-Title", req.Title},
			{"Notification-Text", req.Message},
		},
	}
	if req.Sticky != nil {
		m.Headers = append(m.Headers, gntpHeader{"Notification-Sticky", gntpBool(*req.Sticky)})
	}
	if req.Priority != nil {
		m.Headers = append(m.Headers, gntpHeader{"Notification-Priority", strconv.Itoa(int(*req.Priority))})
	}
	if req.Icon != "" {
		m.Headers = append(m.Headers, gntpHeader{"Notification-Icon", growlIcon(req.Icon)})
	}
	return m
}

func (m gntpMessage) encode(password string) ([]byte, error) {
	var b bytes.Buffer
	b.WriteString("GNTP/1.0 " + m.Directive + " NONE")
	if password != "" {
		key, err := gntpKey(password)
		if err != nil {
			return nil, err
		}
		b.WriteString(" " + key)
	}
	b.WriteString("\r\n")
	writeGNTPHeaders(&b, m.Headers)
	for _, section := range m.Sections {
		b.WriteString("\r\n")
		writeGNTPHeaders(&b, section)
	}
	b.WriteString("\r\n")
	return b.Bytes(), nil
}

var gntpValueCleaner = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func writeGNTPHeaders(b *bytes.Buffer, headers []gntpHeader) {
	for _, h := range headers {
		b.WriteString(h.Name + ": " + gntpValueCleaner.Replace(h.Value) + "\r\n")
	}
}

// gntpKey builds the "SHA256:<keyhash>.<salt>" password token.
func gntpKey(password string) (string, error) {
	salt := make([]byte, 8)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generate gntp salt: %w", err)
	}
	return gntpKeyWithSalt(password, salt), nil
}

func gntpKeyWithSalt(password string, salt []byte) string {
	key := sha256.Sum256(append([]byte(password), salt...))
	keyHash := sha256.Sum256(key[:])
	return "SHA256:" + strings.ToUpper(hex.EncodeToString(keyHash[:])) + "." + strings.ToUpper(hex.EncodeToString(salt))
}

func readGNTPResponse(r *bufio.Reader) error {
	status, err := r.ReadString('\n')
	if err != nil && status == "" {
		return fmt.Errorf("read growl response: %w", err)
	}
	fields := strings.Fields(status)
	if len(fields) < 2 || !strings.HasPrefix(fields[0], "GNTP/") {
		return fmt.Errorf("unexpected growl response %q", strings.TrimSpace(status))
	}

	headers := map[string]string{}
	for {
		line, err := r.ReadString('\n')
		line = strings.TrimRight(line, "\r\n")
		if name, value, ok := strings.Cut(line, ":"); ok {
			headers[strings.TrimSpace(name)] = strings.TrimSpace(value)
		}
		if line == "" || err != nil {
			if err != nil && !errors.Is(err, io.EOF) {
				return fmt.Errorf("read growl response: %w", err)
			}
			break
		}
	}

	switch fields[1] {
	case "-OK":
		return nil
	case "-ERROR":
		desc := headers["Error-Description"]
		if desc == "" {
			desc = "unknown error"
		}
		if code := headers["Error-Code"]; code != "" {
			return fmt.Errorf("%w: %s (code %s)", ErrGrowlRejected, desc, code)
		}
		return fmt.Errorf("%w: %s", ErrGrowlRejected, desc)
	default:
		return fmt.Errorf("unexpected growl response %q", strings.TrimSpace(status))
	}
}

func gntpBool(v bool) string {
	if v {
		return "True"
	}
	return "False"
}

// growlIcon passes URLs through and turns local paths into file URLs.
func growlIcon(icon string) string {
	if strings.Contains(icon, "://") {
		return icon
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(icon)}
	return u.String()
}

package email

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWelcome_EscapesName(t *testing.T) {
	body, err := RenderWelcome(WelcomeEmailData{Name: "<script>Eve</script>", FromName: "ORA Members"})
	require.NoError(t, err)

	assert.Contains(t, body, "&lt;script&gt;Eve&lt;/script&gt;")
	assert.Contains(t, body, "This email was sent from ORA Members")
}

func TestBuildMessage(t *testing.T) {
	s := NewService(&Config{From: "noreply@ora.test", FromName: "ORA"})

	msg := string(s.buildMessage(&Email{
		To:       []string{"a@x.com", "b@x.com"},
		CC:       []string{"c@x.com"},
		BCC:      []string{"hidden@x.com"},
		Subject:  "Hello",
		HTMLBody: "<p>hi</p>",
	}))

	assert.True(t, strings.HasPrefix(msg, "From: ORA <noreply@ora.test>\r\n"))
	assert.Contains(t, msg, "To: a@x.com, b@x.com\r\n")
	assert.Contains(t, msg, "Cc: c@x.com\r\n")
	assert.Contains(t, msg, "Subject: Hello\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8\r\n\r\n<p>hi</p>")
	assert.NotContains(t, msg, "hidden@x.com")
}

func TestBuildMessage_PlainText(t *testing.T) {
	s := NewService(&Config{From: "noreply@ora.test", FromName: "ORA"})

	msg := string(s.buildMessage(&Email{To: []string{"a@x.com"}, Subject: "Hi", Body: "plain"}))

	assert.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8\r\n\r\nplain")
	assert.NotContains(t, msg, "Cc:")
}

func TestSend_NotConfigured(t *testing.T) {
	s := NewService(&Config{})
	err := s.Send(context.Background(), &Email{To: []string{"a@x.com"}})
	assert.Error(t, err)
}

// fakeSMTP accepts one session without STARTTLS or AUTH and records the DATA payload.
func fakeSMTP(t *testing.T) (addr string, received <-chan string) {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	out := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		_ = conn.SetDeadline(time.Now().Add(5 * time.Second))

		r := bufio.NewReader(conn)
		write := func(s string) { _, _ = conn.Write([]byte(s + "\r\n")) }
		write("220 localhost ESMTP ready")

		for {
			line, err := r.ReadString('\n')
			if err != nil {
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"):
				write("250-localhost")
				write("250 8BITMIME")
			case strings.HasPrefix(cmd, "MAIL FROM"), strings.HasPrefix(cmd, "RCPT TO"):
				write("250 OK")
			case cmd == "DATA":
				write("354 Go ahead")
				var data strings.Builder
				for {
					l, err := r.ReadString('\n')
					if err != nil {
						return
					}
					if l == ".\r\n" {
						break
					}
					data.WriteString(l)
				}
				out <- data.String()
				write("250 Queued")
			case cmd == "QUIT":
				write("221 Bye")
				return
			default:
				write("250 OK")
			}
		}
	}()

	return ln.Addr().String(), out
}

func TestService_SendWelcome(t *testing.T) {
	addr, received := fakeSMTP(t)
	host, portStr, err := net.SplitHostPort(addr)
	require.NoError(t, err)
	port, err := strconv.Atoi(portStr)
	require.NoError(t, err)

	s := NewService(&Config{
		Host:           host,
		Port:           port,
		From:           "noreply@ora.test",
		FromName:       "ORA Members",
		WelcomeSubject: "Welcome to ORA Members",
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.SendWelcome(ctx, "alice@x.com", "Alice"))

	select {
	case data := <-received:
		assert.Contains(t, data, "To: alice@x.com")
		assert.Contains(t, data, "Subject: Welcome to ORA Members")
		assert.Contains(t, data, "Hi Alice,")
	case <-time.After(5 * time.Second):
		t.Fatal("no message received")
	}
}

func TestService_SendDialError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().(*net.TCPAddr)
	ln.Close()

	s := NewService(&Config{Host: "127.0.0.1", Port: addr.Port, From: "noreply@ora.test"})
	err = s.SendWelcome(context.Background(), "a@x.com", "A")
	assert.Error(t, err)
}

func TestAPIClient_SendWelcome(t *testing.T) {
	var got apiMessage
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"msg_1"}`))
	}))
	defer srv.Close()

	c := NewAPIClient(&APIConfig{
		URL:            srv.URL,
		APIKey:         "re_test",
		From:           "noreply@ora.test",
		FromName:       "ORA Members",
		WelcomeSubject: "Welcome to ORA Members",
	}, srv.Client())

	require.NoError(t, c.SendWelcome(context.Background(), "alice@x.com", "Alice"))
	assert.Equal(t, "Bearer re_test", auth)
	assert.Equal(t, "ORA Members <noreply@ora.test>", got.From)
	assert.Equal(t, []string{"alice@x.com"}, got.To)
	assert.Equal(t, "Welcome to ORA Members", got.Subject)
	assert.Contains(t, got.HTML, "Hi Alice,")
}

func TestAPIClient_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid from"}`))
	}))
	defer srv.Close()

	c := NewAPIClient(&APIConfig{URL: srv.URL, APIKey: "k"}, nil)
	err := c.SendWelcome(context.Background(), "a@x.com", "A")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "422")
	assert.Contains(t, err.Error(), "invalid from")
}

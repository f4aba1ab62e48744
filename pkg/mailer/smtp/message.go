package smtp

import (
	"bytes"
	"fmt"
	"mime"
	"mime/quotedprintable"
	"net/mail"
	"net/textproto"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/glconseil/vitrine/pkg/mailer"
	"github.com/glconseil/vitrine/pkg/sanitizer"
)

// reservedHeaders are written by buildMessage and cannot be overridden
// through Email.Headers.
var reservedHeaders = []string{
	"Bcc", "Cc", "Content-Transfer-Encoding", "Content-Type", "Date",
	"From", "Message-Id", "Mime-Version", "Reply-To", "Subject", "To",
}

// buildMessage renders a single-part text/plain message.
// HTML-only emails are flattened to text.
func buildMessage(email *mailer.Email, from *mail.Address, now time.Time) ([]byte, error) {
	to, err := formatList(email.To)
	if err != nil {
		return nil, err
	}
	cc, err := formatList(email.CC)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	writeHeader(&buf, "From", from.String())
	writeHeader(&buf, "To", to)
	if cc != "" {
		writeHeader(&buf, "Cc", cc)
	}
	if email.ReplyTo != "" {
		replyTo, err := formatList([]string{email.ReplyTo})
		if err != nil {
			return nil, err
		}
		writeHeader(&buf, "Reply-To", replyTo)
	}
	writeHeader(&buf, "Subject", mime.QEncoding.Encode("utf-8", headerSafe(email.Subject)))
	writeHeader(&buf, "Date", now.Format(time.RFC1123Z))
	writeHeader(&buf, "Message-ID", messageID(from.Address))
	writeHeader(&buf, "MIME-Version", "1.0")
	writeHeader(&buf, "Content-Type", "text/plain; charset=utf-8")
	writeHeader(&buf, "Content-Transfer-Encoding", "quoted-printable")

	keys := make([]string, 0, len(email.Headers))
	for k := range email.Headers {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		name := headerSafe(k)
		if name == "" || strings.ContainsAny(name, " :") || slices.Contains(reservedHeaders, textproto.CanonicalMIMEHeaderKey(name)) {
			continue
		}
		writeHeader(&buf, name, mime.QEncoding.Encode("utf-8", headerSafe(email.Headers[k])))
	}
	buf.WriteString("\r\n")

	body := email.Text
	if body == "" {
		body = sanitizer.StripHTML(email.HTML)
	}

	qp := quotedprintable.NewWriter(&buf)
	if _, err := qp.Write([]byte(body)); err != nil {
		return nil, fmt.Errorf("smtp: encode body: %w", err)
	}
	if err := qp.Close(); err != nil {
		return nil, fmt.Errorf("smtp: encode body: %w", err)
	}

	return buf.Bytes(), nil
}

func writeHeader(buf *bytes.Buffer, name, value string) {
	buf.WriteString(name)
	buf.WriteString(": ")
	buf.WriteString(value)
	buf.WriteString("\r\n")
}

// formatList parses addresses and re-renders them, which RFC 2047-encodes
// non-ASCII display names.
func formatList(raw []string) (string, error) {
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		addr, err := mail.ParseAddress(headerSafe(r))
		if err != nil {
			return "", fmt.Errorf("%w: %q: %v", ErrInvalidAddress, r, err)
		}
		out = append(out, addr.String())
	}
	return strings.Join(out, ", "), nil
}

// headerSafe drops CR and LF so a value can never start a new header.
func headerSafe(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}

func messageID(from string) string {
	domain := "localhost"
	if at := strings.LastIndex(from, "@"); at >= 0 && at < len(from)-1 {
		domain = from[at+1:]
	}
	return "<" + uuid.NewString() + "@" + domain + ">"
}

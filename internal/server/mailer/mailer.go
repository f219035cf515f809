// Package mailer delivers verification mails. The service only needs
// Mailer; transports are picked in config ("log" for development, "s3" to
// drop RFC 5322 messages into a bucket for a relay to pick up).
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Message is a rendered plain-text mail.
type Message struct {
	From    string
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// VerificationParams fills the verification mail template.
type VerificationParams struct {
	FirstName string
	Link      string
	ValidFor  time.Duration
}

const verificationSubject = "Verify your email address"

var verificationTmpl = template.Must(template.New("verification").Parse(
	`Hi {{.FirstName}},

please confirm your email address by opening the link below:

{{.Link}}

The link is valid for {{.ValidFor}} and can be used once.
If you did not create an account, ignore this message.
`))

// NewVerificationMessage renders the verification mail for to.
func NewVerificationMessage(from, to string, p VerificationParams) (Message, error) {
	var buf bytes.Buffer
	if err := verificationTmpl.Execute(&buf, p); err != nil {
		return Message{}, fmt.Errorf("render verification mail: %w", err)
	}
	return Message{From: from, To: to, Subject: verificationSubject, Body: buf.String()}, nil
}

// Bytes formats msg as an RFC 5322 message with CRLF line endings.
func (m Message) Bytes(date time.Time) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.From)
	fmt.Fprintf(&b, "To: %s\r\n", m.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", m.Subject)
	fmt.Fprintf(&b, "Date: %s\r\n", date.Format(time.RFC1123Z))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))
	return []byte(b.String())
}

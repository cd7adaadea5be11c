package commit

import (
	"bytes"
	"strings"
	"text/template"
	"time"

	"github.com/Duckilicious/sggit/pkg/errors"
)

// Entry is one touched repo path with the modification time of the file it
// was copied from, when known.
type Entry struct {
	RepoPath string
	ModTime  time.Time
}

// HasModTime reports whether the source modification time is known.
func (e Entry) HasModTime() bool {
	return !e.ModTime.IsZero()
}

// messageData is what the template sees.
type messageData struct {
	Subject string
	Count   int
	Files   []Entry
}

// MessageBuilder renders commit messages from a text/template.
type MessageBuilder struct {
	tmpl    *template.Template
	subject string
}

// NewMessageBuilder parses tmplText. subject becomes .Subject.
func NewMessageBuilder(tmplText, subject string) (*MessageBuilder, error) {
	tmpl, err := template.New("commit").Parse(tmplText)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "commit template does not parse")
	}
	return &MessageBuilder{tmpl: tmpl, subject: subject}, nil
}

// Subject returns the subject line the builder uses.
func (b *MessageBuilder) Subject() string {
	return b.subject
}

// Build renders the message for the given entries.
func (b *MessageBuilder) Build(entries []Entry) (string, error) {
	var buf bytes.Buffer
	data := messageData{Subject: b.subject, Count: len(entries), Files: entries}
	if err := b.tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrap(err, errors.ErrConfigInvalid, "commit template failed to render")
	}
	msg := strings.TrimSpace(buf.String())
	if msg == "" {
		msg = b.subject
	}
	return msg + "\n", nil
}

// PickSubject picks the subject line: the user's message wins, then the
// configured subject, then the command's fallback.
func PickSubject(user, configured, fallback string) string {
	switch {
	case strings.TrimSpace(user) != "":
		return strings.TrimSpace(user)
	case strings.TrimSpace(configured) != "":
		return strings.TrimSpace(configured)
	default:
		return fallback
	}
}

// Package mailalert turns job-alert digest emails (LinkedIn and
// friends) into one more search source behind the same Adapter
// contract as the scraped boards. It reads over IMAP, read-only, and
// never marks anything seen.
package mailalert

import (
	"context"
	"crypto/tls"
	"fmt"
	"strings"
	"time"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"

	"jobradar-engine/internal/domain"
	"jobradar-engine/internal/source"
	"jobradar-engine/internal/source/util"
)

const (
	maxMessages = 30
	maxListings = 40
	lookback    = 14 * 24 * time.Hour
)

type Config struct {
	Host       string
	Port       int
	Username   string
	Mailbox    string
	SubjectAny []string

	// Password resolves lazily so the keyring is only touched when the
	// adapter actually runs.
	Password func() (string, error)
}

type Fetcher struct {
	cfg Config
}

func New(cfg Config) *Fetcher {
	if cfg.Mailbox == "" {
		cfg.Mailbox = "INBOX"
	}
	return &Fetcher{cfg: cfg}
}

func (f *Fetcher) Name() string { return "mailalert" }

func (f *Fetcher) addr() string {
	return fmt.Sprintf("%s:%d", f.cfg.Host, f.cfg.Port)
}

// Available probes the IMAP port with a TLS handshake only; no login.
func (f *Fetcher) Available(ctx context.Context) bool {
	d := tls.Dialer{Config: &tls.Config{MinVersion: tls.VersionTLS12, ServerName: f.cfg.Host}}
	conn, err := d.DialContext(ctx, "tcp", f.addr())
	if err != nil {
		return false
	}
	_ = conn.Close()
	return true
}

func (f *Fetcher) Search(ctx context.Context, q source.Query) ([]domain.Listing, error) {
	password, err := f.cfg.Password()
	if err != nil {
		return nil, source.UnavailableErr(f.Name(), err)
	}

	c, err := imapclient.DialTLS(f.addr(), &imapclient.Options{
		TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12, ServerName: f.cfg.Host},
	})
	if err != nil {
		return nil, source.NetworkErr(f.Name(), err)
	}
	defer c.Close()

	go func() {
		<-ctx.Done()
		_ = c.Close()
	}()

	if err := c.Login(f.cfg.Username, password).Wait(); err != nil {
		return nil, source.UnavailableErr(f.Name(), err)
	}
	defer func() { _ = c.Logout().Wait() }()

	if _, err := c.Select(f.cfg.Mailbox, &imap.SelectOptions{ReadOnly: true}).Wait(); err != nil {
		return nil, source.UnavailableErr(f.Name(), err)
	}

	msgs, err := f.fetchRecent(ctx, c)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	seen := map[string]bool{}
	var out []domain.Listing
	for _, m := range msgs {
		if !f.subjectMatches(m.subject) {
			continue
		}
		for _, l := range extractListings(m.body, q.Keywords) {
			u := util.CanonicalURL(l.URL)
			if u == "" || seen[u] {
				continue
			}
			seen[u] = true
			l.Source = f.Name()
			l.ScrapedAt = now
			out = append(out, l)
			if len(out) >= maxListings {
				return out, nil
			}
		}
	}

	return out, nil
}

type message struct {
	subject string
	body    string
}

func (f *Fetcher) fetchRecent(ctx context.Context, c *imapclient.Client) ([]message, error) {
	criteria := &imap.SearchCriteria{Since: time.Now().Add(-lookback)}
	searchData, err := c.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, source.ParseErr(f.Name(), fmt.Errorf("uid search: %w", err))
	}

	uids := searchData.AllUIDs()
	if len(uids) == 0 {
		return nil, nil
	}
	// newest first
	for i, j := 0, len(uids)-1; i < j; i, j = i+1, j-1 {
		uids[i], uids[j] = uids[j], uids[i]
	}
	if len(uids) > maxMessages {
		uids = uids[:maxMessages]
	}

	bodyAll := &imap.FetchItemBodySection{
		Specifier: imap.PartSpecifierNone,
		Peek:      true,
	}
	fetchCmd := c.Fetch(imap.UIDSetNum(uids...), &imap.FetchOptions{
		UID:         true,
		Envelope:    true,
		BodySection: []*imap.FetchItemBodySection{bodyAll},
	})
	defer func() { _ = fetchCmd.Close() }()

	var out []message
	for {
		if ctx.Err() != nil {
			return nil, source.NetworkErr(f.Name(), ctx.Err())
		}
		msgData := fetchCmd.Next()
		if msgData == nil {
			break
		}
		buf, err := msgData.Collect()
		if err != nil {
			return nil, source.ParseErr(f.Name(), fmt.Errorf("fetch collect: %w", err))
		}

		var m message
		if buf.Envelope != nil {
			m.subject = buf.Envelope.Subject
		}
		if b := buf.FindBodySection(bodyAll); b != nil {
			m.body = decodeBody(b)
		}
		out = append(out, m)
	}
	return out, nil
}

func (f *Fetcher) subjectMatches(subject string) bool {
	if len(f.cfg.SubjectAny) == 0 {
		return true
	}
	low := strings.ToLower(subject)
	for _, want := range f.cfg.SubjectAny {
		if strings.Contains(low, strings.ToLower(want)) {
			return true
		}
	}
	return false
}

// keywordMatches is loose on purpose: digest anchor text is short and
// inconsistently cased.
func keywordMatches(text, keywords string) bool {
	if strings.TrimSpace(keywords) == "" {
		return true
	}
	low := strings.ToLower(text)
	for _, w := range strings.Fields(strings.ToLower(keywords)) {
		if strings.Contains(low, w) {
			return true
		}
	}
	return false
}

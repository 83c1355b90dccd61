// Package analytics keeps privacy-conscious visit counts: IP addresses are
// only stored as salted hashes and records expire after twelve months.
package analytics

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// PostPrefix is the request path prefix of blog bodies; requests under it
// count as post reads.
const PostPrefix = "/content/blogs/"

// RetentionMonths is how long visits are kept.
const RetentionMonths = 12

// Visit is one recorded request.
type Visit struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// PostStat counts reads of one blog post.
type PostStat struct {
	File  string `json:"file"`
	Reads int64  `json:"reads"`
}

// Stats summarizes the recorded visits.
type Stats struct {
	TotalVisits    int64      `json:"total_visits"`
	UniqueVisitors int64      `json:"unique_visitors"`
	VisitsToday    int64      `json:"visits_today"`
	VisitsThisWeek int64      `json:"visits_this_week"`
	TopPosts       []PostStat `json:"top_posts"`
	RecentVisits   []Visit    `json:"recent_visits"`
}

// Options configures a Store.
type Options struct {
	// Salt is mixed into IP hashes. A random salt is generated when empty,
	// so hashes are only comparable within one process.
	Salt   string
	Logger *zap.Logger
	Now    func() time.Time
}

// Store records visits in sqlite.
type Store struct {
	db   *sql.DB
	salt string
	log  *zap.Logger
	now  func() time.Time
	wg   sync.WaitGroup
}

// Open opens (creating if needed) the database at path.
func Open(ctx context.Context, path string, opts Options) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open analytics db: %w", err)
	}
	// A single connection serializes the background writers.
	db.SetMaxOpenConns(1)

	if opts.Salt == "" {
		salt, err := randomHex(32)
		if err != nil {
			return nil, errors.Join(err, db.Close())
		}
		opts.Salt = salt
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Store{db: db, salt: opts.Salt, log: opts.Logger, now: opts.Now}
	if err := s.migrate(ctx); err != nil {
		return nil, errors.Join(err, db.Close())
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
	CREATE TABLE IF NOT EXISTS visits (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		hashed_ip TEXT NOT NULL,
		user_agent TEXT,
		path TEXT,
		ts INTEGER NOT NULL
	)`)
	if err != nil {
		return fmt.Errorf("create visits table: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `CREATE INDEX IF NOT EXISTS visits_ts ON visits (ts)`)
	if err != nil {
		return fmt.Errorf("create visits index: %w", err)
	}
	return nil
}

// HashIP returns the stored form of an IP address.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

// Record stores one visit.
func (s *Store) Record(ctx context.Context, ip, userAgent, path string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visits (hashed_ip, user_agent, path, ts) VALUES (?, ?, ?, ?)`,
		s.HashIP(ip), userAgent, path, s.now().Unix())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

// RecordAsync stores a visit in the background. Close waits for pending
// writes.
func (s *Store) RecordAsync(ip, userAgent, path string) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.Record(context.Background(), ip, userAgent, path); err != nil {
			s.log.Warn("error recording visit", zap.Error(err))
		}
	}()
}

// Flush waits for pending background writes.
func (s *Store) Flush() {
	s.wg.Wait()
}

// Cleanup deletes visits older than RetentionMonths and returns how many were
// removed.
func (s *Store) Cleanup(ctx context.Context) (int64, error) {
	cutoff := s.now().AddDate(0, -RetentionMonths, 0).Unix()
	res, err := s.db.ExecContext(ctx, `DELETE FROM visits WHERE ts < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("cleanup visits: %w", err)
	}
	n, _ := res.RowsAffected()
	if n > 0 {
		s.log.Info("privacy cleanup removed old visits", zap.Int64("removed", n))
	}
	return n, nil
}

// Stats computes the dashboard summary.
func (s *Store) Stats(ctx context.Context) (*Stats, error) {
	now := s.now()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Unix()
	week := now.Add(-7 * 24 * time.Hour).Unix()

	stats := &Stats{}
	counts := []struct {
		query string
		args  []any
		dst   *int64
	}{
		{`SELECT COUNT(*) FROM visits`, nil, &stats.TotalVisits},
		{`SELECT COUNT(DISTINCT hashed_ip) FROM visits`, nil, &stats.UniqueVisitors},
		{`SELECT COUNT(*) FROM visits WHERE ts >= ?`, []any{today}, &stats.VisitsToday},
		{`SELECT COUNT(*) FROM visits WHERE ts >= ?`, []any{week}, &stats.VisitsThisWeek},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("count visits: %w", err)
		}
	}

	// Each query runs to completion before the next: the pool holds a
	// single connection.
	top, err := s.topPosts(ctx)
	if err != nil {
		return nil, err
	}
	stats.TopPosts = top

	recent, err := s.recentVisits(ctx)
	if err != nil {
		return nil, err
	}
	stats.RecentVisits = recent
	return stats, nil
}

func (s *Store) topPosts(ctx context.Context) ([]PostStat, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT path, COUNT(*) AS reads
		FROM visits
		WHERE path LIKE ?
		GROUP BY path
		ORDER BY reads DESC, path ASC
		LIMIT 10`, PostPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("query top posts: %w", err)
	}
	defer rows.Close()

	posts := []PostStat{}
	for rows.Next() {
		var p PostStat
		if err := rows.Scan(&p.File, &p.Reads); err != nil {
			return nil, fmt.Errorf("scan top posts: %w", err)
		}
		p.File = strings.TrimPrefix(p.File, PostPrefix)
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query top posts: %w", err)
	}
	return posts, nil
}

func (s *Store) recentVisits(ctx context.Context) ([]Visit, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, hashed_ip, COALESCE(user_agent, ''), COALESCE(path, ''), ts
		FROM visits
		ORDER BY ts DESC, id DESC
		LIMIT 50`)
	if err != nil {
		return nil, fmt.Errorf("query recent visits: %w", err)
	}
	defer rows.Close()

	visits := []Visit{}
	for rows.Next() {
		var v Visit
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scan recent visits: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		visits = append(visits, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query recent visits: %w", err)
	}
	return visits, nil
}

// Close waits for pending writes and closes the database.
func (s *Store) Close() error {
	s.wg.Wait()
	return s.db.Close()
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewToken returns a random admin token.
func NewToken() (string, error) {
	return randomHex(32)
}

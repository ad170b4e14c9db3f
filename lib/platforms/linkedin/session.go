package linkedin

import (
	"crypto/sha256"
	"fmt"
	devenv "linkedin-voyager/dev/env"
	"linkedin-voyager/lib/restyutil"
	"linkedin-voyager/lib/schema"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Config is the on disk configuration of a session, see linkedin.json5.
type Config struct {
	LiAt              string  `json:"li_at"`
	JSessionID        string  `json:"jsessionid"`
	BaseUrl           string  `json:"base_url"`
	PhoneRegion       string  `json:"phone_region"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	// CacheDir enables the payload cache, it may start with <dev_state>.
	CacheDir        string `json:"cache_dir"`
	CacheTTLMinutes int    `json:"cache_ttl_minutes"`
}

// Session is a Client together with the resources it owns.
type Session struct {
	*Client
	db *badger.DB
}

// Open builds a client from cfg. dumpDir, when set, receives every http
// exchange while debug logging is on.
func Open(cfg Config, dumpDir string) (*Session, error) {
	var output restyutil.InstrumentOutput
	if dumpDir != "" {
		fs, err := restyutil.NewFilesystemOutput(dumpDir)
		if err != nil {
			return nil, fmt.Errorf("open dump dir: %w", err)
		}
		output = fs
	}

	httpFetcher, err := NewHTTPFetcher(FetcherOptions{
		BaseUrl:           cfg.BaseUrl,
		LiAt:              cfg.LiAt,
		JSessionID:        cfg.JSessionID,
		RequestsPerSecond: cfg.RequestsPerSecond,
		DumpOutput:        output,
	})
	if err != nil {
		return nil, err
	}
	var fetcher Fetcher = httpFetcher

	s := &Session{}
	if cfg.CacheDir != "" {
		dir, err := devenv.ResolvePath(cfg.CacheDir)
		if err != nil {
			return nil, err
		}
		s.db, err = badger.Open(badger.DefaultOptions(dir).WithLogger(nil))
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		fetcher, err = NewCachedFetcher(fetcher, CacheOptions{
			DB:        s.db,
			Namespace: cacheNamespace(cfg.LiAt),
			TTL:       time.Duration(cfg.CacheTTLMinutes) * time.Minute,
			BaseUrl:   cfg.BaseUrl,
		})
		if err != nil {
			s.db.Close()
			return nil, err
		}
	}

	s.Client, err = NewClient(ClientOptions{
		Fetcher: fetcher,
		Decode:  schema.Options{PhoneRegion: cfg.PhoneRegion},
	})
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Session) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// cacheNamespace keys cached payloads by session without writing the cookie
// itself to disk.
func cacheNamespace(liAt string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(liAt)))[:16]
}

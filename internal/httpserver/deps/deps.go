package deps

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/csfinder/internal/bookmarks"
	"github.com/MrSnakeDoc/csfinder/internal/httpserver/mw"
	"github.com/MrSnakeDoc/csfinder/internal/index"
	"github.com/MrSnakeDoc/csfinder/internal/logger"
	"github.com/MrSnakeDoc/csfinder/internal/session"
)

// Pinger reports whether a backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time      // for testing, defaults to time.Now
	AllowedHosts []string              // Host headers allowed to access the server
	AllowedCIDRS []string              // IPs allowed to access healthz/readyz/infra endpoints
	TrustProxy   bool                  // true if running behind a trusted reverse proxy (e.g., cloudflared)
	RateLimit    mw.RateLimitConfig    // per-IP token bucket on /api
	DataFile     string                // Path to the workbook the records were loaded from
	Records      *index.RecordStore    // Loaded collections
	Bookmarks    *bookmarks.Service    // Bookmark set with write-through persistence
	Sessions     *session.Registry     // Per-browser view state
	RedisClient  redis.UniversalClient // nil unless the redis bookmark backend is used
	SQLite       Pinger                // nil unless the sqlite bookmark backend is used
	SecureCookie bool                  // mark the session cookie Secure
}

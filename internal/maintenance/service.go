// Package maintenance runs the scheduled background jobs: a tool-server
// reachability probe and an upload-directory usage report. Both are
// observational: they log and never mutate state; in particular the usage
// report never deletes uploads.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	robfigcron "github.com/robfig/cron/v3"

	"github.com/excelaipro/excelaipro/internal/config"
	"github.com/excelaipro/excelaipro/internal/mcp"
	"github.com/excelaipro/excelaipro/internal/upload"
)

// Service owns the cron scheduler and its two jobs. An empty schedule spec
// disables the corresponding job.
type Service struct {
	cfg    *config.Config
	store  *upload.Store
	robfig *robfigcron.Cron
}

func NewService(cfg *config.Config, store *upload.Store) *Service {
	return &Service{
		cfg:    cfg,
		store:  store,
		robfig: robfigcron.New(),
	}
}

// Start registers the configured jobs and runs the scheduler until ctx is
// cancelled.
func (s *Service) Start(ctx context.Context) error {
	if spec := s.cfg.ProbeSchedule; spec != "" {
		if _, err := s.robfig.AddFunc(spec, s.probeToolServer); err != nil {
			slog.Error("invalid probe schedule", "spec", spec, "err", err)
		}
	}
	if spec := s.cfg.UsageReportSchedule; spec != "" {
		if _, err := s.robfig.AddFunc(spec, s.reportUploadUsage); err != nil {
			slog.Error("invalid usage report schedule", "spec", spec, "err", err)
		}
	}

	s.robfig.Start()
	<-ctx.Done()
	<-s.robfig.Stop().Done()
	return ctx.Err()
}

// probeToolServer dials the MCP endpoint and logs whether the handshake
// succeeds. A failing probe is a warning, not an error condition: chat
// requests dial fresh and report their own failures.
func (s *Service) probeToolServer() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	start := time.Now()
	client, err := mcp.Dial(ctx, s.cfg.MCPEndpoint())
	if err != nil {
		slog.Warn("tool server unreachable", "endpoint", s.cfg.MCPEndpoint(), "err", err)
		return
	}
	client.Close()
	slog.Info("tool server reachable", "endpoint", s.cfg.MCPEndpoint(), "rtt", time.Since(start))
}

func (s *Service) reportUploadUsage() {
	count, bytes, err := s.store.Usage()
	if err != nil {
		slog.Warn("upload usage scan failed", "dir", s.store.Dir(), "err", err)
		return
	}
	slog.Info("upload usage", "dir", s.store.Dir(), "files", count, "bytes", bytes)
}

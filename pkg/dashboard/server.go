// Package dashboard serves the portfolio web application: a landing page, a
// pipeline dashboard backed by the GitHub API, and status endpoints for probes
// and CI integration tests.
//
// The server never fails to start because credentials are missing. Without
// them the GitHub panels report "disconnected" and static content still renders.
package dashboard

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/creds"
	"github.com/ziyotek-edu/devsecops-portfolio-template/pkg/githubapp"
)

const (
	recentCommitLimit = 10
	workflowRunLimit  = 10
	packageLimit      = 5
	githubCallTimeout = 10 * time.Second
)

// GitHubReader is the subset of the GitHub client the dashboard renders from.
type GitHubReader interface {
	UserProfile(ctx context.Context, username string) (*githubapp.UserProfile, error)
	RecentCommits(ctx context.Context, owner, repo string, limit int) ([]githubapp.Commit, error)
	WorkflowRuns(ctx context.Context, owner, repo string, limit int) ([]githubapp.WorkflowRun, error)
	Packages(ctx context.Context, username string, limit int) ([]githubapp.Package, error)
}

// Server is the dashboard HTTP server.
type Server struct {
	cfg      Config
	logger   *zap.Logger
	resolved creds.ResolvedCredential
	github   GitHubReader
	app      *fiber.App
}

// NewServer assembles the fiber application. The resolved credential and
// GitHub reader may describe an absent integration; routes degrade accordingly.
func NewServer(cfg Config, logger *zap.Logger, resolved creds.ResolvedCredential, github GitHubReader) *Server {
	server := &Server{
		cfg:      cfg,
		logger:   logger,
		resolved: resolved,
		github:   github,
	}

	app := fiber.New(fiber.Config{
		AppName:               "portfolio-dashboard",
		DisableStartupMessage: true,
	})

	app.Get("/", server.handleHome)
	app.Get("/dashboard", server.handleDashboard)
	app.Get("/api/status", server.handleStatus)
	app.Get("/health", server.handleHealth)

	server.app = app

	return server
}

// Build resolves credentials from the environment and Vault, constructs the
// GitHub client when possible, and returns a ready server. Resolution failure
// is not fatal.
func Build(cfg Config, logger *zap.Logger) *Server {
	resolved := creds.DefaultResolver().Resolve(context.Background())

	var reader GitHubReader

	if resolved.Present() {
		auth, err := githubapp.NewAuthenticator(githubapp.Config{Bundle: resolved.Bundle})
		if err != nil {
			logger.Warn("github app credentials unusable, dashboard degrades to static content",
				zap.String("source", string(resolved.Source)),
				zap.Error(err),
			)
		} else {
			reader = githubapp.NewClient(auth)
		}
	} else {
		logger.Info("no github app credentials found, dashboard degrades to static content")
	}

	logger.Info("credential resolution complete", zap.String("source", string(resolved.Source)))

	return NewServer(cfg, logger, resolved, reader)
}

// Listen serves the application on the configured port until the listener fails.
func (s *Server) Listen() error {
	s.logger.Info("dashboard listening",
		zap.Int("port", s.cfg.Port),
		zap.String("environment", s.cfg.Environment),
	)

	err := s.app.Listen(fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("dashboard listener failed: %w", err)
	}

	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	err := s.app.ShutdownWithTimeout(5 * time.Second)
	if err != nil {
		return fmt.Errorf("dashboard shutdown failed: %w", err)
	}

	return nil
}

// App exposes the underlying fiber application for in-process testing.
func (s *Server) App() *fiber.App {
	return s.app
}

// --- handlers ---

func (s *Server) handleHome(c *fiber.Ctx) error {
	profile := s.fetchProfile(c.Context())

	name := s.cfg.StudentName
	if profile != nil && profile.Name != "" {
		name = profile.Name
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)

	return c.SendString(fmt.Sprintf(
		"<html><head><title>%s</title></head><body><h1>%s</h1><p>%s</p>"+
			"<p>GitHub: %s | Version: %s | Environment: %s</p>%s"+
			"<p><a href=\"/dashboard\">Pipeline dashboard</a></p></body></html>",
		s.cfg.StudentName, name, s.cfg.Bio,
		s.cfg.GitHubUsername, s.cfg.AppVersion, s.cfg.Environment,
		s.profileLinks(),
	))
}

func (s *Server) handleDashboard(c *fiber.Ctx) error {
	ctx := c.Context()

	return c.JSON(fiber.Map{
		"student": fiber.Map{
			"name":            s.cfg.StudentName,
			"github_username": s.cfg.GitHubUsername,
			"github_repo":     s.cfg.GitHubRepo,
			"bio":             s.cfg.Bio,
		},
		"deployment":    s.deploymentMetadata(),
		"profile":       s.fetchProfile(ctx),
		"commits":       s.fetchCommits(ctx),
		"workflow_runs": s.fetchWorkflowRuns(ctx),
		"packages":      s.fetchPackages(ctx),
		"integrations":  s.integrations(),
	})
}

func (s *Server) handleStatus(c *fiber.Ctx) error {
	hostname, _ := os.Hostname()

	githubStatus := "disconnected"
	if s.github != nil {
		githubStatus = "connected"
	}

	vaultStatus := "disconnected"
	if s.resolved.Source == creds.SourceVault {
		vaultStatus = "connected"
	}

	return c.JSON(fiber.Map{
		"status":      "healthy",
		"version":     s.cfg.AppVersion,
		"environment": s.cfg.Environment,
		"student": fiber.Map{
			"name":            s.cfg.StudentName,
			"github_username": s.cfg.GitHubUsername,
		},
		"deployment": fiber.Map{
			"pod_name":      s.cfg.PodName,
			"pod_namespace": s.cfg.PodNamespace,
			"pod_ip":        s.cfg.PodIP,
			"node_name":     s.cfg.NodeName,
			"hostname":      hostname,
		},
		"integrations": fiber.Map{
			"vault":      vaultStatus,
			"github_api": githubStatus,
		},
		"credential_source": string(s.resolved.Source),
		"timestamp":         time.Now().UTC().Format(time.RFC3339),
	})
}

// handleHealth always reports healthy; the app works without GitHub or Vault.
func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "healthy",
		"version": s.cfg.AppVersion,
	})
}

// --- internals ---

func (s *Server) integrations() fiber.Map {
	githubStatus := "disconnected"
	if s.github != nil {
		githubStatus = "connected"
	}

	vaultStatus := "disconnected"
	if s.resolved.Source == creds.SourceVault {
		vaultStatus = "connected"
	}

	return fiber.Map{
		"vault":  fiber.Map{"status": vaultStatus},
		"github": fiber.Map{"status": githubStatus},
	}
}

// profileLinks renders the optional LinkedIn and personal website links.
func (s *Server) profileLinks() string {
	var links []string

	if s.cfg.LinkedInURL != "" {
		links = append(links, fmt.Sprintf("<a href=%q>LinkedIn</a>", s.cfg.LinkedInURL))
	}

	if s.cfg.WebsiteURL != "" {
		links = append(links, fmt.Sprintf("<a href=%q>Website</a>", s.cfg.WebsiteURL))
	}

	if len(links) == 0 {
		return ""
	}

	return "<p>" + strings.Join(links, " | ") + "</p>"
}

func (s *Server) deploymentMetadata() fiber.Map {
	return fiber.Map{
		"app_version":   s.cfg.AppVersion,
		"environment":   s.cfg.Environment,
		"pod_name":      s.cfg.PodName,
		"pod_namespace": s.cfg.PodNamespace,
		"pod_ip":        s.cfg.PodIP,
		"node_name":     s.cfg.NodeName,
	}
}

func (s *Server) fetchProfile(ctx context.Context) *githubapp.UserProfile {
	if s.github == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, githubCallTimeout)
	defer cancel()

	profile, err := s.github.UserProfile(callCtx, s.cfg.GitHubUsername)
	if err != nil {
		s.logger.Warn("failed to fetch github profile", zap.Error(err))

		return nil
	}

	return profile
}

func (s *Server) fetchCommits(ctx context.Context) []githubapp.Commit {
	if s.github == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, githubCallTimeout)
	defer cancel()

	commits, err := s.github.RecentCommits(callCtx, s.cfg.GitHubUsername, s.cfg.GitHubRepo, recentCommitLimit)
	if err != nil {
		s.logger.Warn("failed to fetch recent commits", zap.Error(err))

		return nil
	}

	return commits
}

func (s *Server) fetchPackages(ctx context.Context) []githubapp.Package {
	if s.github == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, githubCallTimeout)
	defer cancel()

	packages, err := s.github.Packages(callCtx, s.cfg.GitHubUsername, packageLimit)
	if err != nil {
		s.logger.Warn("failed to fetch container packages", zap.Error(err))

		return nil
	}

	return packages
}

func (s *Server) fetchWorkflowRuns(ctx context.Context) []githubapp.WorkflowRun {
	if s.github == nil {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, githubCallTimeout)
	defer cancel()

	runs, err := s.github.WorkflowRuns(callCtx, s.cfg.GitHubUsername, s.cfg.GitHubRepo, workflowRunLimit)
	if err != nil {
		s.logger.Warn("failed to fetch workflow runs", zap.Error(err))

		return nil
	}

	return runs
}

// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strings"
)

// Config holds the application configuration loaded from environment
// variables. It is constructed once at startup and passed by reference into
// each component; nothing mutates it afterwards.
type Config struct {
	SlackBotToken      string
	SlackSigningSecret string
	GitHubToken        string
	AuthorizedUserIDs  []string
	ListenAddr         string
	DBPath             string
}

// Load reads configuration from environment variables and returns a validated
// Config. TAKEOFF_SLACK_BOT_TOKEN, TAKEOFF_SLACK_SIGNING_SECRET, and
// TAKEOFF_GITHUB_TOKEN are required.
// Optional variables with defaults: TAKEOFF_AUTHORIZED_USER_IDS (empty, which
// denies everyone), TAKEOFF_LISTEN_ADDR (127.0.0.1:8080), TAKEOFF_DB_PATH
// (takeoff.db).
func Load() (*Config, error) {
	botToken := os.Getenv("TAKEOFF_SLACK_BOT_TOKEN")
	if botToken == "" {
		return nil, fmt.Errorf("TAKEOFF_SLACK_BOT_TOKEN is required")
	}

	signingSecret := os.Getenv("TAKEOFF_SLACK_SIGNING_SECRET")
	if signingSecret == "" {
		return nil, fmt.Errorf("TAKEOFF_SLACK_SIGNING_SECRET is required")
	}

	githubToken := os.Getenv("TAKEOFF_GITHUB_TOKEN")
	if githubToken == "" {
		return nil, fmt.Errorf("TAKEOFF_GITHUB_TOKEN is required")
	}

	// Comma-separated Slack user IDs, e.g. "U012AB3CD,U056EF7GH". An empty
	// list is valid configuration: it means no one may trigger merges.
	var authorizedIDs []string
	if v, ok := os.LookupEnv("TAKEOFF_AUTHORIZED_USER_IDS"); ok && v != "" {
		for _, id := range strings.Split(v, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				authorizedIDs = append(authorizedIDs, id)
			}
		}
	}
	if authorizedIDs == nil {
		authorizedIDs = []string{}
	}

	listenAddr := "127.0.0.1:8080"
	if v, ok := os.LookupEnv("TAKEOFF_LISTEN_ADDR"); ok {
		listenAddr = v
	}

	dbPath := "takeoff.db"
	if v, ok := os.LookupEnv("TAKEOFF_DB_PATH"); ok {
		dbPath = v
	}

	return &Config{
		SlackBotToken:      botToken,
		SlackSigningSecret: signingSecret,
		GitHubToken:        githubToken,
		AuthorizedUserIDs:  authorizedIDs,
		ListenAddr:         listenAddr,
		DBPath:             dbPath,
	}, nil
}

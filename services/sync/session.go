package sync

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"equiptrack/models"
	"equiptrack/services/command"
	"equiptrack/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const sessionTTL = 12 * time.Hour

// SessionProvider hands out authenticated Command sessions for an org,
// reusing a cached session where one exists.
type SessionProvider interface {
	Session(ctx context.Context, settings *models.IntegrationSettings) (*command.Session, error)
	Invalidate(ctx context.Context, orgID string) error
}

type redisSessionProvider struct {
	cmd    *command.Client
	client *redis.Client
}

func NewRedisSessionProvider(cmd *command.Client) SessionProvider {
	return &redisSessionProvider{cmd: cmd, client: utils.GetSessionCacheClient()}
}

func sessionKey(orgID string) string {
	return "command:session:" + orgID
}

func (p *redisSessionProvider) Session(ctx context.Context, settings *models.IntegrationSettings) (*command.Session, error) {
	if cached, err := p.client.Get(ctx, sessionKey(settings.OrgID)).Result(); err == nil {
		var s command.Session
		if err := json.Unmarshal([]byte(cached), &s); err == nil && s.Token != "" {
			return &s, nil
		}
	}

	s, err := p.cmd.Login(ctx, settings.ShortName, settings.BotEmail, settings.BotSecret)
	if err != nil {
		return nil, fmt.Errorf("login for org %s: %w", settings.OrgID, err)
	}

	raw, err := json.Marshal(s)
	if err == nil {
		if err := p.client.Set(ctx, sessionKey(settings.OrgID), raw, sessionTTL).Err(); err != nil {
			utils.GetLogger().Warn("failed to cache command session", zap.String("orgId", settings.OrgID), zap.Error(err))
		}
	}
	return s, nil
}

func (p *redisSessionProvider) Invalidate(ctx context.Context, orgID string) error {
	return p.client.Del(ctx, sessionKey(orgID)).Err()
}

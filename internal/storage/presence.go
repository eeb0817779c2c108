package storage

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

// Online flags live in Redis under online:<userID> with a TTL. The
// coordinator refreshes them while a connection is alive; the REST partner
// list reads them. The in-process presence directory stays authoritative for
// event routing, so a stale flag costs nothing but a wrong badge.

func onlineKey(userID string) string {
	return "online:" + userID
}

func (s *Service) SetUserOnline(userID string) error {
	return s.Redis.Set(s.Ctx, onlineKey(userID), "1", s.PresenceTTL).Err()
}

func (s *Service) SetUserOffline(userID string) error {
	return s.Redis.Del(s.Ctx, onlineKey(userID)).Err()
}

func (s *Service) RefreshUserOnline(userIDs []string) error {
	for _, id := range userIDs {
		if err := s.Redis.Expire(s.Ctx, onlineKey(id), s.PresenceTTL).Err(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) IsUserOnline(userID string) (bool, error) {
	_, err := s.Redis.Get(s.Ctx, onlineKey(userID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

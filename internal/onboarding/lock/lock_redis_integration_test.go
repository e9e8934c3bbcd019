//go:build integration

package lock_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"carehub/internal/onboarding/lock"
	"carehub/pkg/platform/sentinel"
	"carehub/pkg/testutil/containers"
)

type RedisLockerSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	locker *lock.RedisLocker
}

func TestRedisLockerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisLockerSuite))
}

func (s *RedisLockerSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.locker = lock.NewRedis(s.redis.Client)
}

func (s *RedisLockerSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisLockerSuite) TestExclusive() {
	ctx := context.Background()

	lease, err := s.locker.Obtain(ctx, "d1", time.Minute)
	s.Require().NoError(err)

	_, err = s.locker.Obtain(ctx, "d1", time.Minute)
	s.ErrorIs(err, sentinel.ErrConflict)

	s.Require().NoError(lease.Release(ctx))

	again, err := s.locker.Obtain(ctx, "d1", time.Minute)
	s.Require().NoError(err)
	s.Require().NoError(again.Release(ctx))
}

func (s *RedisLockerSuite) TestReleaseAfterExpiry() {
	ctx := context.Background()

	lease, err := s.locker.Obtain(ctx, "d1", 50*time.Millisecond)
	s.Require().NoError(err)
	time.Sleep(100 * time.Millisecond)

	s.NoError(lease.Release(ctx))
}

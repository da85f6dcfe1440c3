//go:build integration

package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	rds       *Redis
}

func (s *RedisIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	endpoint, err := container.Endpoint(s.ctx, "")
	s.Require().NoError(err)

	s.rds = NewFromClient(redis.NewClient(&redis.Options{Addr: endpoint}))
	s.Require().NoError(s.rds.Ping(s.ctx))
}

func (s *RedisIntegrationSuite) TearDownSuite() {
	if s.rds != nil {
		_ = s.rds.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *RedisIntegrationSuite) SetupTest() {
	s.Require().NoError(s.rds.client.FlushDB(s.ctx).Err())
}

func TestRedisIntegrationSuite(t *testing.T) {
	suite.Run(t, new(RedisIntegrationSuite))
}

func (s *RedisIntegrationSuite) TestRedisChannels_Contract() {
	testChannelCache(s.T(), NewRedisChannels(s.rds))
}

func (s *RedisIntegrationSuite) TestRedisChannels_NamespacedKey() {
	c := NewRedisChannels(s.rds)
	s.Require().NoError(c.Set(s.ctx, "k1", sampleEntry(1, 1000)))

	n, err := s.rds.client.Exists(s.ctx, "live:channels:k1").Result()
	s.NoError(err)
	s.Equal(int64(1), n)

	ttl, err := s.rds.client.TTL(s.ctx, "live:channels:k1").Result()
	s.NoError(err)
	s.Equal(time.Duration(-1), ttl, "channel entries must not expire in redis")
}

func (s *RedisIntegrationSuite) TestLocker_Exclusive() {
	l := NewLocker(s.rds, "test:lock", 5*time.Second)

	var mu sync.Mutex
	holders, maxHolders := 0, 0
	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(s.ctx)
			s.NoError(err)
			mu.Lock()
			holders++
			if holders > maxHolders {
				maxHolders = holders
			}
			mu.Unlock()
			time.Sleep(10 * time.Millisecond)
			mu.Lock()
			holders--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()

	s.Equal(1, maxHolders)
	s.Equal(int64(0), s.rds.client.Exists(s.ctx, "test:lock").Val())
}

func (s *RedisIntegrationSuite) TestLocker_ContextDone() {
	unlock, err := TryLock(s.ctx, s.rds, "test:held", 5*time.Second)
	s.Require().NoError(err)
	defer unlock()

	ctx, cancel := context.WithTimeout(s.ctx, 100*time.Millisecond)
	defer cancel()

	_, err = NewLocker(s.rds, "test:held", time.Second).Lock(ctx)
	s.ErrorIs(err, context.DeadlineExceeded)
}

func (s *RedisIntegrationSuite) TestQueue_RoundTrip() {
	job := RefreshJob{SourceKey: "k1", RequestedAt: time.Now().UTC().Truncate(time.Second)}
	s.Require().NoError(Enqueue(s.ctx, s.rds, DefaultQueue, job))

	got, err := Dequeue(s.ctx, s.rds, DefaultQueue, time.Second)
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Equal(job.SourceKey, got.SourceKey)
	s.True(job.RequestedAt.Equal(got.RequestedAt))

	empty, err := Dequeue(s.ctx, s.rds, DefaultQueue, 100*time.Millisecond)
	s.NoError(err)
	s.Nil(empty)
}

func (s *RedisIntegrationSuite) TestRefreshQueue_FIFO() {
	q := NewRefreshQueue(s.rds, "test:refresh")
	s.Require().NoError(q.EnqueueRefresh(s.ctx, "first"))
	s.Require().NoError(q.EnqueueRefresh(s.ctx, "second"))

	for _, want := range []string{"first", "second"} {
		job, err := q.Next(s.ctx, time.Second)
		s.Require().NoError(err)
		s.Require().NotNil(job)
		s.Equal(want, job.SourceKey)
		s.False(job.RequestedAt.IsZero())
	}
}

func (s *RedisIntegrationSuite) TestSetIfGeneration() {
	gen, err := Generation(s.ctx, s.rds, "test:gen")
	s.Require().NoError(err)
	s.Equal("0", gen)

	ok, err := SetIfGeneration(s.ctx, s.rds, "test:gen", gen, "test:value", []string{"a"}, time.Minute)
	s.Require().NoError(err)
	s.True(ok)

	s.Require().NoError(Del(s.ctx, s.rds, "test:value"))
	s.Require().NoError(BumpGeneration(s.ctx, s.rds, "test:gen"))

	ok, err = SetIfGeneration(s.ctx, s.rds, "test:gen", gen, "test:value", []string{"old"}, time.Minute)
	s.Require().NoError(err)
	s.False(ok)
	_, err = Get[[]string](s.ctx, s.rds, "test:value")
	s.ErrorIs(err, ErrMiss)

	current, err := Generation(s.ctx, s.rds, "test:gen")
	s.Require().NoError(err)
	s.Equal("1", current)
}

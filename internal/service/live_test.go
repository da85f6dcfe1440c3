package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/voyagen/livechannels/internal/cache"
	"github.com/voyagen/livechannels/internal/models"
	"github.com/voyagen/livechannels/internal/service/mocks"
)

type LiveChannelsTestSuite struct {
	suite.Suite
	ctrl *gomock.Controller

	configs *mocks.MockConfigStore
	fetcher *mocks.MockPlaylistFetcher
	cache   *cache.Memory

	now     time.Time
	logger  *slog.Logger
	service *LiveChannels
}

func (s *LiveChannelsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())

	s.configs = mocks.NewMockConfigStore(s.ctrl)
	s.fetcher = mocks.NewMockPlaylistFetcher(s.ctrl)
	s.cache = cache.NewMemory()

	s.now = time.UnixMilli(1000)
	s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))

	s.service = s.newService(s.configs, s.cache)
}

func (s *LiveChannelsTestSuite) newService(configs ConfigStore, c ChannelCache, opts ...Option) *LiveChannels {
	opts = append([]Option{WithClock(func() time.Time { return s.now })}, opts...)
	return NewLiveChannels(configs, c, s.fetcher, s.logger, opts...)
}

func (s *LiveChannelsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestLiveChannelsTestSuite(t *testing.T) {
	suite.Run(t, new(LiveChannelsTestSuite))
}

func k1Config() []models.LiveSource {
	return []models.LiveSource{
		{Key: "k0", Name: "Other", URL: "http://other", ChannelNumber: 7},
		{Key: "k1", Name: "N", URL: "http://x", ChannelNumber: 0},
	}
}

func threeChannels() []models.Channel {
	return []models.Channel{
		{ID: "channel-0", Name: "c1", URL: "http://x/1"},
		{ID: "channel-1", Name: "c2", URL: "http://x/2"},
		{ID: "channel-2", Name: "c3", URL: "http://x/3"},
	}
}

func (s *LiveChannelsTestSuite) seed(key string, entry *models.CachedChannels) {
	s.Require().NoError(s.cache.Set(context.Background(), key, entry))
}

func (s *LiveChannelsTestSuite) cached(key string) *models.CachedChannels {
	entry, err := s.cache.Get(context.Background(), key)
	s.Require().NoError(err)
	return entry
}

func (s *LiveChannelsTestSuite) TestGetChannels_MissingSourceKey() {
	_, err := s.service.GetChannels(context.Background(), "")

	s.ErrorIs(err, ErrInvalidRequest)
	s.Equal(0, s.cache.Len())
}

func (s *LiveChannelsTestSuite) TestGetChannels_SourceNotFound() {
	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil)

	_, err := s.service.GetChannels(context.Background(), "missing")

	s.ErrorIs(err, ErrSourceNotFound)
	s.Equal(0, s.cache.Len())
}

func (s *LiveChannelsTestSuite) TestGetChannels_DisabledIgnoresFreshCache() {
	configs := k1Config()
	configs[1].Disabled = true
	fresh := &models.CachedChannels{Channels: threeChannels(), UpdateTime: 900, ExpireTime: 5000}
	s.seed("k1", fresh)

	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(configs, nil)

	_, err := s.service.GetChannels(context.Background(), "k1")

	s.ErrorIs(err, ErrSourceDisabled)
	s.Equal(fresh, s.cached("k1"))
}

func (s *LiveChannelsTestSuite) TestGetChannels_FreshHit() {
	entry := &models.CachedChannels{Channels: threeChannels(), UpdateTime: 500, ExpireTime: 2000}
	s.seed("k1", entry)
	s.now = time.UnixMilli(1500)

	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil)

	res, err := s.service.GetChannels(context.Background(), "k1")

	s.Require().NoError(err)
	s.True(res.Cached)
	s.Equal(int64(500), res.UpdateTime)
	s.Equal(entry.Channels, res.Channels)
	s.Equal(models.SourceRef{Key: "k1", Name: "N"}, res.Source)
	s.Equal(entry, s.cached("k1"))
}

func (s *LiveChannelsTestSuite) TestGetChannels_MissRefreshes() {
	configs := k1Config()
	updated := k1Config()
	updated[1].ChannelNumber = 3

	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(configs, nil).Times(2)
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), "http://x", "").Return(threeChannels(), nil)
	s.configs.EXPECT().SetLiveConfigs(gomock.Any(), updated).Return(nil)

	res, err := s.service.GetChannels(context.Background(), "k1")

	s.Require().NoError(err)
	s.False(res.Cached)
	s.Equal(int64(1000), res.UpdateTime)
	s.Equal(threeChannels(), res.Channels)
	s.Equal(models.SourceRef{Key: "k1", Name: "N"}, res.Source)

	s.Equal(&models.CachedChannels{
		Channels:   threeChannels(),
		UpdateTime: 1000,
		ExpireTime: 1000 + 1800000,
	}, s.cached("k1"))
	s.Equal(0, configs[1].ChannelNumber, "store slice must not be mutated in place")
}

func (s *LiveChannelsTestSuite) TestGetChannels_ExpiredEntryRefreshes() {
	s.seed("k1", &models.CachedChannels{Channels: threeChannels()[:1], UpdateTime: 0, ExpireTime: 1000})

	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil).Times(2)
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), "http://x", "").Return(threeChannels(), nil).Times(1)
	s.configs.EXPECT().SetLiveConfigs(gomock.Any(), gomock.Any()).Return(nil)

	res, err := s.service.GetChannels(context.Background(), "k1")

	s.Require().NoError(err)
	s.False(res.Cached)
	entry := s.cached("k1")
	s.Len(entry.Channels, 3)
	s.Equal(entry.UpdateTime+int64(30*time.Minute/time.Millisecond), entry.ExpireTime)
}

func (s *LiveChannelsTestSuite) TestGetChannels_UserAgentPassedThrough() {
	configs := k1Config()
	configs[1].UserAgent = "okhttp/4.9"

	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(configs, nil).Times(2)
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), "http://x", "okhttp/4.9").Return(threeChannels(), nil)
	s.configs.EXPECT().SetLiveConfigs(gomock.Any(), gomock.Any()).Return(nil)

	_, err := s.service.GetChannels(context.Background(), "k1")
	s.NoError(err)
}

func (s *LiveChannelsTestSuite) TestGetChannels_FetchFailureKeepsStaleEntry() {
	stale := &models.CachedChannels{Channels: threeChannels(), UpdateTime: 0, ExpireTime: 10}
	s.seed("k1", stale)

	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil)
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), "http://x", "").Return(nil, errors.New("HTTP 503"))

	_, err := s.service.GetChannels(context.Background(), "k1")

	var fe *FetchError
	s.Require().ErrorAs(err, &fe)
	s.Equal("k1", fe.SourceKey)
	s.EqualError(fe.Err, "HTTP 503")
	s.Equal(stale, s.cached("k1"))
}

func (s *LiveChannelsTestSuite) TestGetChannels_FetchFailureWithoutEntry() {
	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil)
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("parse m3u: empty playlist"))

	_, err := s.service.GetChannels(context.Background(), "k1")

	var fe *FetchError
	s.ErrorAs(err, &fe)
	s.Nil(s.cached("k1"))
}

func (s *LiveChannelsTestSuite) TestGetChannels_FetchTimeout() {
	s.service = s.newService(s.configs, s.cache, WithFetchTimeout(20*time.Millisecond))

	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil)
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _, _ string) ([]models.Channel, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	)

	_, err := s.service.GetChannels(context.Background(), "k1")

	var fe *FetchError
	s.Require().ErrorAs(err, &fe)
	s.ErrorIs(err, context.DeadlineExceeded)
	s.Nil(s.cached("k1"))
}

func (s *LiveChannelsTestSuite) TestGetChannels_ConfigWriteFailureKeepsCache() {
	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil).Times(2)
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), gomock.Any(), gomock.Any()).Return(threeChannels(), nil)
	s.configs.EXPECT().SetLiveConfigs(gomock.Any(), gomock.Any()).Return(errors.New("store unavailable"))

	res, err := s.service.GetChannels(context.Background(), "k1")

	s.Require().NoError(err)
	s.False(res.Cached)
	s.NotNil(s.cached("k1"))
}

func (s *LiveChannelsTestSuite) TestGetChannels_CacheWriteFailureSkipsConfig() {
	mockCache := mocks.NewMockChannelCache(s.ctrl)
	s.service = s.newService(s.configs, mockCache)

	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil)
	mockCache.EXPECT().Get(gomock.Any(), "k1").Return(nil, nil)
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), gomock.Any(), gomock.Any()).Return(threeChannels(), nil)
	mockCache.EXPECT().Set(gomock.Any(), "k1", gomock.Any()).Return(errors.New("redis down"))

	_, err := s.service.GetChannels(context.Background(), "k1")

	s.Require().Error(err)
	var fe *FetchError
	s.False(errors.As(err, &fe))
}

func (s *LiveChannelsTestSuite) TestGetChannels_CacheReadFailureIsMiss() {
	mockCache := mocks.NewMockChannelCache(s.ctrl)
	s.service = s.newService(s.configs, mockCache)

	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil).Times(2)
	mockCache.EXPECT().Get(gomock.Any(), "k1").Return(nil, errors.New("redis down"))
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), gomock.Any(), gomock.Any()).Return(threeChannels(), nil)
	mockCache.EXPECT().Set(gomock.Any(), "k1", gomock.Any()).Return(nil)
	s.configs.EXPECT().SetLiveConfigs(gomock.Any(), gomock.Any()).Return(nil)

	res, err := s.service.GetChannels(context.Background(), "k1")

	s.Require().NoError(err)
	s.False(res.Cached)
}

type perKeyStore struct {
	*mocks.MockConfigStore
	*mocks.MockChannelNumberSetter
}

func (s *LiveChannelsTestSuite) TestGetChannels_PerKeyUpsertSkipsReplaceAll() {
	setter := mocks.NewMockChannelNumberSetter(s.ctrl)
	s.service = s.newService(perKeyStore{s.configs, setter}, s.cache)

	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil).Times(1)
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), gomock.Any(), gomock.Any()).Return(threeChannels(), nil)
	setter.EXPECT().SetChannelNumber(gomock.Any(), "k1", 3).Return(nil)

	_, err := s.service.GetChannels(context.Background(), "k1")
	s.NoError(err)
}

func (s *LiveChannelsTestSuite) TestGetChannels_PerKeyUpsertHoldsStoreLock() {
	setter := mocks.NewMockChannelNumberSetter(s.ctrl)
	locker := mocks.NewMockLocker(s.ctrl)
	s.service = s.newService(perKeyStore{s.configs, setter}, s.cache, WithLocker(locker))

	unlocked := false
	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil)
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), gomock.Any(), gomock.Any()).Return(threeChannels(), nil)
	gomock.InOrder(
		locker.EXPECT().Lock(gomock.Any()).Return(func() { unlocked = true }, nil),
		setter.EXPECT().SetChannelNumber(gomock.Any(), "k1", 3).DoAndReturn(
			func(context.Context, string, int) error {
				s.False(unlocked, "count update must run while the lock is held")
				return nil
			},
		),
	)

	_, err := s.service.GetChannels(context.Background(), "k1")

	s.Require().NoError(err)
	s.True(unlocked)
}

func (s *LiveChannelsTestSuite) TestGetChannels_LockFailureSkipsCountUpdate() {
	setter := mocks.NewMockChannelNumberSetter(s.ctrl)
	locker := mocks.NewMockLocker(s.ctrl)
	s.service = s.newService(perKeyStore{s.configs, setter}, s.cache, WithLocker(locker))

	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil)
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), gomock.Any(), gomock.Any()).Return(threeChannels(), nil)
	locker.EXPECT().Lock(gomock.Any()).Return(nil, errors.New("redis down"))

	res, err := s.service.GetChannels(context.Background(), "k1")

	s.Require().NoError(err)
	s.Len(res.Channels, 3)
	s.NotNil(s.cached("k1"))
}

func (s *LiveChannelsTestSuite) TestGetChannels_SourceRemovedDuringFetch() {
	gomock.InOrder(
		s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil),
		s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config()[:1], nil),
	)
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), gomock.Any(), gomock.Any()).Return(threeChannels(), nil)

	res, err := s.service.GetChannels(context.Background(), "k1")

	s.Require().NoError(err)
	s.Len(res.Channels, 3)
}

func (s *LiveChannelsTestSuite) TestGetChannels_FirstMatchWins() {
	configs := []models.LiveSource{
		{Key: "dup", Name: "first", URL: "http://first"},
		{Key: "dup", Name: "second", URL: "http://second", Disabled: true},
	}
	updated := []models.LiveSource{
		{Key: "dup", Name: "first", URL: "http://first", ChannelNumber: 3},
		{Key: "dup", Name: "second", URL: "http://second", Disabled: true, ChannelNumber: 3},
	}

	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(configs, nil).Times(2)
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), "http://first", "").Return(threeChannels(), nil)
	s.configs.EXPECT().SetLiveConfigs(gomock.Any(), updated).Return(nil)

	res, err := s.service.GetChannels(context.Background(), "dup")

	s.Require().NoError(err)
	s.Equal("first", res.Source.Name)
}

func (s *LiveChannelsTestSuite) TestGetChannels_ConfigLoadFailure() {
	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(nil, errors.New("db down"))

	_, err := s.service.GetChannels(context.Background(), "k1")

	s.Require().Error(err)
	s.NotErrorIs(err, ErrSourceNotFound)
	s.Equal(0, s.cache.Len())
}

func (s *LiveChannelsTestSuite) TestGetChannels_ConcurrentStaleRequestsShareOneFetch() {
	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil).AnyTimes()
	s.configs.EXPECT().SetLiveConfigs(gomock.Any(), gomock.Any()).Return(nil).Times(1)

	started := make(chan struct{})
	release := make(chan struct{})
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _, _ string) ([]models.Channel, error) {
			close(started)
			<-release
			return threeChannels(), nil
		},
	).Times(1)

	const callers = 8
	var wg sync.WaitGroup
	results := make([]*Result, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = s.service.GetChannels(context.Background(), "k1")
		}(i)
	}

	<-started
	// Give the remaining callers time to join the in-flight refresh.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for i := 0; i < callers; i++ {
		s.Require().NoError(errs[i])
		s.Len(results[i].Channels, 3)
		s.Equal(int64(1000), results[i].UpdateTime)
	}
}

func (s *LiveChannelsTestSuite) TestGetChannels_CallerCancelDoesNotAbortSharedRefresh() {
	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil).AnyTimes()
	synced := make(chan struct{})
	s.configs.EXPECT().SetLiveConfigs(gomock.Any(), gomock.Any()).DoAndReturn(
		func(context.Context, []models.LiveSource) error {
			close(synced)
			return nil
		},
	)

	release := make(chan struct{})
	done := make(chan struct{})
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, _, _ string) ([]models.Channel, error) {
			<-release
			return threeChannels(), ctx.Err()
		},
	)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer close(done)
		_, err := s.service.GetChannels(ctx, "k1")
		s.ErrorIs(err, context.Canceled)
	}()
	time.Sleep(20 * time.Millisecond)
	cancel()
	<-done

	close(release)
	select {
	case <-synced:
	case <-time.After(time.Second):
		s.FailNow("shared refresh did not complete")
	}
	s.Len(s.cached("k1").Channels, 3)
}

func (s *LiveChannelsTestSuite) TestRefresh_IgnoresFreshness() {
	s.seed("k1", &models.CachedChannels{Channels: threeChannels()[:1], UpdateTime: 900, ExpireTime: 99999})

	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil).Times(2)
	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), gomock.Any(), gomock.Any()).Return(threeChannels(), nil)
	s.configs.EXPECT().SetLiveConfigs(gomock.Any(), gomock.Any()).Return(nil)

	res, err := s.service.Refresh(context.Background(), "k1")

	s.Require().NoError(err)
	s.False(res.Cached)
	s.Len(s.cached("k1").Channels, 3)
}

func (s *LiveChannelsTestSuite) TestRefresh_DisabledSource() {
	configs := k1Config()
	configs[1].Disabled = true
	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(configs, nil)

	_, err := s.service.Refresh(context.Background(), "k1")
	s.ErrorIs(err, ErrSourceDisabled)
}

func (s *LiveChannelsTestSuite) TestValidate() {
	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(k1Config(), nil).Times(2)

	s.NoError(s.service.Validate(context.Background(), "k1"))
	s.ErrorIs(s.service.Validate(context.Background(), "nope"), ErrSourceNotFound)
	s.ErrorIs(s.service.Validate(context.Background(), ""), ErrInvalidRequest)
}

// replaceAllStore only supports whole-list writes and widens the read-modify-write window.
type replaceAllStore struct {
	mu      sync.Mutex
	sources []models.LiveSource
}

func (r *replaceAllStore) GetLiveConfigs(context.Context) ([]models.LiveSource, error) {
	r.mu.Lock()
	out := append([]models.LiveSource(nil), r.sources...)
	r.mu.Unlock()
	time.Sleep(5 * time.Millisecond)
	return out, nil
}

func (r *replaceAllStore) SetLiveConfigs(_ context.Context, sources []models.LiveSource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sources = append([]models.LiveSource(nil), sources...)
	return nil
}

func (s *LiveChannelsTestSuite) TestGetChannels_ConcurrentKeysKeepAllChannelCounts() {
	store := &replaceAllStore{}
	for i := 1; i <= 5; i++ {
		store.sources = append(store.sources, models.LiveSource{
			Key: fmt.Sprintf("k%d", i),
			URL: fmt.Sprintf("http://src/%d", i),
		})
	}
	s.service = s.newService(store, s.cache)

	s.fetcher.EXPECT().FetchAndParse(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, url, _ string) ([]models.Channel, error) {
			var n int
			_, _ = fmt.Sscanf(url, "http://src/%d", &n)
			return make([]models.Channel, n), nil
		},
	).Times(5)

	var wg sync.WaitGroup
	for i := 1; i <= 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.service.GetChannels(context.Background(), fmt.Sprintf("k%d", i))
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	for i, src := range store.sources {
		s.Equal(i+1, src.ChannelNumber, "source %s", src.Key)
	}
}

func (s *LiveChannelsTestSuite) TestReplaceSources() {
	sources := []models.LiveSource{
		{Key: " a ", URL: "http://a/list.m3u"},
		{Key: "b", Name: "B", URL: "https://b/list.m3u", Disabled: true},
	}
	want := []models.LiveSource{
		{Key: "a", Name: "a", URL: "http://a/list.m3u"},
		{Key: "b", Name: "B", URL: "https://b/list.m3u", Disabled: true},
	}
	s.configs.EXPECT().SetLiveConfigs(gomock.Any(), want).Return(nil)

	s.NoError(s.service.ReplaceSources(context.Background(), sources))
}

func (s *LiveChannelsTestSuite) TestReplaceSources_Invalid() {
	tests := []struct {
		name    string
		sources []models.LiveSource
	}{
		{"missing key", []models.LiveSource{{URL: "http://a"}}},
		{"duplicate key", []models.LiveSource{{Key: "a", URL: "http://a"}, {Key: "a", URL: "http://b"}}},
		{"bad scheme", []models.LiveSource{{Key: "a", URL: "ftp://a"}}},
		{"not a url", []models.LiveSource{{Key: "a", URL: "nope"}}},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := s.service.ReplaceSources(context.Background(), tt.sources)
			s.ErrorIs(err, ErrInvalidRequest)
		})
	}
}

func (s *LiveChannelsTestSuite) TestListSources() {
	s.configs.EXPECT().GetLiveConfigs(gomock.Any()).Return(nil, nil)

	sources, err := s.service.ListSources(context.Background())

	s.Require().NoError(err)
	s.NotNil(sources)
	s.Empty(sources)
}

func TestMutexLocker(t *testing.T) {
	l := NewMutexLocker()

	unlock, err := l.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := l.Lock(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline while held, got %v", err)
	}

	unlock()
	unlock()

	unlock2, err := l.Lock(context.Background())
	if err != nil {
		t.Fatalf("Lock after unlock: %v", err)
	}
	unlock2()
}

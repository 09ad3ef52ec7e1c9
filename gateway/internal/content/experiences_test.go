package content

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"portfolio-gateway/sdk"
	"portfolio-gateway/sdk/meta"
)

type memoryListCache struct {
	entries map[string][]byte
}

func newMemoryListCache() *memoryListCache {
	return &memoryListCache{entries: map[string][]byte{}}
}

func (m *memoryListCache) Get(key string) ([]byte, bool) {
	value, ok := m.entries[key]
	return value, ok
}

func (m *memoryListCache) Set(key string, value []byte) {
	m.entries[key] = value
}

func (m *memoryListCache) Del(keys ...string) {
	for _, key := range keys {
		delete(m.entries, key)
	}
}

func (m *memoryListCache) Keys() []string {
	keys := make([]string, 0, len(m.entries))
	for key := range m.entries {
		keys = append(keys, key)
	}
	return keys
}

type mockExperiencesClient struct {
	listFn         func(context.Context, sdk.ExperiencesSelector) (sdk.ExperienceList, error) // nolint: lll
	createFn       func(context.Context, sdk.Experience) (sdk.Experience, error)
	deleteFn       func(context.Context, string) error
	listCallCount  int
	setPublishedFn func(context.Context, string, bool) (sdk.Experience, error)
}

func (m *mockExperiencesClient) List(
	ctx context.Context,
	selector sdk.ExperiencesSelector,
) (sdk.ExperienceList, error) {
	m.listCallCount++
	return m.listFn(ctx, selector)
}

func (m *mockExperiencesClient) Get(
	ctx context.Context,
	id string,
) (sdk.Experience, error) {
	return sdk.Experience{ID: id}, nil
}

func (m *mockExperiencesClient) Create(
	ctx context.Context,
	experience sdk.Experience,
) (sdk.Experience, error) {
	return m.createFn(ctx, experience)
}

func (m *mockExperiencesClient) Update(
	ctx context.Context,
	id string,
	experience sdk.Experience,
) (sdk.Experience, error) {
	experience.ID = id
	return experience, nil
}

func (m *mockExperiencesClient) Delete(ctx context.Context, id string) error {
	if m.deleteFn == nil {
		return nil
	}
	return m.deleteFn(ctx, id)
}

func (m *mockExperiencesClient) SetPublished(
	ctx context.Context,
	id string,
	published bool,
) (sdk.Experience, error) {
	if m.setPublishedFn == nil {
		return sdk.Experience{ID: id, Published: published}, nil
	}
	return m.setPublishedFn(ctx, id, published)
}

func testExperienceList() sdk.ExperienceList {
	return sdk.ExperienceList{
		Paginated: meta.Paginated{
			Page:       1,
			PageSize:   20,
			Total:      1,
			TotalPages: 1,
		},
		Items: []sdk.Experience{
			{
				ID:      "existing",
				Company: "Acme",
			},
		},
	}
}

func TestExperiencesServiceListCachesResults(t *testing.T) {
	client := &mockExperiencesClient{
		listFn: func(
			context.Context,
			sdk.ExperiencesSelector,
		) (sdk.ExperienceList, error) {
			return testExperienceList(), nil
		},
	}
	service := NewExperiencesService(client, nil, newMemoryListCache())
	for i := 0; i < 3; i++ {
		list, err := service.List(
			context.Background(),
			sdk.ExperiencesSelector{},
		)
		require.NoError(t, err)
		require.Len(t, list.Items, 1)
	}
	// Two of the three reads were served from cache
	require.Equal(t, 1, client.listCallCount)
}

func TestExperiencesServiceListDoesNotRetryDefinitiveFailures(t *testing.T) {
	client := &mockExperiencesClient{
		listFn: func(
			context.Context,
			sdk.ExperiencesSelector,
		) (sdk.ExperienceList, error) {
			return sdk.ExperienceList{}, &meta.ErrAuthentication{}
		},
	}
	service := NewExperiencesService(client, nil, newMemoryListCache())
	_, err := service.List(context.Background(), sdk.ExperiencesSelector{})
	require.Error(t, err)
	require.Equal(t, 1, client.listCallCount)
}

func TestExperiencesServiceListRetriesTransientFailures(t *testing.T) {
	client := &mockExperiencesClient{}
	client.listFn = func(
		context.Context,
		sdk.ExperiencesSelector,
	) (sdk.ExperienceList, error) {
		if client.listCallCount == 1 {
			return sdk.ExperienceList{}, &meta.ErrInternalServer{}
		}
		return testExperienceList(), nil
	}
	service := NewExperiencesService(client, nil, newMemoryListCache())
	list, err := service.List(context.Background(), sdk.ExperiencesSelector{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	require.Equal(t, 2, client.listCallCount)
}

func TestExperiencesServiceCreateRollsBackOnFailure(t *testing.T) {
	cache := newMemoryListCache()
	listJSON, err := json.Marshal(testExperienceList())
	require.NoError(t, err)
	cache.Set(adminListKey(0, 0, ""), listJSON)
	client := &mockExperiencesClient{
		createFn: func(
			context.Context,
			sdk.Experience,
		) (sdk.Experience, error) {
			return sdk.Experience{}, &meta.ErrBadRequest{}
		},
	}
	service := NewExperiencesService(client, nil, cache)
	_, err = service.Create(
		context.Background(),
		sdk.Experience{Company: "Initech"},
	)
	require.Error(t, err)
	// The cached page is exactly what it was before the failed create
	cached, ok := cache.Get(adminListKey(0, 0, ""))
	require.True(t, ok)
	require.JSONEq(t, string(listJSON), string(cached))
}

func TestExperiencesServiceCreateInvalidatesCacheOnSuccess(t *testing.T) {
	cache := newMemoryListCache()
	listJSON, err := json.Marshal(testExperienceList())
	require.NoError(t, err)
	cache.Set(adminListKey(0, 0, ""), listJSON)
	client := &mockExperiencesClient{
		createFn: func(
			_ context.Context,
			experience sdk.Experience,
		) (sdk.Experience, error) {
			experience.ID = "confirmed"
			return experience, nil
		},
	}
	service := NewExperiencesService(client, nil, cache)
	created, err := service.Create(
		context.Background(),
		sdk.Experience{Company: "Initech"},
	)
	require.NoError(t, err)
	require.Equal(t, "confirmed", created.ID)
	// A confirmed mutation leaves no stale pages behind
	require.Empty(t, cache.Keys())
}

func TestExperiencesServiceDeleteAppliesOptimistically(t *testing.T) {
	cache := newMemoryListCache()
	listJSON, err := json.Marshal(testExperienceList())
	require.NoError(t, err)
	key := adminListKey(0, 0, "")
	cache.Set(key, listJSON)
	var optimisticItems int
	client := &mockExperiencesClient{
		deleteFn: func(context.Context, string) error {
			// Observe the cache mid-flight, before confirmation
			cached, ok := cache.Get(key)
			require.True(t, ok)
			list := sdk.ExperienceList{}
			require.NoError(t, json.Unmarshal(cached, &list))
			optimisticItems = len(list.Items)
			return nil
		},
	}
	service := NewExperiencesService(client, nil, cache)
	require.NoError(t, service.Delete(context.Background(), "existing"))
	require.Zero(t, optimisticItems)
	require.Empty(t, cache.Keys())
}

func TestExperiencesServiceDeleteAppliesOptimisticallyToAllAdminPages(
	t *testing.T,
) {
	cache := newMemoryListCache()
	listJSON, err := json.Marshal(testExperienceList())
	require.NoError(t, err)
	defaultKey := adminListKey(0, 0, "")
	pagedKey := adminListKey(1, 20, "")
	publicKey := publicListKey(sdk.PublicExperiencesSelector{Page: 1})
	cache.Set(defaultKey, listJSON)
	cache.Set(pagedKey, listJSON)
	cache.Set(publicKey, listJSON)
	client := &mockExperiencesClient{
		deleteFn: func(context.Context, string) error {
			// Every cached admin page reflects the pending delete
			for _, key := range []string{defaultKey, pagedKey} {
				cached, ok := cache.Get(key)
				require.True(t, ok)
				list := sdk.ExperienceList{}
				require.NoError(t, json.Unmarshal(cached, &list))
				require.Empty(t, list.Items)
			}
			// Public pages change only on confirmation
			cached, ok := cache.Get(publicKey)
			require.True(t, ok)
			require.JSONEq(t, string(listJSON), string(cached))
			return &meta.ErrInternalServer{}
		},
	}
	service := NewExperiencesService(client, nil, cache)
	require.Error(t, service.Delete(context.Background(), "existing"))
	// The failed delete rolled every admin page back
	for _, key := range []string{defaultKey, pagedKey, publicKey} {
		cached, ok := cache.Get(key)
		require.True(t, ok)
		require.JSONEq(t, string(listJSON), string(cached))
	}
}

type mockPublicClient struct {
	experiencesFn func(context.Context, sdk.PublicExperiencesSelector) (sdk.ExperienceList, error) // nolint: lll
}

func (m *mockPublicClient) Experiences(
	ctx context.Context,
	selector sdk.PublicExperiencesSelector,
) (sdk.ExperienceList, error) {
	return m.experiencesFn(ctx, selector)
}

func TestExperiencesServicePublicNormalizesSelector(t *testing.T) {
	publicClient := &mockPublicClient{
		experiencesFn: func(
			_ context.Context,
			selector sdk.PublicExperiencesSelector,
		) (sdk.ExperienceList, error) {
			require.Equal(t, 1, selector.Page)
			require.Equal(t, defaultPageSize, selector.PageSize)
			require.Equal(t, "asc", selector.Order)
			return testExperienceList(), nil
		},
	}
	service := NewExperiencesService(nil, publicClient, newMemoryListCache())
	list, err := service.Public(
		context.Background(),
		sdk.PublicExperiencesSelector{
			Page:  -1,
			Order: "oldest",
		},
	)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
}

package content

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
	uuid "github.com/satori/go.uuid"

	"portfolio-gateway/internal/retries"
	"portfolio-gateway/sdk"
	"portfolio-gateway/sdk/meta"
)

const (
	listMaxAttempts = 2
	listMaxBackoff  = 5 * time.Second
)

// ExperiencesService is the specialized service for managing experience
// records through the backend API. List reads are cached; mutations update
// the cache optimistically and roll the update back if the backend refuses
// it.
type ExperiencesService interface {
	List(
		ctx context.Context,
		selector sdk.ExperiencesSelector,
	) (sdk.ExperienceList, error)
	Get(ctx context.Context, id string) (sdk.Experience, error)
	Create(
		ctx context.Context,
		experience sdk.Experience,
	) (sdk.Experience, error)
	Update(
		ctx context.Context,
		id string,
		experience sdk.Experience,
	) (sdk.Experience, error)
	Delete(ctx context.Context, id string) error
	SetPublished(
		ctx context.Context,
		id string,
		published bool,
	) (sdk.Experience, error)
	// Public lists published experiences for the public site. The selector is
	// normalized before it reaches the backend.
	Public(
		ctx context.Context,
		selector sdk.PublicExperiencesSelector,
	) (sdk.ExperienceList, error)
}

type experiencesService struct {
	client       sdk.ExperiencesClient
	publicClient sdk.PublicClient
	cache        ListCache
}

// NewExperiencesService returns a specialized service for managing experience
// records through the backend API.
func NewExperiencesService(
	client sdk.ExperiencesClient,
	publicClient sdk.PublicClient,
	cache ListCache,
) ExperiencesService {
	return &experiencesService{
		client:       client,
		publicClient: publicClient,
		cache:        cache,
	}
}

func (e *experiencesService) List(
	ctx context.Context,
	selector sdk.ExperiencesSelector,
) (sdk.ExperienceList, error) {
	key := adminListKey(selector.Page, selector.PageSize, selector.Query)
	if cached, ok := e.cache.Get(key); ok {
		list := sdk.ExperienceList{}
		if err := json.Unmarshal(cached, &list); err == nil {
			return list, nil
		}
		e.cache.Del(key)
	}
	var list sdk.ExperienceList
	if err := retries.ManageRetries(
		ctx,
		"list experiences",
		listMaxAttempts,
		listMaxBackoff,
		func() (bool, error) {
			var err error
			list, err = e.client.List(ctx, selector)
			if err != nil {
				return retryable(err), err
			}
			return false, nil
		},
	); err != nil {
		return list, err
	}
	if listJSON, err := json.Marshal(list); err == nil {
		e.cache.Set(key, listJSON)
	}
	return list, nil
}

func (e *experiencesService) Get(
	ctx context.Context,
	id string,
) (sdk.Experience, error) {
	return e.client.Get(ctx, id)
}

func (e *experiencesService) Create(
	ctx context.Context,
	experience sdk.Experience,
) (sdk.Experience, error) {
	placeholder := experience
	placeholder.ID = uuid.NewV4().String()
	rollback := e.applyOptimistic(func(cached *sdk.ExperienceList) {
		cached.Items = append([]sdk.Experience{placeholder}, cached.Items...)
		cached.Total++
	})
	created, err := e.client.Create(ctx, experience)
	if err != nil {
		rollback()
		return created, err
	}
	// The optimistic entry carries a made-up ID, so once the backend has
	// confirmed, every cached page is suspect
	e.invalidate()
	return created, nil
}

func (e *experiencesService) Update(
	ctx context.Context,
	id string,
	experience sdk.Experience,
) (sdk.Experience, error) {
	rollback := e.applyOptimistic(func(cached *sdk.ExperienceList) {
		for i := range cached.Items {
			if cached.Items[i].ID == id {
				updated := experience
				updated.ID = id
				cached.Items[i] = updated
				return
			}
		}
	})
	updated, err := e.client.Update(ctx, id, experience)
	if err != nil {
		rollback()
		return updated, err
	}
	e.invalidate()
	return updated, nil
}

func (e *experiencesService) Delete(ctx context.Context, id string) error {
	rollback := e.applyOptimistic(func(cached *sdk.ExperienceList) {
		for i := range cached.Items {
			if cached.Items[i].ID == id {
				cached.Items = append(cached.Items[:i], cached.Items[i+1:]...)
				cached.Total--
				return
			}
		}
	})
	if err := e.client.Delete(ctx, id); err != nil {
		rollback()
		return err
	}
	e.invalidate()
	return nil
}

func (e *experiencesService) SetPublished(
	ctx context.Context,
	id string,
	published bool,
) (sdk.Experience, error) {
	rollback := e.applyOptimistic(func(cached *sdk.ExperienceList) {
		for i := range cached.Items {
			if cached.Items[i].ID == id {
				cached.Items[i].Published = published
				return
			}
		}
	})
	updated, err := e.client.SetPublished(ctx, id, published)
	if err != nil {
		rollback()
		return updated, err
	}
	e.invalidate()
	return updated, nil
}

func (e *experiencesService) Public(
	ctx context.Context,
	selector sdk.PublicExperiencesSelector,
) (sdk.ExperienceList, error) {
	selector = NormalizePublicSelector(selector)
	key := publicListKey(selector)
	if cached, ok := e.cache.Get(key); ok {
		list := sdk.ExperienceList{}
		if err := json.Unmarshal(cached, &list); err == nil {
			return list, nil
		}
		e.cache.Del(key)
	}
	var list sdk.ExperienceList
	if err := retries.ManageRetries(
		ctx,
		"list public experiences",
		listMaxAttempts,
		listMaxBackoff,
		func() (bool, error) {
			var err error
			list, err = e.publicClient.Experiences(ctx, selector)
			if err != nil {
				return retryable(err), err
			}
			return false, nil
		},
	); err != nil {
		return list, err
	}
	if listJSON, err := json.Marshal(list); err == nil {
		e.cache.Set(key, listJSON)
	}
	return list, nil
}

// applyOptimistic applies the given mutation to every cached admin list page
// and returns a function that undoes all of it. Public pages are left alone;
// they only change once the backend has confirmed. When nothing usable is
// cached, both the mutation and the returned rollback are no-ops.
func (e *experiencesService) applyOptimistic(
	mutate func(*sdk.ExperienceList),
) func() {
	priors := map[string][]byte{}
	for _, key := range e.cache.Keys() {
		if !strings.HasPrefix(key, adminKeyPrefix) {
			continue
		}
		prior, ok := e.cache.Get(key)
		if !ok {
			continue
		}
		cached := sdk.ExperienceList{}
		if err := json.Unmarshal(prior, &cached); err != nil {
			e.cache.Del(key)
			continue
		}
		mutate(&cached)
		optimistic, err := json.Marshal(cached)
		if err != nil {
			continue
		}
		e.cache.Set(key, optimistic)
		priors[key] = prior
	}
	return func() {
		for key, prior := range priors {
			e.cache.Set(key, prior)
		}
	}
}

func (e *experiencesService) invalidate() {
	e.cache.Del(e.cache.Keys()...)
}

const adminKeyPrefix = "admin:"

func adminListKey(page int, pageSize int, query string) string {
	return fmt.Sprintf("%s%d:%d:%s", adminKeyPrefix, page, pageSize, query)
}

func publicListKey(selector sdk.PublicExperiencesSelector) string {
	return fmt.Sprintf(
		"public:%d:%d:%s:%s:%s:%s",
		selector.Page,
		selector.PageSize,
		selector.Query,
		selector.Type,
		selector.Location,
		selector.Order,
	)
}

// retryable distinguishes transient failures worth retrying from definitive
// backend verdicts that will not change on a second attempt.
func retryable(err error) bool {
	switch errors.Cause(err).(type) {
	case *meta.ErrAuthentication,
		*meta.ErrAuthorization,
		*meta.ErrBadRequest,
		*meta.ErrNotFound,
		*meta.ErrConflict:
		return false
	}
	return true
}

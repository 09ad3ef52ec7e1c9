package content

import (
	"context"
	"encoding/json"
	"strings"

	uuid "github.com/satori/go.uuid"

	"portfolio-gateway/internal/retries"
	"portfolio-gateway/sdk"
)

// ProjectsService is the specialized service for managing project records
// through the backend API. It follows the same caching and optimistic update
// discipline as ExperiencesService.
type ProjectsService interface {
	List(
		ctx context.Context,
		selector sdk.ProjectsSelector,
	) (sdk.ProjectList, error)
	Get(ctx context.Context, id string) (sdk.Project, error)
	Create(ctx context.Context, project sdk.Project) (sdk.Project, error)
	Update(
		ctx context.Context,
		id string,
		project sdk.Project,
	) (sdk.Project, error)
	Delete(ctx context.Context, id string) error
	SetPublished(
		ctx context.Context,
		id string,
		published bool,
	) (sdk.Project, error)
}

type projectsService struct {
	client sdk.ProjectsClient
	cache  ListCache
}

// NewProjectsService returns a specialized service for managing project
// records through the backend API.
func NewProjectsService(
	client sdk.ProjectsClient,
	cache ListCache,
) ProjectsService {
	return &projectsService{
		client: client,
		cache:  cache,
	}
}

func (p *projectsService) List(
	ctx context.Context,
	selector sdk.ProjectsSelector,
) (sdk.ProjectList, error) {
	key := adminListKey(selector.Page, selector.PageSize, selector.Query)
	if cached, ok := p.cache.Get(key); ok {
		list := sdk.ProjectList{}
		if err := json.Unmarshal(cached, &list); err == nil {
			return list, nil
		}
		p.cache.Del(key)
	}
	var list sdk.ProjectList
	if err := retries.ManageRetries(
		ctx,
		"list projects",
		listMaxAttempts,
		listMaxBackoff,
		func() (bool, error) {
			var err error
			list, err = p.client.List(ctx, selector)
			if err != nil {
				return retryable(err), err
			}
			return false, nil
		},
	); err != nil {
		return list, err
	}
	if listJSON, err := json.Marshal(list); err == nil {
		p.cache.Set(key, listJSON)
	}
	return list, nil
}

func (p *projectsService) Get(
	ctx context.Context,
	id string,
) (sdk.Project, error) {
	return p.client.Get(ctx, id)
}

func (p *projectsService) Create(
	ctx context.Context,
	project sdk.Project,
) (sdk.Project, error) {
	placeholder := project
	placeholder.ID = uuid.NewV4().String()
	rollback := p.applyOptimistic(func(cached *sdk.ProjectList) {
		cached.Items = append([]sdk.Project{placeholder}, cached.Items...)
		cached.Total++
	})
	created, err := p.client.Create(ctx, project)
	if err != nil {
		rollback()
		return created, err
	}
	p.invalidate()
	return created, nil
}

func (p *projectsService) Update(
	ctx context.Context,
	id string,
	project sdk.Project,
) (sdk.Project, error) {
	rollback := p.applyOptimistic(func(cached *sdk.ProjectList) {
		for i := range cached.Items {
			if cached.Items[i].ID == id {
				updated := project
				updated.ID = id
				cached.Items[i] = updated
				return
			}
		}
	})
	updated, err := p.client.Update(ctx, id, project)
	if err != nil {
		rollback()
		return updated, err
	}
	p.invalidate()
	return updated, nil
}

func (p *projectsService) Delete(ctx context.Context, id string) error {
	rollback := p.applyOptimistic(func(cached *sdk.ProjectList) {
		for i := range cached.Items {
			if cached.Items[i].ID == id {
				cached.Items = append(cached.Items[:i], cached.Items[i+1:]...)
				cached.Total--
				return
			}
		}
	})
	if err := p.client.Delete(ctx, id); err != nil {
		rollback()
		return err
	}
	p.invalidate()
	return nil
}

func (p *projectsService) SetPublished(
	ctx context.Context,
	id string,
	published bool,
) (sdk.Project, error) {
	rollback := p.applyOptimistic(func(cached *sdk.ProjectList) {
		for i := range cached.Items {
			if cached.Items[i].ID == id {
				cached.Items[i].Published = published
				return
			}
		}
	})
	updated, err := p.client.SetPublished(ctx, id, published)
	if err != nil {
		rollback()
		return updated, err
	}
	p.invalidate()
	return updated, nil
}

func (p *projectsService) applyOptimistic(
	mutate func(*sdk.ProjectList),
) func() {
	priors := map[string][]byte{}
	for _, key := range p.cache.Keys() {
		if !strings.HasPrefix(key, adminKeyPrefix) {
			continue
		}
		prior, ok := p.cache.Get(key)
		if !ok {
			continue
		}
		cached := sdk.ProjectList{}
		if err := json.Unmarshal(prior, &cached); err != nil {
			p.cache.Del(key)
			continue
		}
		mutate(&cached)
		optimistic, err := json.Marshal(cached)
		if err != nil {
			continue
		}
		p.cache.Set(key, optimistic)
		priors[key] = prior
	}
	return func() {
		for key, prior := range priors {
			p.cache.Set(key, prior)
		}
	}
}

func (p *projectsService) invalidate() {
	p.cache.Del(p.cache.Keys()...)
}

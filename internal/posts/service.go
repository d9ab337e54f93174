package posts

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	genqlientgraphql "github.com/Khan/genqlient/graphql"
	"github.com/go-playground/validator/v10"
	"postpage/internal/gql"
	md "postpage/internal/markdown"
)

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidInput        = errors.New("invalid input")
	ErrEmptyMutationResult = errors.New("mutation returned no post")
)

const (
	descriptionRunes = 220
	listPageSize     = 100
	// Bounds pagination against a backend that keeps returning the same token.
	maxListPages = 1000
)

type Post struct {
	ID             string
	Slug           string
	Title          string
	Content        string
	BodyHTML       template.HTML
	Description    string
	ReadingMinutes int
	Published      bool
	Owner          string
	CreatedAt      string
	UpdatedAt      string
}

type PublishResult struct {
	ID        string
	Slug      string
	Published bool
}

type publishRequest struct {
	ID string `validate:"required,max=128"`
}

type Service struct {
	client   genqlientgraphql.Client
	rootURL  string
	validate *validator.Validate
}

func NewService(client genqlientgraphql.Client, rootURL string) *Service {
	return &Service{
		client:   client,
		rootURL:  strings.TrimSpace(rootURL),
		validate: validator.New(),
	}
}

// ListPublishedSlugs returns the slug of every post with published = true,
// following nextToken until the backend stops paging.
func (s *Service) ListPublishedSlugs(ctx context.Context) ([]string, error) {
	published := true
	filter := &gql.ModelPostFilterInput{
		Published: &gql.ModelBooleanInput{Eq: &published},
	}
	limit := listPageSize

	seen := make(map[string]struct{})
	slugs := make([]string, 0, listPageSize)

	var nextToken *string
	for page := 0; page < maxListPages; page++ {
		response, err := gql.ListPosts(ctx, s.client, filter, &limit, nextToken)
		if err != nil {
			return nil, fmt.Errorf("list published posts: %w", err)
		}
		if response == nil || response.ListPosts == nil {
			return slugs, nil
		}

		for _, item := range response.ListPosts.Items {
			if item == nil {
				continue
			}
			slug := strings.TrimSpace(item.Slug)
			if slug == "" {
				continue
			}
			if _, ok := seen[slug]; ok {
				continue
			}
			seen[slug] = struct{}{}
			slugs = append(slugs, slug)
		}

		nextToken = response.ListPosts.NextToken
		if nextToken == nil || strings.TrimSpace(*nextToken) == "" {
			return slugs, nil
		}
	}

	return nil, fmt.Errorf("list published posts: more than %d pages", maxListPages)
}

func (s *Service) GetPostBySlug(ctx context.Context, slug string) (*Post, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrNotFound
	}

	response, err := gql.PostsBySlug(ctx, s.client, slug)
	if err != nil {
		return nil, fmt.Errorf("fetch post %q: %w", slug, err)
	}

	if response == nil || response.PostsBySlug == nil {
		return nil, ErrNotFound
	}

	for _, item := range response.PostsBySlug.Items {
		if item == nil {
			continue
		}
		post := s.mapPost(item, slug)
		return &post, nil
	}

	return nil, ErrNotFound
}

// SetPublished flips the published flag of the post with the given id.
// ctx must carry the caller's user token (gql.WithUserToken). The returned
// slug is the one the backend reports after the update.
func (s *Service) SetPublished(ctx context.Context, id string, published bool) (*PublishResult, error) {
	request := publishRequest{ID: strings.TrimSpace(id)}
	if err := s.validate.Struct(request); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if gql.UserToken(ctx) == "" {
		return nil, fmt.Errorf("update post %q: %w", request.ID, gql.ErrUserTokenRequired)
	}

	response, err := gql.UpdatePost(gql.RequireUserToken(ctx), s.client, gql.UpdatePostInput{
		Id:        request.ID,
		Published: &published,
	})
	if err != nil {
		return nil, fmt.Errorf("update post %q: %w", request.ID, err)
	}
	if response == nil || response.UpdatePost == nil {
		return nil, ErrEmptyMutationResult
	}

	updated := response.UpdatePost
	if strings.TrimSpace(updated.Slug) == "" {
		return nil, fmt.Errorf("update post %q: %w", request.ID, ErrEmptyMutationResult)
	}

	return &PublishResult{
		ID:        updated.Id,
		Slug:      strings.TrimSpace(updated.Slug),
		Published: updated.Published,
	}, nil
}

func (s *Service) mapPost(item *gql.PostsBySlugPostsBySlugModelPostConnectionItemsPost, fallbackSlug string) Post {
	content := ""
	if item.Content != nil {
		content = *item.Content
	}
	slug := strings.TrimSpace(item.Slug)
	if slug == "" {
		slug = fallbackSlug
	}

	return Post{
		ID:             item.Id,
		Slug:           slug,
		Title:          strOr(item.Title, slug),
		Content:        content,
		BodyHTML:       md.ToHTML(content, md.Options{RootURL: s.rootURL}),
		Description:    md.Excerpt(content, descriptionRunes),
		ReadingMinutes: md.ReadingMinutes(content),
		Published:      item.Published,
		Owner:          strOr(item.Owner, ""),
		CreatedAt:      formatDate(item.CreatedAt),
		UpdatedAt:      formatDate(item.UpdatedAt),
	}
}

func formatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		parsed, err = time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return raw
		}
	}

	return parsed.Format("2006-01-02")
}

func strOr(value *string, fallback string) string {
	if value == nil {
		return fallback
	}

	trimmed := strings.TrimSpace(*value)
	if trimmed == "" {
		return fallback
	}

	return trimmed
}

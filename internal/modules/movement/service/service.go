package service

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"
	"unicode"

	"anoa.com/wodtracker/internal/entity"
	"anoa.com/wodtracker/internal/modules/movement/dto"
	"anoa.com/wodtracker/internal/modules/movement/repository"
	"anoa.com/wodtracker/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"
)

const searchLimit = 100

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

type MovementService interface {
	List(ctx context.Context, query dto.ListMovementsQuery) ([]entity.Movement, error)
	// Get accepts either the uuid or the slug.
	Get(ctx context.Context, idOrSlug string) (*entity.Movement, error)
	Create(ctx context.Context, input dto.CreateMovementInput) (*entity.Movement, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Seed stores the built-in catalogue and rebuilds the search index.
	Seed(ctx context.Context) (int64, error)
}

type movementService struct {
	repo      repository.MovementRepository
	index     MovementIndex
	sanitizer *bluemonday.Policy
}

// NewMovementService takes a nil index when search is not configured; listing then runs on
// the database alone.
func NewMovementService(repo repository.MovementRepository, index MovementIndex) MovementService {
	return &movementService{
		repo:      repo,
		index:     index,
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *movementService) List(ctx context.Context, query dto.ListMovementsQuery) ([]entity.Movement, error) {
	category := query.Category
	if category == dto.CategoryAll {
		category = ""
	}
	search := strings.TrimSpace(query.Search)

	if search != "" && s.index != nil {
		ids, err := s.index.Search(search, category, searchLimit)
		if err == nil {
			return s.repo.FindByIDs(ctx, ids)
		}
		logrus.WithError(err).Warn("⚠️ movement search failed, falling back to database")
	}

	return s.repo.List(ctx, repository.MovementFilter{Search: search, Category: category})
}

func (s *movementService) Get(ctx context.Context, idOrSlug string) (*entity.Movement, error) {
	var (
		movement *entity.Movement
		err      error
	)
	if id, parseErr := uuid.Parse(idOrSlug); parseErr == nil {
		movement, err = s.repo.FindByID(ctx, id)
	} else {
		movement, err = s.repo.FindBySlug(ctx, strings.ToLower(idOrSlug))
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return movement, nil
}

func (s *movementService) Create(ctx context.Context, input dto.CreateMovementInput) (*entity.Movement, error) {
	movement := &entity.Movement{
		Name:        s.clean(input.Name),
		Category:    input.Category,
		Type:        s.clean(input.Type),
		Description: s.clean(input.Description),
		VideoID:     s.clean(input.VideoID),
		Muscles:     s.cleanList(input.Muscles),
		KeyPoints:   s.cleanList(input.KeyPoints),
	}
	if movement.Name == "" {
		return nil, apperror.Invalid("movement name is required")
	}
	movement.Slug = Slugify(movement.Name)
	if movement.Slug == "" {
		return nil, apperror.Invalid("movement name must contain letters or digits")
	}

	if _, err := s.repo.FindBySlug(ctx, movement.Slug); err == nil {
		return nil, apperror.New(http.StatusConflict, fmt.Sprintf("movement %q already exists", movement.Slug), apperror.ErrConflict)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err := s.repo.Create(ctx, movement); err != nil {
		return nil, fmt.Errorf("failed to create movement: %w", err)
	}

	if s.index != nil {
		if err := s.index.Index(*movement); err != nil {
			logrus.WithError(err).WithField("slug", movement.Slug).Warn("⚠️ failed to index movement")
		}
	}
	return movement, nil
}

func (s *movementService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return apperror.ErrNotFound
	}

	if s.index != nil {
		if err := s.index.Delete(id); err != nil {
			logrus.WithError(err).WithField("movement_id", id).Warn("⚠️ failed to remove movement from index")
		}
	}
	return nil
}

func (s *movementService) Seed(ctx context.Context) (int64, error) {
	seed := make([]entity.Movement, len(catalog))
	copy(seed, catalog)

	added, err := s.repo.Upsert(ctx, seed)
	if err != nil {
		return 0, fmt.Errorf("failed to seed movements: %w", err)
	}

	if s.index != nil {
		all, err := s.repo.ListAll(ctx)
		if err != nil {
			return added, err
		}
		if err := s.index.Index(all...); err != nil {
			logrus.WithError(err).Warn("⚠️ failed to rebuild movement index")
		}
	}
	return added, nil
}

// clean strips markup, then decodes the entities the policy leaves behind.
func (s *movementService) clean(text string) string {
	text = html.UnescapeString(s.sanitizer.Sanitize(text))
	return strings.Join(strings.Fields(text), " ")
}

func (s *movementService) cleanList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if c := s.clean(item); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// Slugify folds accents, lowercases and joins the words of name with dashes.
// Parenthesised abbreviations such as "(C2B)" are dropped.
func Slugify(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err == nil {
		name = folded
	}
	name = strings.ToLower(name)
	if i := strings.Index(name, "("); i >= 0 {
		if j := strings.Index(name[i:], ")"); j >= 0 {
			name = name[:i] + name[i+j+1:]
		}
	}
	name = strings.ReplaceAll(name, "&", "and")
	return strings.Trim(slugInvalid.ReplaceAllString(name, "-"), "-")
}

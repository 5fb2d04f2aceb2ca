package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"anoa.com/wodtracker/internal/entity"
	"anoa.com/wodtracker/internal/modules/movement/dto"
	"anoa.com/wodtracker/internal/modules/movement/repository"
	"anoa.com/wodtracker/pkg/apperror"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memMovements struct {
	rows       []entity.Movement
	lastFilter repository.MovementFilter
}

func (m *memMovements) Create(_ context.Context, movement *entity.Movement) error {
	if movement.ID == uuid.Nil {
		movement.ID = uuid.New()
	}
	m.rows = append(m.rows, *movement)
	return nil
}

func (m *memMovements) Upsert(_ context.Context, movements []entity.Movement) (int64, error) {
	var added int64
	for _, mv := range movements {
		if _, err := m.FindBySlug(context.Background(), mv.Slug); err == nil {
			continue
		}
		mv.ID = uuid.New()
		m.rows = append(m.rows, mv)
		added++
	}
	return added, nil
}

func (m *memMovements) FindByID(_ context.Context, id uuid.UUID) (*entity.Movement, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			row := m.rows[i]
			return &row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memMovements) FindBySlug(_ context.Context, slug string) (*entity.Movement, error) {
	for i := range m.rows {
		if m.rows[i].Slug == slug {
			row := m.rows[i]
			return &row, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *memMovements) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Movement, error) {
	out := []entity.Movement{}
	for _, id := range ids {
		if mv, err := m.FindByID(ctx, id); err == nil {
			out = append(out, *mv)
		}
	}
	return out, nil
}

func (m *memMovements) List(_ context.Context, filter repository.MovementFilter) ([]entity.Movement, error) {
	m.lastFilter = filter
	var out []entity.Movement
	for _, mv := range m.rows {
		if filter.Category != "" && mv.Category != filter.Category {
			continue
		}
		if !strings.Contains(strings.ToLower(mv.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, mv)
	}
	return out, nil
}

func (m *memMovements) ListAll(context.Context) ([]entity.Movement, error) {
	return m.rows, nil
}

func (m *memMovements) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	for i := range m.rows {
		if m.rows[i].ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeIndex struct {
	indexed map[uuid.UUID]entity.Movement
	deleted []uuid.UUID
	hits    []uuid.UUID
	err     error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{indexed: map[uuid.UUID]entity.Movement{}}
}

func (f *fakeIndex) Index(movements ...entity.Movement) error {
	for _, m := range movements {
		f.indexed[m.ID] = m
	}
	return nil
}

func (f *fakeIndex) Delete(id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	delete(f.indexed, id)
	return nil
}

func (f *fakeIndex) Search(string, string, int64) ([]uuid.UUID, error) {
	return f.hits, f.err
}

func seeded(t *testing.T, index MovementIndex) (*memMovements, MovementService) {
	t.Helper()
	repo := &memMovements{}
	svc := NewMovementService(repo, index)
	added, err := svc.Seed(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(len(catalog)), added)
	return repo, svc
}

func TestSeed_IsIdempotentAndIndexes(t *testing.T) {
	index := newFakeIndex()
	repo, svc := seeded(t, index)

	assert.Len(t, index.indexed, len(catalog))

	added, err := svc.Seed(context.Background())
	require.NoError(t, err)
	assert.Zero(t, added)
	assert.Len(t, repo.rows, len(catalog))
}

func TestList_UsesIndexRanking(t *testing.T) {
	index := newFakeIndex()
	repo, svc := seeded(t, index)

	thruster, _ := repo.FindBySlug(context.Background(), "thruster")
	squat, _ := repo.FindBySlug(context.Background(), "air-squat")
	index.hits = []uuid.UUID{thruster.ID, squat.ID}

	got, err := svc.List(context.Background(), dto.ListMovementsQuery{Search: "squat"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Thruster", got[0].Name)
	assert.Equal(t, "Air Squat", got[1].Name)
}

func TestList_FallsBackToDatabase(t *testing.T) {
	index := newFakeIndex()
	repo, svc := seeded(t, index)
	index.err = errors.New("meilisearch down")

	got, err := svc.List(context.Background(), dto.ListMovementsQuery{Search: "squat", Category: entity.MovementCategoryBasics})
	require.NoError(t, err)
	assert.Equal(t, "squat", repo.lastFilter.Search)
	assert.Equal(t, entity.MovementCategoryBasics, repo.lastFilter.Category)
	for _, m := range got {
		assert.Equal(t, entity.MovementCategoryBasics, m.Category)
		assert.Contains(t, strings.ToLower(m.Name), "squat")
	}
	assert.Len(t, got, 4)
}

func TestList_AllCategoryMeansNoFilter(t *testing.T) {
	repo, svc := seeded(t, nil)

	got, err := svc.List(context.Background(), dto.ListMovementsQuery{Category: dto.CategoryAll})
	require.NoError(t, err)
	assert.Empty(t, repo.lastFilter.Category)
	assert.Len(t, got, len(catalog))
}

func TestGet_ByIDOrSlug(t *testing.T) {
	repo, svc := seeded(t, nil)
	clean, _ := repo.FindBySlug(context.Background(), "clean-and-jerk")

	byID, err := svc.Get(context.Background(), clean.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Clean & Jerk", byID.Name)

	bySlug, err := svc.Get(context.Background(), "Clean-And-Jerk")
	require.NoError(t, err)
	assert.Equal(t, clean.ID, bySlug.ID)

	_, err = svc.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestCreate_SanitizesAndIndexes(t *testing.T) {
	index := newFakeIndex()
	repo := &memMovements{}
	svc := NewMovementService(repo, index)

	m, err := svc.Create(context.Background(), dto.CreateMovementInput{
		Name:        "Sentadilla <b>Búlgara</b>",
		Category:    entity.MovementCategoryAccessories,
		Description: `<script>alert(1)</script>Una pierna   elevada &amp; estable`,
		Muscles:     []string{"Glúteos", "<i></i>"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Sentadilla Búlgara", m.Name)
	assert.Equal(t, "sentadilla-bulgara", m.Slug)
	assert.Equal(t, "Una pierna elevada & estable", m.Description)
	assert.Equal(t, []string{"Glúteos"}, []string(m.Muscles))
	assert.Contains(t, index.indexed, m.ID)

	_, err = svc.Create(context.Background(), dto.CreateMovementInput{Name: "Sentadilla Bulgara", Category: entity.MovementCategoryAccessories})
	assert.ErrorIs(t, err, apperror.ErrConflict)

	_, err = svc.Create(context.Background(), dto.CreateMovementInput{Name: "<p></p>", Category: entity.MovementCategoryAccessories})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestDelete_RemovesFromIndex(t *testing.T) {
	index := newFakeIndex()
	repo, svc := seeded(t, index)
	burpee, err := repo.FindBySlug(context.Background(), "burpee")
	require.NoError(t, err)
	id := burpee.ID

	require.NoError(t, svc.Delete(context.Background(), id))
	assert.Equal(t, []uuid.UUID{id}, index.deleted)

	_, err = repo.FindByID(context.Background(), id)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), id), apperror.ErrNotFound)
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Chest to Bar (C2B)":       "chest-to-bar",
		"Handstand Push-Up (HSPU)": "handstand-push-up",
		"Clean & Jerk":             "clean-and-jerk",
		"Sentadilla Búlgara":       "sentadilla-bulgara",
		"  ":                       "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), in)
	}
}

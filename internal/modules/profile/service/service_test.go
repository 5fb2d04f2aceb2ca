package profile

import (
	"context"
	"io"
	"strings"
	"testing"

	"anoa.com/wodtracker/internal/entity"
	profileDto "anoa.com/wodtracker/internal/modules/profile/dto"
	progressionDto "anoa.com/wodtracker/internal/modules/progression/dto"
	progression "anoa.com/wodtracker/internal/modules/progression/service"
	userRepo "anoa.com/wodtracker/internal/modules/user/repository"
	"anoa.com/wodtracker/pkg/apperror"
	commonDto "anoa.com/wodtracker/pkg/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubUsers struct {
	userRepo.UserRepository
	user  *entity.User
	saved *entity.Profile
}

func (s *stubUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if s.user == nil || s.user.ID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return s.user, nil
}

func (s *stubUsers) Update(_ context.Context, _ *entity.User, profile *entity.Profile) error {
	s.saved = profile
	return nil
}

type stubStorage struct {
	uploaded []string
	deleted  []string
}

func (s *stubStorage) UploadImage(_ context.Context, r io.Reader, folder, fileName string) (string, error) {
	_, _ = io.ReadAll(r)
	url := "https://res.cloudinary.com/demo/image/upload/v1/" + folder + "/" + fileName
	s.uploaded = append(s.uploaded, url)
	return url, nil
}

func (s *stubStorage) DeleteImage(_ context.Context, fileURL string) error {
	s.deleted = append(s.deleted, fileURL)
	return nil
}

type stubProgression struct {
	progression.ProgressionService
}

func (stubProgression) GetProgress(context.Context, uuid.UUID) (*progressionDto.ProgressResponse, error) {
	return &progressionDto.ProgressResponse{XP: 1200, Tier: "intermedio"}, nil
}

func newUser() *entity.User {
	id := uuid.New()
	p := entity.NewDefaultProfile(id, "")
	return &entity.User{ID: id, Email: "a@b.com", PasswordHash: "hash", Profile: &p}
}

func ptr[T any](v T) *T { return &v }

func TestGetCurrentProfile_EmbedsProgress(t *testing.T) {
	user := newUser()
	svc := NewProfileService(&stubUsers{user: user}, nil, stubProgression{})

	res, err := svc.GetCurrentProfile(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "intermedio", res.Progress.Tier)
	assert.Empty(t, res.User.PasswordHash)
	assert.Equal(t, "Atleta", res.Profile.Name)
}

func TestGetCurrentProfile_NotFound(t *testing.T) {
	svc := NewProfileService(&stubUsers{}, nil, stubProgression{})

	_, err := svc.GetCurrentProfile(context.Background(), uuid.New())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateProfile_AppliesFields(t *testing.T) {
	user := newUser()
	users := &stubUsers{user: user}
	svc := NewProfileService(users, nil, stubProgression{})

	res, err := svc.UpdateProfile(context.Background(), user.ID, profileDto.UpdateProfileInput{
		Name:      ptr("  Marta "),
		Weight:    ptr(62.5),
		Language:  ptr("en"),
		Timezone:  ptr("America/Mexico_City"),
		Equipment: []string{"kettlebell", " ", "jump rope"},
	}, nil)
	require.NoError(t, err)

	require.NotNil(t, users.saved)
	assert.Equal(t, "Marta", res.Profile.Name)
	assert.Equal(t, 62.5, res.Profile.Weight)
	assert.Equal(t, "en", res.Profile.Language)
	assert.Equal(t, []string{"kettlebell", "jump rope"}, []string(res.Profile.Equipment))
	assert.Equal(t, 25, res.Profile.Age)
}

func TestUpdateProfile_RejectsUnknownTimezone(t *testing.T) {
	user := newUser()
	svc := NewProfileService(&stubUsers{user: user}, nil, stubProgression{})

	_, err := svc.UpdateProfile(context.Background(), user.ID, profileDto.UpdateProfileInput{Timezone: ptr("Mars/Olympus")}, nil)
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestUpdateProfile_ReplacesAvatar(t *testing.T) {
	user := newUser()
	old := "https://res.cloudinary.com/demo/image/upload/v1/avatars/old.webp"
	user.Profile.AvatarURL = &old
	store := &stubStorage{}
	svc := NewProfileService(&stubUsers{user: user}, store, stubProgression{})

	res, err := svc.UpdateProfile(context.Background(), user.ID, profileDto.UpdateProfileInput{}, &commonDto.UploadFile{
		Reader:   strings.NewReader("img"),
		FileName: "me.png",
	})
	require.NoError(t, err)

	require.Len(t, store.uploaded, 1)
	assert.Equal(t, store.uploaded[0], *res.Profile.AvatarURL)
	assert.Equal(t, []string{old}, store.deleted)
}

func TestUpdateProfile_AvatarWithoutStorage(t *testing.T) {
	user := newUser()
	svc := NewProfileService(&stubUsers{user: user}, nil, stubProgression{})

	_, err := svc.UpdateProfile(context.Background(), user.ID, profileDto.UpdateProfileInput{}, &commonDto.UploadFile{
		Reader:   strings.NewReader("img"),
		FileName: "me.png",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

package service

import (
	"encoding/json"
	"testing"
	"time"

	"anoa.com/wodtracker/internal/entity"
	"anoa.com/wodtracker/internal/modules/portability/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Shape written by the first version of the app: camelCase keys, Firestore ids and some
// entries with no id at all.
const legacyExport = `{
  "profile": {
    "name": "Ana",
    "xp": 1350,
    "lastActiveDate": "2024-03-18T10:00:00.000Z",
    "nutritionGoal": "gain_muscle",
    "weightHistory": [{"date": "2024-03-01", "weight": 62.5}]
  },
  "workoutLogs": [
    {"id": "1710756000000", "date": "2024-03-18T10:00:00.000Z", "name": "Fran", "calories": 250, "durationMinutes": 9, "type": "manual", "xpEarned": 150},
    {"date": "2024-03-19", "name": "Cindy", "calories": 300, "durationMinutes": 20, "type": "image-scan"},
    {"date": "2024-03-19", "name": "", "calories": 100}
  ],
  "nutritionLogs": [
    {"date": "2024-03-19T13:00:00Z", "mealType": "lunch", "foodItems": ["arroz", "pollo"], "calories": 650, "macros": {"protein": 40, "carbs": 70, "fat": 15}, "tips": "ok"}
  ]
}`

func counter() func() uuid.UUID {
	n := 0
	return func() uuid.UUID {
		n++
		var id uuid.UUID
		id[15] = byte(n)
		return id
	}
}

func TestIngest_LegacyExport(t *testing.T) {
	var doc dto.Document
	require.NoError(t, json.Unmarshal([]byte(legacyExport), &doc))

	userID := uuid.New()
	snap := Ingest(&doc, userID, counter())

	require.Len(t, snap.Workouts, 2)
	assert.Equal(t, 1, snap.Result.Workouts.Invalid)

	fran := snap.Workouts[0]
	assert.Equal(t, uuid.NewSHA1(legacyNamespace, []byte(userID.String()+"/workout/1710756000000")), fran.ID)
	assert.Equal(t, 9, fran.DurationMinutes)
	require.NotNil(t, fran.XPEarned)
	assert.Equal(t, 150, *fran.XPEarned)
	assert.Equal(t, userID, fran.UserID)

	cindy := snap.Workouts[1]
	assert.Equal(t, byte(1), cindy.ID[15], "missing ids are backfilled from the generator")
	assert.Equal(t, time.Date(2024, 3, 19, 12, 0, 0, 0, time.UTC), cindy.Date)
	assert.Equal(t, entity.WorkoutTypeImageScan, cindy.Type)

	require.Len(t, snap.Meals, 1)
	assert.Equal(t, entity.MealLunch, snap.Meals[0].MealType)
	assert.Equal(t, []string{"arroz", "pollo"}, []string(snap.Meals[0].FoodItems))
	assert.InDelta(t, 40.0, snap.Meals[0].Macros.Protein, 0.001)

	require.Len(t, snap.Weights, 1)
	assert.InDelta(t, 62.5, snap.Weights[0].Weight, 0.001)

	require.NotNil(t, snap.Progress)
	assert.Equal(t, 1350, snap.Progress.XP)
	require.NotNil(t, snap.Progress.LastActiveDate)
	assert.Nil(t, snap.Progress.LastPenaltyDate)
}

func TestIngest_LegacyIDsAreStable(t *testing.T) {
	var first, second dto.Document
	require.NoError(t, json.Unmarshal([]byte(legacyExport), &first))
	require.NoError(t, json.Unmarshal([]byte(legacyExport), &second))

	userID := uuid.New()
	a := Ingest(&first, userID, uuid.New)
	b := Ingest(&second, userID, uuid.New)

	assert.Equal(t, a.Workouts[0].ID, b.Workouts[0].ID)
	assert.NotEqual(t, a.Workouts[1].ID, b.Workouts[1].ID)
}

func TestIngest_DuplicateIDsInDocument(t *testing.T) {
	id := uuid.New().String()
	day := dto.FlexTime{Time: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	doc := &dto.Document{Workouts: []dto.WorkoutEntry{
		{ID: id, Date: day, Name: "A"},
		{ID: id, Date: day, Name: "B"},
	}}

	snap := Ingest(doc, uuid.New(), uuid.New)
	require.Len(t, snap.Workouts, 1)
	assert.Equal(t, "A", snap.Workouts[0].Name)
	assert.Equal(t, 1, snap.Result.Workouts.Skipped)
}

func TestIngest_ProgressBlockWins(t *testing.T) {
	doc := &dto.Document{
		Profile:  &dto.ProfileEntry{LegacyXP: 10},
		Progress: &dto.ProgressEntry{XP: 900},
	}
	snap := Ingest(doc, uuid.New(), uuid.New)
	require.NotNil(t, snap.Progress)
	assert.Equal(t, 900, snap.Progress.XP)

	snap = Ingest(&dto.Document{}, uuid.New(), uuid.New)
	assert.Nil(t, snap.Progress)
}

func TestFlexTime(t *testing.T) {
	var v struct {
		A dto.FlexTime  `json:"a"`
		B dto.FlexTime  `json:"b"`
		C *dto.FlexTime `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"2024-03-19","b":"2024-03-19T08:30:00+01:00","c":null}`), &v))
	assert.Equal(t, time.Date(2024, 3, 19, 12, 0, 0, 0, time.UTC), v.A.Time)
	assert.True(t, v.B.Equal(time.Date(2024, 3, 19, 7, 30, 0, 0, time.UTC)))
	assert.Nil(t, v.C)

	assert.Error(t, json.Unmarshal([]byte(`{"a":"19/03/2024"}`), &v))

	out, err := json.Marshal(dto.FlexTime{Time: time.Date(2024, 3, 19, 7, 30, 0, 0, time.UTC)})
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-19T07:30:00Z"`, string(out))
}

func jsonDecode(s string, v interface{}) error {
	return json.Unmarshal([]byte(s), v)
}

func jsonEncode(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	return string(b), err
}

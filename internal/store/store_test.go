package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blackwell-systems/habitwatch/internal/habit"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestSaveAndLoadHabit(t *testing.T) {
	db := testDB(t)
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.Local)

	h := habit.New("Read", "Learning", habit.Frequency{Type: habit.FrequencyDaily}, now)
	h.SetStatus(now, habit.StatusCompleted)
	h.Streak = 1
	require.NoError(t, db.SaveHabit(h))

	habits, err := db.LoadHabits(now)
	require.NoError(t, err)
	require.Len(t, habits, 1)

	got := habits[0]
	assert.Equal(t, h.ID, got.ID)
	assert.Equal(t, "Read", got.Title)
	assert.Equal(t, habit.FrequencyDaily, got.Frequency.Type)
	assert.Equal(t, 1, got.Streak)
	assert.Equal(t, habit.StatusCompleted, got.History["2024-05-01"])
}

func TestSaveHabit_Upsert(t *testing.T) {
	db := testDB(t)
	now := time.Date(2024, time.May, 1, 10, 0, 0, 0, time.Local)

	h := habit.New("Run", "Health", habit.Frequency{Type: habit.FrequencyWeekly, RepeatTarget: 3}, now)
	require.NoError(t, db.SaveHabit(h))

	h.Title = "Run 5k"
	h.Streak = 4
	require.NoError(t, db.SaveHabit(h))

	habits, err := db.LoadHabits(now)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, "Run 5k", habits[0].Title)
	assert.Equal(t, 4, habits[0].Streak)
	assert.Equal(t, 3, habits[0].Frequency.RepeatTarget)
}

func TestLoadHabits_SanitizesCorruptedKeys(t *testing.T) {
	db := testDB(t)
	now := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.Local)

	_, err := db.Conn().Exec(`
		INSERT INTO habits (id, title, category, frequency_type, frequency_days, created_at, history)
		VALUES ('x1', 'Stretch', 'Health', 'daily', '[]', '2024-01-01T00:00:00Z',
		        '{"2024 -01 -13 ": "completed"}')`)
	require.NoError(t, err)

	habits, err := db.LoadHabits(now)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Equal(t, habit.StatusCompleted, habits[0].History["2024-01-13"])
}

func TestLoadHabits_LegacyCompletedDatesArray(t *testing.T) {
	db := testDB(t)
	now := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.Local)

	_, err := db.Conn().Exec(`
		INSERT INTO habits (id, title, category, frequency_type, frequency_days, created_at, history)
		VALUES ('x2', 'Journal', 'Mindfulness', 'daily', '[]', '',
		        '["2024-02-01", "2024-02-03"]')`)
	require.NoError(t, err)

	habits, err := db.LoadHabits(now)
	require.NoError(t, err)
	require.Len(t, habits, 1)

	got := habits[0]
	assert.Equal(t, habit.StatusCompleted, got.History["2024-02-01"])
	assert.Equal(t, habit.StatusCompleted, got.History["2024-02-03"])
	// Missing creation date falls back to the earliest history date.
	assert.Equal(t, "2024-02-01", habit.DateKey(got.CreatedAt))
}

func TestLoadHabits_CorruptHistoryBecomesEmpty(t *testing.T) {
	db := testDB(t)
	now := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.Local)

	_, err := db.Conn().Exec(`
		INSERT INTO habits (id, title, category, frequency_type, frequency_days, created_at, history)
		VALUES ('x3', 'Walk', 'Health', 'daily', '[]', '2024-01-01T00:00:00Z', 'not json')`)
	require.NoError(t, err)

	habits, err := db.LoadHabits(now)
	require.NoError(t, err)
	require.Len(t, habits, 1)
	assert.Empty(t, habits[0].History)
}

func TestDeleteHabit(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	h := habit.New("Temp", "Other", habit.Frequency{Type: habit.FrequencyDaily}, now)
	require.NoError(t, db.SaveHabit(h))
	require.NoError(t, db.DeleteHabit(h.ID))

	habits, err := db.LoadHabits(now)
	require.NoError(t, err)
	assert.Empty(t, habits)

	assert.Error(t, db.DeleteHabit("missing"))
}

func TestGetHabit_ByIDAndTitlePrefix(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	h := habit.New("Meditation", "Mindfulness", habit.Frequency{Type: habit.FrequencyDaily}, now)
	require.NoError(t, db.SaveHabit(h))

	byID, err := db.GetHabit(h.ID, now)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, h.ID, byID.ID)

	byPrefix, err := db.GetHabit("medit", now)
	require.NoError(t, err)
	require.NotNil(t, byPrefix)
	assert.Equal(t, h.ID, byPrefix.ID)

	missing, err := db.GetHabit("nope", now)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSnapshotsAndMetrics(t *testing.T) {
	db := testDB(t)

	id1, err := db.CreateSnapshot("track", "test")
	require.NoError(t, err)
	require.NoError(t, db.InsertHabitMetric(id1, "", "completion_rate_30d", 72))
	require.NoError(t, db.InsertHabitMetric(id1, "h1", "streak", 5))

	id2, err := db.CreateSnapshot("track", "test")
	require.NoError(t, err)

	latest, err := db.GetLatestSnapshot()
	require.NoError(t, err)
	assert.Equal(t, id2, latest.ID)

	second, err := db.GetSnapshotN(2)
	require.NoError(t, err)
	assert.Equal(t, id1, second.ID)

	metrics, err := db.GetHabitMetrics(id1)
	require.NoError(t, err)
	assert.Len(t, metrics, 2)
}

func TestCounters(t *testing.T) {
	db := testDB(t)

	v, err := db.GetCounter("habits_created")
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = db.BumpCounter("habits_created", 1)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = db.BumpCounter("habits_created", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, v)
}

func TestEnsureSeed(t *testing.T) {
	db := testDB(t)
	now := time.Now()

	require.NoError(t, db.EnsureSeed(now))
	n, err := db.CountHabits()
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Seeding again must not duplicate.
	require.NoError(t, db.EnsureSeed(now))
	n, _ = db.CountHabits()
	assert.Equal(t, 2, n)
}

package scheduler

import (
	"testing"

	"github.com/stretchr/testify/require"

	"examflow/internal/config"
	"examflow/internal/domain"
	"examflow/internal/model"
)

func TestStateStore(t *testing.T) {
	t.Run("initial permission", func(t *testing.T) {
		states, err := NewStateStore(&config.Config{NotificationPermission: "granted"})
		require.NoError(t, err)
		st := states.Snapshot()
		require.Equal(t, domain.PermissionGranted, st.Permission)
		require.Equal(t, domain.DefaultLocale, st.Locale)

		_, err = NewStateStore(&config.Config{NotificationPermission: "maybe"})
		require.ErrorIs(t, err, domain.ErrInvalidPermission)
	})

	t.Run("replace schedule keeps permission", func(t *testing.T) {
		states, err := NewStateStore(&config.Config{NotificationPermission: "default"})
		require.NoError(t, err)
		states.SetPermission(domain.PermissionGranted)

		exams := []model.Exam{
			{Title: "Mid", Subject: "math", Start: "2026-10-20"},
			{Title: "Quiz", Subject: "art", Start: "2026-10-21"},
			{Title: "Final", Subject: "math", Start: "2026-10-30"},
		}
		st := states.ReplaceSchedule(exams, domain.LocaleJapanese, []string{"#111", "#222"})
		require.Equal(t, domain.PermissionGranted, st.Permission)
		require.Equal(t, domain.LocaleJapanese, st.Locale)
		require.Equal(t, map[string]string{"math": "#111", "art": "#222"}, st.Colors)

		exams[0].Title = "mutated"
		require.Equal(t, "Mid", states.Snapshot().Exams[0].Title)
	})

	t.Run("snapshot is a copy", func(t *testing.T) {
		states, err := NewStateStore(&config.Config{NotificationPermission: "default"})
		require.NoError(t, err)
		states.ReplaceSchedule([]model.Exam{{Title: "A", Subject: "s"}}, domain.LocaleEnglish, []string{"#1"})

		snap := states.Snapshot()
		snap.Colors["s"] = "#changed"
		snap.Exams[0].Title = "B"

		again := states.Snapshot()
		require.Equal(t, "#1", again.Colors["s"])
		require.Equal(t, "A", again.Exams[0].Title)
	})
}

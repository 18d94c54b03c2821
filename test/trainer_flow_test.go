//go:build integration_test || all_tests

package test

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/2beens/liftly/internal/auth"
	"github.com/2beens/liftly/internal/clients"
	"github.com/2beens/liftly/internal/progress"
	"github.com/2beens/liftly/internal/sessions"
	"github.com/2beens/liftly/internal/templates"
	"github.com/2beens/liftly/internal/workouts"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (s *IntegrationTestSuite) TestSignInAndOut() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trainer := s.signUpTrainer(ctx)

	var signIn auth.SignInResponse
	status := s.doRequest(ctx, http.MethodPost, "/auth/signin", "", auth.SignInRequest{
		Email:    trainer.Account.Email,
		Password: testPassword,
	}, &signIn)
	require.Equal(t, http.StatusOK, status)

	var me auth.Account
	require.Equal(t, http.StatusOK, s.doRequest(ctx, http.MethodGet, "/auth/me", signIn.Token, nil, &me))
	assert.Equal(t, trainer.Account.ID, me.ID)

	require.Equal(t, http.StatusOK, s.doRequest(ctx, http.MethodPost, "/auth/signout", signIn.Token, nil, nil))
	assert.Equal(t, http.StatusUnauthorized, s.doRequest(ctx, http.MethodGet, "/auth/me", signIn.Token, nil, nil))

	// the sign up token has its own session
	assert.Equal(t, http.StatusOK, s.doRequest(ctx, http.MethodGet, "/auth/me", trainer.Token, nil, nil))

	status = s.doRequest(ctx, http.MethodPost, "/auth/signin", "", auth.SignInRequest{
		Email:    trainer.Account.Email,
		Password: "wrong-password",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func (s *IntegrationTestSuite) TestClientsAndSessions() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trainer := s.signUpTrainer(ctx)
	token := trainer.Token

	var client clients.Client
	clientName := gofakeit.Name()
	status := s.doRequest(ctx, http.MethodPost, "/clients", token, clients.NewClientRequest{
		Name:  clientName,
		Email: gofakeit.Email(),
	}, &client)
	require.Equal(t, http.StatusCreated, status)

	var list []clients.Client
	require.Equal(t, http.StatusOK, s.doRequest(ctx, http.MethodGet, "/clients", token, nil, &list))
	require.Len(t, list, 1)
	assert.Equal(t, clientName, list[0].Name)

	date := time.Now().AddDate(0, 0, 2).Format("2006-01-02")
	var scheduled sessions.Session
	status = s.doRequest(ctx, http.MethodPost, "/sessions", token, sessions.Draft{
		ClientID:    client.ID,
		Date:        date,
		StartTime:   "9:30",
		StartPeriod: "AM",
		EndTime:     "10:15",
		EndPeriod:   "AM",
		Location:    "Main gym",
	}, &scheduled)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "Session with "+clientName, scheduled.Name)
	assert.Equal(t, 45, scheduled.DurationMinutes)
	assert.Equal(t, sessions.StatusScheduled, scheduled.Status)

	var booked sessions.Session
	status = s.doRequest(ctx, http.MethodPost, "/sessions/book", token, sessions.SlotBooking{
		ClientID: client.ID,
		Date:     date,
		SlotTime: "14:00:00",
		Location: "Main gym",
	}, &booked)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 60, booked.DurationMinutes)

	// same slot again
	status = s.doRequest(ctx, http.MethodPost, "/sessions/book", token, sessions.SlotBooking{
		ClientID: client.ID,
		Date:     date,
		SlotTime: "14:00:00",
		Location: "Main gym",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var slots []sessions.Slot
	require.Equal(t, http.StatusOK, s.doRequest(ctx, http.MethodGet, "/sessions/slots?date="+date, token, nil, &slots))
	require.Len(t, slots, len(sessions.BusinessHours))
	for _, slot := range slots {
		assert.Equal(t, slot.Time != "14:00:00", slot.Available, slot.Time)
	}

	parsed, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	calendarPath := fmt.Sprintf("/sessions/calendar?year=%d&month=%d", parsed.Year(), int(parsed.Month()))
	var cal sessions.CalendarResponse
	require.Equal(t, http.StatusOK, s.doRequest(ctx, http.MethodGet, calendarPath, token, nil, &cal))
	assert.Equal(t, 2, cal.Sessions[date])

	path := fmt.Sprintf("/sessions/%d/cancel", booked.ID)
	require.Equal(t, http.StatusOK, s.doRequest(ctx, http.MethodPost, path, token, nil, nil))

	// cancelling invalidates the cached month counts
	require.Equal(t, http.StatusOK, s.doRequest(ctx, http.MethodGet, calendarPath, token, nil, &cal))
	assert.Equal(t, 1, cal.Sessions[date])

	// another trainer sees nothing of it
	other := s.signUpTrainer(ctx)
	assert.Equal(t, http.StatusNotFound, s.doRequest(ctx, http.MethodGet, fmt.Sprintf("/sessions/%d", scheduled.ID), other.Token, nil, nil))
	assert.Equal(t, http.StatusNotFound, s.doRequest(ctx, http.MethodGet, fmt.Sprintf("/clients/%d", client.ID), other.Token, nil, nil))
}

func (s *IntegrationTestSuite) TestWorkoutsAndTemplates() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trainer := s.signUpTrainer(ctx)
	token := trainer.Token
	member := s.signUpClient(ctx, trainer.TrainerCode)
	clientID := *member.Account.ClientID

	var logged workouts.Workout
	status := s.doRequest(ctx, http.MethodPost, "/workouts", token, workouts.LogWorkoutRequest{
		ClientID: clientID,
		Date:     "2025-03-10",
		Name:     "Push day",
		Exercises: []workouts.ExerciseDraft{
			{Name: "Bench press", Sets: 4, Reps: 8, Weight: 80},
			{Name: "  "},
			{Name: "Dips", Sets: 3, Reps: 12},
		},
	}, &logged)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 2, s.countRows(`SELECT count(*) FROM workout_exercise WHERE workout_id = $1`, logged.ID))

	var exercises []workouts.Exercise
	path := fmt.Sprintf("/workouts/%d/exercises", logged.ID)
	require.Equal(t, http.StatusOK, s.doRequest(ctx, http.MethodGet, path, member.Token, nil, &exercises))
	require.Len(t, exercises, 2)
	assert.Equal(t, "Dips", exercises[1].Name)
	assert.Equal(t, 1, exercises[1].OrderIndex)

	// autosaved draft
	var draft workouts.DraftResponse
	status = s.doRequest(ctx, http.MethodPost, "/workouts/drafts", token, workouts.OpenDraftRequest{
		ClientID: clientID,
		Date:     "2025-03-12",
		Name:     "Legs",
	}, &draft)
	require.Equal(t, http.StatusCreated, status)
	status = s.doRequest(ctx, http.MethodPost, "/workouts/drafts/"+draft.ID+"/exercises", token, workouts.ExerciseDraft{
		Name: "Squat", Sets: 5, Reps: 5, Weight: 100,
	}, nil)
	require.Equal(t, http.StatusOK, status)

	require.Eventually(t, func() bool {
		return s.countRows(
			`SELECT count(*) FROM workout_exercise e JOIN workout w ON w.id = e.workout_id
				WHERE w.client_id = $1 AND e.name = 'Squat'`, clientID,
		) == 1
	}, 5*time.Second, 100*time.Millisecond)
	require.Equal(t, http.StatusOK, s.doRequest(ctx, http.MethodDelete, "/workouts/drafts/"+draft.ID, token, nil, nil))

	var clientWorkouts []workouts.Workout
	path = fmt.Sprintf("/clients/%d/workouts", clientID)
	require.Equal(t, http.StatusOK, s.doRequest(ctx, http.MethodGet, path, member.Token, nil, &clientWorkouts))
	require.Len(t, clientWorkouts, 2)
	assert.Equal(t, "2025-03-12", clientWorkouts[0].Date)

	// templates
	var detail templates.Detail
	status = s.doRequest(ctx, http.MethodPost, "/templates", token, templates.SaveRequest{
		Name: "Full body",
		Exercises: []templates.Exercise{
			templates.NewExercise(templates.SectionWarmUp),
			{ExerciseName: "Deadlift", Sets: 3, Reps: "5", Section: templates.SectionMain},
		},
	}, &detail)
	require.Equal(t, http.StatusCreated, status)
	require.Len(t, detail.Exercises, 1)

	var assigned templates.AssignResult
	path = fmt.Sprintf("/templates/%d/assignments", detail.ID)
	require.Equal(t, http.StatusOK, s.doRequest(ctx, http.MethodPut, path, token, map[string][]int{"clientIds": {clientID}}, &assigned))
	assert.Equal(t, []int{clientID}, assigned.Added)

	var summaries []templates.Summary
	require.Equal(t, http.StatusOK, s.doRequest(ctx, http.MethodGet, "/templates?q=full", token, nil, &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].ExerciseCount)
	assert.Equal(t, 1, summaries[0].AssignedCount)

	// clients can't reach trainer routes
	assert.Equal(t, http.StatusForbidden, s.doRequest(ctx, http.MethodGet, "/templates", member.Token, nil, nil))
}

func (s *IntegrationTestSuite) TestProgress() {
	t := s.T()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trainer := s.signUpTrainer(ctx)
	member := s.signUpClient(ctx, trainer.TrainerCode)
	clientID := *member.Account.ClientID

	for i, weight := range []float64{200, 190} {
		w := weight
		status := s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/clients/%d/measurements", clientID), trainer.Token, progress.NewMeasurement{
			Date:   fmt.Sprintf("2025-03-0%d", i+1),
			Weight: &w,
		}, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	value := 140.0
	var pr progress.PersonalRecord
	status := s.doRequest(ctx, http.MethodPost, fmt.Sprintf("/clients/%d/records", clientID), member.Token, progress.NewPersonalRecord{
		ExerciseName: "Bench press",
		Value:        &value,
	}, &pr)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "1RM", pr.RecordType)

	var resp progress.ProgressResponse
	require.Equal(t, http.StatusOK, s.doRequest(ctx, http.MethodGet, fmt.Sprintf("/clients/%d/progress", clientID), member.Token, nil, &resp))
	assert.Len(t, resp.Measurements, 2)
	require.Len(t, resp.PersonalRecords, 1)
	require.Len(t, resp.Trends, 1)
	assert.Equal(t, 190.0, resp.Trends[0].Latest)
	assert.Equal(t, -5.0, resp.Trends[0].ChangePercent)

	other := s.signUpTrainer(ctx)
	assert.Equal(t, http.StatusNotFound, s.doRequest(ctx, http.MethodGet, fmt.Sprintf("/clients/%d/progress", clientID), other.Token, nil, nil))
}

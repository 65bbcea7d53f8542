package db

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskproof/taskproof/internal/errs"
	"github.com/taskproof/taskproof/internal/model"
)

const testWindow = 7 * 24 * time.Hour

func TestStartClaimSerializesCheckAndInsert(t *testing.T) {
	setup(t)
	manager := mustUser(t, "boss", model.RoleManager)
	alice := mustUser(t, "alice", model.RoleUser)
	bob := mustUser(t, "bob", model.RoleUser)
	task := mustTask(t, manager.ID, 1, true)
	now := time.Now()

	claim, err := StartClaim(task.ID, alice.ID, now, testWindow)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimInProgress, claim.Status)
	require.NotNil(t, claim.ExpiresAt)
	assert.Equal(t, now.Add(testWindow).Unix(), claim.ExpiresAt.Unix())

	// the same check-and-insert rejects a second claimant
	_, err = StartClaim(task.ID, bob.ID, now, testWindow)
	assert.ErrorIs(t, err, errs.ErrAlreadyClaimed)

	// and its own holder
	_, err = StartClaim(task.ID, alice.ID, now, testWindow)
	assert.ErrorIs(t, err, errs.ErrAlreadyClaimed)
}

// Two simultaneous starts on one task must never both succeed: the row lock
// (or sqlite's single writer) serializes the check-and-insert, so the loser
// sees either the winner's claim or a busy transaction. Either way at most
// one in_progress row may exist afterwards.
func TestStartClaimConcurrentStarts(t *testing.T) {
	setup(t)
	manager := mustUser(t, "boss", model.RoleManager)
	alice := mustUser(t, "alice", model.RoleUser)
	bob := mustUser(t, "bob", model.RoleUser)
	now := time.Now()

	for i := 0; i < 10; i++ {
		task := mustTask(t, manager.ID, 1, true)
		var wg sync.WaitGroup
		startErrs := make([]error, 2)
		for j, uid := range []uint{alice.ID, bob.ID} {
			wg.Add(1)
			go func(j int, uid uint) {
				defer wg.Done()
				_, startErrs[j] = StartClaim(task.ID, uid, now, testWindow)
			}(j, uid)
		}
		wg.Wait()

		successes := 0
		for _, err := range startErrs {
			if err == nil {
				successes++
			}
		}
		assert.LessOrEqual(t, successes, 1)

		var inProgress int64
		require.NoError(t, db.Model(&model.Claim{}).
			Where("task_id = ? AND status = ?", task.ID, model.ClaimInProgress).
			Count(&inProgress).Error)
		assert.EqualValues(t, successes, inProgress)
	}
}

func TestStartClaimInactiveOrMissingTask(t *testing.T) {
	setup(t)
	manager := mustUser(t, "boss", model.RoleManager)
	alice := mustUser(t, "alice", model.RoleUser)
	inactive := mustTask(t, manager.ID, 1, false)
	now := time.Now()

	_, err := StartClaim(inactive.ID, alice.ID, now, testWindow)
	assert.ErrorIs(t, err, errs.ErrTaskInactive)

	_, err = StartClaim(999, alice.ID, now, testWindow)
	assert.ErrorIs(t, err, errs.ErrTaskNotFound)
}

// The blocking predicate is time-qualified: a stale in_progress row stops
// counting the moment its expiry passes, with no status write.
func TestHasBlockingClaim(t *testing.T) {
	setup(t)
	manager := mustUser(t, "boss", model.RoleManager)
	alice := mustUser(t, "alice", model.RoleUser)
	task := mustTask(t, manager.ID, 1, true)
	now := time.Now()

	claim, err := StartClaim(task.ID, alice.ID, now, testWindow)
	require.NoError(t, err)

	blocked, err := HasBlockingClaim(task.ID, 0, now)
	require.NoError(t, err)
	assert.True(t, blocked)

	// excluding the holder leaves nothing blocking
	blocked, err = HasBlockingClaim(task.ID, alice.ID, now)
	require.NoError(t, err)
	assert.False(t, blocked)

	// a read after the window sees the same row as non-blocking
	after := claim.ExpiresAt.Add(time.Minute)
	blocked, err = HasBlockingClaim(task.ID, 0, after)
	require.NoError(t, err)
	assert.False(t, blocked)

	stored, err := GetClaim(claim.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimInProgress, stored.Status)
}

func TestCompleteClaimTransitions(t *testing.T) {
	setup(t)
	manager := mustUser(t, "boss", model.RoleManager)
	alice := mustUser(t, "alice", model.RoleUser)
	task := mustTask(t, manager.ID, 2, true)
	now := time.Now()

	claim, err := StartClaim(task.ID, alice.ID, now, testWindow)
	require.NoError(t, err)

	done, err := CompleteClaim(claim.ID, []string{"claims/1/a.jpg", "claims/1/b.jpg"}, now)
	require.NoError(t, err)
	assert.Equal(t, model.ClaimCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.Len(t, done.Uploads, 2)

	_, err = CompleteClaim(claim.ID, []string{"claims/1/c.jpg"}, now)
	assert.ErrorIs(t, err, errs.ErrAlreadyCompleted)

	stored, err := GetClaim(claim.ID)
	require.NoError(t, err)
	assert.Len(t, stored.Uploads, 2)
}

func TestCompleteClaimRejectsExpiredAtTransition(t *testing.T) {
	setup(t)
	manager := mustUser(t, "boss", model.RoleManager)
	alice := mustUser(t, "alice", model.RoleUser)
	task := mustTask(t, manager.ID, 1, true)
	now := time.Now()

	claim, err := StartClaim(task.ID, alice.ID, now, testWindow)
	require.NoError(t, err)

	late := claim.ExpiresAt.Add(time.Second)
	_, err = CompleteClaim(claim.ID, []string{"claims/1/a.jpg"}, late)
	assert.ErrorIs(t, err, errs.ErrClaimExpired)

	_, err = CompleteClaim(404, []string{"claims/404/a.jpg"}, now)
	assert.ErrorIs(t, err, errs.ErrClaimNotFound)
}

func TestGetUserClaimReturnsLatest(t *testing.T) {
	setup(t)
	manager := mustUser(t, "boss", model.RoleManager)
	alice := mustUser(t, "alice", model.RoleUser)
	task := mustTask(t, manager.ID, 1, true)
	now := time.Now()

	none, err := GetUserClaim(task.ID, alice.ID)
	require.NoError(t, err)
	assert.Nil(t, none)

	first, err := StartClaim(task.ID, alice.ID, now, testWindow)
	require.NoError(t, err)
	// expire it and claim again
	require.NoError(t, db.Model(&model.Claim{}).Where("id = ?", first.ID).
		Update("expires_at", now.Add(-time.Hour)).Error)
	second, err := StartClaim(task.ID, alice.ID, now, testWindow)
	require.NoError(t, err)

	latest, err := GetUserClaim(task.ID, alice.ID)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)
}

func TestListUserClaims(t *testing.T) {
	setup(t)
	manager := mustUser(t, "boss", model.RoleManager)
	alice := mustUser(t, "alice", model.RoleUser)
	now := time.Now()
	for i := 0; i < 3; i++ {
		task := mustTask(t, manager.ID, 1, true)
		_, err := StartClaim(task.ID, alice.ID, now.Add(time.Duration(i)*time.Minute), testWindow)
		require.NoError(t, err)
	}

	claims, total, err := ListUserClaims(alice.ID, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, claims, 2)
	// newest first
	assert.True(t, !claims[0].StartedAt.Before(claims[1].StartedAt))
}

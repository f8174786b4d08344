package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fitmyphone-backend-go/internal/models"
)

func newContributionFixture() (*fakeState, ContributionService) {
	state := newFakeState()
	svc := NewContributionService(&fakeContributionRepo{state: state}, &fakeUserRepo{state: state})
	return state, svc
}

func TestContributionSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("starts pending", func(t *testing.T) {
		state, svc := newContributionFixture()
		state.users["u1"] = &models.User{ID: "u1"}

		contribution, err := svc.Submit(ctx, "u1", models.CreateContributionRequest{
			AccessoryType: "Clear Case",
			Models:        []string{"Pixel 9"},
			Source:        "Amazon listing",
		})
		require.NoError(t, err)
		assert.Equal(t, models.ContributionStatusPending, contribution.Status)
		assert.Equal(t, "u1", contribution.SubmittedBy)
		assert.NotEmpty(t, contribution.ID)
		assert.Equal(t, 0, contribution.PointsAwarded)
	})

	t.Run("suspended users cannot submit", func(t *testing.T) {
		state, svc := newContributionFixture()
		state.users["u1"] = &models.User{ID: "u1", IsSuspended: true}

		_, err := svc.Submit(ctx, "u1", models.CreateContributionRequest{
			AccessoryType: "Clear Case",
			Models:        []string{"Pixel 9"},
		})
		assert.ErrorIs(t, err, ErrUserSuspended)
		assert.Empty(t, state.contributions)
	})

	t.Run("unknown submitter", func(t *testing.T) {
		_, svc := newContributionFixture()
		_, err := svc.Submit(ctx, "ghost", models.CreateContributionRequest{
			AccessoryType: "Clear Case",
			Models:        []string{"Pixel 9"},
		})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestContributionListByStatus(t *testing.T) {
	ctx := context.Background()
	state, svc := newContributionFixture()
	state.putContribution(&models.Contribution{Status: models.ContributionStatusPending})
	state.putContribution(&models.Contribution{Status: models.ContributionStatusApproved})
	state.putContribution(&models.Contribution{Status: models.ContributionStatusPending})

	t.Run("filters by status", func(t *testing.T) {
		pending, err := svc.ListByStatus(ctx, models.ContributionStatusPending, 0)
		require.NoError(t, err)
		assert.Len(t, pending, 2)
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		_, err := svc.ListByStatus(ctx, "archived", 0)
		assert.ErrorIs(t, err, ErrInvalidStatus)
	})
}

func TestContributionListMine(t *testing.T) {
	ctx := context.Background()
	state, svc := newContributionFixture()
	state.putContribution(&models.Contribution{SubmittedBy: "u1"})
	state.putContribution(&models.Contribution{SubmittedBy: "u2"})
	state.putContribution(&models.Contribution{SubmittedBy: "u1"})

	mine, err := svc.ListMine(ctx, "u1", 0)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

func TestContributionDelete(t *testing.T) {
	ctx := context.Background()
	state, svc := newContributionFixture()
	state.putContribution(&models.Contribution{ID: "c1"})

	require.NoError(t, svc.Delete(ctx, "c1"))
	assert.Empty(t, state.contributions)

	assert.ErrorIs(t, svc.Delete(ctx, "c1"), ErrContributionNotFound)
}

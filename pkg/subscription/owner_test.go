package subscription_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferosa45/listlab-backend-sub000/pkg/subscription"
)

func TestResolveOwner(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	schoolID := uuid.New()
	individual := subscription.Plan{Code: "pro"}
	orgScoped := subscription.Plan{Code: "school", OrganizationScoped: true}

	t.Run("individual plan always bills the user", func(t *testing.T) {
		t.Parallel()

		admin := subscription.Actor{UserID: userID, SchoolID: &schoolID, Role: subscription.RoleSchoolAdmin}
		owner, err := subscription.ResolveOwner(admin, individual)
		require.NoError(t, err)
		assert.Equal(t, subscription.UserOwner(userID), owner)
	})

	t.Run("org plan bills the school for admins", func(t *testing.T) {
		t.Parallel()

		admin := subscription.Actor{UserID: userID, SchoolID: &schoolID, Role: subscription.RoleSchoolAdmin}
		owner, err := subscription.ResolveOwner(admin, orgScoped)
		require.NoError(t, err)
		assert.Equal(t, subscription.SchoolOwner(schoolID), owner)
	})

	t.Run("org plan denied for non-admin members", func(t *testing.T) {
		t.Parallel()

		member := subscription.Actor{UserID: userID, SchoolID: &schoolID, Role: subscription.RoleTeacher}
		_, err := subscription.ResolveOwner(member, orgScoped)
		assert.ErrorIs(t, err, subscription.ErrPermissionDenied)
	})

	t.Run("org plan denied for unaffiliated users", func(t *testing.T) {
		t.Parallel()

		solo := subscription.Actor{UserID: userID}
		_, err := subscription.ResolveOwner(solo, orgScoped)
		assert.ErrorIs(t, err, subscription.ErrPermissionDenied)
	})
}

func TestActorIsSchoolAdmin(t *testing.T) {
	t.Parallel()

	schoolID := uuid.New()

	assert.True(t, subscription.Actor{UserID: uuid.New(), SchoolID: &schoolID, Role: subscription.RoleSchoolAdmin}.IsSchoolAdmin())
	assert.False(t, subscription.Actor{UserID: uuid.New(), SchoolID: &schoolID, Role: subscription.RoleTeacher}.IsSchoolAdmin())
	assert.False(t, subscription.Actor{UserID: uuid.New(), Role: subscription.RoleSchoolAdmin}.IsSchoolAdmin())
}

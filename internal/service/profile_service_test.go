package service

import (
	"Nexus/internal/api/dto"
	"errors"
	"testing"
	"time"

	"Nexus/internal/pkg/util"
)

func strPtr(s string) *string { return &s }

func TestGetOrCreateMineLazyCreates(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.mustCreateUser(t, "alice")

	view, err := env.profileSvc.GetOrCreateMine(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetOrCreateMine returned error: %v", err)
	}
	if view.UserID != user.ID {
		t.Fatalf("view.UserID = %d, want %d", view.UserID, user.ID)
	}
	if view.User.Username != "alice" {
		t.Fatalf("view.User.Username = %q, want alice", view.User.Username)
	}

	// 再次访问返回同一份资料
	again, err := env.profileSvc.GetOrCreateMine(ctx, user.ID)
	if err != nil {
		t.Fatalf("second GetOrCreateMine returned error: %v", err)
	}
	if again.ID != view.ID {
		t.Fatalf("expected same profile id %d, got %d", view.ID, again.ID)
	}
}

func TestUpdateMinePartial(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.mustCreateUser(t, "alice")

	_, err := env.profileSvc.UpdateMine(ctx, user.ID, &dto.UpdateProfileDTO{
		Bio:      strPtr("hello"),
		Location: strPtr("Berlin"),
	})
	if err != nil {
		t.Fatalf("UpdateMine returned error: %v", err)
	}

	// 只改 bio，location 不动
	view, err := env.profileSvc.UpdateMine(ctx, user.ID, &dto.UpdateProfileDTO{
		Bio: strPtr("updated"),
	})
	if err != nil {
		t.Fatalf("second UpdateMine returned error: %v", err)
	}
	if view.Bio == nil || *view.Bio != "updated" {
		t.Fatalf("bio not updated: %v", view.Bio)
	}
	if view.Location == nil || *view.Location != "Berlin" {
		t.Fatalf("location must stay untouched: %v", view.Location)
	}
}

func TestUpdateMineBirthDate(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.mustCreateUser(t, "alice")

	birth := "1990-06-15"
	view, err := env.profileSvc.UpdateMine(ctx, user.ID, &dto.UpdateProfileDTO{BirthDate: &birth})
	if err != nil {
		t.Fatalf("UpdateMine returned error: %v", err)
	}
	if view.BirthDate == nil || *view.BirthDate != birth {
		t.Fatalf("birth date = %v, want %s", view.BirthDate, birth)
	}
}

func TestUpdateMineAgeRestriction(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.mustCreateUser(t, "alice")

	tooYoung := util.FormatDate(time.Now().AddDate(-12, 0, 0))
	_, err := env.profileSvc.UpdateMine(ctx, user.ID, &dto.UpdateProfileDTO{BirthDate: &tooYoung})
	if !errors.Is(err, ErrAgeRestriction) {
		t.Fatalf("expected ErrAgeRestriction, got %v", err)
	}
}

func TestUpdateMineInvalidWebsite(t *testing.T) {
	env := newTestEnv(t)
	user := env.mustCreateUser(t, "alice")

	_, err := env.profileSvc.UpdateMine(t.Context(), user.ID, &dto.UpdateProfileDTO{
		Website: strPtr("not a url"),
	})
	if err == nil {
		t.Fatal("expected validation error for malformed website")
	}
}

func TestGetProfileSelfViewHasNoAnnotations(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.mustCreateUser(t, "alice")

	mine, err := env.profileSvc.GetOrCreateMine(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetOrCreateMine returned error: %v", err)
	}

	view, err := env.profileSvc.GetProfile(ctx, mine.ID, user.ID)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if view.IsFollowing != nil || view.FollowsYou != nil {
		t.Fatal("self view must not carry follow annotations")
	}
	if view.FollowersCount != nil || view.FollowingCount != nil {
		t.Fatal("self view must not carry counts")
	}
}

func TestGetProfileAnnotatedForOtherViewer(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	alice := env.mustCreateProfile(t, "alice")
	bob := env.mustCreateProfile(t, "bob")

	env.mustFollow(t, alice.ID, bob.ID)
	env.mustFollow(t, bob.ID, alice.ID)

	view, err := env.profileSvc.GetProfile(ctx, bob.ID, alice.UserID)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if view.IsFollowing == nil || !*view.IsFollowing {
		t.Fatal("alice follows bob, is_following should be true")
	}
	if view.FollowsYou == nil || !*view.FollowsYou {
		t.Fatal("bob follows alice, follows_you should be true")
	}
	if view.FollowersCount == nil || *view.FollowersCount != 1 {
		t.Fatalf("followers_count = %v, want 1", view.FollowersCount)
	}
	if view.FollowingCount == nil || *view.FollowingCount != 1 {
		t.Fatalf("following_count = %v, want 1", view.FollowingCount)
	}
}

func TestGetProfileAnonymousViewer(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	alice := env.mustCreateProfile(t, "alice")

	bob := env.mustCreateProfile(t, "bob")
	env.mustFollow(t, bob.ID, alice.ID)

	view, err := env.profileSvc.GetProfile(ctx, alice.ID, 0)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if view.IsFollowing != nil || view.FollowsYou != nil {
		t.Fatal("anonymous view must not carry follow annotations")
	}
	if view.FollowersCount == nil || *view.FollowersCount != 1 {
		t.Fatalf("followers_count = %v, want 1", view.FollowersCount)
	}
	if view.FollowingCount == nil || *view.FollowingCount != 0 {
		t.Fatalf("following_count = %v, want 0", view.FollowingCount)
	}
}

func TestGetProfileSuspendedStillVisible(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	alice := env.mustCreateProfile(t, "alice")
	bob := env.mustCreateProfile(t, "bob")

	if err := env.db.Model(alice).Update("is_suspended", true).Error; err != nil {
		t.Fatalf("failed to suspend profile: %v", err)
	}

	view, err := env.profileSvc.GetProfile(ctx, alice.ID, bob.UserID)
	if err != nil {
		t.Fatalf("GetProfile returned error: %v", err)
	}
	if !view.IsSuspended {
		t.Fatal("suspended profile must serialize is_suspended = true")
	}
}

func TestGetProfileNotFound(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.profileSvc.GetProfile(t.Context(), 12345, 0); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestDeleteMine(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.mustCreateUser(t, "alice")

	if err := env.profileSvc.DeleteMine(ctx, user.ID); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound for missing profile, got %v", err)
	}

	mine, err := env.profileSvc.GetOrCreateMine(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetOrCreateMine returned error: %v", err)
	}
	if err = env.profileSvc.DeleteMine(ctx, user.ID); err != nil {
		t.Fatalf("DeleteMine returned error: %v", err)
	}
	if _, err = env.profileSvc.GetProfile(ctx, mine.ID, 0); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("profile should be gone, got %v", err)
	}
}

func TestAdminCreate(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.mustCreateUser(t, "alice")

	view, err := env.profileSvc.AdminCreate(ctx, &dto.CreateProfileDTO{
		UserID: user.ID,
		Bio:    strPtr("created by staff"),
	})
	if err != nil {
		t.Fatalf("AdminCreate returned error: %v", err)
	}
	if view.UserID != user.ID {
		t.Fatalf("view.UserID = %d, want %d", view.UserID, user.ID)
	}

	// 同一账号不能有第二份资料
	if _, err = env.profileSvc.AdminCreate(ctx, &dto.CreateProfileDTO{UserID: user.ID}); !errors.Is(err, ErrProfileExist) {
		t.Fatalf("expected ErrProfileExist, got %v", err)
	}
}

func TestAdminCreateUnknownUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.profileSvc.AdminCreate(t.Context(), &dto.CreateProfileDTO{UserID: 777})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestListFollowersViews(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	viewer := env.mustCreateProfile(t, "viewer")
	target := env.mustCreateProfile(t, "target")
	p1 := env.mustCreateProfile(t, "p1")
	p2 := env.mustCreateProfile(t, "p2")

	env.mustFollow(t, p1.ID, target.ID)
	env.mustFollow(t, p2.ID, target.ID)
	env.mustFollow(t, viewer.ID, target.ID)
	env.mustFollow(t, viewer.ID, p1.ID)
	env.mustFollow(t, p2.ID, viewer.ID)

	views, err := env.profileSvc.ListFollowers(ctx, target.ID, viewer.UserID, 1, 40)
	if err != nil {
		t.Fatalf("ListFollowers returned error: %v", err)
	}
	if len(views) != 3 {
		t.Fatalf("expected 3 followers, got %d", len(views))
	}

	byID := make(map[uint64]*dto.ProfileViewDTO, len(views))
	for _, v := range views {
		byID[v.ID] = v
	}

	// 查看者自己的行不带注解
	if self := byID[viewer.ID]; self.IsFollowing != nil || self.FollowsYou != nil {
		t.Fatal("viewer's own row must not carry annotations")
	}
	if v := byID[p1.ID]; v.IsFollowing == nil || !*v.IsFollowing {
		t.Fatal("viewer follows p1, is_following should be true")
	}
	if v := byID[p2.ID]; v.FollowsYou == nil || !*v.FollowsYou {
		t.Fatal("p2 follows viewer, follows_you should be true")
	}
	if v := byID[p2.ID]; v.IsFollowing == nil || *v.IsFollowing {
		t.Fatal("viewer does not follow p2, is_following should be false")
	}
}

func TestListFollowersPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	target := env.mustCreateProfile(t, "target")
	p1 := env.mustCreateProfile(t, "p1")
	p2 := env.mustCreateProfile(t, "p2")
	p3 := env.mustCreateProfile(t, "p3")

	env.mustFollow(t, p1.ID, target.ID)
	env.mustFollow(t, p2.ID, target.ID)
	env.mustFollow(t, p3.ID, target.ID)

	page1, err := env.profileSvc.ListFollowers(ctx, target.ID, 0, 1, 2)
	if err != nil {
		t.Fatalf("ListFollowers page 1 returned error: %v", err)
	}
	if len(page1) != 2 || page1[0].ID != p1.ID || page1[1].ID != p2.ID {
		t.Fatalf("unexpected page 1: %v", page1)
	}

	page2, err := env.profileSvc.ListFollowers(ctx, target.ID, 0, 2, 2)
	if err != nil {
		t.Fatalf("ListFollowers page 2 returned error: %v", err)
	}
	if len(page2) != 1 || page2[0].ID != p3.ID {
		t.Fatalf("unexpected page 2: %v", page2)
	}

	empty, err := env.profileSvc.ListFollowers(ctx, target.ID, 0, 3, 2)
	if err != nil {
		t.Fatalf("ListFollowers page 3 returned error: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("expected empty page beyond range, got %d rows", len(empty))
	}
}

func TestListFollowersSubjectMissing(t *testing.T) {
	env := newTestEnv(t)

	if _, err := env.profileSvc.ListFollowers(t.Context(), 9999, 0, 1, 40); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestListFollowersIKnowWithoutViewerProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	target := env.mustCreateProfile(t, "target")
	p1 := env.mustCreateProfile(t, "p1")
	env.mustFollow(t, p1.ID, target.ID)

	// 有账号没资料的查看者拿到空列表而不是错误
	user := env.mustCreateUser(t, "noprofile")
	views, err := env.profileSvc.ListFollowersIKnow(ctx, target.ID, user.ID, 1, 40)
	if err != nil {
		t.Fatalf("ListFollowersIKnow returned error: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected empty result, got %d rows", len(views))
	}
}

func TestUpdateAvatarRecordsObjectName(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	user := env.mustCreateUser(t, "alice")

	view, err := env.profileSvc.UpdateAvatar(ctx, user.ID, "uploads/profile/abc.png")
	if err != nil {
		t.Fatalf("UpdateAvatar returned error: %v", err)
	}
	if view.AvatarURL == nil || *view.AvatarURL != "uploads/profile/abc.png" {
		t.Fatalf("avatar url = %v, want uploads/profile/abc.png", view.AvatarURL)
	}
}

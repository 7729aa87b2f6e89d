package services

import (
	"context"
	"strings"
	"time"

	"taskboard/internal/models"
	"taskboard/internal/repositories"
)

// In-memory repositories for service tests. Writes bump a counter so
// tests can assert that denied operations never touched the store.

type fakeTaskRepo struct {
	tasks  map[int64]*models.Task
	nextID int64
	writes int
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{tasks: make(map[int64]*models.Task)}
}

func (r *fakeTaskRepo) Store(_ context.Context, task *models.Task) error {
	r.writes++
	r.nextID++
	task.ID = r.nextID
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) FindByID(_ context.Context, id int64) (*models.Task, error) {
	t, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *fakeTaskRepo) FindByOwner(_ context.Context, ownerID int64) ([]models.Task, error) {
	var out []models.Task
	for _, t := range r.tasks {
		if t.OwnerID == ownerID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) Update(_ context.Context, task *models.Task) error {
	r.writes++
	cp := *task
	r.tasks[task.ID] = &cp
	return nil
}

func (r *fakeTaskRepo) Delete(_ context.Context, id int64) error {
	r.writes++
	delete(r.tasks, id)
	return nil
}

func (r *fakeTaskRepo) UpdateStatus(_ context.Context, id int64, to models.TaskStatus) error {
	r.writes++
	if t, ok := r.tasks[id]; ok {
		t.Status = to
		t.UpdatedAt = time.Now()
	}
	return nil
}

type fakeShareRepo struct {
	shares map[int64]*models.TaskShare
	users  *fakeUserRepo // для OwnerEmail в join
	tasks  *fakeTaskRepo
	nextID int64
	writes int
}

func newFakeShareRepo(tasks *fakeTaskRepo, users *fakeUserRepo) *fakeShareRepo {
	return &fakeShareRepo{shares: make(map[int64]*models.TaskShare), tasks: tasks, users: users}
}

func (r *fakeShareRepo) Store(_ context.Context, share *models.TaskShare) error {
	r.writes++
	r.nextID++
	share.ID = r.nextID
	share.CreatedAt = time.Now()
	cp := *share
	r.shares[share.ID] = &cp
	return nil
}

func (r *fakeShareRepo) FindByID(_ context.Context, id int64) (*models.TaskShare, error) {
	s, ok := r.shares[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeShareRepo) FindByTaskAndRecipient(_ context.Context, taskID, recipientID int64) (*models.TaskShare, error) {
	for _, s := range r.shares {
		if s.TaskID == taskID && s.SharedWithUserID == recipientID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeShareRepo) FindTasksSharedWith(_ context.Context, recipientID int64) ([]repositories.SharedTask, error) {
	var out []repositories.SharedTask
	for _, s := range r.shares {
		if s.SharedWithUserID != recipientID {
			continue
		}
		t, ok := r.tasks.tasks[s.TaskID]
		if !ok {
			continue
		}
		row := repositories.SharedTask{Task: *t, Permission: s.Permission}
		if owner, ok := r.users.byID[t.OwnerID]; ok {
			row.OwnerEmail = owner.Email
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeShareRepo) ListByTask(_ context.Context, taskID int64) ([]models.ShareInfo, error) {
	var out []models.ShareInfo
	for _, s := range r.shares {
		if s.TaskID != taskID {
			continue
		}
		info := models.ShareInfo{TaskShare: *s}
		if u, ok := r.users.byID[s.SharedWithUserID]; ok {
			info.RecipientEmail = u.Email
			info.RecipientFullName = u.FullName
		}
		out = append(out, info)
	}
	return out, nil
}

func (r *fakeShareRepo) UpdatePermission(_ context.Context, id int64, permission models.SharePermission) error {
	r.writes++
	if s, ok := r.shares[id]; ok {
		s.Permission = permission
	}
	return nil
}

func (r *fakeShareRepo) Delete(_ context.Context, id int64) error {
	r.writes++
	delete(r.shares, id)
	return nil
}

type fakeUserRepo struct {
	byID   map[int64]*models.Profile
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byID: make(map[int64]*models.Profile)}
}

func (r *fakeUserRepo) add(email string) *models.Profile {
	r.nextID++
	u := &models.Profile{ID: r.nextID, Email: strings.ToLower(email), CreatedAt: time.Now()}
	r.byID[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.Profile) error {
	r.nextID++
	user.ID = r.nextID
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.Profile, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.Profile, error) {
	for _, u := range r.byID {
		if u.Email == strings.ToLower(email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *models.Profile) error {
	cp := *user
	r.byID[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	if u, ok := r.byID[userID]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (r *fakeUserRepo) UpdateRefresh(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	if u, ok := r.byID[userID]; ok {
		u.RefreshToken = &token
		u.RefreshExpiresAt = &expiresAt
	}
	return nil
}

func (r *fakeUserRepo) RotateRefresh(_ context.Context, oldToken, newToken string, newExpiresAt time.Time) (*models.Profile, error) {
	for _, u := range r.byID {
		if u.RefreshToken != nil && *u.RefreshToken == oldToken {
			u.RefreshToken = &newToken
			u.RefreshExpiresAt = &newExpiresAt
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ClearRefresh(_ context.Context, userID int64) error {
	if u, ok := r.byID[userID]; ok {
		u.RefreshToken = nil
		u.RefreshExpiresAt = nil
	}
	return nil
}

func (r *fakeUserRepo) UpdateTelegramLink(_ context.Context, userID int64, chatID int64, enable bool) error {
	if u, ok := r.byID[userID]; ok {
		u.TelegramChatID = chatID
		u.NotifyTelegram = enable
	}
	return nil
}

func (r *fakeUserRepo) GetTelegramSettings(_ context.Context, userID int64) (int64, bool, error) {
	u, ok := r.byID[userID]
	if !ok {
		return 0, false, nil
	}
	return u.TelegramChatID, u.NotifyTelegram, nil
}

type fakeNotificationRepo struct {
	items  map[int64]*models.Notification
	nextID int64
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{items: make(map[int64]*models.Notification)}
}

func (r *fakeNotificationRepo) Store(_ context.Context, n *models.Notification) error {
	r.nextID++
	n.ID = r.nextID
	n.CreatedAt = time.Now()
	cp := *n
	r.items[n.ID] = &cp
	return nil
}

func (r *fakeNotificationRepo) FindByID(_ context.Context, id int64) (*models.Notification, error) {
	n, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *n
	return &cp, nil
}

func (r *fakeNotificationRepo) FindByUser(_ context.Context, userID int64, limit int) ([]models.Notification, error) {
	var out []models.Notification
	for id := r.nextID; id >= 1 && len(out) < limit; id-- {
		if n, ok := r.items[id]; ok && n.UserID == userID {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, id int64) error {
	if n, ok := r.items[id]; ok {
		n.Read = true
	}
	return nil
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID int64) error {
	for _, n := range r.items {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) forUser(userID int64) []*models.Notification {
	var out []*models.Notification
	for _, n := range r.items {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

type fakeInvitationRepo struct {
	items  map[int64]*models.TaskInvitation
	nextID int64
}

func newFakeInvitationRepo() *fakeInvitationRepo {
	return &fakeInvitationRepo{items: make(map[int64]*models.TaskInvitation)}
}

func (r *fakeInvitationRepo) Store(_ context.Context, inv *models.TaskInvitation) error {
	r.nextID++
	inv.ID = r.nextID
	inv.CreatedAt = time.Now()
	inv.UpdatedAt = inv.CreatedAt
	cp := *inv
	r.items[inv.ID] = &cp
	return nil
}

func (r *fakeInvitationRepo) FindByID(_ context.Context, id int64) (*models.TaskInvitation, error) {
	inv, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	cp := *inv
	return &cp, nil
}

func (r *fakeInvitationRepo) FindPending(_ context.Context, taskID, inviteeID int64) (*models.TaskInvitation, error) {
	for _, inv := range r.items {
		if inv.TaskID == taskID && inv.InviteeID == inviteeID && inv.Status == models.InvitationPending {
			cp := *inv
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeInvitationRepo) UpdateStatus(_ context.Context, id int64, status models.InvitationStatus) error {
	if inv, ok := r.items[id]; ok {
		inv.Status = status
		inv.UpdatedAt = time.Now()
	}
	return nil
}

// fixture wires the fakes the way app.Run wires the real repos.
type fixture struct {
	tasks         *fakeTaskRepo
	shares        *fakeShareRepo
	users         *fakeUserRepo
	notifications *fakeNotificationRepo
	invitations   *fakeInvitationRepo

	taskSvc  TaskService
	shareSvc ShareService
	notifSvc NotificationService
}

func newFixture() *fixture {
	users := newFakeUserRepo()
	tasks := newFakeTaskRepo()
	shares := newFakeShareRepo(tasks, users)
	notifications := newFakeNotificationRepo()
	invitations := newFakeInvitationRepo()

	taskSvc := NewTaskService(tasks, shares)
	return &fixture{
		tasks:         tasks,
		shares:        shares,
		users:         users,
		notifications: notifications,
		invitations:   invitations,
		taskSvc:       taskSvc,
		shareSvc:      NewShareService(taskSvc, shares, users, notifications),
		notifSvc:      NewNotificationService(notifications, invitations, shares, users, taskSvc),
	}
}

func (f *fixture) addTask(ownerID int64, title string, status models.TaskStatus) *models.Task {
	t := &models.Task{OwnerID: ownerID, Title: title, Status: status, Priority: models.PriorityMedium}
	_ = f.tasks.Store(context.Background(), t)
	f.tasks.writes-- // seeding is not a write under test
	return t
}

func (f *fixture) addShare(taskID, byID, withID int64, perm models.SharePermission) *models.TaskShare {
	s := &models.TaskShare{TaskID: taskID, SharedByUserID: byID, SharedWithUserID: withID, Permission: perm}
	_ = f.shares.Store(context.Background(), s)
	f.shares.writes--
	return s
}

package service

import (
	"context"
	"mime/multipart"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/entity"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/enum"
	"github.com/melvingadgets/EasybuytrackerBackend/internal/domain/repository"
	"github.com/melvingadgets/EasybuytrackerBackend/pkg/pagination"
)

// In-memory fakes for the repository interfaces. Each test seeds only
// the fields it needs.

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[uuid.UUID]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (f *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.User, int64, error) {
	out := make([]entity.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (f *fakeUserRepo) ListWithItems(_ context.Context, _ *pagination.PaginationParams) ([]entity.User, int64, error) {
	return nil, 0, nil
}

func (f *fakeUserRepo) GetWithRoles(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) AssignRole(_ context.Context, userID uuid.UUID, roleID uint) error {
	if u, ok := f.users[userID]; ok {
		u.Roles = append(u.Roles, entity.Role{ID: roleID})
	}
	return nil
}

func (f *fakeUserRepo) RemoveRole(_ context.Context, _ uuid.UUID, _ uint) error { return nil }

type fakeRoleRepo struct {
	roles map[string]*entity.Role
}

func newFakeRoleRepo(names ...string) *fakeRoleRepo {
	repo := &fakeRoleRepo{roles: make(map[string]*entity.Role)}
	for i, name := range names {
		repo.roles[name] = &entity.Role{ID: uint(i + 1), Name: name}
	}
	return repo
}

func (f *fakeRoleRepo) Create(_ context.Context, role *entity.Role) error {
	f.roles[role.Name] = role
	return nil
}

func (f *fakeRoleRepo) GetByName(_ context.Context, name string) (*entity.Role, error) {
	return f.roles[name], nil
}

func (f *fakeRoleRepo) List(_ context.Context) ([]entity.Role, error) { return nil, nil }

func (f *fakeRoleRepo) GetWithPermissions(_ context.Context, _ uint) (*entity.Role, error) {
	return nil, nil
}

func (f *fakeRoleRepo) SyncPermissions(_ context.Context, _ uint, _ []uint) error { return nil }

type fakeItemRepo struct {
	items   map[uuid.UUID]*entity.FinancedItem
	shifted time.Duration
}

func newFakeItemRepo(items ...*entity.FinancedItem) *fakeItemRepo {
	repo := &fakeItemRepo{items: make(map[uuid.UUID]*entity.FinancedItem)}
	for _, item := range items {
		repo.items[item.ID] = item
	}
	return repo
}

func (f *fakeItemRepo) Create(_ context.Context, item *entity.FinancedItem) error {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now()
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.FinancedItem, error) {
	return f.items[id], nil
}

func (f *fakeItemRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.FinancedItem, error) {
	var out []*entity.FinancedItem
	for _, item := range f.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeItemRepo) List(_ context.Context, _ *pagination.PaginationParams, _ string) ([]entity.FinancedItem, int64, error) {
	return nil, 0, nil
}

func (f *fakeItemRepo) Update(_ context.Context, item *entity.FinancedItem) error {
	f.items[item.ID] = item
	return nil
}

func (f *fakeItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepo) CountOpenByUser(_ context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	for _, item := range f.items {
		if item.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeItemRepo) ShiftBillingAnchors(_ context.Context, _ uuid.UUID, itemIDs []uuid.UUID, shift time.Duration) error {
	f.shifted = shift
	for _, id := range itemIDs {
		if item, ok := f.items[id]; ok {
			anchor := item.AnchorDate().Add(shift)
			item.BillingAnchorDate = &anchor
		}
	}
	return nil
}

func (f *fakeItemRepo) OverrideCreatedAt(_ context.Context, id uuid.UUID, createdAt time.Time) error {
	if item, ok := f.items[id]; ok {
		item.CreatedAt = createdAt
		item.BillingAnchorDate = &createdAt
	}
	return nil
}

type fakeReceiptRepo struct {
	receipts map[uuid.UUID]*entity.Receipt
}

func newFakeReceiptRepo(receipts ...*entity.Receipt) *fakeReceiptRepo {
	repo := &fakeReceiptRepo{receipts: make(map[uuid.UUID]*entity.Receipt)}
	for _, r := range receipts {
		repo.receipts[r.ID] = r
	}
	return repo
}

func (f *fakeReceiptRepo) Create(_ context.Context, receipt *entity.Receipt) error {
	if receipt.ID == uuid.Nil {
		receipt.ID = uuid.New()
	}
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now()
	}
	f.receipts[receipt.ID] = receipt
	return nil
}

func (f *fakeReceiptRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Receipt, error) {
	return f.receipts[id], nil
}

func (f *fakeReceiptRepo) ListByUser(_ context.Context, userID uuid.UUID, status *enum.ReceiptStatus) ([]*entity.Receipt, error) {
	var out []*entity.Receipt
	for _, r := range f.receipts {
		if r.UserID != userID {
			continue
		}
		if status != nil && r.Status != *status {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReceiptRepo) ListPendingWithCursor(_ context.Context, _ *pagination.CursorParams) ([]entity.Receipt, error) {
	var out []entity.Receipt
	for _, r := range f.receipts {
		if r.Status == enum.ReceiptStatusPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeReceiptRepo) Update(_ context.Context, receipt *entity.Receipt) error {
	f.receipts[receipt.ID] = receipt
	return nil
}

func (f *fakeReceiptRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.receipts, id)
	return nil
}

func (f *fakeReceiptRepo) OverrideCreatedAt(_ context.Context, id uuid.UUID, createdAt time.Time) error {
	if r, ok := f.receipts[id]; ok {
		r.CreatedAt = createdAt
	}
	return nil
}

type fakePlanRepo struct {
	plans map[uuid.UUID]*entity.InstallmentPlan
}

func newFakePlanRepo(plans ...*entity.InstallmentPlan) *fakePlanRepo {
	repo := &fakePlanRepo{plans: make(map[uuid.UUID]*entity.InstallmentPlan)}
	for _, p := range plans {
		repo.plans[p.ID] = p
	}
	return repo
}

func (f *fakePlanRepo) Create(_ context.Context, plan *entity.InstallmentPlan) error {
	if plan.ID == uuid.Nil {
		plan.ID = uuid.New()
	}
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.InstallmentPlan, error) {
	return f.plans[id], nil
}

func (f *fakePlanRepo) GetActiveByUser(_ context.Context, userID uuid.UUID) (*entity.InstallmentPlan, error) {
	for _, p := range f.plans {
		if p.UserID == userID && p.EndDate == nil {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePlanRepo) Update(_ context.Context, plan *entity.InstallmentPlan) error {
	f.plans[plan.ID] = plan
	return nil
}

func (f *fakePlanRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(f.plans, id)
	return nil
}

type fakePaymentRepo struct {
	payments []*entity.PlanPayment
}

func (f *fakePaymentRepo) Create(_ context.Context, payment *entity.PlanPayment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakePaymentRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]*entity.PlanPayment, error) {
	var out []*entity.PlanPayment
	for _, p := range f.payments {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentRepo) ListByPlan(_ context.Context, planID uuid.UUID) ([]*entity.PlanPayment, error) {
	var out []*entity.PlanPayment
	for _, p := range f.payments {
		if p.PlanID == planID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	logs []*entity.AuditLog
}

func (f *fakeAuditRepo) Create(_ context.Context, log *entity.AuditLog) error {
	f.logs = append(f.logs, log)
	return nil
}

func (f *fakeAuditRepo) List(_ context.Context, _ *pagination.PaginationParams, action string) ([]entity.AuditLog, int64, error) {
	var out []entity.AuditLog
	for _, l := range f.logs {
		if action == "" || l.Action == action {
			out = append(out, *l)
		}
	}
	return out, int64(len(out)), nil
}

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*entity.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	f.sessions[session.JTI] = session
	return nil
}

func (f *fakeSessionRepo) GetByJTI(_ context.Context, jti string) (*entity.Session, error) {
	return f.sessions[jti], nil
}

func (f *fakeSessionRepo) Deactivate(_ context.Context, jti string) error {
	if s, ok := f.sessions[jti]; ok {
		s.Active = false
		now := time.Now()
		s.LogoutAt = &now
	}
	return nil
}

func (f *fakeSessionRepo) Touch(_ context.Context, _ string) error { return nil }

func (f *fakeSessionRepo) LoginStats(_ context.Context) ([]repository.RoleLoginStat, error) {
	return nil, nil
}

func (f *fakeSessionRepo) DeleteExpired(_ context.Context) error             { return nil }

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*entity.Profile)}
}

func (f *fakeProfileRepo) Upsert(_ context.Context, profile *entity.Profile) error {
	if existing, ok := f.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
	} else if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	f.profiles[profile.UserID] = profile
	return nil
}

func (f *fakeProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (*entity.Profile, error) {
	return f.profiles[userID], nil
}

type fakeFileStore struct {
	saved   []string
	deleted []string
}

func (f *fakeFileStore) Save(file *multipart.FileHeader, subdir string) (string, string, error) {
	key := subdir + "/" + file.Filename
	f.saved = append(f.saved, key)
	return key, "/uploads/" + key, nil
}

func (f *fakeFileStore) Delete(key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

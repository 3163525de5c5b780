package app

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"internhub/internal/common"
	"internhub/internal/domain/admin"
	"internhub/internal/domain/application"
	"internhub/internal/domain/auth"
	"internhub/internal/domain/internship"
	"internhub/internal/domain/upload"
	"internhub/internal/domain/user"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeUserRepo struct {
	mu       sync.Mutex
	byEmail  map[string]*user.User
	byID     map[common.UUID]*user.User
	resumes  map[common.UUID]user.Attachment
	pictures map[common.UUID]user.Attachment
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail:  make(map[string]*user.User),
		byID:     make(map[common.UUID]*user.User),
		resumes:  make(map[common.UUID]user.Attachment),
		pictures: make(map[common.UUID]user.Attachment),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, account user.User) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[account.Email]; ok {
		return nil, common.NewError(common.CodeConflict, "email already registered", nil)
	}
	account.ID = common.NewUUID()
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now
	stored := account
	r.byEmail[account.Email] = &stored
	r.byID[account.ID] = &stored
	return cloneUser(&stored), nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id common.UUID) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return cloneUser(account), nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byEmail[email]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	return cloneUser(account), nil
}

func (r *fakeUserRepo) UpdateProfile(ctx context.Context, id common.UUID, update user.ProfileUpdate) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "user not found", nil)
	}
	account.Name = update.Name
	account.Phone = update.Phone
	account.Education = update.Education
	account.Skills = update.Skills
	account.Keywords = update.Keywords
	account.UpdatedAt = time.Now().UTC()
	return cloneUser(account), nil
}

func (r *fakeUserRepo) UpdatePasswordHash(ctx context.Context, id common.UUID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	account.PasswordHash = hash
	return nil
}

func (r *fakeUserRepo) StoreResume(ctx context.Context, id common.UUID, attachment user.Attachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	r.resumes[id] = attachment
	account.Resume = user.Attachment{Filename: attachment.Filename, ContentType: attachment.ContentType}
	return nil
}

func (r *fakeUserRepo) StorePicture(ctx context.Context, id common.UUID, attachment user.Attachment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	r.pictures[id] = attachment
	account.ProfilePicture = user.Attachment{Filename: attachment.Filename, ContentType: attachment.ContentType}
	return nil
}

func (r *fakeUserRepo) GetResume(ctx context.Context, id common.UUID) (*user.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	attachment, ok := r.resumes[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "resume not found", nil)
	}
	return &attachment, nil
}

func (r *fakeUserRepo) GetPicture(ctx context.Context, id common.UUID) (*user.Attachment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	attachment, ok := r.pictures[id]
	if !ok {
		return nil, common.NewError(common.CodeNotFound, "profile picture not found", nil)
	}
	return &attachment, nil
}

func (r *fakeUserRepo) IncrementApplicationCount(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	account.ApplicationCount++
	return nil
}

func (r *fakeUserRepo) List(ctx context.Context, from, to *time.Time) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []user.User
	for _, account := range r.byID {
		if from != nil && account.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && account.CreatedAt.After(*to) {
			continue
		}
		out = append(out, *cloneUser(account))
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byID[id]
	if account == nil {
		return common.NewError(common.CodeNotFound, "user not found", nil)
	}
	delete(r.byEmail, account.Email)
	delete(r.byID, id)
	delete(r.resumes, id)
	delete(r.pictures, id)
	return nil
}

func cloneUser(account *user.User) *user.User {
	copied := *account
	copied.Education = append([]user.Education(nil), account.Education...)
	copied.Skills = append([]string(nil), account.Skills...)
	copied.Keywords = append([]string(nil), account.Keywords...)
	return &copied
}

type fakeAdminRepo struct {
	mu         sync.Mutex
	byUsername map[string]*admin.Admin
}

func newFakeAdminRepo() *fakeAdminRepo {
	return &fakeAdminRepo{byUsername: make(map[string]*admin.Admin)}
}

func (r *fakeAdminRepo) Create(ctx context.Context, account admin.Admin) (*admin.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUsername[account.Username]; ok {
		return nil, common.NewError(common.CodeConflict, "username already taken", nil)
	}
	account.ID = common.NewUUID()
	account.CreatedAt = time.Now().UTC()
	stored := account
	r.byUsername[account.Username] = &stored
	return &account, nil
}

func (r *fakeAdminRepo) GetByUsername(ctx context.Context, username string) (*admin.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := r.byUsername[username]
	if account == nil {
		return nil, common.NewError(common.CodeNotFound, "admin not found", nil)
	}
	copied := *account
	return &copied, nil
}

func (r *fakeAdminRepo) GetByID(ctx context.Context, id common.UUID) (*admin.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, account := range r.byUsername {
		if account.ID == id {
			copied := *account
			return &copied, nil
		}
	}
	return nil, common.NewError(common.CodeNotFound, "admin not found", nil)
}

type fakeOTPEntry struct {
	code      string
	expiresAt time.Time
}

type fakeOTPRepo struct {
	mu      sync.Mutex
	entries map[string]fakeOTPEntry
}

func newFakeOTPRepo() *fakeOTPRepo {
	return &fakeOTPRepo{entries: make(map[string]fakeOTPEntry)}
}

func otpKey(purpose auth.Purpose, email string) string {
	return string(purpose) + ":" + email
}

func (r *fakeOTPRepo) UpsertCode(ctx context.Context, purpose auth.Purpose, email, code string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[otpKey(purpose, email)] = fakeOTPEntry{code: code, expiresAt: time.Now().UTC().Add(ttl)}
	return nil
}

func (r *fakeOTPRepo) VerifyCode(ctx context.Context, purpose auth.Purpose, email, code string, now time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.entries[otpKey(purpose, email)]
	if !ok {
		return false, nil
	}
	if now.After(entry.expiresAt) {
		return false, nil
	}
	return entry.code == code, nil
}

func (r *fakeOTPRepo) InvalidateCode(ctx context.Context, purpose auth.Purpose, email string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, otpKey(purpose, email))
	return nil
}

type sentMail struct {
	to    string
	code  string
	reset bool
}

type fakeMailer struct {
	mu      sync.Mutex
	sent    []sentMail
	sendErr error
}

func (m *fakeMailer) SendOTP(ctx context.Context, to, code string, validFor time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{to: to, code: code})
	return nil
}

func (m *fakeMailer) SendPasswordResetOTP(ctx context.Context, to, code string, validFor time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, sentMail{to: to, code: code, reset: true})
	return nil
}

type fakeInternshipRepo struct {
	mu    sync.Mutex
	items map[common.UUID]*internship.Internship
	order []common.UUID

	lastFilter internship.Filter
}

func newFakeInternshipRepo() *fakeInternshipRepo {
	return &fakeInternshipRepo{items: make(map[common.UUID]*internship.Internship)}
}

func (r *fakeInternshipRepo) Create(ctx context.Context, item internship.Internship) (*internship.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item.ID = common.NewUUID()
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	stored := item
	r.items[item.ID] = &stored
	r.order = append(r.order, item.ID)
	return &item, nil
}

func (r *fakeInternshipRepo) CreateBatch(ctx context.Context, items []internship.Internship) ([]internship.Internship, error) {
	out := make([]internship.Internship, 0, len(items))
	for _, item := range items {
		created, err := r.Create(ctx, item)
		if err != nil {
			return nil, err
		}
		out = append(out, *created)
	}
	return out, nil
}

func (r *fakeInternshipRepo) Update(ctx context.Context, item internship.Internship) (*internship.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := r.items[item.ID]
	if stored == nil {
		return nil, common.NewError(common.CodeNotFound, "internship not found", nil)
	}
	item.CreatedAt = stored.CreatedAt
	item.UpdatedAt = time.Now().UTC()
	*stored = item
	copied := item
	return &copied, nil
}

func (r *fakeInternshipRepo) GetByID(ctx context.Context, id common.UUID) (*internship.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.items[id]
	if item == nil {
		return nil, common.NewError(common.CodeNotFound, "internship not found", nil)
	}
	copied := *item
	return &copied, nil
}

func (r *fakeInternshipRepo) SetActive(ctx context.Context, id common.UUID, active bool) (*internship.Internship, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item := r.items[id]
	if item == nil {
		return nil, common.NewError(common.CodeNotFound, "internship not found", nil)
	}
	item.IsActive = active
	item.UpdatedAt = time.Now().UTC()
	copied := *item
	return &copied, nil
}

func (r *fakeInternshipRepo) List(ctx context.Context, filter internship.Filter) ([]internship.Internship, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastFilter = filter
	var matched []internship.Internship
	for _, id := range r.order {
		item := r.items[id]
		if filter.OnlyActive && !item.IsActive {
			continue
		}
		if filter.MinSalary != nil && item.Salary < *filter.MinSalary {
			continue
		}
		if filter.MaxSalary != nil && item.Salary > *filter.MaxSalary {
			continue
		}
		matched = append(matched, *item)
	}
	total := len(matched)
	if filter.Offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[filter.Offset:]
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *fakeInternshipRepo) Delete(ctx context.Context, id common.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items[id] == nil {
		return common.NewError(common.CodeNotFound, "internship not found", nil)
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

type fakeApplicationRepo struct {
	mu    sync.Mutex
	byID  map[common.UUID]*application.Application
	pairs map[string]bool
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{
		byID:  make(map[common.UUID]*application.Application),
		pairs: make(map[string]bool),
	}
}

func pairKey(internshipID, userID common.UUID) string {
	return string(internshipID) + ":" + string(userID)
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app application.Application) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := pairKey(app.InternshipID, app.UserID)
	if r.pairs[key] {
		return nil, common.NewError(common.CodeConflict, "already applied to this internship", nil)
	}
	app.ID = common.NewUUID()
	now := time.Now().UTC()
	app.AppliedAt = now
	app.UpdatedAt = now
	stored := app
	r.byID[app.ID] = &stored
	r.pairs[key] = true
	return &app, nil
}

func (r *fakeApplicationRepo) GetByID(ctx context.Context, id common.UUID) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.byID[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) ListByUser(ctx context.Context, userID common.UUID) ([]application.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []application.Summary
	for _, app := range r.byID {
		if app.UserID == userID {
			out = append(out, application.Summary{Application: *app})
		}
	}
	return out, nil
}

func (r *fakeApplicationRepo) ListAll(ctx context.Context) ([]application.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []application.Summary
	for _, app := range r.byID {
		out = append(out, application.Summary{Application: *app})
	}
	return out, nil
}

func (r *fakeApplicationRepo) UpdateStatus(ctx context.Context, id common.UUID, status application.Status) (*application.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	app := r.byID[id]
	if app == nil {
		return nil, common.NewError(common.CodeNotFound, "application not found", nil)
	}
	app.Status = status
	app.UpdatedAt = time.Now().UTC()
	copied := *app
	return &copied, nil
}

type fakeUploadRepo struct {
	mu    sync.Mutex
	files []upload.ExcelFile

	createErr error
}

func (r *fakeUploadRepo) Create(ctx context.Context, file upload.ExcelFile) (*upload.ExcelFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return nil, r.createErr
	}
	file.ID = common.NewUUID()
	file.UploadedAt = time.Now().UTC()
	r.files = append(r.files, file)
	return &file, nil
}

func (r *fakeUploadRepo) ListByAdmin(ctx context.Context, adminID common.UUID) ([]upload.ExcelFile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []upload.ExcelFile
	for _, file := range r.files {
		if file.UploadedBy == adminID {
			out = append(out, file)
		}
	}
	return out, nil
}

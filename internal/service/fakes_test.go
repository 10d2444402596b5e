package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"errortrack-be/internal/entity"
	"errortrack-be/internal/notifier"
	"errortrack-be/internal/repository/contract"
	"errortrack-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repository fakes shared by the service tests. They implement the
// contract interfaces over plain maps and slices, no database involved.

type fakeApplicationRepo struct {
	mu   sync.Mutex
	apps map[uuid.UUID]*entity.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{apps: make(map[uuid.UUID]*entity.Application)}
}

func (r *fakeApplicationRepo) Create(ctx context.Context, app *entity.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *app
	r.apps[app.Id] = &cp
	return nil
}

func (r *fakeApplicationRepo) Update(ctx context.Context, app *entity.Application) error {
	return r.Create(ctx, app)
}

func (r *fakeApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.apps, id)
	return nil
}

func (r *fakeApplicationRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if app, ok := r.apps[id]; ok {
		cp := *app
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeApplicationRepo) FindByApiKey(ctx context.Context, apiKey string) (*entity.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.ApiKey == apiKey {
			cp := *app
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeApplicationRepo) FindByName(ctx context.Context, name string) (*entity.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, app := range r.apps {
		if app.Name == name {
			cp := *app
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeApplicationRepo) FindAll(ctx context.Context) ([]*entity.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.Application, 0, len(r.apps))
	for _, app := range r.apps {
		cp := *app
		out = append(out, &cp)
	}
	return out, nil
}

type fakeErrorLogRepo struct {
	mu   sync.Mutex
	logs []*entity.ErrorLog
}

func newFakeErrorLogRepo() *fakeErrorLogRepo {
	return &fakeErrorLogRepo{}
}

func (r *fakeErrorLogRepo) Create(ctx context.Context, errorLog *entity.ErrorLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *errorLog
	r.logs = append(r.logs, &cp)
	return nil
}

func (r *fakeErrorLogRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.ErrorLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.logs {
		if l.Id == id {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeErrorLogRepo) List(ctx context.Context, applicationId *uuid.UUID, status *entity.ErrorStatus, limit, offset int) ([]*entity.ErrorLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.ErrorLog
	for _, l := range r.logs {
		if applicationId != nil && l.ApplicationId != *applicationId {
			continue
		}
		if status != nil && l.Status != *status {
			continue
		}
		cp := *l
		matched = append(matched, &cp)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeErrorLogRepo) CountByApplication(ctx context.Context, applicationId uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, l := range r.logs {
		if l.ApplicationId == applicationId {
			count++
		}
	}
	return count, nil
}

func (r *fakeErrorLogRepo) FindResolvedOldestFirst(ctx context.Context, applicationId uuid.UUID) ([]*entity.ErrorLog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var resolved []*entity.ErrorLog
	for _, l := range r.logs {
		if l.ApplicationId == applicationId && l.Status == entity.ErrorStatusResolved {
			cp := *l
			resolved = append(resolved, &cp)
		}
	}
	sort.SliceStable(resolved, func(i, j int) bool {
		return resolved[i].ResolvedAt.Before(*resolved[j].ResolvedAt)
	})
	return resolved, nil
}

func (r *fakeErrorLogRepo) Resolve(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, l := range r.logs {
		if l.Id == id && l.Status == entity.ErrorStatusOpen {
			l.Status = entity.ErrorStatusResolved
			resolvedAt := at
			l.ResolvedAt = &resolvedAt
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeErrorLogRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, l := range r.logs {
		if l.Id == id {
			r.logs = append(r.logs[:i], r.logs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeErrorLogRepo) DeleteMany(ctx context.Context, ids []uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	drop := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := r.logs[:0]
	for _, l := range r.logs {
		if !drop[l.Id] {
			kept = append(kept, l)
		}
	}
	r.logs = kept
	return nil
}

func (r *fakeErrorLogRepo) DeleteByApplication(ctx context.Context, applicationId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.logs[:0]
	for _, l := range r.logs {
		if l.ApplicationId != applicationId {
			kept = append(kept, l)
		}
	}
	r.logs = kept
	return nil
}

type fakeAlertRepo struct {
	mu     sync.Mutex
	alerts []*entity.Alert
}

func newFakeAlertRepo() *fakeAlertRepo {
	return &fakeAlertRepo{}
}

func (r *fakeAlertRepo) Create(ctx context.Context, alert *entity.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *alert
	r.alerts = append(r.alerts, &cp)
	return nil
}

func (r *fakeAlertRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.Alert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.alerts {
		if a.Id == id {
			cp := *a
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeAlertRepo) List(ctx context.Context, applicationId *uuid.UUID, limit, offset int) ([]*entity.Alert, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*entity.Alert
	for _, a := range r.alerts {
		if applicationId != nil && a.ApplicationId != *applicationId {
			continue
		}
		cp := *a
		matched = append(matched, &cp)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *fakeAlertRepo) Resolve(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.alerts {
		if a.Id == id && !a.IsResolved {
			a.IsResolved = true
			a.IsActive = false
			resolvedAt := at
			a.ResolvedAt = &resolvedAt
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeAlertRepo) DeleteByErrorLogId(ctx context.Context, errorLogId string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.alerts[:0]
	for _, a := range r.alerts {
		if a.ErrorLogId != errorLogId {
			kept = append(kept, a)
		}
	}
	r.alerts = kept
	return nil
}

func (r *fakeAlertRepo) DeleteByApplication(ctx context.Context, applicationId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	kept := r.alerts[:0]
	for _, a := range r.alerts {
		if a.ApplicationId != applicationId {
			kept = append(kept, a)
		}
	}
	r.alerts = kept
	return nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*entity.User
	otps    map[uuid.UUID]*entity.UserOTP
	setting *entity.AuthSetting
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users: make(map[uuid.UUID]*entity.User),
		otps:  make(map[uuid.UUID]*entity.UserOTP),
	}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *user
	r.users[user.Id] = &cp
	return nil
}

func (r *fakeUserRepo) FindById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) UpsertOTP(ctx context.Context, otp *entity.UserOTP) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *otp
	r.otps[otp.UserId] = &cp
	return nil
}

func (r *fakeUserRepo) GetOTP(ctx context.Context, userId uuid.UUID) (*entity.UserOTP, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if o, ok := r.otps[userId]; ok {
		cp := *o
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) DeleteOTP(ctx context.Context, userId uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.otps, userId)
	return nil
}

func (r *fakeUserRepo) GetAuthSetting(ctx context.Context) (*entity.AuthSetting, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.setting == nil {
		return nil, nil
	}
	cp := *r.setting
	return &cp, nil
}

func (r *fakeUserRepo) SaveAuthSetting(ctx context.Context, setting *entity.AuthSetting) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *setting
	cp.Id = 1
	r.setting = &cp
	return nil
}

// fakeUnitOfWork hands out the shared fake repos; Begin/Commit/Rollback only
// count calls, there is no transactionality to emulate in memory.
type fakeUnitOfWork struct {
	appRepo   *fakeApplicationRepo
	errRepo   *fakeErrorLogRepo
	alertRepo *fakeAlertRepo
	userRepo  *fakeUserRepo

	begins    int
	commits   int
	rollbacks int
}

func (u *fakeUnitOfWork) Begin(ctx context.Context) error { u.begins++; return nil }
func (u *fakeUnitOfWork) Commit() error                   { u.commits++; return nil }
func (u *fakeUnitOfWork) Rollback() error                 { u.rollbacks++; return nil }

func (u *fakeUnitOfWork) ApplicationRepository() contract.ApplicationRepository { return u.appRepo }
func (u *fakeUnitOfWork) ErrorLogRepository() contract.ErrorLogRepository       { return u.errRepo }
func (u *fakeUnitOfWork) AlertRepository() contract.AlertRepository             { return u.alertRepo }
func (u *fakeUnitOfWork) UserRepository() contract.UserRepository               { return u.userRepo }

type fakeFactory struct {
	uow *fakeUnitOfWork
}

func newFakeFactory() *fakeFactory {
	return &fakeFactory{
		uow: &fakeUnitOfWork{
			appRepo:   newFakeApplicationRepo(),
			errRepo:   newFakeErrorLogRepo(),
			alertRepo: newFakeAlertRepo(),
			userRepo:  newFakeUserRepo(),
		},
	}
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// fakeDispatcher records enqueued alert messages.
type fakeDispatcher struct {
	mu       sync.Mutex
	messages []*notifier.AlertMessage
}

func (d *fakeDispatcher) Enqueue(ctx context.Context, msg *notifier.AlertMessage) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.messages = append(d.messages, msg)
	return nil
}

func (d *fakeDispatcher) Start(ctx context.Context) error { return nil }
func (d *fakeDispatcher) Close() error                    { return nil }

func (d *fakeDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.messages)
}

// nopLogger satisfies logger.ILogger without output.
type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }

// fakeEmailService records sent mail.
type fakeEmailService struct {
	mu     sync.Mutex
	otps   []string
	alerts []string
}

func (s *fakeEmailService) SendOTP(toEmail, otp string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.otps = append(s.otps, otp)
	return nil
}

func (s *fakeEmailService) SendAlert(toEmail, appName, alertLevel, message, endpoint string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alerts = append(s.alerts, message)
	return nil
}

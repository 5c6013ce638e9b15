package services

import (
	"context"
	stdErrors "errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/safatanc/jewelry-backoffice/internal/app/errors"
	"github.com/safatanc/jewelry-backoffice/internal/app/models"
	"github.com/sirupsen/logrus"
)

// CouponStore is the REST resource holding coupon records.
type CouponStore interface {
	ListCoupons(ctx context.Context) ([]models.Coupon, error)
	CreateCoupon(ctx context.Context, draft *models.CouponDraft) (*models.Coupon, error)
	UpdateCoupon(ctx context.Context, id int64, draft *models.CouponDraft) (*models.Coupon, error)
	SetCouponActive(ctx context.Context, id int64, active bool) (*models.Coupon, error)
	DeleteCoupon(ctx context.Context, id int64) error
}

const (
	msgFetchFailed  = "Failed to fetch coupons"
	msgCreateFailed = "Failed to create coupon"
	msgUpdateFailed = "Failed to update coupon"
	msgToggleFailed = "Failed to update coupon status"
	msgDeleteFailed = "Failed to delete coupon"
)

// CouponPageService drives the coupon admin page. It owns the in-memory list:
// the list only changes by re-fetching after a successful mutation, and a
// fetch response older than the one already applied is discarded.
type CouponPageService struct {
	store     CouponStore
	forms     *CouponFormService
	presenter *CouponPresenter
	cache     CouponCache
	audit     AuditLogger
	now       func() time.Time

	fetchSeq atomic.Uint64
	// cacheMu orders list replacements in the cache
	cacheMu sync.Mutex

	mu           sync.Mutex
	coupons      []models.Coupon
	loaded       bool
	appliedSeq   uint64
	presentation *CouponPresentation
	notification *models.Notification
}

func NewCouponPageService(store CouponStore, forms *CouponFormService, presenter *CouponPresenter, cache CouponCache, audit AuditLogger) *CouponPageService {
	return &CouponPageService{
		store:     store,
		forms:     forms,
		presenter: presenter,
		cache:     cache,
		audit:     audit,
		now:       time.Now,
	}
}

// SetClock replaces the time source used for derived fields
func (s *CouponPageService) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	s.presentation = nil
}

// Refresh fetches the full list from the store. On failure the list is
// emptied and an error notification is raised.
func (s *CouponPageService) Refresh(ctx context.Context) error {
	seq := s.fetchSeq.Add(1)
	coupons, err := s.store.ListCoupons(ctx)

	s.mu.Lock()
	if seq < s.appliedSeq {
		s.mu.Unlock()
		logrus.WithFields(logrus.Fields{
			"seq":         seq,
			"applied_seq": s.appliedSeq,
		}).Debug("discarding stale coupon list response")
		return nil
	}
	s.appliedSeq = seq
	s.loaded = true
	s.presentation = nil

	if err != nil {
		s.coupons = nil
		s.queueNotificationLocked(models.NotificationLevelError, notificationMessage(err, msgFetchFailed))
		s.mu.Unlock()
		logrus.WithError(err).Error("failed to fetch coupons")
		return err
	}

	s.coupons = coupons
	s.mu.Unlock()

	s.replaceCache(ctx, seq, coupons)
	return nil
}

// replaceCache writes coupons to the cache unless a newer fetch has been
// applied in the meantime.
func (s *CouponPageService) replaceCache(ctx context.Context, seq uint64, coupons []models.Coupon) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.mu.Lock()
	current := seq == s.appliedSeq
	s.mu.Unlock()
	if !current {
		logrus.WithField("seq", seq).Debug("skipping cache write for superseded coupon list")
		return
	}

	if err := s.cache.ReplaceAll(ctx, coupons); err != nil {
		logrus.WithError(err).Warn("failed to refresh coupon cache")
	}
}

// View returns the summary tiles and the rows matching search. Any pending
// notification is handed out once.
func (s *CouponPageService) View(ctx context.Context, search string) (*models.CouponListView, error) {
	s.mu.Lock()
	loaded := s.loaded
	s.mu.Unlock()

	if !loaded {
		// The failure is reported through the view's notification
		_ = s.Refresh(ctx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.presentation == nil || !s.presentation.StillValid(now) {
		s.presentation = s.presenter.Present(s.coupons, now)
	}

	view := &models.CouponListView{
		Summary:      s.presentation.Summary,
		Rows:         s.presenter.Filter(s.presentation.Rows, search),
		Search:       search,
		Notification: s.notification,
	}
	s.notification = nil

	return view, nil
}

// Coupons returns a copy of the current list
func (s *CouponPageService) Coupons() []models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	coupons := make([]models.Coupon, len(s.coupons))
	copy(coupons, s.coupons)
	return coupons
}

// Validate runs the form checks without touching the store
func (s *CouponPageService) Validate(form models.CouponForm) (*models.CouponValidationResult, error) {
	return s.forms.Check(form)
}

// EditForm returns the dialog pre-filled with an existing coupon
func (s *CouponPageService) EditForm(ctx context.Context, id int64) (*models.CouponFormState, error) {
	coupon, err := s.lookup(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.CouponFormState{
		Mode:     models.CouponFormModeEdit,
		CouponID: &coupon.ID,
		Values:   models.CouponFormFromCoupon(coupon),
		Open:     true,
	}, nil
}

// Create validates form and submits it. The returned state keeps the entered
// values and stays open on any failure.
func (s *CouponPageService) Create(ctx context.Context, form models.CouponForm) (*models.CouponFormState, error) {
	state := &models.CouponFormState{
		Mode:   models.CouponFormModeCreate,
		Values: form,
		Open:   true,
	}

	draft, err := s.forms.Validate(form)
	if err != nil {
		return s.formFailed(state, err), err
	}

	created, err := s.store.CreateCoupon(ctx, draft)
	if err != nil {
		state.Notification = s.mutationFailed(err, msgCreateFailed, logrus.Fields{"code": draft.Code})
		return state, err
	}

	s.afterMutation(ctx, created, models.AuditActionCreate, nil)
	state.Open = false
	state.Coupon = created
	state.Notification = s.notify(models.NotificationLevelSuccess, "Coupon created successfully")

	_ = s.Refresh(ctx)
	return state, nil
}

// Update validates form and patches the coupon with it
func (s *CouponPageService) Update(ctx context.Context, id int64, form models.CouponForm) (*models.CouponFormState, error) {
	state := &models.CouponFormState{
		Mode:     models.CouponFormModeEdit,
		CouponID: &id,
		Values:   form,
		Open:     true,
	}

	draft, err := s.forms.Validate(form)
	if err != nil {
		return s.formFailed(state, err), err
	}

	previous := s.find(id)
	updated, err := s.store.UpdateCoupon(ctx, id, draft)
	if err != nil {
		state.Notification = s.mutationFailed(err, msgUpdateFailed, logrus.Fields{"coupon_id": id})
		return state, err
	}

	s.afterMutation(ctx, updated, models.AuditActionUpdate, previous)
	state.Open = false
	state.Coupon = updated
	state.Notification = s.notify(models.NotificationLevelSuccess, "Coupon updated successfully")

	_ = s.Refresh(ctx)
	return state, nil
}

// SetActive switches the is_active flag without going through the form
func (s *CouponPageService) SetActive(ctx context.Context, id int64, active bool) (*models.Coupon, *models.Notification, error) {
	previous := s.find(id)
	updated, err := s.store.SetCouponActive(ctx, id, active)
	if err != nil {
		return nil, s.mutationFailed(err, msgToggleFailed, logrus.Fields{"coupon_id": id}), err
	}

	s.afterMutation(ctx, updated, models.AuditActionStatusChange, previous)
	message := "Coupon deactivated"
	if active {
		message = "Coupon activated"
	}
	notification := s.notify(models.NotificationLevelSuccess, message)

	_ = s.Refresh(ctx)
	return updated, notification, nil
}

// Delete removes the coupon once the admin confirmed. Without confirmation
// no request is issued and deleted is false.
func (s *CouponPageService) Delete(ctx context.Context, id int64, confirmed bool) (deleted bool, notification *models.Notification, err error) {
	if !confirmed {
		return false, nil, nil
	}

	previous := s.find(id)
	if err := s.store.DeleteCoupon(ctx, id); err != nil {
		return false, s.mutationFailed(err, msgDeleteFailed, logrus.Fields{"coupon_id": id}), err
	}

	if err := s.cache.Evict(ctx, id); err != nil {
		logrus.WithError(err).WithField("coupon_id", id).Warn("failed to evict coupon from cache")
	}
	s.recordAudit(ctx, id, models.AuditActionDelete, previous, nil)
	notification = s.notify(models.NotificationLevelSuccess, "Coupon deleted successfully")

	_ = s.Refresh(ctx)
	return true, notification, nil
}

// History returns the audit trail of one coupon
func (s *CouponPageService) History(ctx context.Context, id int64, pagination *models.PaginationRequest) (*models.Pagination[[]models.AuditLog], error) {
	return s.audit.GetAuditLogs(ctx, models.AuditTableCoupons, strconv.FormatInt(id, 10), pagination)
}

func (s *CouponPageService) lookup(ctx context.Context, id int64) (*models.Coupon, error) {
	coupon, err := s.cache.Get(ctx, id)
	if err != nil {
		logrus.WithError(err).WithField("coupon_id", id).Warn("coupon cache lookup failed")
	}
	if coupon != nil {
		return coupon, nil
	}

	if coupon := s.find(id); coupon != nil {
		return coupon, nil
	}
	return nil, errors.NewNotFoundError("Coupon not found")
}

func (s *CouponPageService) find(id int64) *models.Coupon {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.coupons {
		if s.coupons[i].ID == id {
			coupon := s.coupons[i]
			return &coupon
		}
	}
	return nil
}

func (s *CouponPageService) afterMutation(ctx context.Context, coupon *models.Coupon, action models.AuditAction, previous *models.Coupon) {
	if err := s.cache.Put(ctx, coupon); err != nil {
		logrus.WithError(err).WithField("coupon_id", coupon.ID).Warn("failed to write coupon to cache")
	}
	s.recordAudit(ctx, coupon.ID, action, previous, coupon)
}

func (s *CouponPageService) recordAudit(ctx context.Context, id int64, action models.AuditAction, previous, current *models.Coupon) {
	var oldData, newData interface{}
	if previous != nil {
		oldData = previous
	}
	if current != nil {
		newData = current
	}
	if err := s.audit.LogAudit(ctx, models.AuditTableCoupons, strconv.FormatInt(id, 10), action, oldData, newData); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"coupon_id": id,
			"action":    action,
		}).Warn("failed to record coupon audit log")
	}
}

func (s *CouponPageService) formFailed(state *models.CouponFormState, err error) *models.CouponFormState {
	var validationErr *errors.ValidationError
	if stdErrors.As(err, &validationErr) {
		state.Errors = validationErr.Fields
	}
	return state
}

func (s *CouponPageService) mutationFailed(err error, fallback string, fields logrus.Fields) *models.Notification {
	logrus.WithError(err).WithFields(fields).Error(fallback)
	return s.notify(models.NotificationLevelError, notificationMessage(err, fallback))
}

// notify builds a notification for the caller; only fetch failures are
// queued for the next View.
func (s *CouponPageService) notify(level models.NotificationLevel, message string) *models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &models.Notification{
		Level:     level,
		Message:   message,
		CreatedAt: s.now(),
	}
}

func (s *CouponPageService) queueNotificationLocked(level models.NotificationLevel, message string) {
	s.notification = &models.Notification{
		Level:     level,
		Message:   message,
		CreatedAt: s.now(),
	}
}

// notificationMessage prefers the store's own detail message
func notificationMessage(err error, fallback string) string {
	var storeErr *errors.StoreError
	if stdErrors.As(err, &storeErr) && storeErr.Detail != "" {
		return storeErr.Detail
	}
	return fallback
}

package services

import (
	"context"
	"sync"

	"github.com/safatanc/jewelry-backoffice/internal/app/errors"
	"github.com/safatanc/jewelry-backoffice/internal/app/models"
)

// fakeCouponStore is an in-memory coupon REST resource
type fakeCouponStore struct {
	mu       sync.Mutex
	coupons  []models.Coupon
	nextID   int64
	calls    map[string]int
	listHook func()

	listErr   error
	createErr error
	updateErr error
	deleteErr error
}

func newFakeCouponStore(coupons ...models.Coupon) *fakeCouponStore {
	store := &fakeCouponStore{calls: map[string]int{}, nextID: 1}
	for _, coupon := range coupons {
		store.add(coupon)
	}
	return store
}

func (s *fakeCouponStore) add(coupon models.Coupon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if coupon.ID == 0 {
		coupon.ID = s.nextID
	}
	if coupon.ID >= s.nextID {
		s.nextID = coupon.ID + 1
	}
	s.coupons = append(s.coupons, coupon)
}

func (s *fakeCouponStore) callCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *fakeCouponStore) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	s.mu.Lock()
	s.calls["list"]++
	snapshot := make([]models.Coupon, len(s.coupons))
	copy(snapshot, s.coupons)
	err := s.listErr
	hook := s.listHook
	s.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return nil, err
	}
	return snapshot, nil
}

func (s *fakeCouponStore) CreateCoupon(ctx context.Context, draft *models.CouponDraft) (*models.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["create"]++
	if s.createErr != nil {
		return nil, s.createErr
	}

	coupon := couponFromDraft(s.nextID, draft)
	s.nextID++
	s.coupons = append(s.coupons, coupon)
	return &coupon, nil
}

func (s *fakeCouponStore) UpdateCoupon(ctx context.Context, id int64, draft *models.CouponDraft) (*models.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["update"]++
	if s.updateErr != nil {
		return nil, s.updateErr
	}

	for i := range s.coupons {
		if s.coupons[i].ID == id {
			updated := couponFromDraft(id, draft)
			updated.CurrentUses = s.coupons[i].CurrentUses
			s.coupons[i] = updated
			return &updated, nil
		}
	}
	return nil, &errors.StoreError{StatusCode: 404, Detail: "Not found."}
}

func (s *fakeCouponStore) SetCouponActive(ctx context.Context, id int64, active bool) (*models.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["toggle"]++
	if s.updateErr != nil {
		return nil, s.updateErr
	}

	for i := range s.coupons {
		if s.coupons[i].ID == id {
			s.coupons[i].IsActive = active
			updated := s.coupons[i]
			return &updated, nil
		}
	}
	return nil, &errors.StoreError{StatusCode: 404, Detail: "Not found."}
}

func (s *fakeCouponStore) DeleteCoupon(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls["delete"]++
	if s.deleteErr != nil {
		return s.deleteErr
	}

	for i := range s.coupons {
		if s.coupons[i].ID == id {
			s.coupons = append(s.coupons[:i], s.coupons[i+1:]...)
			return nil
		}
	}
	return &errors.StoreError{StatusCode: 404, Detail: "Not found."}
}

func couponFromDraft(id int64, draft *models.CouponDraft) models.Coupon {
	return models.Coupon{
		ID:                id,
		Code:              draft.Code,
		Description:       draft.Description,
		DiscountType:      draft.DiscountType,
		DiscountValue:     draft.DiscountValue,
		MinOrderAmount:    draft.MinOrderAmount,
		MaxDiscountAmount: draft.MaxDiscountAmount,
		StartDate:         draft.StartDate,
		EndDate:           draft.EndDate,
		MaxUses:           draft.MaxUses,
		IsActive:          draft.IsActive,
	}
}

type fakeCouponCache struct {
	mu          sync.Mutex
	coupons     map[int64]models.Coupon
	replaced    int
	err         error
	replaceHook func()
}

func newFakeCouponCache() *fakeCouponCache {
	return &fakeCouponCache{coupons: map[int64]models.Coupon{}}
}

func (c *fakeCouponCache) ReplaceAll(ctx context.Context, coupons []models.Coupon) error {
	if c.replaceHook != nil {
		c.replaceHook()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.replaced++
	c.coupons = map[int64]models.Coupon{}
	for _, coupon := range coupons {
		c.coupons[coupon.ID] = coupon
	}
	return nil
}

func (c *fakeCouponCache) Put(ctx context.Context, coupon *models.Coupon) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.coupons[coupon.ID] = *coupon
	return nil
}

func (c *fakeCouponCache) Get(ctx context.Context, id int64) (*models.Coupon, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	coupon, ok := c.coupons[id]
	if !ok {
		return nil, nil
	}
	return &coupon, nil
}

func (c *fakeCouponCache) Evict(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	delete(c.coupons, id)
	return nil
}

func (c *fakeCouponCache) has(id int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.coupons[id]
	return ok
}

type auditEntry struct {
	recordID string
	action   models.AuditAction
	oldData  interface{}
	newData  interface{}
}

type fakeAuditLogger struct {
	mu      sync.Mutex
	entries []auditEntry
	err     error
}

func (a *fakeAuditLogger) LogAudit(ctx context.Context, tableName, recordID string, action models.AuditAction, oldData, newData interface{}) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.entries = append(a.entries, auditEntry{recordID: recordID, action: action, oldData: oldData, newData: newData})
	return nil
}

func (a *fakeAuditLogger) GetAuditLogs(ctx context.Context, tableName, recordID string, pagination *models.PaginationRequest) (*models.Pagination[[]models.AuditLog], error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	logs := []models.AuditLog{}
	for _, entry := range a.entries {
		if entry.recordID == recordID {
			logs = append(logs, models.AuditLog{TableName: tableName, RecordID: recordID, Action: entry.action})
		}
	}
	return &models.Pagination[[]models.AuditLog]{
		Page:       1,
		Limit:      len(logs),
		TotalPages: 1,
		TotalItems: len(logs),
		Items:      logs,
	}, nil
}

func (a *fakeAuditLogger) actions() []models.AuditAction {
	a.mu.Lock()
	defer a.mu.Unlock()
	actions := make([]models.AuditAction, 0, len(a.entries))
	for _, entry := range a.entries {
		actions = append(actions, entry.action)
	}
	return actions
}

package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/safatanc/jewelry-backoffice/internal/app/errors"
	"github.com/safatanc/jewelry-backoffice/internal/app/models"
	"github.com/safatanc/jewelry-backoffice/internal/infrastructures"
	"github.com/sirupsen/logrus"
)

type bearerTokenKey struct{}

// WithBearerToken attaches the caller's token so store requests are made on
// their behalf.
func WithBearerToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, bearerTokenKey{}, token)
}

func bearerTokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(bearerTokenKey{}).(string)
	return token
}

type CouponStoreService struct {
	client *infrastructures.CouponStoreClient
}

func NewCouponStoreService(client *infrastructures.CouponStoreClient) *CouponStoreService {
	return &CouponStoreService{
		client: client,
	}
}

// ListCoupons fetches every coupon, following "next" links when the store paginates
func (s *CouponStoreService) ListCoupons(ctx context.Context) ([]models.Coupon, error) {
	endpoint := s.client.GetFullURL("/coupons/")
	maxPages := s.client.Config.MaxPages
	if maxPages <= 0 {
		maxPages = 1
	}

	var coupons []models.Coupon
	for page := 1; ; page++ {
		body, err := s.makeStoreRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}

		results, next, err := decodeCouponList(body)
		if err != nil {
			return nil, &errors.StoreError{StatusCode: http.StatusOK, Err: fmt.Errorf("decode coupon list: %w", err)}
		}
		coupons = append(coupons, results...)

		if next == "" {
			break
		}
		if page >= maxPages {
			logrus.WithFields(logrus.Fields{
				"pages":   page,
				"fetched": len(coupons),
			}).Warn("coupon list truncated at page limit")
			break
		}
		endpoint, err = s.resolveNext(endpoint, next)
		if err != nil {
			return nil, &errors.StoreError{StatusCode: http.StatusOK, Err: err}
		}
	}

	if coupons == nil {
		coupons = []models.Coupon{}
	}
	return coupons, nil
}

func (s *CouponStoreService) CreateCoupon(ctx context.Context, draft *models.CouponDraft) (*models.Coupon, error) {
	body, err := s.makeStoreRequest(ctx, http.MethodPost, s.client.GetFullURL("/coupons/"), draft)
	if err != nil {
		return nil, err
	}
	return decodeCoupon(body)
}

func (s *CouponStoreService) UpdateCoupon(ctx context.Context, id int64, draft *models.CouponDraft) (*models.Coupon, error) {
	body, err := s.makeStoreRequest(ctx, http.MethodPatch, s.couponURL(id), draft)
	if err != nil {
		return nil, err
	}
	return decodeCoupon(body)
}

func (s *CouponStoreService) SetCouponActive(ctx context.Context, id int64, active bool) (*models.Coupon, error) {
	body, err := s.makeStoreRequest(ctx, http.MethodPatch, s.couponURL(id), models.CouponActivePatch{IsActive: active})
	if err != nil {
		return nil, err
	}
	return decodeCoupon(body)
}

func (s *CouponStoreService) DeleteCoupon(ctx context.Context, id int64) error {
	_, err := s.makeStoreRequest(ctx, http.MethodDelete, s.couponURL(id), nil)
	return err
}

func (s *CouponStoreService) couponURL(id int64) string {
	return s.client.GetFullURL(fmt.Sprintf("/coupons/%d/", id))
}

func (s *CouponStoreService) resolveNext(current, next string) (string, error) {
	base, err := url.Parse(current)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(next)
	if err != nil {
		return "", fmt.Errorf("invalid next link %q: %w", next, err)
	}
	resolved := base.ResolveReference(ref)

	// Requests carry the admin's token, so they never leave the store's origin
	store, err := url.Parse(s.client.Config.BaseURL)
	if err != nil {
		return "", err
	}
	if !strings.EqualFold(resolved.Scheme, store.Scheme) || !strings.EqualFold(resolved.Host, store.Host) {
		return "", fmt.Errorf("next link %q points outside the coupon store", next)
	}
	return resolved.String(), nil
}

func (s *CouponStoreService) makeStoreRequest(ctx context.Context, method, endpoint string, body interface{}) ([]byte, error) {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, errors.NewInternalServerError(err, "Failed to marshal request body")
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to create HTTP request")
	}

	// Set headers
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token := bearerTokenFrom(ctx)
	if token == "" {
		token = s.client.Config.Token
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := s.client.HTTPClient.Do(req)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"method":   method,
			"endpoint": endpoint,
		}).WithError(err).Error("coupon store request failed")
		return nil, &errors.StoreError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.StoreError{StatusCode: resp.StatusCode, Err: fmt.Errorf("read response body: %w", err)}
	}

	logrus.WithFields(logrus.Fields{
		"method":   method,
		"endpoint": endpoint,
		"status":   resp.StatusCode,
		"duration": time.Since(start).String(),
	}).Debug("coupon store request")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &errors.StoreError{
			StatusCode: resp.StatusCode,
			Detail:     extractDetail(respBody),
		}
	}

	return respBody, nil
}

func decodeCoupon(body []byte) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := json.Unmarshal(body, &coupon); err != nil {
		return nil, &errors.StoreError{StatusCode: http.StatusOK, Err: fmt.Errorf("decode coupon: %w", err)}
	}
	return &coupon, nil
}

// decodeCouponList accepts both a bare array and the {results, next} envelope.
func decodeCouponList(body []byte) ([]models.Coupon, string, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var coupons []models.Coupon
		if err := json.Unmarshal(trimmed, &coupons); err != nil {
			return nil, "", err
		}
		return coupons, "", nil
	}

	var page models.CouponListResponse
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, "", err
	}
	next := ""
	if page.Next != nil {
		next = *page.Next
	}
	return page.Results, next, nil
}

// extractDetail returns the store's "detail" message when it is a plain string.
func extractDetail(body []byte) string {
	var resp models.StoreErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.Detail) == 0 {
		return ""
	}
	var detail string
	if err := json.Unmarshal(resp.Detail, &detail); err != nil {
		return ""
	}
	return detail
}

package infrastructures

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultStoreTimeout = 30 * time.Second

type CouponStoreConfig struct {
	BaseURL  string
	Token    string
	MaxPages int
}

type CouponStoreClient struct {
	HTTPClient *http.Client
	Config     CouponStoreConfig
}

// NewCouponStoreConfig creates CouponStoreConfig from the loaded application config
func NewCouponStoreConfig() CouponStoreConfig {
	return CouponStoreConfig{
		BaseURL:  strings.TrimRight(Config.COUPON_STORE_BASE_URL, "/"),
		Token:    Config.COUPON_STORE_TOKEN,
		MaxPages: Config.COUPON_STORE_MAX_PAGES,
	}
}

// NewCouponStoreClient creates a new HTTP client for the coupon REST store
func NewCouponStoreClient(config CouponStoreConfig) *CouponStoreClient {
	timeout := defaultStoreTimeout
	if Config != nil && Config.COUPON_STORE_TIMEOUT > 0 {
		timeout = Config.COUPON_STORE_TIMEOUT
	}

	return &CouponStoreClient{
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		Config: config,
	}
}

// GetFullURL constructs the full URL for an endpoint
func (c *CouponStoreClient) GetFullURL(endpoint string) string {
	return fmt.Sprintf("%s%s", c.Config.BaseURL, endpoint)
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"mineboard/internal/model"
)

// Resource paths. Collection keys in the query cache are derived from these,
// so every panel that lists a resource and every mutation that touches it
// agree on one spelling.
const (
	PathAds           = "/api/admin/ads"
	PathTokenPackages = "/api/admin/token-packages"
	PathBranding      = "/api/admin/branding"
	PathPayments      = "/api/admin/payments"
	PathKYC           = "/api/admin/kyc"
	PathMiningConfig  = "/api/admin/mining/settings"
	PathMiningStats   = "/api/admin/mining/stats"
	PathSecrets       = "/api/admin/secrets"
	PathUsers         = "/api/admin/users"
	PathEvents        = "/api/admin/events"
	PathArticles      = "/api/admin/articles"
	PathUploads       = "/api/admin/uploads"
)

type AdInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	TargetURL   string          `json:"targetUrl"`
	Placement   string          `json:"placement,omitempty"`
	Status      model.AdStatus  `json:"status"`
	StartsAt    *model.DateTime `json:"startsAt,omitempty"`
	EndsAt      *model.DateTime `json:"endsAt,omitempty"`
}

func (c *Client) ListAds(ctx context.Context) ([]model.Ad, error) {
	var out []model.Ad
	err := c.getJSON(ctx, PathAds, &out)
	return out, err
}

func (c *Client) CreateAd(ctx context.Context, in AdInput) (*model.Ad, error) {
	var out model.Ad
	if err := c.sendJSON(ctx, http.MethodPost, PathAds, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateAd(ctx context.Context, id string, in AdInput) (*model.Ad, error) {
	var out model.Ad
	if err := c.sendJSON(ctx, http.MethodPatch, PathAds+"/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteAd(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, PathAds+"/"+url.PathEscape(id), nil)
}

type TokenPackageInput struct {
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	TokenAmount        int64           `json:"tokenAmount"`
	PriceUSD           float64         `json:"priceUsd"`
	DiscountPercentage float64         `json:"discountPercentage"`
	BonusTokens        int64           `json:"bonusTokens"`
	LimitedTimeOffer   bool            `json:"limitedTimeOffer"`
	OfferEndsAt        *model.DateTime `json:"offerEndsAt,omitempty"`
	Featured           bool            `json:"featured"`
	Active             bool            `json:"active"`
}

func (c *Client) ListTokenPackages(ctx context.Context) ([]model.TokenPackage, error) {
	var out []model.TokenPackage
	err := c.getJSON(ctx, PathTokenPackages, &out)
	return out, err
}

func (c *Client) CreateTokenPackage(ctx context.Context, in TokenPackageInput) (*model.TokenPackage, error) {
	var out model.TokenPackage
	if err := c.sendJSON(ctx, http.MethodPost, PathTokenPackages, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTokenPackage(ctx context.Context, id string, in TokenPackageInput) (*model.TokenPackage, error) {
	var out model.TokenPackage
	if err := c.sendJSON(ctx, http.MethodPatch, PathTokenPackages+"/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTokenPackage(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, PathTokenPackages+"/"+url.PathEscape(id), nil)
}

func (c *Client) GetBranding(ctx context.Context) (*model.BrandingConfig, error) {
	var out model.BrandingConfig
	if err := c.getJSON(ctx, PathBranding, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateBranding(ctx context.Context, in model.BrandingConfig) (*model.BrandingConfig, error) {
	var out model.BrandingConfig
	if err := c.sendJSON(ctx, http.MethodPut, PathBranding, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PaymentGatewayInput carries write-only credentials; they are never echoed
// back by the server (reads return masked values).
type PaymentGatewayInput struct {
	Enabled        bool     `json:"enabled"`
	Environment    string   `json:"environment"`
	ClientID       string   `json:"clientId,omitempty"`
	ClientSecret   string   `json:"clientSecret,omitempty"`
	WebhookURL     string   `json:"webhookUrl,omitempty"`
	SupportedCoins []string `json:"supportedCoins,omitempty"`
	MinPurchaseUSD float64  `json:"minPurchaseUsd"`
	MaxPurchaseUSD float64  `json:"maxPurchaseUsd"`
}

func (c *Client) GetPaymentConfig(ctx context.Context, provider model.PaymentProvider) (*model.PaymentGatewayConfig, error) {
	var out model.PaymentGatewayConfig
	if err := c.getJSON(ctx, PathPayments+"/"+url.PathEscape(string(provider)), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdatePaymentConfig(ctx context.Context, provider model.PaymentProvider, in PaymentGatewayInput) (*model.PaymentGatewayConfig, error) {
	var out model.PaymentGatewayConfig
	if err := c.sendJSON(ctx, http.MethodPut, PathPayments+"/"+url.PathEscape(string(provider)), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListKYC filters server-side by status when status is non-empty.
func (c *Client) ListKYC(ctx context.Context, status model.KYCStatus) ([]model.KYCSubmission, error) {
	path := PathKYC
	if status != "" {
		path += "?status=" + url.QueryEscape(string(status))
	}
	var out []model.KYCSubmission
	err := c.getJSON(ctx, path, &out)
	return out, err
}

type KYCReviewInput struct {
	Note string `json:"note,omitempty"`
}

func (c *Client) ApproveKYC(ctx context.Context, id string, in KYCReviewInput) (*model.KYCSubmission, error) {
	var out model.KYCSubmission
	if err := c.sendJSON(ctx, http.MethodPost, PathKYC+"/"+url.PathEscape(id)+"/approve", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) RejectKYC(ctx context.Context, id string, in KYCReviewInput) (*model.KYCSubmission, error) {
	var out model.KYCSubmission
	if err := c.sendJSON(ctx, http.MethodPost, PathKYC+"/"+url.PathEscape(id)+"/reject", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetMiningSettings(ctx context.Context) (*model.MiningSettings, error) {
	var out model.MiningSettings
	if err := c.getJSON(ctx, PathMiningConfig, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateMiningSettings(ctx context.Context, in model.MiningSettings) (*model.MiningSettings, error) {
	var out model.MiningSettings
	if err := c.sendJSON(ctx, http.MethodPut, PathMiningConfig, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetMiningStats(ctx context.Context) (*model.MiningStats, error) {
	var out model.MiningStats
	if err := c.getJSON(ctx, PathMiningStats, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListSecrets(ctx context.Context) ([]model.Secret, error) {
	var out []model.Secret
	err := c.getJSON(ctx, PathSecrets, &out)
	return out, err
}

type SecretInput struct {
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

func (c *Client) PutSecret(ctx context.Context, key string, in SecretInput) (*model.Secret, error) {
	var out model.Secret
	if err := c.sendJSON(ctx, http.MethodPut, PathSecrets+"/"+url.PathEscape(key), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSecret(ctx context.Context, key string) error {
	return c.deleteJSON(ctx, PathSecrets+"/"+url.PathEscape(key), nil)
}

type UserFilter struct {
	Query string
	Role  model.UserRole
}

func (f UserFilter) encode() string {
	v := url.Values{}
	if strings.TrimSpace(f.Query) != "" {
		v.Set("q", strings.TrimSpace(f.Query))
	}
	if f.Role != "" {
		v.Set("role", string(f.Role))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

func (c *Client) ListUsers(ctx context.Context, f UserFilter) ([]model.User, error) {
	var out []model.User
	err := c.getJSON(ctx, PathUsers+f.encode(), &out)
	return out, err
}

type UserUpdateInput struct {
	Role      *model.UserRole `json:"role,omitempty"`
	Suspended *bool           `json:"suspended,omitempty"`
}

func (c *Client) UpdateUser(ctx context.Context, id string, in UserUpdateInput) (*model.User, error) {
	var out model.User
	if err := c.sendJSON(ctx, http.MethodPatch, PathUsers+"/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type EventInput struct {
	Title        string          `json:"title"`
	Description  string          `json:"description,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	RewardTokens int64           `json:"rewardTokens"`
	StartsAt     *model.DateTime `json:"startsAt,omitempty"`
	EndsAt       *model.DateTime `json:"endsAt,omitempty"`
	Published    bool            `json:"published"`
}

func (c *Client) ListEvents(ctx context.Context) ([]model.PlatformEvent, error) {
	var out []model.PlatformEvent
	err := c.getJSON(ctx, PathEvents, &out)
	return out, err
}

func (c *Client) CreateEvent(ctx context.Context, in EventInput) (*model.PlatformEvent, error) {
	var out model.PlatformEvent
	if err := c.sendJSON(ctx, http.MethodPost, PathEvents, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateEvent(ctx context.Context, id string, in EventInput) (*model.PlatformEvent, error) {
	var out model.PlatformEvent
	if err := c.sendJSON(ctx, http.MethodPatch, PathEvents+"/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, PathEvents+"/"+url.PathEscape(id), nil)
}

type ArticleInput struct {
	Title     string   `json:"title"`
	Category  string   `json:"category,omitempty"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags,omitempty"`
	Published bool     `json:"published"`
}

func (c *Client) ListArticles(ctx context.Context) ([]model.Article, error) {
	var out []model.Article
	err := c.getJSON(ctx, PathArticles, &out)
	return out, err
}

func (c *Client) GetArticle(ctx context.Context, id string) (*model.Article, error) {
	var out model.Article
	if err := c.getJSON(ctx, PathArticles+"/"+url.PathEscape(id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateArticle(ctx context.Context, in ArticleInput) (*model.Article, error) {
	var out model.Article
	if err := c.sendJSON(ctx, http.MethodPost, PathArticles, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateArticle(ctx context.Context, id string, in ArticleInput) (*model.Article, error) {
	var out model.Article
	if err := c.sendJSON(ctx, http.MethodPatch, PathArticles+"/"+url.PathEscape(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteArticle(ctx context.Context, id string) error {
	return c.deleteJSON(ctx, PathArticles+"/"+url.PathEscape(id), nil)
}

// CollectionPath maps a record id-space to its list path; used by callers
// that build query keys generically.
func CollectionPath(resource string) (string, error) {
	switch resource {
	case "ads":
		return PathAds, nil
	case "token-packages":
		return PathTokenPackages, nil
	case "kyc":
		return PathKYC, nil
	case "secrets":
		return PathSecrets, nil
	case "users":
		return PathUsers, nil
	case "events":
		return PathEvents, nil
	case "articles":
		return PathArticles, nil
	default:
		return "", fmt.Errorf("unknown resource %q", resource)
	}
}

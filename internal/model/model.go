package model

import "time"

type AdStatus string

const (
	AdStatusDraft    AdStatus = "draft"
	AdStatusActive   AdStatus = "active"
	AdStatusPaused   AdStatus = "paused"
	AdStatusArchived AdStatus = "archived"
)

type Ad struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	TargetURL   string    `json:"targetUrl"`
	Placement   string    `json:"placement,omitempty"`
	Status      AdStatus  `json:"status"`
	Impressions int64     `json:"impressions"`
	Clicks      int64     `json:"clicks"`
	StartsAt    *DateTime `json:"startsAt,omitempty"`
	EndsAt      *DateTime `json:"endsAt,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type TokenPackage struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Description        string    `json:"description,omitempty"`
	TokenAmount        int64     `json:"tokenAmount"`
	PriceUSD           float64   `json:"priceUsd"`
	DiscountPercentage float64   `json:"discountPercentage"`
	BonusTokens        int64     `json:"bonusTokens"`
	LimitedTimeOffer   bool      `json:"limitedTimeOffer"`
	OfferEndsAt        *DateTime `json:"offerEndsAt,omitempty"`
	Featured           bool      `json:"featured"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type BrandingConfig struct {
	PlatformName   string    `json:"platformName"`
	Tagline        string    `json:"tagline,omitempty"`
	LogoURL        string    `json:"logoUrl,omitempty"`
	FaviconURL     string    `json:"faviconUrl,omitempty"`
	PrimaryColor   string    `json:"primaryColor,omitempty"`
	SecondaryColor string    `json:"secondaryColor,omitempty"`
	SupportEmail   string    `json:"supportEmail,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type PaymentProvider string

const (
	PaymentProviderPayPal      PaymentProvider = "paypal"
	PaymentProviderFlutterwave PaymentProvider = "flutterwave"
)

// PaymentGatewayConfig only ever exposes masked credentials; the full secret
// lives server-side and is written, never read back.
type PaymentGatewayConfig struct {
	Provider       PaymentProvider `json:"provider"`
	Enabled        bool            `json:"enabled"`
	Environment    string          `json:"environment"` // sandbox|live
	ClientIDMasked string          `json:"clientIdMasked,omitempty"`
	WebhookURL     string          `json:"webhookUrl,omitempty"`
	SupportedCoins []string        `json:"supportedCoins,omitempty"`
	MinPurchaseUSD float64         `json:"minPurchaseUsd"`
	MaxPurchaseUSD float64         `json:"maxPurchaseUsd"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

type KYCStatus string

const (
	KYCStatusPending  KYCStatus = "pending"
	KYCStatusApproved KYCStatus = "approved"
	KYCStatusRejected KYCStatus = "rejected"
)

type KYCRecommendation string

const (
	KYCRecommendApprove KYCRecommendation = "approve"
	KYCRecommendReject  KYCRecommendation = "reject"
	KYCRecommendReview  KYCRecommendation = "review"
)

type KYCSubmission struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	UserEmail    string    `json:"userEmail"`
	FullName     string    `json:"fullName"`
	Country      string    `json:"country,omitempty"`
	DocumentType string    `json:"documentType"`
	DocumentURL  string    `json:"documentUrl"`
	SelfieURL    string    `json:"selfieUrl,omitempty"`
	Status       KYCStatus `json:"status"`

	// AI assessment is computed server-side; the client only displays it.
	AIRecommendation KYCRecommendation `json:"aiRecommendation,omitempty"`
	AIConfidence     float64           `json:"aiConfidence,omitempty"`
	AINotes          string            `json:"aiNotes,omitempty"`

	ReviewedBy  string     `json:"reviewedBy,omitempty"`
	ReviewNote  string     `json:"reviewNote,omitempty"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
	SubmittedAt time.Time  `json:"submittedAt"`
}

type MiningSettings struct {
	BaseRatePerHour     float64   `json:"baseRatePerHour"`
	SessionHours        int       `json:"sessionHours"`
	StreakBonusPercent  float64   `json:"streakBonusPercent"`
	MaxStreakDays       int       `json:"maxStreakDays"`
	ReferralBonusTokens int64     `json:"referralBonusTokens"`
	DailyCapTokens      int64     `json:"dailyCapTokens"`
	MaintenanceMode     bool      `json:"maintenanceMode"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type MiningStats struct {
	ActiveMiners      int64     `json:"activeMiners"`
	TotalMiners       int64     `json:"totalMiners"`
	TokensMinedToday  float64   `json:"tokensMinedToday"`
	TokensMinedTotal  float64   `json:"tokensMinedTotal"`
	AvgSessionMinutes float64   `json:"avgSessionMinutes"`
	LongestStreakDays int       `json:"longestStreakDays"`
	GeneratedAt       time.Time `json:"generatedAt"`
}

// Secret values are write-only: list responses carry ValueMasked and never
// the plaintext.
type Secret struct {
	Key         string    `json:"key"`
	ValueMasked string    `json:"valueMasked,omitempty"`
	Description string    `json:"description,omitempty"`
	UpdatedBy   string    `json:"updatedBy,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type UserRole string

const (
	UserRoleMember    UserRole = "member"
	UserRoleModerator UserRole = "moderator"
	UserRoleAdmin     UserRole = "admin"
)

type User struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	DisplayName  string     `json:"displayName,omitempty"`
	Role         UserRole   `json:"role"`
	TokenBalance float64    `json:"tokenBalance"`
	KYCStatus    KYCStatus  `json:"kycStatus,omitempty"`
	Suspended    bool       `json:"suspended"`
	LastSeenAt   *time.Time `json:"lastSeenAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
}

type PlatformEvent struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	RewardTokens int64     `json:"rewardTokens"`
	StartsAt     *DateTime `json:"startsAt,omitempty"`
	EndsAt       *DateTime `json:"endsAt,omitempty"`
	Published    bool      `json:"published"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Article is an AI knowledge base entry; Body is markdown.
type Article struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category,omitempty"`
	Body      string    `json:"body"`
	Tags      []string  `json:"tags,omitempty"`
	Published bool      `json:"published"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

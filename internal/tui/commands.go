package tui

import (
	"context"

	"mineboard/internal/api"
	"mineboard/internal/model"
	"mineboard/internal/mutate"
	"mineboard/internal/query"
)

// Query keys shared by panels and mutations. A mutation touching a resource
// declares the same key its panel subscribes on; that is the whole coherence
// contract.
func adsKey() query.Key      { return query.NewKey(api.PathAds) }
func packagesKey() query.Key { return query.NewKey(api.PathTokenPackages) }
func usersKey() query.Key    { return query.NewKey(api.PathUsers) }
func eventsKey() query.Key   { return query.NewKey(api.PathEvents) }
func secretsKey() query.Key  { return query.NewKey(api.PathSecrets) }
func brandingKey() query.Key { return query.NewKey(api.PathBranding) }
func articlesKey() query.Key { return query.NewKey(api.PathArticles) }
func miningSettingsKey() query.Key {
	return query.NewKey(api.PathMiningConfig)
}
func miningStatsKey() query.Key {
	return query.NewKey(api.PathMiningStats)
}
func kycKey(status model.KYCStatus) query.Key {
	if status == "" {
		return query.NewKey(api.PathKYC)
	}
	return query.NewKey(api.PathKYC, "status="+string(status))
}
func kycKeysAll() []query.Key {
	return []query.Key{
		kycKey(""),
		kycKey(model.KYCStatusPending),
		kycKey(model.KYCStatusApproved),
		kycKey(model.KYCStatusRejected),
	}
}
func paymentKey(p model.PaymentProvider) query.Key {
	return query.NewKey(api.PathPayments, "provider="+string(p))
}

type recordUpdate[I any] struct {
	ID string
	In I
}

type paymentUpdate struct {
	Provider model.PaymentProvider
	In       api.PaymentGatewayInput
}

type kycDecision struct {
	ID   string
	Note string
}

// mutations holds one Command per admin write. Each declares the query keys
// it invalidates; the pending guard lives inside the Command.
type mutations struct {
	createAd *mutate.Command[api.AdInput, *model.Ad]
	updateAd *mutate.Command[recordUpdate[api.AdInput], *model.Ad]
	deleteAd *mutate.Command[string, struct{}]

	createPackage *mutate.Command[api.TokenPackageInput, *model.TokenPackage]
	updatePackage *mutate.Command[recordUpdate[api.TokenPackageInput], *model.TokenPackage]
	deletePackage *mutate.Command[string, struct{}]

	approveKYC *mutate.Command[kycDecision, *model.KYCSubmission]
	rejectKYC  *mutate.Command[kycDecision, *model.KYCSubmission]

	updateUser *mutate.Command[recordUpdate[api.UserUpdateInput], *model.User]

	createEvent *mutate.Command[api.EventInput, *model.PlatformEvent]
	updateEvent *mutate.Command[recordUpdate[api.EventInput], *model.PlatformEvent]
	deleteEvent *mutate.Command[string, struct{}]

	putSecret    *mutate.Command[recordUpdate[api.SecretInput], *model.Secret]
	deleteSecret *mutate.Command[string, struct{}]

	updateBranding *mutate.Command[model.BrandingConfig, *model.BrandingConfig]
	updatePayment  *mutate.Command[paymentUpdate, *model.PaymentGatewayConfig]
	updateMining   *mutate.Command[model.MiningSettings, *model.MiningSettings]

	createArticle *mutate.Command[api.ArticleInput, *model.Article]
	updateArticle *mutate.Command[recordUpdate[api.ArticleInput], *model.Article]
	deleteArticle *mutate.Command[string, struct{}]
}

func newMutations(client *api.Client, cache *query.Cache) *mutations {
	m := &mutations{}

	m.createAd = mutate.NewCommand(cache,
		func(ctx context.Context, in api.AdInput) (*model.Ad, error) {
			return client.CreateAd(ctx, in)
		},
		mutate.Invalidates[api.AdInput, *model.Ad](adsKey()))
	m.updateAd = mutate.NewCommand(cache,
		func(ctx context.Context, u recordUpdate[api.AdInput]) (*model.Ad, error) {
			return client.UpdateAd(ctx, u.ID, u.In)
		},
		mutate.Invalidates[recordUpdate[api.AdInput], *model.Ad](adsKey()))
	m.deleteAd = mutate.NewCommand(cache,
		func(ctx context.Context, id string) (struct{}, error) {
			return struct{}{}, client.DeleteAd(ctx, id)
		},
		mutate.Invalidates[string, struct{}](adsKey()))

	m.createPackage = mutate.NewCommand(cache,
		func(ctx context.Context, in api.TokenPackageInput) (*model.TokenPackage, error) {
			return client.CreateTokenPackage(ctx, in)
		},
		mutate.Invalidates[api.TokenPackageInput, *model.TokenPackage](packagesKey()))
	m.updatePackage = mutate.NewCommand(cache,
		func(ctx context.Context, u recordUpdate[api.TokenPackageInput]) (*model.TokenPackage, error) {
			return client.UpdateTokenPackage(ctx, u.ID, u.In)
		},
		mutate.Invalidates[recordUpdate[api.TokenPackageInput], *model.TokenPackage](packagesKey()))
	m.deletePackage = mutate.NewCommand(cache,
		func(ctx context.Context, id string) (struct{}, error) {
			return struct{}{}, client.DeleteTokenPackage(ctx, id)
		},
		mutate.Invalidates[string, struct{}](packagesKey()))

	// A review decision changes which status buckets a submission shows up
	// in, so every KYC list variant goes stale, and so does the user list
	// (kycStatus column).
	kycInvalidation := append(kycKeysAll(), usersKey())
	m.approveKYC = mutate.NewCommand(cache,
		func(ctx context.Context, d kycDecision) (*model.KYCSubmission, error) {
			return client.ApproveKYC(ctx, d.ID, api.KYCReviewInput{Note: d.Note})
		},
		mutate.Invalidates[kycDecision, *model.KYCSubmission](kycInvalidation...))
	m.rejectKYC = mutate.NewCommand(cache,
		func(ctx context.Context, d kycDecision) (*model.KYCSubmission, error) {
			return client.RejectKYC(ctx, d.ID, api.KYCReviewInput{Note: d.Note})
		},
		mutate.Invalidates[kycDecision, *model.KYCSubmission](kycInvalidation...))

	m.updateUser = mutate.NewCommand(cache,
		func(ctx context.Context, u recordUpdate[api.UserUpdateInput]) (*model.User, error) {
			return client.UpdateUser(ctx, u.ID, u.In)
		},
		mutate.Invalidates[recordUpdate[api.UserUpdateInput], *model.User](usersKey()))

	m.createEvent = mutate.NewCommand(cache,
		func(ctx context.Context, in api.EventInput) (*model.PlatformEvent, error) {
			return client.CreateEvent(ctx, in)
		},
		mutate.Invalidates[api.EventInput, *model.PlatformEvent](eventsKey()))
	m.updateEvent = mutate.NewCommand(cache,
		func(ctx context.Context, u recordUpdate[api.EventInput]) (*model.PlatformEvent, error) {
			return client.UpdateEvent(ctx, u.ID, u.In)
		},
		mutate.Invalidates[recordUpdate[api.EventInput], *model.PlatformEvent](eventsKey()))
	m.deleteEvent = mutate.NewCommand(cache,
		func(ctx context.Context, id string) (struct{}, error) {
			return struct{}{}, client.DeleteEvent(ctx, id)
		},
		mutate.Invalidates[string, struct{}](eventsKey()))

	m.putSecret = mutate.NewCommand(cache,
		func(ctx context.Context, u recordUpdate[api.SecretInput]) (*model.Secret, error) {
			return client.PutSecret(ctx, u.ID, u.In)
		},
		mutate.Invalidates[recordUpdate[api.SecretInput], *model.Secret](secretsKey()))
	m.deleteSecret = mutate.NewCommand(cache,
		func(ctx context.Context, key string) (struct{}, error) {
			return struct{}{}, client.DeleteSecret(ctx, key)
		},
		mutate.Invalidates[string, struct{}](secretsKey()))

	m.updateBranding = mutate.NewCommand(cache,
		func(ctx context.Context, in model.BrandingConfig) (*model.BrandingConfig, error) {
			return client.UpdateBranding(ctx, in)
		},
		mutate.Invalidates[model.BrandingConfig, *model.BrandingConfig](brandingKey()))

	m.updatePayment = mutate.NewCommand(cache,
		func(ctx context.Context, u paymentUpdate) (*model.PaymentGatewayConfig, error) {
			return client.UpdatePaymentConfig(ctx, u.Provider, u.In)
		},
		mutate.InvalidatesFunc[paymentUpdate, *model.PaymentGatewayConfig](func(u paymentUpdate) []query.Key {
			return []query.Key{paymentKey(u.Provider)}
		}))

	m.updateMining = mutate.NewCommand(cache,
		func(ctx context.Context, in model.MiningSettings) (*model.MiningSettings, error) {
			return client.UpdateMiningSettings(ctx, in)
		},
		mutate.Invalidates[model.MiningSettings, *model.MiningSettings](miningSettingsKey(), miningStatsKey()))

	m.createArticle = mutate.NewCommand(cache,
		func(ctx context.Context, in api.ArticleInput) (*model.Article, error) {
			return client.CreateArticle(ctx, in)
		},
		mutate.Invalidates[api.ArticleInput, *model.Article](articlesKey()))
	m.updateArticle = mutate.NewCommand(cache,
		func(ctx context.Context, u recordUpdate[api.ArticleInput]) (*model.Article, error) {
			return client.UpdateArticle(ctx, u.ID, u.In)
		},
		mutate.Invalidates[recordUpdate[api.ArticleInput], *model.Article](articlesKey()))
	m.deleteArticle = mutate.NewCommand(cache,
		func(ctx context.Context, id string) (struct{}, error) {
			return struct{}{}, client.DeleteArticle(ctx, id)
		},
		mutate.Invalidates[string, struct{}](articlesKey()))

	return m
}

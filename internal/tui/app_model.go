package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"mineboard/internal/api"
	"mineboard/internal/form"
	"mineboard/internal/model"
	"mineboard/internal/mutate"
	"mineboard/internal/query"
	"mineboard/internal/store"
)

type panelData struct {
	ads      []model.Ad
	packages []model.TokenPackage
	kyc      []model.KYCSubmission
	users    []model.User
	events   []model.PlatformEvent
	secrets  []model.Secret
	articles []model.Article

	branding       *model.BrandingConfig
	payments       map[model.PaymentProvider]*model.PaymentGatewayConfig
	miningSettings *model.MiningSettings
	miningStats    *model.MiningStats

	audit []store.AuditEntry
}

type appModel struct {
	st     store.Store
	cfg    store.Config
	client *api.Client
	cache  *query.Cache
	audit  *store.AuditLog
	muts   *mutations

	width          int
	height         int
	seenWindowSize bool

	active panel
	lists  map[panel]*list.Model

	subs map[panel]*query.Subscription
	// settingsSub rides alongside the mining stats subscription: the panel
	// shows stats, the edit dialog needs settings.
	settingsSub *query.Subscription

	data      panelData
	queryErr  map[panel]string
	loading   map[panel]bool
	staleView map[panel]bool

	// One dialog per panel; the active panel's dialog is the only one that
	// can be open (opening elsewhere switches panels first).
	dialogs map[panel]*dialogState
	forms   map[panel]*form.Form

	// Dialog input widgets, rebuilt from the panel schema on every open.
	fieldNames []string
	inputs     []textinput.Model
	bodyInput  textarea.Model
	bodyIdx    int // index into fieldNames using the textarea, -1 otherwise
	fieldIdx   int
	focus      formFocus

	confirmFocus confirmModalFocus

	// kycAction distinguishes the approve/reject note dialog.
	kycAction string

	// kycFilter is the server-side status filter on the KYC panel.
	kycFilter model.KYCStatus

	// paymentProvider selects which gateway's config is shown/edited.
	paymentProvider model.PaymentProvider

	pending bool

	flash      string
	flashIsErr bool
	flashSeq   int

	previewScroll int
}

const statsRefreshDefault = 30 * time.Second

func newAppModel(st store.Store, cfg store.Config, client *api.Client, auditLog *store.AuditLog) appModel {
	cache := query.NewCache()

	m := appModel{
		st:              st,
		cfg:             cfg,
		client:          client,
		cache:           cache,
		audit:           auditLog,
		muts:            newMutations(client, cache),
		active:          panelAds,
		lists:           map[panel]*list.Model{},
		subs:            map[panel]*query.Subscription{},
		queryErr:        map[panel]string{},
		loading:         map[panel]bool{},
		staleView:       map[panel]bool{},
		dialogs:         map[panel]*dialogState{},
		forms:           map[panel]*form.Form{},
		data:            panelData{payments: map[model.PaymentProvider]*model.PaymentGatewayConfig{}},
		kycFilter:       model.KYCStatusPending,
		paymentProvider: model.PaymentProviderPayPal,
		bodyIdx:         -1,
	}

	for _, p := range panelOrder {
		l := newPanelList(p.title())
		m.lists[p] = &l
		m.dialogs[p] = &dialogState{}
		m.forms[p] = form.New(panelSchema(p))
	}

	m.bodyInput = textarea.New()
	m.bodyInput.Placeholder = "Write…"
	m.bodyInput.CharLimit = 0
	m.bodyInput.SetWidth(72)
	m.bodyInput.SetHeight(10)
	m.bodyInput.ShowLineNumbers = false

	// Best effort: restore the last panel for this machine.
	if ts, err := st.LoadTUIState(); err == nil {
		if p, ok := panelFromString(ts.Panel); ok {
			m.active = p
		}
		if ts.KYCStatusFilter != "" {
			m.kycFilter = model.KYCStatus(ts.KYCStatusFilter)
		}
	}

	m.initSubscriptions()
	return m
}

func (m *appModel) statsInterval() time.Duration {
	if m.cfg.StatsRefreshSeconds > 0 {
		return time.Duration(m.cfg.StatsRefreshSeconds) * time.Second
	}
	return statsRefreshDefault
}

// initSubscriptions registers one query subscription per panel. Only the
// active panel is enabled; switching panels flips the gates, so hidden tabs
// never issue requests.
func (m *appModel) initSubscriptions() {
	c := m.client

	m.subs[panelAds] = m.cache.Subscribe(adsKey(), func(ctx context.Context) (any, error) {
		return c.ListAds(ctx)
	}, query.Options{Enabled: m.active == panelAds})

	m.subs[panelPackages] = m.cache.Subscribe(packagesKey(), func(ctx context.Context) (any, error) {
		return c.ListTokenPackages(ctx)
	}, query.Options{Enabled: m.active == panelPackages})

	m.subs[panelKYC] = m.newKYCSubscription(m.kycFilter, m.active == panelKYC)

	m.subs[panelUsers] = m.cache.Subscribe(usersKey(), func(ctx context.Context) (any, error) {
		return c.ListUsers(ctx, api.UserFilter{})
	}, query.Options{Enabled: m.active == panelUsers})

	m.subs[panelEvents] = m.cache.Subscribe(eventsKey(), func(ctx context.Context) (any, error) {
		return c.ListEvents(ctx)
	}, query.Options{Enabled: m.active == panelEvents})

	m.subs[panelSecrets] = m.cache.Subscribe(secretsKey(), func(ctx context.Context) (any, error) {
		return c.ListSecrets(ctx)
	}, query.Options{Enabled: m.active == panelSecrets})

	// Mining stats poll while the panel is visible; the timer pauses with
	// the gate, so a hidden stats panel costs nothing.
	m.subs[panelMining] = m.cache.Subscribe(miningStatsKey(), func(ctx context.Context) (any, error) {
		return c.GetMiningStats(ctx)
	}, query.Options{Enabled: m.active == panelMining, RefetchInterval: m.statsInterval()})

	m.settingsSub = m.cache.Subscribe(miningSettingsKey(), func(ctx context.Context) (any, error) {
		return c.GetMiningSettings(ctx)
	}, query.Options{Enabled: m.active == panelMining})

	m.subs[panelBranding] = m.cache.Subscribe(brandingKey(), func(ctx context.Context) (any, error) {
		return c.GetBranding(ctx)
	}, query.Options{Enabled: m.active == panelBranding})

	m.subs[panelPayments] = m.newPaymentSubscription(m.paymentProvider, m.active == panelPayments)

	m.subs[panelKnowledge] = m.cache.Subscribe(articlesKey(), func(ctx context.Context) (any, error) {
		return c.ListArticles(ctx)
	}, query.Options{Enabled: m.active == panelKnowledge})
}

func (m *appModel) newKYCSubscription(status model.KYCStatus, enabled bool) *query.Subscription {
	c := m.client
	return m.cache.Subscribe(kycKey(status), func(ctx context.Context) (any, error) {
		return c.ListKYC(ctx, status)
	}, query.Options{Enabled: enabled})
}

func (m *appModel) newPaymentSubscription(provider model.PaymentProvider, enabled bool) *query.Subscription {
	c := m.client
	return m.cache.Subscribe(paymentKey(provider), func(ctx context.Context) (any, error) {
		return c.GetPaymentConfig(ctx, provider)
	}, query.Options{Enabled: enabled})
}

// switchPanel moves the active tab: the old panel's gate closes, the new one
// opens (triggering its first fetch if the cache has nothing fresh).
func (m *appModel) switchPanel(p panel) tea.Cmd {
	if p == m.active {
		return nil
	}
	// Panel switches close any open dialog; its form resets on next open.
	m.closeDialog(m.active)

	if sub, ok := m.subs[m.active]; ok {
		sub.SetEnabled(false)
	}
	if m.active == panelMining {
		m.settingsSub.SetEnabled(false)
	}
	m.active = p
	var cmds []tea.Cmd
	if sub, ok := m.subs[p]; ok {
		sub.SetEnabled(true)
	}
	if p == panelMining {
		m.settingsSub.SetEnabled(true)
	}
	if p == panelAudit {
		cmds = append(cmds, m.loadAuditCmd())
	}
	m.saveTUIState()
	return tea.Batch(cmds...)
}

func (m *appModel) saveTUIState() {
	_ = m.st.SaveTUIState(store.TUIState{
		Panel:           m.active.String(),
		KYCStatusFilter: string(m.kycFilter),
	})
}

// cycleKYCFilter rotates the server-side status filter and swaps the panel's
// subscription to the new key. The old subscription closes; its cache entry
// stays for the TTL sweeper.
func (m *appModel) cycleKYCFilter() {
	order := []model.KYCStatus{
		model.KYCStatusPending, model.KYCStatusApproved, model.KYCStatusRejected, "",
	}
	next := order[0]
	for i, s := range order {
		if s == m.kycFilter {
			next = order[(i+1)%len(order)]
			break
		}
	}
	m.kycFilter = next
	if old := m.subs[panelKYC]; old != nil {
		old.Close()
	}
	m.subs[panelKYC] = m.newKYCSubscription(next, m.active == panelKYC)
	m.saveTUIState()
}

func (m *appModel) togglePaymentProvider() {
	if m.paymentProvider == model.PaymentProviderPayPal {
		m.paymentProvider = model.PaymentProviderFlutterwave
	} else {
		m.paymentProvider = model.PaymentProviderPayPal
	}
	if old := m.subs[panelPayments]; old != nil {
		old.Close()
	}
	m.subs[panelPayments] = m.newPaymentSubscription(m.paymentProvider, m.active == panelPayments)
}

// closeDialog closes the panel's dialog and resets its form to schema
// defaults plus any upload staging. Runs on cancel and on successful submit.
func (m *appModel) closeDialog(p panel) {
	d := m.dialogs[p]
	if !d.isOpen() {
		return
	}
	d.close()
	m.forms[p].Reset(nil)
	m.fieldNames = nil
	m.inputs = nil
	m.bodyIdx = -1
	m.fieldIdx = 0
	m.focus = formFocusFields
	m.confirmFocus = confirmFocusConfirm
	m.kycAction = ""
	m.pending = false
	m.previewScroll = 0
	m.bodyInput.SetValue("")
	m.bodyInput.Blur()
	m.muts.resetSettled()
}

// resetSettled returns every non-pending command to idle so stale error
// state cannot bleed into the next dialog.
func (ms *mutations) resetSettled() {
	ms.createAd.Reset()
	ms.updateAd.Reset()
	ms.deleteAd.Reset()
	ms.createPackage.Reset()
	ms.updatePackage.Reset()
	ms.deletePackage.Reset()
	ms.approveKYC.Reset()
	ms.rejectKYC.Reset()
	ms.updateUser.Reset()
	ms.createEvent.Reset()
	ms.updateEvent.Reset()
	ms.deleteEvent.Reset()
	ms.putSecret.Reset()
	ms.deleteSecret.Reset()
	ms.updateBranding.Reset()
	ms.updatePayment.Reset()
	ms.updateMining.Reset()
	ms.createArticle.Reset()
	ms.updateArticle.Reset()
	ms.deleteArticle.Reset()
}

// openDialog seeds the panel form (schema defaults for create, explicit
// record mapping for edit) and builds the input widgets.
func (m *appModel) openDialog(p panel, kind dialogKind, record any, seed form.Values) {
	// Single active modal per panel: opening replaces whatever was open.
	m.closeDialog(p)

	d := m.dialogs[p]
	switch kind {
	case dialogCreating:
		d.openForCreate()
		m.forms[p].Reset(nil)
	case dialogEditing:
		d.openForEdit(record)
		m.forms[p].Reset(seed)
	case dialogDeleting:
		d.openForDelete(record)
	case dialogPreviewing:
		d.openForPreview(record)
	}

	if kind == dialogCreating || kind == dialogEditing {
		m.buildInputs(p)
	}
}

// buildInputs materializes one textinput per schema field (the article body
// gets the textarea), pre-filled from the form values.
func (m *appModel) buildInputs(p panel) {
	f := m.forms[p]
	schema := panelSchema(p)
	fields := schema.Fields()

	m.fieldNames = make([]string, 0, len(fields))
	m.inputs = make([]textinput.Model, 0, len(fields))
	m.bodyIdx = -1
	m.fieldIdx = 0
	m.focus = formFocusFields

	for _, fd := range fields {
		m.fieldNames = append(m.fieldNames, fd.Name)
		if fd.Name == "body" {
			m.bodyIdx = len(m.fieldNames) - 1
			m.bodyInput.SetValue(f.Value(fd.Name))
			m.inputs = append(m.inputs, textinput.New()) // placeholder slot
			continue
		}
		in := textinput.New()
		in.Placeholder = fd.Label
		in.CharLimit = 512
		in.Width = 48
		in.SetValue(f.Value(fd.Name))
		if fd.Name == "value" || fd.Name == "clientSecret" {
			in.EchoMode = textinput.EchoPassword
		}
		m.inputs = append(m.inputs, in)
	}
	m.focusField(0)
}

func (m *appModel) focusField(idx int) {
	if len(m.fieldNames) == 0 {
		return
	}
	if idx < 0 {
		idx = len(m.fieldNames) - 1
	}
	if idx >= len(m.fieldNames) {
		idx = 0
	}
	m.fieldIdx = idx
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.bodyInput.Blur()
	if idx == m.bodyIdx {
		m.bodyInput.Focus()
	} else {
		m.inputs[idx].Focus()
	}
}

// syncFormFromInputs copies widget text back into the form before validate.
func (m *appModel) syncFormFromInputs(p panel) {
	f := m.forms[p]
	for i, name := range m.fieldNames {
		if i == m.bodyIdx {
			f.SetField(name, m.bodyInput.Value())
			continue
		}
		f.SetField(name, m.inputs[i].Value())
	}
}

func (m *appModel) loadAuditCmd() tea.Cmd {
	if m.audit == nil {
		return nil
	}
	a := m.audit
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		entries, err := a.Recent(ctx, 200)
		return auditLoadedMsg{entries: entries, err: err}
	}
}

type auditLoadedMsg struct {
	entries []store.AuditEntry
	err     error
}

// recordAudit appends the outcome of a mutation to the local audit log.
func (m *appModel) recordAudit(action, resource, recordID string, err error) {
	if m.audit == nil {
		return
	}
	entry := store.AuditEntry{
		Action:    action,
		Resource:  resource,
		RecordID:  recordID,
		RequestID: m.client.LastRequestID(),
		Outcome:   "success",
	}
	if err != nil {
		entry.Outcome = "error"
		entry.Detail = mutate.UserMessage(err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = m.audit.Append(ctx, entry)
}

package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"mineboard/internal/api"
	"mineboard/internal/model"
	"mineboard/internal/mutate"
	"mineboard/internal/query"
)

const (
	mutationTimeout = 30 * time.Second
	sweepInterval   = time.Minute
	flashDuration   = 4 * time.Second
)

func (m appModel) Init() tea.Cmd {
	cmds := []tea.Cmd{sweepTick()}
	for _, p := range panelOrder {
		if sub, ok := m.subs[p]; ok {
			cmds = append(cmds, listenQuery(p, sub))
		}
	}
	cmds = append(cmds, listenQuery(panelMining, m.settingsSub))
	if m.active == panelAudit {
		cmds = append(cmds, m.loadAuditCmd())
	}
	return tea.Batch(cmds...)
}

// listenQuery blocks on one subscription's update channel and re-arms itself
// via the returned message. A swapped-out subscription unblocks through Done
// and the listener retires.
func listenQuery(p panel, sub *query.Subscription) tea.Cmd {
	return func() tea.Msg {
		select {
		case res := <-sub.Updates():
			return queryUpdateMsg{panel: p, sub: sub, res: res}
		case <-sub.Done():
			return nil
		}
	}
}

func sweepTick() tea.Cmd {
	return tea.Tick(sweepInterval, func(time.Time) tea.Msg { return sweepTickMsg{} })
}

func (m *appModel) setFlash(msg string, isErr bool) tea.Cmd {
	m.flash = msg
	m.flashIsErr = isErr
	m.flashSeq++
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashDoneMsg{seq: seq} })
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.seenWindowSize = true
		for _, l := range m.lists {
			l.SetSize(msg.Width-4, msg.Height-6)
		}
		m.bodyInput.SetWidth(min(msg.Width-12, 76))
		return m, nil

	case queryUpdateMsg:
		m.applyQueryResult(msg.panel, msg.res)
		return m, listenQuery(msg.panel, msg.sub)

	case mutationDoneMsg:
		return m.handleMutationDone(msg)

	case auditLoadedMsg:
		if msg.err != nil {
			m.queryErr[panelAudit] = msg.err.Error()
			return m, nil
		}
		delete(m.queryErr, panelAudit)
		m.data.audit = msg.entries
		items := make([]list.Item, 0, len(msg.entries))
		for _, e := range msg.entries {
			items = append(items, auditItem{entry: e})
		}
		m.lists[panelAudit].SetItems(items)
		return m, nil

	case sweepTickMsg:
		m.cache.Sweep()
		return m, sweepTick()

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// applyQueryResult folds a cache snapshot into panel state. On error the
// last known good data stays on screen; only the error line changes.
func (m *appModel) applyQueryResult(p panel, res query.Result) {
	m.loading[p] = res.Status == query.StatusLoading
	m.staleView[p] = res.Stale
	if res.Err != nil {
		m.queryErr[p] = mutate.UserMessage(res.Err)
	} else {
		delete(m.queryErr, p)
	}

	switch data := res.Data.(type) {
	case []model.Ad:
		m.data.ads = data
		items := make([]list.Item, 0, len(data))
		for _, ad := range data {
			items = append(items, adItem{ad: ad})
		}
		m.lists[panelAds].SetItems(items)
	case []model.TokenPackage:
		m.data.packages = data
		items := make([]list.Item, 0, len(data))
		for _, pkg := range data {
			items = append(items, packageItem{pkg: pkg})
		}
		m.lists[panelPackages].SetItems(items)
	case []model.KYCSubmission:
		m.data.kyc = data
		items := make([]list.Item, 0, len(data))
		for _, sub := range data {
			items = append(items, kycItem{sub: sub})
		}
		m.lists[panelKYC].SetItems(items)
	case []model.User:
		m.data.users = data
		items := make([]list.Item, 0, len(data))
		for _, u := range data {
			items = append(items, userItem{user: u})
		}
		m.lists[panelUsers].SetItems(items)
	case []model.PlatformEvent:
		m.data.events = data
		items := make([]list.Item, 0, len(data))
		for _, ev := range data {
			items = append(items, eventItem{ev: ev})
		}
		m.lists[panelEvents].SetItems(items)
	case []model.Secret:
		m.data.secrets = data
		items := make([]list.Item, 0, len(data))
		for _, s := range data {
			items = append(items, secretItem{sec: s})
		}
		m.lists[panelSecrets].SetItems(items)
	case []model.Article:
		m.data.articles = data
		items := make([]list.Item, 0, len(data))
		for _, a := range data {
			items = append(items, articleItem{art: a})
		}
		m.lists[panelKnowledge].SetItems(items)
	case *model.BrandingConfig:
		m.data.branding = data
	case *model.PaymentGatewayConfig:
		if data != nil {
			m.data.payments[data.Provider] = data
		}
	case *model.MiningSettings:
		m.data.miningSettings = data
	case *model.MiningStats:
		m.data.miningStats = data
	}
}

func (m appModel) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	m.pending = false
	m.forms[msg.panel].SetSubmitting(false)
	m.recordAudit(msg.action, msg.panel.String(), msg.record, msg.err)

	if msg.err != nil {
		// Dialog stays open with the form state intact; the user can fix
		// and resubmit or cancel.
		return m, m.setFlash(mutate.UserMessage(msg.err), true)
	}

	m.closeDialog(msg.panel)
	// Invalidation already happened inside the command; a poke makes the
	// visible panel refetch now. Hidden panels stay stale until shown.
	if sub, ok := m.subs[msg.panel]; ok {
		sub.Observe()
	}
	if msg.panel == panelMining {
		m.settingsSub.Observe()
	}
	if msg.panel == panelKYC {
		if sub, ok := m.subs[panelUsers]; ok {
			sub.Observe()
		}
	}
	var cmds []tea.Cmd
	if m.active == panelAudit || msg.panel == panelAudit {
		cmds = append(cmds, m.loadAuditCmd())
	}
	cmds = append(cmds, m.setFlash(fmt.Sprintf("%s: %s", msg.panel.title(), msg.action), false))
	return m, tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dialogs[m.active].isOpen() {
		return m.handleDialogKey(msg)
	}

	l := m.lists[m.active]
	if l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		*l, cmd = l.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "tab", "right":
		return m, m.switchPanel(m.nextPanel(1))
	case "shift+tab", "left":
		return m, m.switchPanel(m.nextPanel(-1))

	case "r":
		if m.active == panelAudit {
			return m, m.loadAuditCmd()
		}
		if sub, ok := m.subs[m.active]; ok {
			sub.Refetch()
		}
		if m.active == panelMining {
			m.settingsSub.Refetch()
		}
		return m, nil

	case "n":
		switch m.active {
		case panelAds, panelPackages, panelEvents, panelSecrets, panelKnowledge:
			m.openDialog(m.active, dialogCreating, nil, nil)
		}
		return m, nil

	case "e", "enter":
		return m.openEditOrDetail(msg.String())

	case "d":
		if rec, id := m.selectedRecord(); rec != nil && id != "" {
			switch m.active {
			case panelAds, panelPackages, panelEvents, panelSecrets, panelKnowledge:
				m.openDialog(m.active, dialogDeleting, rec, nil)
			}
		}
		return m, nil

	case "a", "x":
		if m.active != panelKYC {
			break
		}
		item, ok := l.SelectedItem().(kycItem)
		if !ok {
			return m, nil
		}
		if item.sub.Status != model.KYCStatusPending {
			return m, m.setFlash("submission already reviewed", true)
		}
		m.openDialog(panelKYC, dialogEditing, item.sub, nil)
		if msg.String() == "a" {
			m.kycAction = "approve"
		} else {
			m.kycAction = "reject"
		}
		return m, nil

	case "f":
		if m.active == panelKYC {
			m.cycleKYCFilter()
			return m, listenQuery(panelKYC, m.subs[panelKYC])
		}
		return m, nil

	case "p":
		if m.active == panelPayments {
			m.togglePaymentProvider()
			return m, listenQuery(panelPayments, m.subs[panelPayments])
		}
		return m, nil
	}

	var cmd tea.Cmd
	*l, cmd = l.Update(msg)
	return m, cmd
}

func (m appModel) nextPanel(delta int) panel {
	for i, p := range panelOrder {
		if p == m.active {
			return panelOrder[(i+delta+len(panelOrder))%len(panelOrder)]
		}
	}
	return panelAds
}

// openEditOrDetail handles "e"/"enter" on list and singleton panels.
func (m appModel) openEditOrDetail(key string) (tea.Model, tea.Cmd) {
	switch m.active {
	case panelAds:
		if item, ok := m.lists[panelAds].SelectedItem().(adItem); ok {
			m.openDialog(panelAds, dialogEditing, item.ad, seedAd(item.ad))
		}
	case panelPackages:
		if item, ok := m.lists[panelPackages].SelectedItem().(packageItem); ok {
			m.openDialog(panelPackages, dialogEditing, item.pkg, seedPackage(item.pkg))
		}
	case panelUsers:
		if item, ok := m.lists[panelUsers].SelectedItem().(userItem); ok {
			m.openDialog(panelUsers, dialogEditing, item.user, seedUser(item.user))
		}
	case panelEvents:
		if item, ok := m.lists[panelEvents].SelectedItem().(eventItem); ok {
			m.openDialog(panelEvents, dialogEditing, item.ev, seedEvent(item.ev))
		}
	case panelSecrets:
		if item, ok := m.lists[panelSecrets].SelectedItem().(secretItem); ok {
			m.openDialog(panelSecrets, dialogEditing, item.sec, seedSecret(item.sec))
		}
	case panelKnowledge:
		item, ok := m.lists[panelKnowledge].SelectedItem().(articleItem)
		if !ok {
			break
		}
		if key == "enter" {
			m.openDialog(panelKnowledge, dialogPreviewing, item.art, nil)
		} else {
			m.openDialog(panelKnowledge, dialogEditing, item.art, seedArticle(item.art))
		}
	case panelKYC:
		if item, ok := m.lists[panelKYC].SelectedItem().(kycItem); ok {
			m.openDialog(panelKYC, dialogPreviewing, item.sub, nil)
		}
	case panelBranding:
		if m.data.branding == nil {
			return m, m.setFlash("branding not loaded yet", true)
		}
		m.openDialog(panelBranding, dialogEditing, *m.data.branding, seedBranding(*m.data.branding))
	case panelPayments:
		cfg := m.data.payments[m.paymentProvider]
		if cfg == nil {
			return m, m.setFlash("payment config not loaded yet", true)
		}
		m.openDialog(panelPayments, dialogEditing, *cfg, seedPayment(*cfg))
	case panelMining:
		if m.data.miningSettings == nil {
			return m, m.setFlash("mining settings not loaded yet", true)
		}
		m.openDialog(panelMining, dialogEditing, *m.data.miningSettings, seedMining(*m.data.miningSettings))
	}
	return m, nil
}

// selectedRecord returns the active list's selection and its identifier.
func (m appModel) selectedRecord() (any, string) {
	switch item := m.lists[m.active].SelectedItem().(type) {
	case adItem:
		return item.ad, item.ad.ID
	case packageItem:
		return item.pkg, item.pkg.ID
	case eventItem:
		return item.ev, item.ev.ID
	case secretItem:
		return item.sec, item.sec.Key
	case articleItem:
		return item.art, item.art.ID
	case userItem:
		return item.user, item.user.ID
	case kycItem:
		return item.sub, item.sub.ID
	}
	return nil, ""
}

func (m appModel) handleDialogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.active
	d := m.dialogs[p]

	if msg.String() == "esc" {
		if m.pending {
			return m, nil
		}
		m.closeDialog(p)
		return m, nil
	}

	switch d.kind {
	case dialogDeleting:
		return m.handleConfirmKey(msg)
	case dialogPreviewing:
		switch msg.String() {
		case "up", "k":
			if m.previewScroll > 0 {
				m.previewScroll--
			}
		case "down", "j":
			m.previewScroll++
		case "q", "enter":
			m.closeDialog(p)
		}
		return m, nil
	}

	// Create/edit form.
	if m.pending {
		return m, nil
	}

	inBody := m.focus == formFocusFields && m.fieldIdx == m.bodyIdx

	switch msg.String() {
	case "tab", "down":
		// The textarea keeps "down" for cursor movement; tab leaves it.
		if inBody && msg.String() == "down" {
			break
		}
		m.advanceFocus(1)
		return m, nil
	case "shift+tab", "up":
		if inBody && msg.String() == "up" {
			break
		}
		m.advanceFocus(-1)
		return m, nil
	case "enter":
		switch m.focus {
		case formFocusSave:
			return m.submit()
		case formFocusCancel:
			m.closeDialog(p)
			return m, nil
		case formFocusFields:
			// Enter inserts a newline in the body; elsewhere it advances.
			if !inBody {
				m.advanceFocus(1)
				return m, nil
			}
		}
	}

	if m.focus != formFocusFields {
		return m, nil
	}
	var cmd tea.Cmd
	if inBody {
		m.bodyInput, cmd = m.bodyInput.Update(msg)
	} else if m.fieldIdx < len(m.inputs) {
		m.inputs[m.fieldIdx], cmd = m.inputs[m.fieldIdx].Update(msg)
	}
	return m, cmd
}

// advanceFocus moves through fields, then Save, then Cancel, and wraps.
func (m *appModel) advanceFocus(delta int) {
	switch m.focus {
	case formFocusFields:
		next := m.fieldIdx + delta
		if delta > 0 && next >= len(m.fieldNames) {
			m.focus = formFocusSave
			m.blurAll()
			return
		}
		if delta < 0 && next < 0 {
			m.focus = formFocusCancel
			m.blurAll()
			return
		}
		m.focusField(next)
	case formFocusSave:
		if delta > 0 {
			m.focus = formFocusCancel
		} else {
			m.focus = formFocusFields
			m.focusField(len(m.fieldNames) - 1)
		}
	case formFocusCancel:
		if delta > 0 {
			m.focus = formFocusFields
			m.focusField(0)
		} else {
			m.focus = formFocusSave
		}
	}
}

func (m *appModel) blurAll() {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.bodyInput.Blur()
}

func (m appModel) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "left", "right", "h", "l":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "enter":
		if m.pending {
			return m, nil
		}
		if m.confirmFocus == confirmFocusCancel {
			m.closeDialog(m.active)
			return m, nil
		}
		return m.runDelete()
	case "n":
		m.closeDialog(m.active)
		return m, nil
	}
	return m, nil
}

func (m appModel) runDelete() (tea.Model, tea.Cmd) {
	p := m.active
	d := m.dialogs[p]
	m.pending = true

	switch rec := d.record.(type) {
	case model.Ad:
		return m, runMutation(m.muts.deleteAd, rec.ID, p, "delete", rec.ID)
	case model.TokenPackage:
		return m, runMutation(m.muts.deletePackage, rec.ID, p, "delete", rec.ID)
	case model.PlatformEvent:
		return m, runMutation(m.muts.deleteEvent, rec.ID, p, "delete", rec.ID)
	case model.Secret:
		return m, runMutation(m.muts.deleteSecret, rec.Key, p, "delete", rec.Key)
	case model.Article:
		return m, runMutation(m.muts.deleteArticle, rec.ID, p, "delete", rec.ID)
	}
	m.pending = false
	return m, nil
}

// runMutation executes one command off the UI goroutine and reports back.
func runMutation[I, R any](cmd *mutate.Command[I, R], in I, p panel, action, record string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), mutationTimeout)
		defer cancel()
		_, err := cmd.Run(ctx, in)
		return mutationDoneMsg{panel: p, action: action, record: record, err: err}
	}
}

// submit validates the form and dispatches the panel's mutation. Validation
// failures never reach the network.
func (m appModel) submit() (tea.Model, tea.Cmd) {
	p := m.active
	m.syncFormFromInputs(p)
	f := m.forms[p]
	if !f.Validate() {
		m.focusFirstError()
		return m, m.setFlash("fix the highlighted fields", true)
	}

	cmd := m.buildMutation()
	if cmd == nil {
		// A payload-build error surfaced as a field error.
		m.focusFirstError()
		return m, m.setFlash("fix the highlighted fields", true)
	}
	m.pending = true
	f.SetSubmitting(true)
	return m, cmd
}

func (m *appModel) focusFirstError() {
	errs := m.forms[m.active].Errors()
	for i, name := range m.fieldNames {
		if _, ok := errs[name]; ok {
			m.focus = formFocusFields
			m.focusField(i)
			return
		}
	}
}

// buildMutation assembles the typed payload for the active dialog and returns
// the command to run it, or nil after recording a field error.
func (m *appModel) buildMutation() tea.Cmd {
	p := m.active
	d := m.dialogs[p]
	f := m.forms[p]

	switch p {
	case panelAds:
		in, ok := m.buildAdInput()
		if !ok {
			return nil
		}
		if d.kind == dialogEditing {
			ad := d.record.(model.Ad)
			return runMutation(m.muts.updateAd, recordUpdate[api.AdInput]{ID: ad.ID, In: in}, p, "update", ad.ID)
		}
		return runMutation(m.muts.createAd, in, p, "create", in.Title)

	case panelPackages:
		in, ok := m.buildPackageInput()
		if !ok {
			return nil
		}
		if d.kind == dialogEditing {
			pkg := d.record.(model.TokenPackage)
			return runMutation(m.muts.updatePackage, recordUpdate[api.TokenPackageInput]{ID: pkg.ID, In: in}, p, "update", pkg.ID)
		}
		return runMutation(m.muts.createPackage, in, p, "create", in.Name)

	case panelKYC:
		sub := d.record.(model.KYCSubmission)
		dec := kycDecision{ID: sub.ID, Note: f.Value("note")}
		if m.kycAction == "reject" {
			return runMutation(m.muts.rejectKYC, dec, p, "reject", sub.ID)
		}
		return runMutation(m.muts.approveKYC, dec, p, "approve", sub.ID)

	case panelUsers:
		u := d.record.(model.User)
		role := model.UserRole(f.Value("role"))
		suspended := f.Bool("suspended")
		in := api.UserUpdateInput{Role: &role, Suspended: &suspended}
		return runMutation(m.muts.updateUser, recordUpdate[api.UserUpdateInput]{ID: u.ID, In: in}, p, "update", u.ID)

	case panelEvents:
		in, ok := m.buildEventInput()
		if !ok {
			return nil
		}
		if d.kind == dialogEditing {
			ev := d.record.(model.PlatformEvent)
			return runMutation(m.muts.updateEvent, recordUpdate[api.EventInput]{ID: ev.ID, In: in}, p, "update", ev.ID)
		}
		return runMutation(m.muts.createEvent, in, p, "create", in.Title)

	case panelSecrets:
		key := f.Value("key")
		in := api.SecretInput{Value: f.Value("value"), Description: f.Value("description")}
		action := "create"
		if d.kind == dialogEditing {
			action = "update"
		}
		return runMutation(m.muts.putSecret, recordUpdate[api.SecretInput]{ID: key, In: in}, p, action, key)

	case panelBranding:
		in := model.BrandingConfig{
			PlatformName:   f.Value("platformName"),
			Tagline:        f.Value("tagline"),
			LogoURL:        f.Value("logoUrl"),
			FaviconURL:     f.Value("faviconUrl"),
			PrimaryColor:   f.Value("primaryColor"),
			SecondaryColor: f.Value("secondaryColor"),
			SupportEmail:   f.Value("supportEmail"),
		}
		return runMutation(m.muts.updateBranding, in, p, "update", "branding")

	case panelPayments:
		minUSD, _ := f.Number("minPurchaseUsd")
		maxUSD, _ := f.Number("maxPurchaseUsd")
		if maxUSD > 0 && minUSD > maxUSD {
			f.SetError("maxPurchaseUsd", "must be at least the minimum purchase")
			return nil
		}
		in := api.PaymentGatewayInput{
			Enabled:        f.Bool("enabled"),
			Environment:    f.Value("environment"),
			ClientID:       f.Value("clientId"),
			ClientSecret:   f.Value("clientSecret"),
			WebhookURL:     f.Value("webhookUrl"),
			MinPurchaseUSD: minUSD,
			MaxPurchaseUSD: maxUSD,
		}
		provider := m.paymentProvider
		if cfg, ok := d.record.(model.PaymentGatewayConfig); ok {
			provider = cfg.Provider
		}
		return runMutation(m.muts.updatePayment, paymentUpdate{Provider: provider, In: in}, p, "update", string(provider))

	case panelMining:
		rate, _ := f.Number("baseRatePerHour")
		hours, _ := f.Int("sessionHours")
		streak, _ := f.Number("streakBonusPercent")
		maxStreak, _ := f.Int("maxStreakDays")
		referral, _ := f.Int("referralBonusTokens")
		dailyCap, _ := f.Int("dailyCapTokens")
		in := model.MiningSettings{
			BaseRatePerHour:     rate,
			SessionHours:        int(hours),
			StreakBonusPercent:  streak,
			MaxStreakDays:       int(maxStreak),
			ReferralBonusTokens: referral,
			DailyCapTokens:      dailyCap,
			MaintenanceMode:     f.Bool("maintenanceMode"),
		}
		return runMutation(m.muts.updateMining, in, p, "update", "mining")

	case panelKnowledge:
		in := api.ArticleInput{
			Title:     f.Value("title"),
			Category:  f.Value("category"),
			Body:      f.Value("body"),
			Tags:      parseTags(f.Value("tags")),
			Published: f.Bool("published"),
		}
		if d.kind == dialogEditing {
			art := d.record.(model.Article)
			return runMutation(m.muts.updateArticle, recordUpdate[api.ArticleInput]{ID: art.ID, In: in}, p, "update", art.ID)
		}
		return runMutation(m.muts.createArticle, in, p, "create", in.Title)
	}
	return nil
}

func (m *appModel) buildAdInput() (api.AdInput, bool) {
	f := m.forms[panelAds]
	in := api.AdInput{
		Title:       f.Value("title"),
		Description: f.Value("description"),
		ImageURL:    f.Value("imageUrl"),
		TargetURL:   f.Value("targetUrl"),
		Placement:   f.Value("placement"),
		Status:      model.AdStatus(f.Value("status")),
	}
	ok := true
	var err error
	if in.StartsAt, err = model.ParseDateTime(f.Value("startsAt")); err != nil {
		f.SetError("startsAt", err.Error())
		ok = false
	}
	if in.EndsAt, err = model.ParseDateTime(f.Value("endsAt")); err != nil {
		f.SetError("endsAt", err.Error())
		ok = false
	}
	return in, ok
}

func (m *appModel) buildPackageInput() (api.TokenPackageInput, bool) {
	f := m.forms[panelPackages]
	tokens, _ := f.Int("tokenAmount")
	price, _ := f.Number("priceUsd")
	discount, _ := f.Number("discountPercentage")
	bonus, _ := f.Int("bonusTokens")
	in := api.TokenPackageInput{
		Name:               f.Value("name"),
		Description:        f.Value("description"),
		TokenAmount:        tokens,
		PriceUSD:           price,
		DiscountPercentage: discount,
		BonusTokens:        bonus,
		LimitedTimeOffer:   f.Bool("limitedTimeOffer"),
		Featured:           f.Bool("featured"),
		Active:             f.Bool("active"),
	}
	ok := true
	var err error
	if in.OfferEndsAt, err = model.ParseDateTime(f.Value("offerEndsAt")); err != nil {
		f.SetError("offerEndsAt", err.Error())
		ok = false
	}
	return in, ok
}

func (m *appModel) buildEventInput() (api.EventInput, bool) {
	f := m.forms[panelEvents]
	reward, _ := f.Int("rewardTokens")
	in := api.EventInput{
		Title:        f.Value("title"),
		Description:  f.Value("description"),
		ImageURL:     f.Value("imageUrl"),
		RewardTokens: reward,
		Published:    f.Bool("published"),
	}
	ok := true
	var err error
	if in.StartsAt, err = model.ParseDateTime(f.Value("startsAt")); err != nil {
		f.SetError("startsAt", err.Error())
		ok = false
	}
	if in.EndsAt, err = model.ParseDateTime(f.Value("endsAt")); err != nil {
		f.SetError("endsAt", err.Error())
		ok = false
	}
	return in, ok
}

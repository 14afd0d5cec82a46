package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"mineboard/internal/api"
	"mineboard/internal/store"
)

// Run starts the interactive console and blocks until the user quits.
func Run(st store.Store, cfg store.Config, client *api.Client) error {
	if cfg.DebugLog != "" {
		f, err := tea.LogToFile(cfg.DebugLog, "mineboard")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	auditLog, err := st.OpenAudit(ctx)
	cancel()
	if err != nil {
		// The audit log is local convenience; a broken sqlite file should
		// not keep the console from starting.
		auditLog = nil
	}

	m := newAppModel(st, cfg, client, auditLog)
	defer func() {
		for _, sub := range m.subs {
			sub.Close()
		}
		m.settingsSub.Close()
		if auditLog != nil {
			auditLog.Close()
		}
	}()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

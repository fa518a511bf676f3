package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"marketdash/internal/dashboard/aggregate"
	"marketdash/internal/dashboard/loader"
	"marketdash/internal/dashboard/memorystore"
	"marketdash/internal/dashboard/registry"
	"marketdash/internal/dashboard/settings"
	"marketdash/internal/dashboard/stream"
	"marketdash/internal/dashboard/telemetry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher receives every new state. *stream.Hub satisfies it.
type Publisher interface {
	Broadcast(topic string, data any) error
}

// Options are the cycle parameters taken from configuration.
type Options struct {
	HistoryStart time.Time
	LookbackDays int
	TopN         int
	Indices      []loader.IndexDef
	Seed         uint64
}

// Dashboard owns the stores and loaders and runs refresh cycles against them.
type Dashboard struct {
	registry *registry.Registry
	settings *settings.Store
	history  *memorystore.HistoryStore
	states   *memorystore.StateStore

	historyLoader  *loader.HistoryLoader
	snapshotLoader *loader.SnapshotLoader
	macroLoader    *loader.MacroLoader
	simulator      *loader.Simulator

	recorder  *telemetry.Recorder
	publisher Publisher
	logger    *zap.Logger
	opts      Options
	now       func() time.Time

	refreshMu sync.Mutex
	trigger   func() bool
}

func New(reg *registry.Registry, src loader.MarketData, st *settings.Store, rec *telemetry.Recorder,
	pub Publisher, logger *zap.Logger, opts Options) *Dashboard {
	if opts.Indices == nil {
		opts.Indices = loader.DefaultIndices
	}
	if opts.Seed == 0 {
		opts.Seed = uint64(time.Now().UnixNano())
	}

	d := &Dashboard{
		registry:       reg,
		settings:       st,
		history:        memorystore.NewHistoryStore(),
		states:         memorystore.NewStateStore(),
		historyLoader:  &loader.HistoryLoader{Source: src, Logger: logger},
		snapshotLoader: &loader.SnapshotLoader{Source: src, Logger: logger, LookbackDays: opts.LookbackDays},
		macroLoader:    &loader.MacroLoader{Source: src, Logger: logger, Indices: opts.Indices},
		simulator:      loader.NewSimulator(opts.Seed),
		recorder:       rec,
		publisher:      pub,
		logger:         logger,
		opts:           opts,
		now:            time.Now,
	}
	st.OnChange(d.settingsChanged)
	return d
}

// settingsChanged keeps the alert gauge in line with the new threshold.
func (d *Dashboard) settingsChanged(s settings.Settings) {
	d.logger.Info("settings updated", zap.Bool("auto_refresh", s.AutoRefresh),
		zap.Float64("alert_threshold", s.AlertThreshold))

	total := 0
	for _, g := range d.Alerts(s.AlertThreshold) {
		total += len(g.Rows)
	}
	d.recorder.SetAlerts(total)
}

// LoadHistory fills the historical table of every family once. Failed instruments are
// collapsed into one warning per family.
func (d *Dashboard) LoadHistory(ctx context.Context) error {
	end := d.now()

	for _, f := range registry.Families {
		res, err := d.historyLoader.Load(ctx, d.registry.Instruments(f), d.opts.HistoryStart, end)
		if err != nil {
			return fmt.Errorf("load %s history: %w", f, err)
		}
		d.history.Replace(f, res.Points, res.Failed)
		d.recorder.FetchFailures(string(f), telemetry.StageHistory, len(res.Failed))

		if len(res.Failed) > 0 {
			d.logger.Warn("history load incomplete", zap.String("family", string(f)),
				zap.Strings("failed", res.Failed))
		}
	}

	count := d.history.CountAll()
	d.recorder.SetHistoryPoints(count)
	d.logger.Info("history loaded", zap.Int("points", count),
		zap.Time("start", d.opts.HistoryStart), zap.Time("end", end))
	return nil
}

// Refresh runs one full cycle and publishes the resulting state. On error the previous
// state stays current.
func (d *Dashboard) Refresh(ctx context.Context, reason string) (*memorystore.State, error) {
	d.refreshMu.Lock()
	defer d.refreshMu.Unlock()

	start := d.now()
	st := &memorystore.State{
		CycleID: uuid.NewString(),
		Tables:  make(map[registry.Family]*memorystore.FamilyTable, len(registry.Families)),
	}

	for _, f := range registry.Families {
		res, err := d.snapshotLoader.Load(ctx, d.registry.Instruments(f))
		if err != nil {
			return nil, fmt.Errorf("load %s snapshot: %w", f, err)
		}
		rows := res.Rows
		if rows == nil {
			rows = []memorystore.Snapshot{}
		}
		st.Tables[f] = &memorystore.FamilyTable{
			Family:  f,
			Rows:    rows,
			Omitted: res.Omitted,
			Summary: aggregate.Summarize(rows, d.opts.TopN),
		}
		d.recorder.SetRows(string(f), len(rows))
		d.recorder.FetchFailures(string(f), telemetry.StageSnapshot, len(res.Omitted))
		if len(res.Omitted) > 0 {
			d.logger.Debug("instruments omitted from snapshot", zap.String("family", string(f)),
				zap.Strings("codes", res.Omitted))
		}
	}

	macro, err := d.macroLoader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load macro snapshot: %w", err)
	}
	unavailable := 0
	for _, q := range macro.Indices {
		if !q.Available {
			unavailable++
		}
	}
	d.recorder.FetchFailures("indices", telemetry.StageMacro, unavailable)
	st.Macro = macro
	st.Simulated = d.simulator.Generate(d.opts.Indices)

	st.RefreshedAt = d.now()
	st.Duration = st.RefreshedAt.Sub(start)
	d.states.Store(st)

	alerts := d.Alerts(0)
	total := 0
	for _, g := range alerts {
		total += len(g.Rows)
	}
	d.recorder.SetAlerts(total)
	d.recorder.RefreshCompleted(reason, st.Duration, st.RefreshedAt)

	d.logger.Info("refresh completed",
		zap.String("cycle_id", st.CycleID),
		zap.String("reason", reason),
		zap.Duration("elapsed", st.Duration),
		zap.Int("currencies", len(st.Table(registry.FamilyCurrencies).Rows)),
		zap.Int("commodities", len(st.Table(registry.FamilyCommodities).Rows)),
		zap.Int("alerts", total),
	)

	if d.publisher != nil {
		if err := d.publisher.Broadcast(stream.TopicState, st); err != nil {
			d.logger.Warn("failed to publish state", zap.Error(err))
		}
		if err := d.publisher.Broadcast(stream.TopicAlerts, alerts); err != nil {
			d.logger.Warn("failed to publish alerts", zap.Error(err))
		}
	}
	return st, nil
}

// State returns the last completed cycle, or nil before the first one.
func (d *Dashboard) State() *memorystore.State {
	return d.states.Load()
}

// Alerts evaluates the current tables against threshold; a non-positive threshold means
// the configured one.
func (d *Dashboard) Alerts(threshold float64) []memorystore.AlertGroup {
	if threshold <= 0 {
		threshold = d.settings.Get().AlertThreshold
	}

	st := d.states.Load()
	groups := make([]memorystore.AlertGroup, 0, len(registry.Families))
	for _, f := range registry.Families {
		rows := aggregate.Alerts(st.Table(f).Rows, threshold)
		lines := make([]string, 0, len(rows))
		for _, r := range rows {
			lines = append(lines, aggregate.AlertLine(f, r))
		}
		groups = append(groups, memorystore.AlertGroup{Family: f, Threshold: threshold, Rows: rows, Lines: lines})
	}
	return groups
}

// History returns the family's long-form table, or one instrument's series when code is set.
func (d *Dashboard) History(f registry.Family, code string) []memorystore.HistoricalPoint {
	if code == "" {
		return d.history.GetFamily(f)
	}
	return d.history.GetByCode(f, code)
}

// Warnings are the history load failures, one line per family.
func (d *Dashboard) Warnings() []string {
	out := []string{}
	for _, f := range registry.Families {
		if w := aggregate.FailureWarning(string(f), d.history.Failed(f)); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// SetTrigger installs the function used by TriggerRefresh.
func (d *Dashboard) SetTrigger(fn func() bool) { d.trigger = fn }

// TriggerRefresh asks for an out-of-band cycle. It reports false when one is already queued.
func (d *Dashboard) TriggerRefresh() bool {
	if d.trigger == nil {
		return false
	}
	return d.trigger()
}

package engine

import (
	"fmt"
	"log"

	"GroveKeeper/internal/model"
	"GroveKeeper/internal/recorder"
)

// DecayTick lowers every participant's resource meter by the configured
// amount. Participants at or below zero are dead: each gets exactly one
// died event and leaves the active set before the tick ends. The whole
// batch persists once. A sink failure cannot happen here structurally
// (the sink returns nothing); a save failure is logged in the report and
// retried implicitly on the next tick's save.
func (e *Engine) DecayTick() TickReport {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := e.cfg.Snapshot()
	amount := cfg.Decay.DecreaseAmount
	warnAt := cfg.Decay.LowResourceWarnThreshold

	var report TickReport
	for id, p := range e.participants {
		before := p.ResourceLevel
		p.Decay(amount)
		switch {
		case !p.IsAlive():
			report.Died = append(report.Died, id)
		case before > warnAt && p.ResourceLevel <= warnAt:
			report.Warned = append(report.Warned, id)
		}
	}

	for _, id := range report.Died {
		p := e.participants[id]
		delete(e.participants, id)
		e.sink.ParticipantDied(id, p.ChannelID)
		e.recordLifecycle(&recorder.LifecycleEvent{ParticipantID: id, Kind: model.EventDied})
	}
	for _, id := range report.Warned {
		p := e.participants[id]
		e.sink.LowResource(id, p.ResourceLevel, cfg.Economy.MaxResource)
		e.recordLifecycle(&recorder.LifecycleEvent{
			ParticipantID: id, Kind: model.EventLowResource,
			Detail: fmt.Sprintf("level=%.1f", p.ResourceLevel),
		})
	}

	report.Active = len(e.participants)
	if err := e.persist(); err != nil {
		log.Printf("[ERROR] persist after decay tick: %v", err)
		report.Persist = err
	}
	if err := e.rec.RecordTick(&recorder.TickSummary{
		Active: report.Active, Died: len(report.Died), Warned: len(report.Warned),
	}); err != nil {
		log.Printf("[ERROR] record tick summary: %v", err)
	}
	return report
}

// EnforceActivityQuota removes every participant who did not meet the
// minimum activity count during yesterday's local calendar day. A
// marker that doesn't point at yesterday means no activity at all.
// Returns the removed IDs.
func (e *Engine) EnforceActivityQuota() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	cfg := e.cfg.Snapshot()
	e.refreshClocks(&cfg)
	yesterday := e.local.Yesterday(e.now())
	quota := int64(cfg.Survival.MinDailyActivityCount)

	var removed []string
	for id, p := range e.participants {
		if p.ActivityDay == yesterday && p.ActivityCountToday >= quota {
			continue
		}
		removed = append(removed, id)
	}

	for _, id := range removed {
		p := e.participants[id]
		delete(e.participants, id)
		e.sink.InsufficientActivity(id, p.ChannelID)
		e.recordLifecycle(&recorder.LifecycleEvent{
			ParticipantID: id, Kind: model.EventInsufficientActivity,
			Detail: fmt.Sprintf("day=%s", yesterday),
		})
	}

	if len(removed) > 0 {
		if err := e.persist(); err != nil {
			log.Printf("[ERROR] persist after activity quota: %v", err)
		}
	}
	return removed
}

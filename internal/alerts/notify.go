package alerts

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"cfb-edge/internal/analysis"
	"cfb-edge/internal/mathutil"
	"cfb-edge/internal/odds"
)

// Notifier handles alert notifications
type Notifier struct {
	log        *logrus.Entry
	mu         sync.Mutex
	lastAlerts map[string]time.Time // Dedupe alerts
	cooldown   time.Duration        // Minimum time between same alerts
}

// NewNotifier creates a new notifier
func NewNotifier(log *logrus.Entry, cooldown time.Duration) *Notifier {
	return &Notifier{
		log:        log,
		lastAlerts: make(map[string]time.Time),
		cooldown:   cooldown,
	}
}

// checkCooldown records key and reports whether it was already alerted
// within the cooldown.
func (n *Notifier) checkCooldown(key string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if lastTime, ok := n.lastAlerts[key]; ok && time.Since(lastTime) < n.cooldown {
		return true
	}
	n.lastAlerts[key] = time.Now()
	return false
}

// AlertMiddle logs a middle. Returns false when suppressed by the cooldown.
func (n *Notifier) AlertMiddle(m analysis.MiddleOpportunity) bool {
	if n.checkCooldown("middle-" + m.ID) {
		return false
	}

	n.log.WithFields(logrus.Fields{
		"game_id":     m.GameID,
		"market":      m.Market,
		"gap":         m.Gap,
		"probability": m.EstimatedProbability,
		"max_loss":    round2(m.MaxLoss),
		"max_profit":  round2(m.MaxProfit),
		"roi":         round2(m.ROI),
	}).Infof("MIDDLE: %s@%s | %s / %s",
		m.AwayTeam, m.HomeTeam, describeLeg(m, m.LegA), describeLeg(m, m.LegB))
	return true
}

// AlertBoost logs a +EV boost. Returns false when suppressed by the cooldown.
func (n *Notifier) AlertBoost(b analysis.BoostOpportunity) bool {
	if n.checkCooldown("boost-" + b.ID) {
		return false
	}

	fields := logrus.Fields{
		"game_id":    b.GameID,
		"sportsbook": b.Sportsbook,
		"original":   odds.FormatAmerican(b.OriginalOdds),
		"boosted":    odds.FormatAmerican(b.BoostedOdds),
		"boost_pct":  round2(b.BoostValuePercent),
		"ev_pct":     round2(b.EstimatedEV),
		"kelly_pct":  round2(b.KellyStake * 100),
	}
	if !b.ExpiresAt.IsZero() {
		fields["expires_at"] = b.ExpiresAt.Format(time.RFC3339)
	}

	n.log.WithFields(fields).Infof("+EV BOOST: %s (%s@%s) %s→%s",
		b.Description, b.AwayTeam, b.HomeTeam,
		odds.FormatAmerican(b.OriginalOdds), odds.FormatAmerican(b.BoostedOdds))
	return true
}

// LogScan logs a scan completion
func (n *Notifier) LogScan(games, middles, boosts int) {
	n.log.WithFields(logrus.Fields{
		"games":   games,
		"middles": middles,
		"boosts":  boosts,
	}).Info("Scan complete")
}

// LogStartup logs the effective settings once at boot.
func (n *Notifier) LogStartup(fields logrus.Fields) {
	n.log.WithFields(fields).Info("Scanner started")
}

// LogError logs an error
func (n *Notifier) LogError(context string, err error) {
	n.log.WithError(err).WithField("context", context).Error("scan step failed")
}

// CleanupOldAlerts removes stale alert records
func (n *Notifier) CleanupOldAlerts() {
	n.mu.Lock()
	defer n.mu.Unlock()
	cutoff := time.Now().Add(-max(n.cooldown, time.Hour))
	for key, t := range n.lastAlerts {
		if t.Before(cutoff) {
			delete(n.lastAlerts, key)
		}
	}
}

func describeLeg(m analysis.MiddleOpportunity, leg analysis.MiddleLeg) string {
	var label string
	switch leg.Side {
	case odds.SideHome:
		label = fmt.Sprintf("%s %+g", m.HomeTeam, leg.Line)
	case odds.SideAway:
		label = fmt.Sprintf("%s %+g", m.AwayTeam, leg.Line)
	default:
		label = fmt.Sprintf("%s %g", strings.ToUpper(string(leg.Side)), leg.Line)
	}
	return fmt.Sprintf("%s %s @ %s", label, odds.FormatAmerican(leg.Odds), leg.Provider)
}

func round2(v float64) float64 {
	return mathutil.RoundTo(v, 2)
}

package sim

import (
	"context"
	"errors"
	"log/slog"
	"math"

	"github.com/pixil98/corvax-lab/internal/display"
	"github.com/pixil98/corvax-lab/internal/gameserver"
)

type FeedbackKind string

const (
	FeedbackGain     FeedbackKind = "gain"
	FeedbackStatus   FeedbackKind = "status"
	FeedbackAdvisory FeedbackKind = "advisory"
	FeedbackBuilt    FeedbackKind = "built"
	FeedbackLevelUp  FeedbackKind = "level_up"
	FeedbackCooldown FeedbackKind = "cooldown"
	FeedbackRejected FeedbackKind = "rejected"
	FeedbackFailure  FeedbackKind = "failure"
)

// Feedback is one player-facing event. Every feedback becomes a floating
// notification and is handed to the configured sink.
type Feedback struct {
	Kind      FeedbackKind `json:"kind"`
	Text      string       `json:"text"`
	Color     string       `json:"color"`
	X         float64      `json:"x"`
	Y         float64      `json:"y"`
	MachineID int64        `json:"machineId,omitempty"`
	Resource  Resource     `json:"resource,omitempty"`
	Amount    float64      `json:"amount,omitempty"`
}

// FeedbackSink receives feedback as it is produced on the tick goroutine.
type FeedbackSink interface {
	Publish(ctx context.Context, f Feedback)
}

const (
	messageOffline         = "Offline"
	messageIncubatorOnline = "Incubator Online"
)

const (
	msgWalletRequired = "Connect Radix wallet first!"
	msgNotLoggedIn    = "Log in with Telegram first!"
	msgWelcome        = `Welcome, {{ .Name | default "Player" }}!`
	msgCooldown       = "Cooldown! Wait {{ .Minutes }} min."
	msgActivateFailed = "Cannot activate"
	msgBuilt          = "Built {{ .Type }}!"
	msgBuildFailed    = "Build error!"
	msgLevelUp        = "Level Up => {{ .Level }}"
	msgUpgradeFailed  = "Upgrade error!"
	msgGain           = "{{ .Amount }} {{ .Label }}"
	msgReward         = "+{{ .Reward }} TCorvax"
)

// rejection turns a failed request into feedback. Server rejections carry
// their own message; anything else falls back to the generic text.
func rejection(ctx context.Context, err error, fallback string) Feedback {
	var apiErr *gameserver.APIError
	if !errors.As(err, &apiErr) {
		slog.WarnContext(ctx, "request failed", "error", err)
		return Feedback{Kind: FeedbackFailure, Text: fallback, Color: ColorError}
	}

	if apiErr.CooldownActive() {
		minutes := int(math.Ceil(float64(apiErr.RemainingMs) / 60000))
		return Feedback{
			Kind:  FeedbackCooldown,
			Text:  display.MustExpand(msgCooldown, map[string]any{"Minutes": minutes}),
			Color: ColorError,
		}
	}

	text := apiErr.Message
	if text == "" {
		text = fallback
	}
	return Feedback{Kind: FeedbackRejected, Text: text, Color: ColorError}
}

func (f Feedback) at(p Point) Feedback {
	f.X, f.Y = p.X, p.Y
	return f
}

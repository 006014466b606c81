package actors

import (
	"VillageDefense/internal/shared/actor/messages"
	"VillageDefense/internal/village/controller"
	"VillageDefense/internal/village/entity"
	"VillageDefense/internal/village/render"
)

func toNotice(n controller.Notification) messages.Notice {
	return messages.Notice{Seq: n.Seq, Kind: string(n.Kind), Message: n.Message, At: n.At}
}

func toNotices(in []controller.Notification) []messages.Notice {
	out := make([]messages.Notice, 0, len(in))
	for _, n := range in {
		out = append(out, toNotice(n))
	}
	return out
}

func toGameState(sessionID string, s controller.Snapshot) messages.GameState {
	gs := messages.GameState{
		SessionID:     sessionID,
		State:         s.State,
		Running:       s.Running,
		VillageHealth: s.VillageHealth,
		PlayerHealth:  s.PlayerHealth,
		Weapon:        s.Weapon,
		DayCycle:      s.DayCycle,
		CycleProgress: s.CycleProgress,
		Wave:          s.Wave,
		BuildMode:     s.BuildMode,
		Coins:         s.Coins,
		GameOver:      s.GameOver,
		Message:       s.Message,
		Enemies:       s.Enemies,
		Guards:        s.Guards,
		Buildings:     s.Buildings,
		SimSeconds:    s.SimSeconds,
		LastNotice:    s.LastNotice,
	}
	if t := s.Selected; t != nil {
		gs.Selected = &messages.Template{Name: t.Name, Category: t.Category, Cost: t.Cost, Description: t.Description}
	}
	if len(s.Notices) > 0 {
		gs.Notices = toNotices(s.Notices)
	}
	return gs
}

func toDrawCommands(in []render.Command) []messages.DrawCommand {
	out := make([]messages.DrawCommand, 0, len(in))
	for _, c := range in {
		out = append(out, messages.DrawCommand{
			Op:    string(c.Op),
			X:     c.X,
			Y:     c.Y,
			W:     c.W,
			H:     c.H,
			R:     c.R,
			Color: string(c.Color),
			Text:  c.Text,
		})
	}
	return out
}

func toGameReport(r entity.Report) messages.GameReport {
	out := messages.GameReport{
		SessionID:      r.SessionID,
		Result:         r.Result,
		Message:        r.Message,
		Wave:           r.Wave,
		Kills:          r.Kills,
		CoinsEarned:    r.CoinsEarned,
		Coins:          r.Coins,
		BuildingsBuilt: r.BuildingsBuilt,
		BuildingsLost:  r.BuildingsLost,
		GuardsLost:     r.GuardsLost,
		SimSeconds:     r.SimSeconds,
		StartedAt:      r.StartedAt.UnixMilli(),
	}
	if !r.FinishedAt.IsZero() {
		out.FinishedAt = r.FinishedAt.UnixMilli()
	}
	return out
}

// ToGameReport 供战报查询接口复用。
func ToGameReport(r entity.Report) messages.GameReport {
	return toGameReport(r)
}
